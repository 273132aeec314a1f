package engine

import (
	"strings"
	"unicode"
)

// String-case transforms used when splicing variables into identifiers and
// file names. Every transform is idempotent: applying it to its own output
// is a no-op, whatever mix of delimiters and internal capitalization the
// input carried.

// ToCamelCase converts a string to camelCase.
func ToCamelCase(s string) string {
	words := splitWords(s)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, word := range words[1:] {
		b.WriteString(titleWord(word))
	}
	return b.String()
}

// ToPascalCase converts a string to PascalCase.
func ToPascalCase(s string) string {
	words := splitWords(s)

	var b strings.Builder
	for _, word := range words {
		b.WriteString(titleWord(word))
	}
	return b.String()
}

// ToKebabCase converts a string to kebab-case.
func ToKebabCase(s string) string {
	return joinLower(splitWords(s), "-")
}

// ToSnakeCase converts a string to snake_case.
func ToSnakeCase(s string) string {
	return joinLower(splitWords(s), "_")
}

// ToUpper converts a string to upper case.
func ToUpper(s string) string {
	return strings.ToUpper(s)
}

// ToLower converts a string to lower case.
func ToLower(s string) string {
	return strings.ToLower(s)
}

// splitWords breaks the input into words at spaces, hyphens, underscores,
// lower-to-upper transitions, and the end of an upper-case run followed by
// a lower-case letter ("HTTPServer" → "HTTP", "Server").
func splitWords(s string) []string {
	var words []string
	var current []rune
	runes := []rune(s)

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = nil
		}
	}

	for i, r := range runes {
		if r == ' ' || r == '-' || r == '_' {
			flush()
			continue
		}

		if len(current) > 0 && unicode.IsUpper(r) {
			prev := current[len(current)-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				flush()
			} else if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				flush()
			}
		}

		current = append(current, r)
	}
	flush()

	return words
}

func titleWord(word string) string {
	if word == "" {
		return ""
	}
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func joinLower(words []string, sep string) string {
	lowered := make([]string, len(words))
	for i, word := range words {
		lowered[i] = strings.ToLower(word)
	}
	return strings.Join(lowered, sep)
}
