package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/stamp-dev/stamp/pkg/template"
)

// blockTypes are the supported block directives, in reporting order.
var blockTypes = []string{"if", "unless", "each"}

var openPatterns = map[string]*regexp.Regexp{
	"if":     regexp.MustCompile(`\{\{#if\b`),
	"unless": regexp.MustCompile(`\{\{#unless\b`),
	"each":   regexp.MustCompile(`\{\{#each\b`),
}

// ValidateTemplateSyntax checks block-directive balance. For each block type
// the opening and closing tags are counted by independent scans; a mismatch
// produces one error naming the type and both counts. A heuristic scan also
// flags a same-type block opened twice before its matching close; adjacent
// same-type blocks are fine as long as each is independently balanced.
func ValidateTemplateSyntax(body string) template.ValidationResult {
	result := template.NewValidationResult()

	for _, blockType := range blockTypes {
		opens := openPatterns[blockType].FindAllStringIndex(body, -1)
		closeTag := "{{/" + blockType + "}}"
		closes := strings.Count(body, closeTag)

		if len(opens) != closes {
			result.AddError(fmt.Sprintf("unbalanced '%s' block: %d opening, %d closing", blockType, len(opens), closes))
		}

		if hasNestedSameType(body, opens, closeTag) {
			result.AddError(fmt.Sprintf("invalid nested '%s' block", blockType))
		}
	}

	return result
}

// hasNestedSameType walks the open/close tag positions in order and reports
// whether a second same-type opening appears before the first one closes.
// This is a string scan, not a parser.
func hasNestedSameType(body string, opens [][]int, closeTag string) bool {
	var closes []int
	offset := 0
	for {
		idx := strings.Index(body[offset:], closeTag)
		if idx < 0 {
			break
		}
		closes = append(closes, offset+idx)
		offset += idx + len(closeTag)
	}

	depth := 0
	oi, ci := 0, 0
	for oi < len(opens) || ci < len(closes) {
		if ci >= len(closes) || (oi < len(opens) && opens[oi][0] < closes[ci]) {
			depth++
			if depth > 1 {
				return true
			}
			oi++
		} else {
			if depth > 0 {
				depth--
			}
			ci++
		}
	}
	return false
}
