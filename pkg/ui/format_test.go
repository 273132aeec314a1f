package ui

import (
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"auto", FormatAuto, false},
		{"", FormatAuto, false},
		{"term", FormatTerminal, false},
		{"terminal", FormatTerminal, false},
		{"text", FormatText, false},
		{"plain", FormatText, false},
		{"json", FormatJSON, false},
		{"TERM", FormatTerminal, false},
		{"bogus", FormatAuto, true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q): unexpected error %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestFormatString(t *testing.T) {
	if FormatTerminal.String() != "term" {
		t.Errorf("unexpected string: %s", FormatTerminal.String())
	}
	if Format(99).String() != "unknown" {
		t.Errorf("unexpected string for invalid format")
	}
}

func TestGetStyleUnknownName(t *testing.T) {
	// Unknown names return a usable zero style rather than panicking.
	style := GetStyle("NoSuchStyle")
	if got := style.Render("x"); got != "x" {
		t.Errorf("default style should be a no-op, got %q", got)
	}
}
