// core/oligo/validate.go
package oligo

import (
	"fmt"
	"strings"
	"unicode"
)

// InvalidBasesError lists the distinct characters that are not A/C/G/T,
// in the order they first appear.
type InvalidBasesError struct {
	Chars []rune
}

func (e *InvalidBasesError) Error() string {
	quoted := make([]string, len(e.Chars))
	for i, r := range e.Chars {
		quoted[i] = string(r)
	}
	plural := ""
	if len(e.Chars) > 1 {
		plural = "s"
	}
	return fmt.Sprintf("Invalid character%s: '%s', only 'A', 'T', 'G', 'C'",
		plural, strings.Join(quoted, "', '"))
}

// Normalize removes spaces/quotes and uppercases bases.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		out = append(out, unicode.ToUpper(r))
	}
	return string(out)
}

// Validate returns the normalized sequence, or an *InvalidBasesError if any
// character is outside A/C/G/T.
func Validate(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return s, fmt.Errorf("empty sequence")
	}
	var bad []rune
	seen := make(map[rune]bool)
	for _, r := range s {
		if isACGT(r) || seen[r] {
			continue
		}
		seen[r] = true
		bad = append(bad, r)
	}
	if len(bad) > 0 {
		return "", &InvalidBasesError{Chars: bad}
	}
	return s, nil
}

func isACGT(r rune) bool { return r == 'A' || r == 'C' || r == 'G' || r == 'T' }
