// Package tsformat canonically formats generated TypeScript source.
// Formatting is cosmetic text cleanup; it never reorders or rewrites
// code. A structural problem in the source, such as an unbalanced brace
// or an unterminated string, fails formatting so assembler bugs surface
// before the module reaches disk.
package tsformat

import (
	"fmt"
	"strings"

	"github.com/erraggy/tsreqgen/generrors"
)

// Formatter applies the canonical cleanup: trailing whitespace is
// trimmed, runs of blank lines collapse to one, and the output ends
// with exactly one newline.
type Formatter struct{}

// New creates a Formatter.
func New() *Formatter {
	return &Formatter{}
}

// Format returns the cleaned source, or a FormatError when the source
// is empty or structurally broken.
func (f *Formatter) Format(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", &generrors.FormatError{Message: "source is empty"}
	}
	if err := checkBalance(src); err != nil {
		return "", err
	}

	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blanks++
			if blanks > 1 {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n") + "\n", nil
}

type scanState int

const (
	stateCode scanState = iota
	stateLineComment
	stateBlockComment
	stateSingle
	stateDouble
	stateTemplate
)

// checkBalance scans for unbalanced braces, brackets, and parentheses
// outside strings and comments. Template literal contents are opaque,
// so interpolation braces are not counted and templates must not nest.
func checkBalance(src string) error {
	var braces, parens, brackets int
	state := stateCode
	line := 1

	for i := 0; i < len(src); i++ {
		ch := src[i]
		if ch == '\n' {
			switch state {
			case stateSingle, stateDouble:
				return formatErr(line, "unterminated string literal")
			case stateLineComment:
				state = stateCode
			}
			line++
			continue
		}

		switch state {
		case stateCode:
			switch ch {
			case '/':
				if i+1 < len(src) && src[i+1] == '/' {
					state = stateLineComment
					i++
				} else if i+1 < len(src) && src[i+1] == '*' {
					state = stateBlockComment
					i++
				}
			case '\'':
				state = stateSingle
			case '"':
				state = stateDouble
			case '`':
				state = stateTemplate
			case '{':
				braces++
			case '}':
				braces--
				if braces < 0 {
					return formatErr(line, "unmatched '}'")
				}
			case '(':
				parens++
			case ')':
				parens--
				if parens < 0 {
					return formatErr(line, "unmatched ')'")
				}
			case '[':
				brackets++
			case ']':
				brackets--
				if brackets < 0 {
					return formatErr(line, "unmatched ']'")
				}
			}
		case stateBlockComment:
			if ch == '*' && i+1 < len(src) && src[i+1] == '/' {
				state = stateCode
				i++
			}
		case stateSingle:
			if ch == '\\' {
				i++
			} else if ch == '\'' {
				state = stateCode
			}
		case stateDouble:
			if ch == '\\' {
				i++
			} else if ch == '"' {
				state = stateCode
			}
		case stateTemplate:
			if ch == '\\' {
				i++
			} else if ch == '`' {
				state = stateCode
			}
		}
	}

	switch state {
	case stateSingle, stateDouble:
		return formatErr(line, "unterminated string literal")
	case stateTemplate:
		return formatErr(line, "unterminated template literal")
	case stateBlockComment:
		return formatErr(line, "unterminated block comment")
	}
	switch {
	case braces != 0:
		return formatErr(line, fmt.Sprintf("unbalanced braces (%+d)", braces))
	case parens != 0:
		return formatErr(line, fmt.Sprintf("unbalanced parentheses (%+d)", parens))
	case brackets != 0:
		return formatErr(line, fmt.Sprintf("unbalanced brackets (%+d)", brackets))
	}
	return nil
}

func formatErr(line int, message string) error {
	return &generrors.FormatError{Line: line, Message: message}
}
