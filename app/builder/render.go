package builder

import (
	"fmt"
	"strings"
)

// Placeholder is shown when no cmdlet has been resolved yet.
const Placeholder = "Select a verb and noun to start building..."

// ValuePlaceholder stands in for a selected parameter with no value under
// EmptyPlaceholder.
const ValuePlaceholder = "<value>"

// EmptyValuePolicy decides how a selected value parameter with a blank value
// is rendered.
type EmptyValuePolicy int

const (
	// EmptyOmit drops the parameter entirely.
	EmptyOmit EmptyValuePolicy = iota
	// EmptyPlaceholder renders "-Name <value>".
	EmptyPlaceholder
)

func (p EmptyValuePolicy) String() string {
	if p == EmptyPlaceholder {
		return "placeholder"
	}
	return "omit"
}

// ParseEmptyValuePolicy parses the config/flag spelling of a policy.
func ParseEmptyValuePolicy(s string) (EmptyValuePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "omit":
		return EmptyOmit, nil
	case "placeholder":
		return EmptyPlaceholder, nil
	default:
		return EmptyOmit, fmt.Errorf("unknown empty value policy %q (want omit or placeholder)", s)
	}
}

// Render builds the command line for a selection. The boolean reports whether
// a command exists; without a resolved cmdlet it returns Placeholder and false.
func Render(s Selection, policy EmptyValuePolicy) (string, bool) {
	cmdlet := s.Cmdlet()
	if cmdlet == "" {
		return Placeholder, false
	}
	tokens := []string{cmdlet}
	for _, p := range s.params {
		if !p.Selected {
			continue
		}
		if p.IsSwitch() {
			tokens = append(tokens, "-"+p.Name)
			continue
		}
		value := strings.TrimSpace(p.Value)
		if value == "" {
			if policy == EmptyPlaceholder {
				tokens = append(tokens, "-"+p.Name+" "+ValuePlaceholder)
			}
			continue
		}
		tokens = append(tokens, "-"+p.Name+" "+QuoteValue(value))
	}
	return strings.Join(tokens, " "), true
}

// QuoteValue wraps a value containing a space in single quotes unless it is
// already wrapped in a matching pair of single or double quotes.
func QuoteValue(value string) string {
	if !strings.Contains(value, " ") || isQuoted(value) {
		return value
	}
	return "'" + value + "'"
}

func isQuoted(value string) bool {
	if len(value) < 2 {
		return false
	}
	first, last := value[0], value[len(value)-1]
	return first == last && (first == '\'' || first == '"')
}
