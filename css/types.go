// Package css parses user supplied stylesheets so that their rules can be
// merged into generated output.
package css

import (
	"strings"
)

// Declaration is a single property:value pair. Values are kept as raw text,
// we never interpret them, only re-emit.
type Declaration struct {
	Property string
	Value    string
}

// Rule is a selector group with its declarations in source order.
type Rule struct {
	Selectors    []string
	Declarations []Declaration
}

// String serializes the rule to the single-line form used in generated
// style blocks.
func (r Rule) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(r.Selectors, ", "))
	b.WriteString(" { ")
	for _, d := range r.Declarations {
		b.WriteString(d.Property)
		b.WriteByte(':')
		b.WriteString(d.Value)
		b.WriteString("; ")
	}
	b.WriteByte('}')
	return b.String()
}

// Stylesheet is a parsed CSS document. At-rules other than @media are
// dropped, rules inside @media blocks are flattened into Rules since our
// output has no media dimension.
type Stylesheet struct {
	Rules    []Rule
	Warnings []string
}

// RulesBySelector returns all rules whose selector group contains the given
// selector verbatim.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var out []Rule
	for _, r := range s.Rules {
		for _, sel := range r.Selectors {
			if sel == selector {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Lines returns every rule serialized one per line, ready for inclusion in
// a style block.
func (s *Stylesheet) Lines() []string {
	out := make([]string, 0, len(s.Rules))
	for _, r := range s.Rules {
		out = append(out, r.String())
	}
	return out
}
