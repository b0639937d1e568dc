package html

import (
	"fmt"
	"sort"
)

// Registry is the request scoped set of generated CSS rules. Every
// conversion call owns a fresh instance so that concurrent conversions
// never share state. Registration is idempotent: adding the same
// selector/body pair twice keeps a single rule.
type Registry struct {
	rules map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]struct{})}
}

// Add registers a rule for the given class selector and declaration body.
func (r *Registry) Add(selector, body string) {
	r.rules[fmt.Sprintf("%s { %s; }", selector, body)] = struct{}{}
}

// AddRaw registers an already serialized rule line.
func (r *Registry) AddRaw(rule string) {
	r.rules[rule] = struct{}{}
}

// Len returns the number of distinct registered rules.
func (r *Registry) Len() int {
	return len(r.rules)
}

// Has reports whether an exact rule line has been registered.
func (r *Registry) Has(rule string) bool {
	_, ok := r.rules[rule]
	return ok
}

// Rules returns all registered rules. Rule order carries no meaning, we
// sort purely to keep output reproducible.
func (r *Registry) Rules() []string {
	out := make([]string, 0, len(r.rules))
	for rule := range r.rules {
		out = append(out, rule)
	}
	sort.Strings(out)
	return out
}
