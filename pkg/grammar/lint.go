package grammar

import (
	"fmt"

	"github.com/spicery/snippet-tokenizer/pkg/token"
)

// Issue is a problem found by Lint.
type Issue struct {
	Grammar string
	Rule    int
	Type    token.Type
	Example string
	Reason  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: rule %d (%s): example %q: %s", i.Grammar, i.Rule, i.Type, i.Example, i.Reason)
}

// Lint checks that every rule fires somewhere in each of its examples.
// A rule that never fires is shadowed by an earlier alternative (or its
// pattern does not match its own example), which breaks the
// first-alternative-wins ordering the grammar relies on. Inside rules are
// checked against the grammar they belong to.
func Lint(g *Grammar) []Issue {
	var issues []Issue
	for i, rule := range g.def.Rules {
		if g.inside[i] != nil {
			issues = append(issues, Lint(g.inside[i])...)
		}
		for _, example := range rule.Examples {
			if reason := g.checkExample(i, example); reason != "" {
				issues = append(issues, Issue{
					Grammar: g.Name(),
					Rule:    i,
					Type:    rule.Type,
					Example: example,
					Reason:  reason,
				})
			}
		}
	}
	return issues
}

// LintRegistry runs Lint over every grammar in r.
func LintRegistry(r *Registry) []Issue {
	var issues []Issue
	for _, g := range r.Grammars() {
		issues = append(issues, Lint(g)...)
	}
	return issues
}

func (g *Grammar) checkExample(rule int, example string) string {
	m, err := g.FindFirst([]rune(example))
	var firedBy []string
	for m != nil && err == nil {
		idx := g.ruleIndex(m)
		if idx == rule && m.Length > 0 {
			return ""
		}
		if idx >= 0 && idx < rule && m.Length > 0 {
			firedBy = append(firedBy, fmt.Sprintf("rule %d (%s) matched %q", idx, g.def.Rules[idx].Type, m.String()))
		}
		m, err = g.FindNext(m)
	}
	if err != nil {
		return fmt.Sprintf("match failed: %v", err)
	}
	if len(firedBy) > 0 {
		return fmt.Sprintf("shadowed: %s", firedBy[0])
	}
	return "rule never matched"
}
