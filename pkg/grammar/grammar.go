// Package grammar holds the declarative lexical rules used by the tokenizer.
//
// A grammar is an ordered list of rules, each pairing a token type with a
// pattern. The rules are compiled into a single alternation where every rule
// owns exactly one named capture group. Matching is first-alternative-wins
// at a given position, so more specific rules must be listed before more
// general ones (keywords before identifiers, "<!--" before "<").
package grammar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/spicery/snippet-tokenizer/pkg/token"
)

// ErrInvalidRule is returned when a rule cannot be compiled.
var ErrInvalidRule = errors.New("invalid grammar rule")

// DefaultMatchTimeout bounds a single pattern match. A match that runs
// longer is abandoned by the tokenizer.
const DefaultMatchTimeout = time.Second

// groupPrefix names the capture group owned by each rule: r0, r1, ...
const groupPrefix = "r"

// Rule is one alternative of a grammar.
//
// When Inside is set, text matched by the rule is tokenized again with the
// Inside rules instead of being emitted as a single token of Type. Text they
// leave unmatched becomes text.
type Rule struct {
	Type     token.Type `yaml:"type"`
	Pattern  string     `yaml:"pattern"`
	Examples []string   `yaml:"examples,omitempty"` // Inputs in which this rule must fire
	Inside   []Rule     `yaml:"inside,omitempty"`
}

// Definition is the uncompiled form of a grammar.
type Definition struct {
	Name       string   `yaml:"name"`
	Aliases    []string `yaml:"aliases,omitempty"`
	Extensions []string `yaml:"extensions,omitempty"`
	IgnoreCase bool     `yaml:"ignore_case,omitempty"`
	Rules      []Rule   `yaml:"rules"`
}

// Grammar is a compiled, immutable Definition.
type Grammar struct {
	def    Definition
	re     *regexp2.Regexp
	groups []string   // groups[i] is the capture group name of rule i
	inside []*Grammar // inside[i] tokenizes matches of rule i, or is nil
}

// CompileOption adjusts how a grammar is compiled.
type CompileOption func(*compileSettings)

type compileSettings struct {
	matchTimeout time.Duration
}

// WithMatchTimeout sets the per-match timeout. Zero or negative disables it.
func WithMatchTimeout(d time.Duration) CompileOption {
	return func(s *compileSettings) {
		s.matchTimeout = d
	}
}

// Compile validates def and builds its combined pattern.
func Compile(def Definition, opts ...CompileOption) (*Grammar, error) {
	settings := compileSettings{matchTimeout: DefaultMatchTimeout}
	for _, opt := range opts {
		opt(&settings)
	}

	if strings.TrimSpace(def.Name) == "" {
		return nil, fmt.Errorf("%w: grammar has no name", ErrInvalidRule)
	}
	if len(def.Rules) == 0 {
		return nil, fmt.Errorf("%w: grammar '%s' has no rules", ErrInvalidRule, def.Name)
	}

	reOpts := patternOptions(def.IgnoreCase)
	groups := make([]string, len(def.Rules))
	alternatives := make([]string, len(def.Rules))
	inside := make([]*Grammar, len(def.Rules))

	for i, rule := range def.Rules {
		if err := checkRule(rule, reOpts); err != nil {
			return nil, fmt.Errorf("grammar '%s' rule %d (%s): %w", def.Name, i, rule.Type, err)
		}
		groups[i] = groupPrefix + strconv.Itoa(i)
		alternatives[i] = "(?<" + groups[i] + ">" + rule.Pattern + ")"

		if len(rule.Inside) > 0 {
			inner, err := Compile(Definition{
				Name:       def.Name + "/" + string(rule.Type),
				IgnoreCase: def.IgnoreCase,
				Rules:      rule.Inside,
			}, opts...)
			if err != nil {
				return nil, fmt.Errorf("grammar '%s' rule %d (%s) inside: %w", def.Name, i, rule.Type, err)
			}
			inside[i] = inner
		}
	}

	re, err := regexp2.Compile(strings.Join(alternatives, "|"), reOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: grammar '%s': %v", ErrInvalidRule, def.Name, err)
	}
	if settings.matchTimeout > 0 {
		re.MatchTimeout = settings.matchTimeout
	}

	return &Grammar{
		def:    cloneDefinition(def),
		re:     re,
		groups: groups,
		inside: inside,
	}, nil
}

// MustCompile is like Compile but panics on error. Built-in grammars use it.
func MustCompile(def Definition, opts ...CompileOption) *Grammar {
	g, err := Compile(def, opts...)
	if err != nil {
		panic(fmt.Sprintf("Invalid grammar: %v", err))
	}
	return g
}

func patternOptions(ignoreCase bool) regexp2.RegexOptions {
	// Plain parentheses inside rule patterns must never capture, so the only
	// groups in the combined pattern are the per-rule ones.
	opts := regexp2.RegexOptions(regexp2.ExplicitCapture)
	if ignoreCase {
		opts |= regexp2.IgnoreCase
	}
	return opts
}

func checkRule(rule Rule, opts regexp2.RegexOptions) error {
	if !rule.Type.Valid() {
		return fmt.Errorf("%w: unknown token type '%s'", ErrInvalidRule, rule.Type)
	}
	if rule.Type == token.Text {
		return fmt.Errorf("%w: '%s' is reserved for unmatched text", ErrInvalidRule, token.Text)
	}
	if rule.Pattern == "" {
		return fmt.Errorf("%w: empty pattern", ErrInvalidRule)
	}
	re, err := regexp2.Compile(rule.Pattern, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	if n := len(re.GetGroupNumbers()); n > 1 {
		return fmt.Errorf("%w: pattern declares %d named group(s)", ErrInvalidRule, n-1)
	}
	return nil
}

// Name returns the primary language identifier.
func (g *Grammar) Name() string { return g.def.Name }

// Aliases returns the alternative identifiers.
func (g *Grammar) Aliases() []string { return append([]string(nil), g.def.Aliases...) }

// Extensions returns the file extensions associated with the grammar.
func (g *Grammar) Extensions() []string { return append([]string(nil), g.def.Extensions...) }

// IgnoreCase reports whether the grammar matches case-insensitively.
func (g *Grammar) IgnoreCase() bool { return g.def.IgnoreCase }

// Rules returns a copy of the grammar's rules in matching order.
func (g *Grammar) Rules() []Rule { return cloneDefinition(g.def).Rules }

// Definition returns a copy of the source definition.
func (g *Grammar) Definition() Definition { return cloneDefinition(g.def) }

// FindFirst returns the leftmost match in input, or nil when there is none.
func (g *Grammar) FindFirst(input []rune) (*regexp2.Match, error) {
	return g.re.FindRunesMatch(input)
}

// FindNext returns the match following m, or nil when there is none.
func (g *Grammar) FindNext(m *regexp2.Match) (*regexp2.Match, error) {
	return g.re.FindNextMatch(m)
}

// CaptureGroups returns the number of capture groups in the combined pattern.
func (g *Grammar) CaptureGroups() int {
	// Group 0 is the whole match.
	return len(g.re.GetGroupNumbers()) - 1
}

// Classify returns the type of the first rule whose group took part in m.
// A match in which no rule group participated is classified as text.
func (g *Grammar) Classify(m *regexp2.Match) token.Type {
	i := g.ruleIndex(m)
	if i < 0 || i >= len(g.def.Rules) {
		return token.Text
	}
	return g.def.Rules[i].Type
}

// Inside returns the grammar that splits m further, or nil when the rule
// that produced m is emitted as a single token.
func (g *Grammar) Inside(m *regexp2.Match) *Grammar {
	i := g.ruleIndex(m)
	if i < 0 || i >= len(g.inside) {
		return nil
	}
	return g.inside[i]
}

// ruleIndex returns the index of the rule that produced m, or -1.
func (g *Grammar) ruleIndex(m *regexp2.Match) int {
	for i, name := range g.groups {
		grp := m.GroupByName(name)
		if grp != nil && len(grp.Captures) > 0 {
			return i
		}
	}
	return -1
}

func cloneDefinition(def Definition) Definition {
	out := def
	out.Aliases = append([]string(nil), def.Aliases...)
	out.Extensions = append([]string(nil), def.Extensions...)
	out.Rules = cloneRules(def.Rules)
	return out
}

func cloneRules(rules []Rule) []Rule {
	if rules == nil {
		return nil
	}
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{
			Type:     r.Type,
			Pattern:  r.Pattern,
			Examples: append([]string(nil), r.Examples...),
			Inside:   cloneRules(r.Inside),
		}
	}
	return out
}
