// Package tokenizer converts source snippets into classified tokens using the
// grammars of a grammar.Registry.
//
// Tokenize never fails: unknown languages use the registry's fallback
// grammar, unmatched text becomes text tokens, and the concatenated content
// of the result always equals the input.
package tokenizer

import (
	"log/slog"
	"sync"

	"github.com/spicery/snippet-tokenizer/pkg/grammar"
	"github.com/spicery/snippet-tokenizer/pkg/token"
)

// Tokenizer tokenizes snippets against a fixed registry. It holds no
// per-call state and may be shared between goroutines.
type Tokenizer struct {
	registry *grammar.Registry
	logger   *slog.Logger
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithLogger sets the logger used for match failures.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tokenizer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates a tokenizer over registry. A nil registry means the built-in one.
func New(registry *grammar.Registry, opts ...Option) *Tokenizer {
	if registry == nil {
		registry = grammar.Builtin()
	}
	t := &Tokenizer{
		registry: registry,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Registry returns the registry the tokenizer resolves languages against.
func (t *Tokenizer) Registry() *grammar.Registry {
	return t.registry
}

// Tokenize splits code into tokens using the grammar for languageID.
func (t *Tokenizer) Tokenize(code, languageID string) []token.Token {
	g := t.registry.Lookup(languageID)
	s := newScanner(code)
	if err := s.scan(g, s.runes, 0); err != nil {
		t.logger.Warn("pattern match abandoned, emitting remainder as text",
			"language", languageID,
			"grammar", g.Name(),
			"line", s.line,
			"col", s.column,
			"error", err)
	}
	s.emitText(len(s.input))
	return s.tokens
}

var defaultTokenizer = sync.OnceValue(func() *Tokenizer {
	return New(grammar.Builtin())
})

// Tokenize splits code into tokens using the built-in grammars.
func Tokenize(code, languageID string) []token.Token {
	return defaultTokenizer().Tokenize(code, languageID)
}

// scanner holds the state of a single Tokenize call.
type scanner struct {
	input    string
	offsets  []int // offsets[i] is the byte offset of rune i; the last entry is len(input)
	runes    []rune
	position int // byte offset of the first unconsumed byte
	line     int
	column   int
	tokens   []token.Token
}

func newScanner(input string) *scanner {
	// Ranging over a string and converting it to []rune agree on rune
	// boundaries, including one replacement rune per invalid byte, so match
	// indexes can always be mapped back to exact byte offsets.
	offsets := make([]int, 0, len(input)+1)
	for i := range input {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(input))

	return &scanner{
		input:   input,
		offsets: offsets,
		runes:   []rune(input),
		line:    1,
		column:  1,
		tokens:  make([]token.Token, 0),
	}
}

// scan emits tokens for every non-empty match of g in runes and the text
// between them. base is the index of runes[0] in the whole input. Matches of
// rules with inside rules are scanned again with those. It stops at the
// first engine error, leaving the rest unconsumed.
func (s *scanner) scan(g *grammar.Grammar, runes []rune, base int) error {
	if len(runes) == 0 {
		return nil
	}

	m, err := g.FindFirst(runes)
	for m != nil && err == nil {
		if m.Length > 0 {
			start := s.offsets[base+m.Index]
			end := s.offsets[base+m.Index+m.Length]
			s.emitText(start)
			if inner := g.Inside(m); inner != nil {
				if err := s.scan(inner, runes[m.Index:m.Index+m.Length], base+m.Index); err != nil {
					return err
				}
				s.emitText(end)
			} else {
				s.emit(g.Classify(m), end)
			}
		}
		m, err = g.FindNext(m)
	}
	return err
}

// emitText emits the text between the current position and end, if any,
// extending the previous token when it is text too.
func (s *scanner) emitText(end int) {
	if end <= s.position {
		return
	}
	n := len(s.tokens)
	if n == 0 || s.tokens[n-1].Type != token.Text {
		s.emit(token.Text, end)
		return
	}
	last := &s.tokens[n-1]
	last.Content += s.input[s.position:end]
	s.advance(end - s.position)
	last.Span.End = token.Position{Line: s.line, Col: s.column}
}

// emit emits a token of the given type covering the input up to end.
func (s *scanner) emit(tokenType token.Type, end int) {
	start := token.Position{Line: s.line, Col: s.column}
	content := s.input[s.position:end]
	s.advance(end - s.position)
	span := token.Span{Start: start, End: token.Position{Line: s.line, Col: s.column}}
	s.tokens = append(s.tokens, token.New(tokenType, content, span))
}

func (s *scanner) advance(n int) {
	for i := 0; i < n && s.position < len(s.input); i++ {
		if s.input[s.position] == '\n' {
			s.line++
			s.column = 1
		} else {
			s.column++
		}
		s.position++
	}
}
