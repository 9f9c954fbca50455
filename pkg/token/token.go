// Package token defines the classified spans produced by the tokenizer.
package token

import (
	"encoding/json"
	"fmt"
)

// Type is the highlighting category of a token.
type Type string

const (
	Text        Type = "text" // Unclassified spans
	Comment     Type = "comment"
	String      Type = "string"
	Keyword     Type = "keyword"
	Function    Type = "function" // Identifiers followed by a call parenthesis
	Number      Type = "number"
	Tag         Type = "tag"
	AttrName    Type = "attr-name"
	AttrValue   Type = "attr-value"
	Selector    Type = "selector"
	Property    Type = "property"
	Annotation  Type = "annotation"
	Italic      Type = "italic"
	Link        Type = "link"
	Punctuation Type = "punctuation"
)

// vocabulary lists every Type a grammar may emit, in a stable order.
var vocabulary = []Type{
	Text, Comment, String, Keyword, Function, Number, Tag, AttrName,
	AttrValue, Selector, Property, Annotation, Italic, Link, Punctuation,
}

// Types returns the closed set of token types.
func Types() []Type {
	out := make([]Type, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// Valid reports whether t belongs to the closed vocabulary.
func (t Type) Valid() bool {
	for _, v := range vocabulary {
		if v == t {
			return true
		}
	}
	return false
}

// ParseType converts a label into a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown token type '%s'", s)
	}
	return t, nil
}

// Position represents a line and column position in the source text.
// Columns count bytes, starting at 1.
type Position struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// Span represents the start and end positions of a token.
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// MarshalJSON implements custom JSON marshaling for Span.
func (s Span) MarshalJSON() ([]byte, error) {
	arr := [4]int{s.Start.Line, s.Start.Col, s.End.Line, s.End.Col}
	return json.Marshal(arr)
}

// UnmarshalJSON implements custom JSON unmarshaling for Span.
func (s *Span) UnmarshalJSON(data []byte) error {
	var arr [4]int
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	s.Start = Position{Line: arr[0], Col: arr[1]}
	s.End = Position{Line: arr[2], Col: arr[3]}
	return nil
}

// Token is a classified, contiguous span of source text.
type Token struct {
	Type    Type   `json:"type"`
	Content string `json:"content"`
	Span    Span   `json:"span"`
}

// New creates a token.
func New(tokenType Type, content string, span Span) Token {
	return Token{
		Type:    tokenType,
		Content: content,
		Span:    span,
	}
}

// Join concatenates the content of tokens in order. For any tokenizer
// output this reproduces the original input.
func Join(tokens []Token) string {
	n := 0
	for _, t := range tokens {
		n += len(t.Content)
	}
	buf := make([]byte, 0, n)
	for _, t := range tokens {
		buf = append(buf, t.Content...)
	}
	return string(buf)
}
