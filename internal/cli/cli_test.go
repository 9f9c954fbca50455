package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/spicery/snippet-tokenizer/pkg/grammar"
	"github.com/spicery/snippet-tokenizer/pkg/token"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// run executes the root command from an empty working directory.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	return out.String(), err
}

func decodeLines(t *testing.T, out string) []token.Token {
	t.Helper()
	var tokens []token.Token
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		if line == "" {
			continue
		}
		var tok token.Token
		require.NoError(t, json.Unmarshal([]byte(line), &tok), line)
		tokens = append(tokens, tok)
	}
	return tokens
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCmd()
	assert.Equal(t, "snippet-tokenizer", cmd.Use)

	for _, flag := range []string{"config", "lang", "theme", "grammars", "output", "verbose", "match-timeout", "jobs"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}

	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"tokenize", "highlight", "languages", "grammars"})
}

func TestTokenizeStdin(t *testing.T) {
	out, err := run(t, "const x = 1;", "tokenize", "--lang", "javascript")
	require.NoError(t, err)

	tokens := decodeLines(t, out)
	assert.Equal(t, "const x = 1;", token.Join(tokens))
	assert.Equal(t, token.Keyword, tokens[0].Type)
	assert.Equal(t, token.Span{Start: token.Position{Line: 1, Col: 1}, End: token.Position{Line: 1, Col: 6}}, tokens[0].Span)
}

func TestTokenizeUnknownLanguageFallsBack(t *testing.T) {
	out, err := run(t, "func main() {}", "tokenize", "--lang", "go")
	require.NoError(t, err)
	assert.Equal(t, "func main() {}", token.Join(decodeLines(t, out)))
}

func TestTokenizeFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "a.sql", "select 1"),
		writeFile(t, dir, "b.yaml", "port: 8080\n"),
		writeFile(t, dir, "c.py", "def f(): pass"),
		writeFile(t, dir, "d.unknown", "x = 1;"),
	}

	out, err := run(t, "", append([]string{"tokenize", "--jobs", "2"}, files...)...)
	require.NoError(t, err)

	tokens := decodeLines(t, out)
	assert.Equal(t, "select 1port: 8080\ndef f(): passx = 1;", token.Join(tokens))
	assert.Equal(t, token.Keyword, tokens[0].Type, "sql detected from extension")
}

func TestTokenizeWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "tokens.jsonl")

	out, err := run(t, "# Title", "tokenize", "--lang", "md", "-o", outPath)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	tokens := decodeLines(t, string(data))
	require.Len(t, tokens, 1)
	assert.Equal(t, token.Keyword, tokens[0].Type)
}

func TestTokenizeMissingFile(t *testing.T) {
	_, err := run(t, "", "tokenize", filepath.Join(t.TempDir(), "missing.js"))
	assert.ErrorContains(t, err, "error reading file")
}

func TestHighlightANSI(t *testing.T) {
	out, err := run(t, "const x", "highlight", "--lang", "javascript", "--color", "on", "--theme", "dark")
	require.NoError(t, err)
	assert.True(t, ansiRegex.MatchString(out))
	assert.Equal(t, "const x", ansiRegex.ReplaceAllString(out, ""))

	out, err = run(t, "const x", "highlight", "--lang", "javascript")
	require.NoError(t, err)
	assert.Equal(t, "const x", out, "no colour when not writing to a terminal")
}

func TestHighlightHTML(t *testing.T) {
	out, err := run(t, "<b>hi</b>", "highlight", "--lang", "html", "--format", "html", "--theme", "dark")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<pre class="snippet snippet-dark"`), out)
	assert.Contains(t, out, `<span class="tok-tag"`)
	assert.Contains(t, out, "&lt;b")
}

func TestHighlightRejectsBadOptions(t *testing.T) {
	_, err := run(t, "x", "highlight", "--theme", "neon")
	assert.ErrorContains(t, err, "unknown theme")

	_, err = run(t, "x", "highlight", "--format", "pdf")
	assert.ErrorContains(t, err, "unknown output format")

	_, err = run(t, "x", "highlight", "--color", "sometimes")
	assert.ErrorContains(t, err, "invalid --color value")
}

func TestColorProfile(t *testing.T) {
	var buf bytes.Buffer

	p, err := colorProfile(&buf, "on")
	require.NoError(t, err)
	assert.Equal(t, termenv.TrueColor, p)

	p, err = colorProfile(&buf, "auto")
	require.NoError(t, err)
	assert.Equal(t, termenv.Ascii, p)

	p, err = colorProfile(&buf, "off")
	require.NoError(t, err)
	assert.Equal(t, termenv.Ascii, p)
}

func TestLanguages(t *testing.T) {
	out, err := run(t, "", "languages")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(grammar.Builtin().Names())+1)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, out, grammar.DefaultFallback+"*")
	assert.Contains(t, out, ".sql")
	assert.Contains(t, out, "yml")
}

func TestLanguagesIncludesGrammarsFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "g.yaml", `
grammars:
  - name: toml
    extensions: [.toml]
    rules:
      - type: comment
        pattern: '#.*'
`)
	out, err := run(t, "", "languages", "--grammars", path)
	require.NoError(t, err)
	assert.Contains(t, out, "toml")
	assert.Contains(t, out, ".toml")
}

func TestGrammarsDump(t *testing.T) {
	out, err := run(t, "", "grammars", "dump")
	require.NoError(t, err)

	var f grammar.GrammarFile
	require.NoError(t, yaml.Unmarshal([]byte(out), &f))
	assert.Equal(t, grammar.DefaultFallback, f.Fallback)
	assert.Len(t, f.Grammars, len(grammar.Builtin().Names()))
}

func TestGrammarsLint(t *testing.T) {
	out, err := run(t, "", "grammars", "lint")
	require.NoError(t, err)
	assert.Contains(t, out, "grammars OK")

	path := writeFile(t, t.TempDir(), "shadowed.yaml", `
grammars:
  - name: shadowed
    rules:
      - type: property
        pattern: '\w+'
      - type: keyword
        pattern: 'if'
        examples: ['if']
`)
	out, err = run(t, "", "grammars", "lint", "--grammars", path)
	assert.ErrorContains(t, err, "1 lint issue(s)")
	assert.Contains(t, out, "shadowed: rule 1 (keyword)")
}

func TestConfigFileIsApplied(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "cfg.yaml", "lang: sql\n")

	out, err := run(t, "select 1", "tokenize", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, token.Keyword, decodeLines(t, out)[0].Type)
}
