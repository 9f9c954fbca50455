package render

import (
	"bufio"
	"bytes"
	"encoding/json"
	"html"
	"regexp"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spicery/snippet-tokenizer/pkg/theme"
	"github.com/spicery/snippet-tokenizer/pkg/token"
	"github.com/spicery/snippet-tokenizer/pkg/tokenizer"
)

// ansiRegex matches ANSI escape sequences
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

var tagRegex = regexp.MustCompile(`<[^>]*>`)

// stripHTML recovers the snippet text from HTML output, dropping the newline
// written after the closing </pre>.
func stripHTML(s string) string {
	s = strings.TrimSuffix(s, "</code></pre>\n")
	return html.UnescapeString(tagRegex.ReplaceAllString(s, ""))
}

const sample = "/* multi\n   line */\nconst a = `x\ty`; // <b> & \"q\"\nfetch(url)\n"

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"json", "ansi", "html"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(name), f)
	}

	_, err := ParseFormat("pdf")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestJSONLines(t *testing.T) {
	tokens := tokenizer.Tokenize("const x = 1;", "javascript")

	var buf bytes.Buffer
	require.NoError(t, JSONLines(&buf, tokens))

	out := buf.String()

	var decoded []token.Token
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		var tok token.Token
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &tok))
		decoded = append(decoded, tok)
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, tokens, decoded)

	assert.Equal(t, len(tokens), strings.Count(out, "\n"))
	first := strings.SplitN(out, "\n", 2)[0]
	buf.Reset()
	require.NoError(t, JSONLines(&buf, tokens[:1]))
	assert.Equal(t, first+"\n", buf.String())
	assert.JSONEq(t, `{"type":"keyword","content":"const","span":[1,1,1,6]}`, first)
}

func TestANSIPreservesContent(t *testing.T) {
	tokens := tokenizer.Tokenize(sample, "javascript")

	for _, profile := range []termenv.Profile{termenv.TrueColor, termenv.ANSI256, termenv.ANSI, termenv.Ascii} {
		for _, th := range []theme.Theme{theme.Light(), theme.Dark(), theme.Plain()} {
			var buf bytes.Buffer
			require.NoError(t, NewANSI(&buf, th, profile).Render(tokens))
			assert.Equal(t, sample, stripANSI(buf.String()), "profile %v theme %s", profile, th.Name)
		}
	}
}

func TestANSIStylesKeywords(t *testing.T) {
	tokens := tokenizer.Tokenize("const x", "javascript")

	out := NewANSI(&bytes.Buffer{}, theme.Dark(), termenv.ANSI256).String(tokens)
	assert.True(t, ansiRegex.MatchString(out), "expected escape codes in %q", out)
	assert.True(t, strings.HasSuffix(out, " x"), "text is written unstyled: %q", out)

	plain := NewANSI(&bytes.Buffer{}, theme.Plain(), termenv.ANSI256).String(tokens)
	assert.Equal(t, "const x", plain)
}

func TestANSIStylesEachLineOfMultilineToken(t *testing.T) {
	tokens := tokenizer.Tokenize("/* a\nbb */", "javascript")
	require.Len(t, tokens, 1)

	out := NewANSI(&bytes.Buffer{}, theme.Light(), termenv.ANSI256).String(tokens)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.True(t, ansiRegex.MatchString(line))
	}
	assert.Equal(t, "/* a\nbb */", stripANSI(out))
}

func TestHTML(t *testing.T) {
	tokens := tokenizer.Tokenize(`<a href="x">1 < 2 & 3</a>`, "html")

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, tokens, theme.Light()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<pre class="snippet snippet-light" style="background-color:#ffffff;color:#24292e"><code>`), out)
	assert.True(t, strings.HasSuffix(out, "</code></pre>\n"), out)
	assert.Contains(t, out, `<span class="tok-tag" style="color:#22863a">&lt;a</span>`)
	assert.Contains(t, out, `<span class="tok-attr-value" style="color:#032f62">&#34;x&#34;</span>`)
	assert.Contains(t, out, "1 &lt; 2 &amp; 3")
	assert.Equal(t, `<a href="x">1 < 2 & 3</a>`, stripHTML(out))
}

func TestHTMLPreservesContent(t *testing.T) {
	tokens := tokenizer.Tokenize(sample, "javascript")

	for _, th := range []theme.Theme{theme.Light(), theme.Dark(), theme.Plain()} {
		var buf bytes.Buffer
		require.NoError(t, HTML(&buf, tokens, th))
		assert.Equal(t, sample, stripHTML(buf.String()), th.Name)
	}
}

func TestRenderDispatch(t *testing.T) {
	tokens := tokenizer.Tokenize("x = 1", "python")
	opts := Options{Theme: theme.Dark(), Profile: termenv.Ascii}

	for _, f := range []Format{FormatJSON, FormatANSI, FormatHTML} {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, f, tokens, opts), f)
		assert.NotEmpty(t, buf.String(), f)
	}

	assert.ErrorIs(t, Render(&bytes.Buffer{}, "svg", tokens, opts), ErrUnknownFormat)
}
