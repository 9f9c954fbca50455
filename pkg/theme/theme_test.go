package theme

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spicery/snippet-tokenizer/pkg/token"
)

var hexColour = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestBuiltinThemesCoverVocabulary(t *testing.T) {
	for _, th := range []Theme{Light(), Dark()} {
		t.Run(th.Name, func(t *testing.T) {
			for _, typ := range token.Types() {
				_, ok := th.Styles[typ]
				assert.True(t, ok, "no style for %s", typ)
			}
			for typ, s := range th.Styles {
				if s.Foreground != "" {
					assert.Regexp(t, hexColour, s.Foreground, typ)
				}
			}
			assert.Regexp(t, hexColour, th.Background)
			assert.Regexp(t, hexColour, th.Foreground)
			assert.True(t, th.Style(token.Text).IsZero(), "text is unstyled")
		})
	}
}

func TestStyleFallsBackToDefault(t *testing.T) {
	th := Theme{
		Styles:  map[token.Type]Style{token.Keyword: {Bold: true}},
		Default: Style{Foreground: "#000000"},
	}
	assert.Equal(t, Style{Bold: true}, th.Style(token.Keyword))
	assert.Equal(t, Style{Foreground: "#000000"}, th.Style(token.Comment))

	assert.True(t, Plain().Style(token.Keyword).IsZero())
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		th, err := ByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, th.Name)
	}

	_, err := ByName("solarized")
	assert.ErrorIs(t, err, ErrUnknownTheme)
	assert.ErrorContains(t, err, "solarized")
}

func TestThemesAreIndependentCopies(t *testing.T) {
	a := Light()
	a.Styles[token.Keyword] = Style{}
	assert.False(t, Light().Style(token.Keyword).IsZero())
}
