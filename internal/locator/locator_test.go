package locator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Locator
	}{
		{"unprefixed is id", "login", ID("login")},
		{"empty is id", "", ID("")},
		{"id", "id=login", ID("login")},
		{"name", "name=username", Name("username")},
		{"css keeps later equals", "css=input[name=q]", CSS("input[name=q]")},
		{"xpath", "xpath=//table[@id='grid']/tbody/tr", XPath("//table[@id='grid']/tbody/tr")},
		{"link text", "text=Log out", LinkText("Log out")},
		{"empty identifier", "xpath=", XPath("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_UnrecognizedPrefix(t *testing.T) {
	for _, raw := range []string{"ID=login", "link=Home", "//a[@href='x']"} {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnrecognizedPrefix))

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, raw, perr.Input)
		})
	}
}

func TestLocator_StringRoundTrip(t *testing.T) {
	for _, loc := range []Locator{ID("a"), Name("b"), CSS("div > p"), XPath("//tr[1]"), LinkText("Next")} {
		parsed, err := Parse(loc.String())
		require.NoError(t, err)
		assert.Equal(t, loc, parsed)
	}
}

func TestLocator_Nth(t *testing.T) {
	rows := XPath("//table").Append("/tbody/tr")
	assert.Equal(t, "//table/tbody/tr[3]/td", rows.Nth(3).Append("/td").Identifier)
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("foo=bar") })
	assert.NotPanics(t, func() { MustParse("css=.ok") })
}

func TestParseOption(t *testing.T) {
	tests := []struct {
		raw  string
		want Option
	}{
		{"CZ", ByValue("CZ")},
		{"value=CZ", ByValue("CZ")},
		{"label=Czech Republic", ByLabel("Czech Republic")},
		{"index=0", ByIndex(0)},
		{"index=12", ByIndex(12)},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseOption(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOption_Errors(t *testing.T) {
	for _, raw := range []string{"index=-1", "index=abc", "index=", "index=+3"} {
		_, err := ParseOption(raw)
		assert.ErrorIs(t, err, ErrInvalidIndex, raw)
	}

	_, err := ParseOption("text=Prague")
	assert.ErrorIs(t, err, ErrUnrecognizedPrefix)
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("Orders")
	require.NoError(t, err)
	assert.Equal(t, ByTitle("Orders"), w)

	w, err = ParseWindow("name=popup")
	require.NoError(t, err)
	assert.Equal(t, ByName("popup"), w)
	assert.True(t, w.Matches("whatever", "popup-1"))
	assert.False(t, w.Matches("popup", "main"))

	_, err = ParseWindow("handle=42")
	assert.ErrorIs(t, err, ErrUnrecognizedPrefix)
}
