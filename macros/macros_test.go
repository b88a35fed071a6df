package macros

import (
	"testing"

	"github.com/adcontextprotocol/creative-agent/formats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func macroFormat() *formats.Format {
	return &formats.Format{
		ID:              "display_300x250_image",
		Type:            formats.FormatTypeDisplay,
		SupportedMacros: []string{"CLICK_URL", "DEVICE_TYPE", "CACHEBUSTER"},
	}
}

func TestResolveUsesSuppliedValues(t *testing.T) {
	p := Resolve(macroFormat(), map[string]string{
		"CLICK_URL":   "https://example.com/click",
		"DEVICE_TYPE": "mobile",
	})

	v, ok := p.GetMacro("CLICK_URL")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/click", v)

	v, ok = p.GetMacro("DEVICE_TYPE")
	require.True(t, ok)
	assert.Equal(t, "mobile", v)
}

func TestResolveDefaultsDeclaredMacros(t *testing.T) {
	p := Resolve(macroFormat(), nil)

	v, ok := p.GetMacro("DEVICE_TYPE")
	require.True(t, ok, "declared macros always resolve")
	assert.Equal(t, "", v)

	cb, ok := p.GetMacro("CACHEBUSTER")
	require.True(t, ok)
	assert.NotEmpty(t, cb, "CACHEBUSTER defaults to a fresh token, not empty")
}

func TestResolveDropsUndeclaredMacros(t *testing.T) {
	p := Resolve(macroFormat(), map[string]string{
		"SESSION_TOKEN": "secret-value",
	})

	_, ok := p.GetMacro("SESSION_TOKEN")
	assert.False(t, ok, "undeclared caller macros must not leak")

	out := p.Replace("pixel?s={SESSION_TOKEN}")
	assert.Equal(t, "pixel?s={SESSION_TOKEN}", out, "undeclared tokens stay literal")
}

func TestCachebusterFreshPerResolution(t *testing.T) {
	first, _ := Resolve(macroFormat(), nil).GetMacro("CACHEBUSTER")
	second, _ := Resolve(macroFormat(), nil).GetMacro("CACHEBUSTER")
	assert.NotEqual(t, first, second)
}

func TestResolveDeterministicApartFromCachebuster(t *testing.T) {
	first := Resolve(macroFormat(), nil).Values()
	second := Resolve(macroFormat(), nil).Values()
	delete(first, "CACHEBUSTER")
	delete(second, "CACHEBUSTER")
	assert.Equal(t, first, second)
}

func TestReplace(t *testing.T) {
	p := Resolve(macroFormat(), map[string]string{
		"CLICK_URL":   "https://example.com/c",
		"DEVICE_TYPE": "tablet",
		"CACHEBUSTER": "12345",
	})

	testCases := []struct {
		description string
		in          string
		expected    string
	}{
		{
			description: "all occurrences replaced",
			in:          "{CLICK_URL}?d={DEVICE_TYPE}&d2={DEVICE_TYPE}",
			expected:    "https://example.com/c?d=tablet&d2=tablet",
		},
		{
			description: "unknown token untouched",
			in:          "{NOT_A_MACRO} and {DEVICE_TYPE}",
			expected:    "{NOT_A_MACRO} and tablet",
		},
		{
			description: "no tokens is a no-op",
			in:          "plain text",
			expected:    "plain text",
		},
		{
			description: "cachebuster substituted",
			in:          "cb={CACHEBUSTER}",
			expected:    "cb=12345",
		},
	}

	for _, test := range testCases {
		assert.Equal(t, test.expected, p.Replace(test.in), test.description)
	}
}
