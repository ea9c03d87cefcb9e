package markup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tasaheel/leads-api/pkg/markup"
)

func TestEscape(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "Ali", expected: "Ali"},
		{name: "arabic", input: "نموذج الاستقدام", expected: "نموذج الاستقدام"},
		{name: "ampersand", input: "a & b", expected: "a &amp; b"},
		{name: "angle_brackets", input: "<b>bold</b>", expected: "&lt;b&gt;bold&lt;/b&gt;"},
		{name: "all_three", input: "<a & b>", expected: "&lt;a &amp; b&gt;"},
		{name: "quotes_untouched", input: `"quoted" and 'single'`, expected: `"quoted" and 'single'`},
		{name: "empty", input: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, markup.Escape(tc.input))
		})
	}
}

// Escaping is deliberately not idempotent: the ampersand of an existing
// entity gets escaped again.
func TestEscape_DoubleEscapes(t *testing.T) {
	once := markup.Escape("<x>")
	assert.Equal(t, "&lt;x&gt;", once)

	twice := markup.Escape(once)
	assert.Equal(t, "&amp;lt;x&amp;gt;", twice)
}

func TestField(t *testing.T) {
	assert.Equal(t, "N/A", markup.Field("", false))
	assert.Equal(t, "N/A", markup.Field("ignored", false))
	assert.Equal(t, "Ali &amp; sons", markup.Field("Ali & sons", true))
}
