// Package markup escapes user-supplied text for Telegram's HTML parse mode.
package markup

import "strings"

// Missing is rendered in place of absent form values.
const Missing = "N/A"

var escaper = strings.NewReplacer(
	// Ampersand first, so entities produced below are not re-escaped.
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// Escape replaces &, < and > with their HTML entities. Nothing else is
// touched. Not idempotent: escaping twice double-escapes the ampersands,
// so callers must escape each value exactly once.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Field renders a form value for message interpolation. Absent values
// become the fixed Missing placeholder.
func Field(value string, present bool) string {
	if !present {
		return Missing
	}
	return Escape(value)
}
