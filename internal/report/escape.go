package report

import "strings"

// Both exporters funnel every dynamic value through the helpers below so the
// two formats cannot drift apart in their quoting rules.

// quoteField wraps a value in double quotes for the delimited export,
// doubling any literal quotes. Applied to every field, including empty
// strings and values containing the delimiter.
func quoteField(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// escapeText escapes a value for embedding in the document export.
func escapeText(v string) string {
	return htmlEscaper.Replace(v)
}
