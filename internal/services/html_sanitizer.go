package services

import "regexp"

// presentationalAttrs matches style, id, class, dir and role assignments
// together with the whitespace before them. Values are limited to the
// characters NetSuite's rich text editor emits for these attributes.
var presentationalAttrs = regexp.MustCompile(
	`\s+(?:style|id|class|dir|role)=(?:"[ !#-9:;A-Za-z]*"|'[ -&(-9:;A-Za-z]*')`,
)

// StripPresentationalAttributes removes presentational attributes from
// trusted description HTML. It does not sanitize untrusted markup.
func StripPresentationalAttributes(html string) string {
	return presentationalAttrs.ReplaceAllString(html, "")
}
