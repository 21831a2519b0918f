package ident

import "strings"

// Slug derives a bare identifier from free text, e.g. a section title:
// "Review the plan!" becomes "review_the_plan". It returns "" when text holds
// no letters or digits.
func Slug(text string) string {
	var builder strings.Builder
	pendingSeparator := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case isLetter(c) || isDigit(c):
			if pendingSeparator && builder.Len() > 0 {
				builder.WriteByte('_')
			}
			pendingSeparator = false
			if c >= 'A' && c <= 'Z' {
				c += 'a' - 'A'
			}
			builder.WriteByte(c)
		default:
			pendingSeparator = true
		}
	}
	slug := builder.String()
	if slug != "" && isDigit(slug[0]) {
		slug = "_" + slug
	}
	return slug
}
