// Package sanitize cleans untrusted text before it is stored on entities.
// Entity values hold raw text; renderers escape at output time, so Text
// decodes entities after stripping markup.
package sanitize

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// strictPolicy removes all HTML tags and attributes.
	strictPolicy = bluemonday.StrictPolicy()

	// ugcPolicy allows safe user-generated formatting: <p>, <b>, <i>,
	// <em>, <strong>, <a>, <ul>, <ol>, <li>, <br>.
	ugcPolicy = bluemonday.UGCPolicy()
)

// Text strips all HTML and returns plain text with entities decoded.
// Use for headlines, names, and keywords.
func Text(input string) string {
	return html.UnescapeString(strictPolicy.Sanitize(input))
}

// HTML sanitizes formatted content, keeping safe tags. Use for article
// bodies and long descriptions. Script and style elements are removed
// along with their contents.
func HTML(input string) string {
	return ugcPolicy.Sanitize(input)
}

// TextSlice sanitizes each string in a slice, removing all HTML.
func TextSlice(inputs []string) []string {
	if inputs == nil {
		return nil
	}
	sanitized := make([]string, len(inputs))
	for i, input := range inputs {
		sanitized[i] = Text(input)
	}
	return sanitized
}
