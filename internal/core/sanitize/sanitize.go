// Package sanitize holds the pure text-cleaning functions applied to every
// free-text field twice: once on the inbound request before prompt
// construction, and once on the backend's completion before it reaches the
// response. The double application bounds both caller-side injection and
// markup-laced completions.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	scriptRe     = regexp.MustCompile(`(?is)<\s*script[^>]*>.*?<\s*/\s*script\s*>`)
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)

	eventAttrDoubleRe = regexp.MustCompile(`(?i)\son\w+\s*=\s*"[^"]*"`)
	eventAttrSingleRe = regexp.MustCompile(`(?i)\son\w+\s*=\s*'[^']*'`)
	eventAttrBareRe   = regexp.MustCompile(`(?i)\son\w+\s*=\s*[^\s>]+`)
	jsURLDoubleRe     = regexp.MustCompile(`(?i)\s(href|src)\s*=\s*"javascript:[^"]*"`)
	jsURLSingleRe     = regexp.MustCompile(`(?i)\s(href|src)\s*=\s*'javascript:[^']*'`)
)

// Clean strips script blocks and all markup, collapses runs of whitespace to
// a single space, and trims the result. It is total (never fails) and
// idempotent: Clean(Clean(s)) == Clean(s).
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = scriptRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CleanHTML removes dangerous content from HTML while keeping safe structure:
// script blocks, on* event handlers and javascript: URLs are dropped, regular
// tags survive. Used for article summarization where markup carries meaning.
func CleanHTML(s string) string {
	if s == "" {
		return ""
	}
	s = scriptRe.ReplaceAllString(s, "")
	s = eventAttrDoubleRe.ReplaceAllString(s, "")
	s = eventAttrSingleRe.ReplaceAllString(s, "")
	s = eventAttrBareRe.ReplaceAllString(s, "")
	s = jsURLDoubleRe.ReplaceAllString(s, "")
	s = jsURLSingleRe.ReplaceAllString(s, "")
	return s
}

// HasMarkup reports whether the text looks like it contains HTML.
func HasMarkup(s string) bool {
	return strings.Contains(s, "<") && strings.Contains(s, ">")
}
