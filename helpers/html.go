// Package helpers provides utility functions for formatting names and HTML fragments.
package helpers

import (
	"html"
	"net/url"
	"regexp"
	"strings"

	nethtml "golang.org/x/net/html"
)

var multiSpaceRegex = regexp.MustCompile(`[ \t]+`)

// StripHTML removes tags from an HTML fragment and decodes entities.
// Line breaks in text nodes are kept; runs of spaces collapse to one.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}

	var sb strings.Builder
	z := nethtml.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case nethtml.ErrorToken:
			// io.EOF or a malformed tail; either way the text so far is all we get
			return strings.TrimSpace(multiSpaceRegex.ReplaceAllString(sb.String(), " "))
		case nethtml.TextToken:
			sb.Write(z.Text())
		case nethtml.StartTagToken, nethtml.SelfClosingTagToken:
			name, _ := z.TagName()
			if string(name) == "br" {
				sb.WriteByte('\n')
			}
		}
	}
}

// EncodeHTMLEntities encodes special characters as HTML entities.
func EncodeHTMLEntities(s string) string {
	return html.EscapeString(s)
}

// Emphasize escapes s and wraps it in <em>.
func Emphasize(s string) string {
	return "<em>" + html.EscapeString(s) + "</em>"
}

// SafeURL reports whether href is an absolute http, https or mailto URL.
func SafeURL(href string) bool {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto":
		return true
	default:
		return false
	}
}

// ExternalLink wraps an already-escaped inner fragment in an anchor that opens
// in a new tab. An href that fails SafeURL yields inner unlinked.
func ExternalLink(href, class, inner string) string {
	if !SafeURL(href) {
		return inner
	}
	href = strings.TrimSpace(href)

	var sb strings.Builder
	sb.WriteString(`<a `)
	if class != "" {
		sb.WriteString(`class="` + html.EscapeString(class) + `" `)
	}
	sb.WriteString(`href="` + html.EscapeString(href) + `" target="_blank" rel="noopener noreferrer">`)
	sb.WriteString(inner)
	sb.WriteString(`</a>`)
	return sb.String()
}
