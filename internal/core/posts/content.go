package posts

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rivo/uniseg"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Content limits in grapheme clusters
const (
	MaxTitleGraphemes = 300
	MaxBodyGraphemes  = 10000
)

var (
	titlePolicy = bluemonday.StrictPolicy()
	bodyPolicy  = bluemonday.UGCPolicy()

	// Raw HTML in bodies is dropped by the renderer; only markdown survives
	markdown = goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Linkify))
)

// NormalizeTitle trims a title and checks it has visible content and fits
// the length limit. The text is stored as written.
func NormalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if !hasContent(title) {
		return "", NewValidationError("title", "title is required")
	}
	if n := uniseg.GraphemeClusterCount(title); n > MaxTitleGraphemes {
		return "", NewValidationError("title", fmt.Sprintf("title too long (%d graphemes, max %d)", n, MaxTitleGraphemes))
	}
	return title, nil
}

// NormalizeBody trims a markdown body and checks it like NormalizeTitle.
// Unsafe markup is removed when the body is rendered, not here.
func NormalizeBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if !hasContent(body) {
		return "", NewValidationError("body", "body is required")
	}
	if n := uniseg.GraphemeClusterCount(body); n > MaxBodyGraphemes {
		return "", NewValidationError("body", fmt.Sprintf("body too long (%d graphemes, max %d)", n, MaxBodyGraphemes))
	}
	return body, nil
}

// hasContent reports whether text still has characters once all markup
// is stripped
func hasContent(text string) bool {
	return strings.TrimSpace(titlePolicy.Sanitize(text)) != ""
}

// RenderBody converts a stored markdown body to sanitized HTML. A body
// that fails to render falls back to its escaped text.
func RenderBody(body string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return bodyPolicy.Sanitize("<p>" + titlePolicy.Sanitize(body) + "</p>")
	}
	return bodyPolicy.Sanitize(buf.String())
}
