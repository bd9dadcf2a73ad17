package posts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTitle(t *testing.T) {
	title, err := NormalizeTitle("  Orcs & Goblins <3  ")
	require.NoError(t, err)
	assert.Equal(t, "Orcs & Goblins <3", title)

	_, err = NormalizeTitle("<i></i>  ")
	assert.True(t, IsValidationError(err))

	// Each flag emoji is one grapheme but several runes
	_, err = NormalizeTitle(strings.Repeat("🇫🇷", MaxTitleGraphemes))
	assert.NoError(t, err)
	_, err = NormalizeTitle(strings.Repeat("🇫🇷", MaxTitleGraphemes+1))
	assert.True(t, IsValidationError(err))
}

func TestNormalizeBody(t *testing.T) {
	for _, text := range []string{"Tom & Jerry", "> a quote", "use `ch <- v` here", `hello <script>alert(1)</script>`} {
		body, err := NormalizeBody("\n " + text + " \n")
		require.NoError(t, err)
		assert.Equal(t, text, body)
	}

	_, err := NormalizeBody("   ")
	assert.True(t, IsValidationError(err))
}

func TestRenderBody(t *testing.T) {
	html := RenderBody("**bold** and ~~gone~~")
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.Contains(t, html, "<del>gone</del>")

	html = RenderBody("see https://example.com")
	assert.Contains(t, html, `href="https://example.com"`)

	html = RenderBody("> a quote")
	assert.Contains(t, html, "<blockquote>")
	assert.Contains(t, html, "a quote")

	html = RenderBody("Tom & Jerry, `ch <- v`")
	assert.Contains(t, html, "Tom &amp; Jerry")
	assert.Contains(t, html, "<code>ch &lt;- v</code>")

	html = RenderBody("<script>alert(1)</script>\n\ntext")
	assert.NotContains(t, html, "<script")
	assert.Contains(t, html, "text")
}

func TestNewView(t *testing.T) {
	p := &Post{PostID: "p1", Body: "*hi*", LikedBy: []string{"alice", "bob"}}
	v := NewView(p)
	assert.Equal(t, 2, v.Likes)
	assert.Equal(t, 0, v.Dislikes)
	assert.Contains(t, v.BodyHTML, "<em>hi</em>")
	assert.NotNil(t, v.DislikedBy)
}
