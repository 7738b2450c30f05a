package sanitizer_test

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/dispatch/pkg/sanitizer"
)

func TestText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "Dashboard", expected: "Dashboard"},
		{name: "tags stripped", input: "<b>Bold</b> title", expected: "Bold title"},
		{name: "script dropped", input: "Hi<script>alert(1)</script>", expected: "Hi"},
		{name: "entities decoded", input: "Q&amp;A", expected: "Q&A"},
		{name: "trimmed", input: "  spaced  ", expected: "spaced"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.Text(tt.input))
		})
	}
}

func TestContent(t *testing.T) {
	t.Parallel()

	t.Run("keeps markdown formatting", func(t *testing.T) {
		t.Parallel()

		out := sanitizer.Content(`<h2>Title</h2><table><tr><td>1</td></tr></table><pre><code class="language-go">x</code></pre>`)
		assert.Contains(t, out, "<h2>Title</h2>")
		assert.Contains(t, out, "<td>1</td>")
		assert.Contains(t, out, `class="language-go"`)
	})

	t.Run("drops scripts and handlers", func(t *testing.T) {
		t.Parallel()

		out := sanitizer.Content(`<p onclick="x()">hi</p><script>alert(1)</script>`)
		assert.Equal(t, "<p>hi</p>", out)
	})

	t.Run("drops javascript urls", func(t *testing.T) {
		t.Parallel()

		out := sanitizer.Content(`<a href="javascript:alert(1)">x</a>`)
		assert.NotContains(t, out, "javascript:")
	})

	t.Run("nofollow on links", func(t *testing.T) {
		t.Parallel()

		out := sanitizer.Content(`<a href="https://example.com">x</a>`)
		assert.Contains(t, out, `rel="nofollow`)
	})
}

func TestCustom(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<b>x</b>", sanitizer.Custom("<b>x</b>", nil))
	assert.Equal(t, "x", sanitizer.Custom("<b>x</b>", bluemonday.StrictPolicy()))
}
