package commands

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	t.Run("short strings pass through", func(t *testing.T) {
		assert.Equal(t, "hello", truncate("hello", 10))
	})

	t.Run("long strings are shortened with an ellipsis", func(t *testing.T) {
		assert.Equal(t, "hello w...", truncate("hello world and more", 10))
	})

	t.Run("multibyte strings stay valid UTF-8", func(t *testing.T) {
		got := truncate("héllô wörld ünd mörê", 10)
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, "héllô w...", got)
	})
}

func TestSiteURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8000", siteURL("http://localhost:8000/api"))
	assert.Equal(t, "http://localhost:8000", siteURL("http://localhost:8000/api/"))
	assert.Equal(t, "https://forms.example.com", siteURL("https://forms.example.com"))
}
