package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch with params", "https://youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ"},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"shorts", "https://www.youtube.com/shorts/abcDEF12345/", "abcDEF12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ExtractID(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestExtractID_Unsupported(t *testing.T) {
	for _, url := range []string{"", "https://vimeo.com/12345", "https://www.youtube.com/", "not a url"} {
		_, err := ExtractID(url)
		assert.ErrorIs(t, err, ErrUnsupportedURL, url)
	}
}

func TestDerivedURLs(t *testing.T) {
	assert.Equal(t, "https://img.youtube.com/vi/abc/maxresdefault.jpg", ThumbnailURL("abc"))
	assert.Equal(t, "https://www.youtube.com/embed/abc", EmbedURL("abc"))
	assert.Equal(t, "https://www.youtube.com/embed/abc", EmbedURLFor("https://youtu.be/abc"))
	assert.Empty(t, EmbedURLFor("https://vimeo.com/1"))
}
