// Package youtube разбирает ссылки на YouTube и строит производные URL.
package youtube

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrUnsupportedURL = errors.New("unsupported video url")

var videoIDPattern = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/shorts/)([^&\n?#/]+)`)

// ExtractID возвращает идентификатор ролика из ссылки watch, youtu.be, embed или shorts
func ExtractID(rawURL string) (string, error) {
	match := videoIDPattern.FindStringSubmatch(strings.TrimSpace(rawURL))
	if len(match) < 2 || match[1] == "" {
		return "", ErrUnsupportedURL
	}
	return match[1], nil
}

func ThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID)
}

func EmbedURL(videoID string) string {
	return "https://www.youtube.com/embed/" + videoID
}

// EmbedURLFor - embed-ссылка для сохраненного URL; пустая строка, если URL не YouTube
func EmbedURLFor(rawURL string) string {
	id, err := ExtractID(rawURL)
	if err != nil {
		return ""
	}
	return EmbedURL(id)
}
