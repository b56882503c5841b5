package integration

import (
	"fmt"
	"regexp"
	"strings"
)

// MinTitleRatio is the lowest title similarity accepted for a match.
const MinTitleRatio = 0.5

// DefaultGenres matches the common spellings of animation.
const DefaultGenres = "动画|anime"

// Options tune a Syncer.
type Options struct {
	// Genres is matched against the concatenated genre tags of the series.
	Genres *regexp.Regexp
}

// NewOptions compiles the genre pattern case-insensitively. An empty pattern selects DefaultGenres.
func NewOptions(genres string) (Options, error) {
	genres = strings.TrimSpace(genres)
	if genres == "" {
		genres = DefaultGenres
	}

	re, err := regexp.Compile("(?i)" + genres)
	if err != nil {
		return Options{}, fmt.Errorf("invalid genre pattern %q: %w", genres, err)
	}

	return Options{Genres: re}, nil
}
