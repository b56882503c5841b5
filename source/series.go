package source

import (
	"strings"
	"time"
)

// Series is the metadata snapshot of the show owning an episode.
// It is fetched once per sync call and never mutated.
type Series struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	OriginalTitle string    `json:"original_title,omitempty"`
	PremiereDate  time.Time `json:"premiere_date"`
	Genres        []string  `json:"genres"`
}

// GenreText joins the genre tags without a separator, the form matched against the genre pattern.
func (s *Series) GenreText() string {
	return strings.Join(s.Genres, "")
}

// ParseDate reads the calendar date prefix of an ISO-8601 timestamp such as
// "2020-04-03T00:00:00.0000000Z". Unparseable input yields the zero time.
func ParseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if len(value) < len(time.DateOnly) {
		return time.Time{}
	}

	t, err := time.Parse(time.DateOnly, value[:len(time.DateOnly)])
	if err != nil {
		return time.Time{}
	}
	return t
}
