// Package source defines the catalog records exchanged between the sync pipeline and its adapters.
package source

import "fmt"

// ItemType is the media catalog's item kind.
type ItemType string

const (
	TypeEpisode ItemType = "Episode"
	TypeSeries  ItemType = "Series"
	TypeSeason  ItemType = "Season"
	TypeMovie   ItemType = "Movie"
)

// Item is a single media catalog entry, usually an episode newly marked watched.
// SeasonNumber and EpisodeNumber are 1-based; season 0 is the specials bucket.
type Item struct {
	ID            string   `json:"id"`
	Name          string   `json:"name,omitempty"`
	Type          ItemType `json:"type"`
	SeasonNumber  int      `json:"season_number"`
	EpisodeNumber int      `json:"episode_number"`
	SeriesID      string   `json:"series_id"`
}

// String renders the item as S01E03.
func (i *Item) String() string {
	return fmt.Sprintf("S%02dE%02d", i.SeasonNumber, i.EpisodeNumber)
}
