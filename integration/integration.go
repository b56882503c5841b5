// Package integration reconciles watched episodes from a media server into a tracking catalog.
//
// A sync runs four stages in order, each of which may stop the run: the eligibility gate,
// subject matching, episode location and watch propagation.
package integration

import (
	"context"

	"github.com/anisan-cli/bgmsync/source"
)

// MediaCatalog is the media server the watched episodes come from.
type MediaCatalog interface {
	Item(ctx context.Context, id string) (*source.Item, error)
	Series(ctx context.Context, id string) (*source.Series, error)
}

// TrackingCatalog is the service whose watch state mirrors the media server.
type TrackingCatalog interface {
	// Search returns candidate subjects, best first.
	Search(ctx context.Context, series *source.Series) ([]*source.Subject, error)
	// TitleRatio scores how closely a subject's names match the series titles, in [0, 1].
	TitleRatio(series *source.Series, subject *source.Subject) float64
	// ResolveSeasonEpisodes maps a season and ordered episode numbers to catalog ids.
	// EpisodeIDs[i] belongs to episodes[i]; an empty mapping means not found.
	ResolveSeasonEpisodes(ctx context.Context, subjectID, season int, episodes []int) (*source.Mapping, error)
	MarkWatched(ctx context.Context, subjectID, episodeID int) error
	Me(ctx context.Context) (*source.User, error)
}
