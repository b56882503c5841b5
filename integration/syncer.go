package integration

import (
	"context"
	"errors"
	"fmt"

	"github.com/anisan-cli/bgmsync/source"
	"github.com/samber/lo"
)

// ErrNoInput is returned when a sync has neither items nor item ids to work on.
var ErrNoInput = errors.New("no episodes to sync")

// Request names the watched episodes of one season of one series.
// Items are used as given; IDs are resolved through the media catalog when Items is empty.
type Request struct {
	Items []*source.Item
	IDs   []string
}

// Empty reports whether the request carries nothing to sync.
func (r Request) Empty() bool {
	return len(r.Items) == 0 && len(r.IDs) == 0
}

// Syncer runs the pipeline against a pair of catalogs. It keeps no state between calls.
type Syncer struct {
	media    MediaCatalog
	tracking TrackingCatalog
	options  Options
}

// NewSyncer returns a Syncer. A nil genre pattern selects DefaultGenres.
func NewSyncer(media MediaCatalog, tracking TrackingCatalog, options Options) *Syncer {
	if options.Genres == nil {
		options = lo.Must(NewOptions(DefaultGenres))
	}
	return &Syncer{media: media, tracking: tracking, options: options}
}

// Sync reconciles the requested episodes. Skipped syncs return an outcome and a nil error;
// collaborator failures return an error, along with the partial outcome once marking started.
func (s *Syncer) Sync(ctx context.Context, req Request) (*Outcome, error) {
	if req.Empty() {
		return nil, ErrNoInput
	}

	items, err := s.items(ctx, req)
	if err != nil {
		return nil, err
	}

	outcome := newOutcome()

	series, ok, err := s.eligible(ctx, outcome, items)
	if err != nil || !ok {
		return outcome, err
	}

	subject, ok, err := s.match(ctx, outcome, series)
	if err != nil || !ok {
		return outcome, err
	}

	mapping, ok, err := s.locate(ctx, outcome, subject, outcome.Season, outcome.Episodes)
	if err != nil || !ok {
		return outcome, err
	}

	return outcome, s.propagate(ctx, outcome, mapping, outcome.Episodes)
}

func (s *Syncer) items(ctx context.Context, req Request) ([]*source.Item, error) {
	if len(req.Items) > 0 {
		return req.Items, nil
	}

	items := make([]*source.Item, 0, len(req.IDs))
	for _, id := range req.IDs {
		item, err := s.media.Item(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("fetch item %s: %w", id, err)
		}
		items = append(items, item)
	}
	return items, nil
}
