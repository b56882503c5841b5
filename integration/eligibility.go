package integration

import (
	"context"
	"fmt"

	"github.com/anisan-cli/bgmsync/log"
	"github.com/anisan-cli/bgmsync/source"
	"github.com/samber/lo"
)

// eligible gates the items on type, numbering and genre. Series metadata is fetched only once the
// first two checks pass. The season and episode numbers are recorded on the outcome.
func (s *Syncer) eligible(ctx context.Context, outcome *Outcome, items []*source.Item) (*source.Series, bool, error) {
	first := items[0]
	if first.Type != source.TypeEpisode {
		log.Infof("bgm: episode support only, skip %s (%s)", first.ID, first.Type)
		outcome.stop(Ineligible, ReasonNotEpisode)
		return nil, false, nil
	}

	outcome.Season = first.SeasonNumber
	outcome.Episodes = lo.Map(items, func(item *source.Item, _ int) int {
		return item.EpisodeNumber
	})

	if outcome.Season <= 0 || lo.SomeBy(outcome.Episodes, func(n int) bool { return n <= 0 }) {
		log.Errorf("bgm: season=%d episodes=%v contain zero, skip", outcome.Season, outcome.Episodes)
		outcome.stop(Ineligible, ReasonZeroNumber)
		return nil, false, nil
	}

	series, err := s.media.Series(ctx, first.SeriesID)
	if err != nil {
		return nil, false, fmt.Errorf("fetch series %s: %w", first.SeriesID, err)
	}
	outcome.Series = series

	if !s.options.Genres.MatchString(series.GenreText()) {
		log.Errorf("bgm: genres=%v not match %q, skip", series.Genres, s.options.Genres.String())
		outcome.stop(Ineligible, ReasonGenreMismatch)
		return nil, false, nil
	}

	return series, true, nil
}
