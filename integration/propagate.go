package integration

import (
	"context"
	"fmt"

	"github.com/anisan-cli/bgmsync/log"
	"github.com/anisan-cli/bgmsync/source"
	"github.com/anisan-cli/bgmsync/util"
)

// propagate marks the episodes in order, pairing ids and numbers up to the shorter of the two.
// It stops at the first failure; marks already sent stay.
func (s *Syncer) propagate(ctx context.Context, outcome *Outcome, mapping *source.Mapping, episodes []int) error {
	n := util.Min(len(mapping.EpisodeIDs), len(episodes))
	if n < len(episodes) {
		log.Warnf("bgm: only %d of %d episodes located, syncing %v", n, len(episodes), episodes[:n])
	}

	log.Infof("bgm: get %s S%02dE%v subject=%d", outcome.Subject.DisplayName(), outcome.Season, episodes[:n], mapping.SeasonID)

	for i := 0; i < n; i++ {
		mark := Mark{SeasonID: mapping.SeasonID, EpisodeID: mapping.EpisodeIDs[i], EpisodeNumber: episodes[i]}
		if err := s.tracking.MarkWatched(ctx, mark.SeasonID, mark.EpisodeID); err != nil {
			outcome.FailedAt = i
			outcome.stop(PartiallyPropagated, ReasonMarkFailed)
			return fmt.Errorf("mark episode %d of subject %d: %w", mark.EpisodeID, mark.SeasonID, err)
		}

		outcome.Marks = append(outcome.Marks, mark)
		log.Infof("bgm: sync %s S%02dE%02d episode=%d", outcome.Series.Title, outcome.Season, mark.EpisodeNumber, mark.EpisodeID)
	}

	outcome.stop(Propagated, ReasonNone)
	return nil
}
