package integration

import (
	"context"
	"fmt"

	"github.com/anisan-cli/bgmsync/log"
	"github.com/anisan-cli/bgmsync/source"
)

// locate resolves the season and episode numbers to tracking catalog ids.
func (s *Syncer) locate(ctx context.Context, outcome *Outcome, subject *source.Subject, season int, episodes []int) (*source.Mapping, bool, error) {
	mapping, err := s.tracking.ResolveSeasonEpisodes(ctx, subject.ID, season, episodes)
	if err != nil {
		return nil, false, fmt.Errorf("resolve subject %d season %d: %w", subject.ID, season, err)
	}

	if mapping.Empty() {
		log.Infof("bgm: subject=%d season=%d episodes=%v not exists or too big, skip", subject.ID, season, episodes)
		outcome.stop(Unmapped, ReasonNoEpisodes)
		return nil, false, nil
	}

	return mapping, true, nil
}
