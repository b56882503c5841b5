package integration

import (
	"context"
	"fmt"

	"github.com/anisan-cli/bgmsync/log"
	"github.com/anisan-cli/bgmsync/source"
)

// match takes the best-ranked candidate and accepts it when its title ratio reaches MinTitleRatio.
func (s *Syncer) match(ctx context.Context, outcome *Outcome, series *source.Series) (*source.Subject, bool, error) {
	candidates, err := s.tracking.Search(ctx, series)
	if err != nil {
		return nil, false, fmt.Errorf("search %q: %w", series.Title, err)
	}

	if len(candidates) == 0 {
		log.Errorf("bgm: no subject found for %q (%q), skip", series.Title, series.OriginalTitle)
		outcome.stop(NoMatch, ReasonNoCandidates)
		return nil, false, nil
	}

	subject := candidates[0]
	outcome.Subject = subject
	outcome.Ratio = s.tracking.TitleRatio(series, subject)

	if outcome.Ratio < MinTitleRatio {
		log.Errorf("bgm: subject %q not match %q, ratio %.2f, skip", subject.DisplayName(), series.Title, outcome.Ratio)
		outcome.stop(NoMatch, ReasonLowSimilarity)
		return nil, false, nil
	}

	return subject, true, nil
}
