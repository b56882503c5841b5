package bangumi

import (
	"context"

	"github.com/anisan-cli/bgmsync/log"
	"github.com/anisan-cli/bgmsync/source"
)

const (
	// maxSequelHops bounds the walk along sequel relations.
	maxSequelHops = 12
	// maxContinuationHops bounds how many split-cour parts a single season may span.
	maxContinuationHops = 3
)

// ResolveSeasonEpisodes maps a season number and episode numbers under the matched subject to the
// subject holding that season and its episode ids.
//
// Season 1 is the matched subject itself; later seasons are found by following sequels, skipping
// movies, specials and split-cour continuations. Episode ids are returned for the longest prefix of
// episodes found, so EpisodeIDs[i] always corresponds to episodes[i]. An empty mapping means the
// season or its first requested episode could not be located.
func (c *Client) ResolveSeasonEpisodes(ctx context.Context, subjectID, season int, episodes []int) (*source.Mapping, error) {
	if season < 1 || len(episodes) == 0 {
		return &source.Mapping{}, nil
	}

	seasonID, err := c.seasonSubject(ctx, subjectID, season)
	if err != nil {
		return nil, err
	}
	if seasonID == 0 {
		log.Debugf("bangumi: season %d not found from %s", season, SubjectURL(subjectID))
		return &source.Mapping{}, nil
	}

	return c.locateEpisodes(ctx, seasonID, episodes)
}

// seasonSubject walks sequels from the first season until the requested one. Zero means not found.
func (c *Client) seasonSubject(ctx context.Context, subjectID, season int) (int, error) {
	current := subjectID
	for n, hops := 1, 0; n < season; hops++ {
		if hops >= maxSequelHops {
			return 0, nil
		}

		next, err := c.sequel(ctx, current)
		if err != nil {
			return 0, err
		}
		if next == nil {
			return 0, nil
		}
		current = next.ID

		if !next.series() {
			continue
		}

		continues, err := c.continuation(ctx, next.ID)
		if err != nil {
			return 0, err
		}
		if !continues {
			n++
		}
	}

	return current, nil
}

// continuation reports whether a subject carries on the numbering of the previous part
// rather than starting a new season.
func (c *Client) continuation(ctx context.Context, id int) (bool, error) {
	eps, err := c.mainEpisodes(ctx, id, false)
	if err != nil {
		return false, err
	}
	return len(eps) > 0 && eps[0].Sort > 1, nil
}

func (c *Client) locateEpisodes(ctx context.Context, seasonID int, episodes []int) (*source.Mapping, error) {
	current := seasonID
	for hop := 0; hop <= maxContinuationHops; hop++ {
		eps, ids, err := c.findEpisodes(ctx, current, episodes)
		if err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			return &source.Mapping{SeasonID: current, EpisodeIDs: ids}, nil
		}

		if len(eps) == 0 || float64(episodes[0]) <= eps[len(eps)-1].Sort {
			break
		}

		next, err := c.sequel(ctx, current)
		if err != nil {
			return nil, err
		}
		if next == nil || !next.series() {
			break
		}

		continues, err := c.continuation(ctx, next.ID)
		if err != nil {
			return nil, err
		}
		if !continues {
			break
		}
		current = next.ID
	}

	return &source.Mapping{}, nil
}

// findEpisodes looks the numbers up in the cached listing first and in a fresh one when the
// cached listing does not reach them.
func (c *Client) findEpisodes(ctx context.Context, id int, episodes []int) ([]*episode, []int, error) {
	eps, err := c.mainEpisodes(ctx, id, false)
	if err != nil {
		return nil, nil, err
	}

	ids := alignedPrefix(eps, episodes)
	if len(ids) == len(episodes) || c.episodes == nil {
		return eps, ids, nil
	}

	eps, err = c.mainEpisodes(ctx, id, true)
	if err != nil {
		return nil, nil, err
	}
	return eps, alignedPrefix(eps, episodes), nil
}

// alignedPrefix resolves numbers in order by sort, then by in-subject number, and stops at the
// first number it cannot resolve.
func alignedPrefix(eps []*episode, numbers []int) []int {
	ids := make([]int, 0, len(numbers))
	for _, n := range numbers {
		e := lookup(eps, float64(n))
		if e == nil {
			break
		}
		ids = append(ids, e.ID)
	}
	return ids
}

func lookup(eps []*episode, n float64) *episode {
	for _, e := range eps {
		if e.Sort == n {
			return e
		}
	}
	for _, e := range eps {
		if e.Ep == n {
			return e
		}
	}
	return nil
}
