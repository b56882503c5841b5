package bangumi

import (
	"context"
	"net/http"
	"sort"
	"strconv"

	"github.com/anisan-cli/bgmsync/log"
	"github.com/samber/lo"
)

// episodePageSize is the largest page /v0/episodes serves.
const episodePageSize = 200

func (c *Client) subject(ctx context.Context, id int) (*subject, error) {
	if cached, ok := c.subjects.Get(id).Get(); ok {
		return cached, nil
	}

	var s subject
	if err := c.do(ctx, http.MethodGet, "/v0/subjects/"+strconv.Itoa(id), nil, &s); err != nil {
		return nil, err
	}

	if err := c.subjects.Set(id, &s); err != nil {
		log.Warnf("bangumi cache: %s", err)
	}
	return &s, nil
}

func (c *Client) related(ctx context.Context, id int) ([]*relation, error) {
	if cached, ok := c.relations.Get(id).Get(); ok {
		return cached, nil
	}

	var related []*relation
	if err := c.do(ctx, http.MethodGet, "/v0/subjects/"+strconv.Itoa(id)+"/subjects", nil, &related); err != nil {
		return nil, err
	}

	if err := c.relations.Set(id, related); err != nil {
		log.Warnf("bangumi cache: %s", err)
	}
	return related, nil
}

type episodePage struct {
	Total int        `json:"total"`
	Limit int        `json:"limit"`
	Data  []*episode `json:"data"`
}

// mainEpisodes lists the main episodes of a subject ordered by sort. fresh bypasses the cache.
func (c *Client) mainEpisodes(ctx context.Context, id int, fresh bool) ([]*episode, error) {
	if !fresh {
		if cached, ok := c.episodes.Get(id).Get(); ok {
			return cached, nil
		}
	}

	var all []*episode
	for offset := 0; ; {
		path := "/v0/episodes?subject_id=" + strconv.Itoa(id) +
			"&type=" + strconv.Itoa(episodeTypeMain) +
			"&limit=" + strconv.Itoa(episodePageSize) +
			"&offset=" + strconv.Itoa(offset)

		var page episodePage
		if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
			return nil, err
		}

		all = append(all, page.Data...)
		offset += len(page.Data)
		if len(page.Data) == 0 || offset >= page.Total {
			break
		}
	}

	all = lo.Filter(all, func(e *episode, _ int) bool {
		return e.Type == episodeTypeMain
	})
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Sort < all[j].Sort
	})

	if err := c.episodes.Set(id, all); err != nil {
		log.Warnf("bangumi cache: %s", err)
	}
	return all, nil
}

// sequel returns the next anime subject in the franchise, preferring TV or web seasons
// and, among those, the earliest to air. It returns nil when the subject has no sequel.
func (c *Client) sequel(ctx context.Context, id int) (*subject, error) {
	related, err := c.related(ctx, id)
	if err != nil {
		return nil, err
	}

	candidates := lo.Filter(related, func(r *relation, _ int) bool {
		return r.Relation == relationSequel && r.Type == subjectTypeAnime
	})
	if len(candidates) == 0 {
		return nil, nil
	}

	var (
		first  *subject
		series []*subject
	)
	for _, r := range candidates {
		s, err := c.subject(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		if first == nil {
			first = s
		}
		if s.series() {
			series = append(series, s)
		}
	}

	if len(series) == 0 {
		return first, nil
	}

	return lo.MinBy(series, func(a, b *subject) bool {
		return a.Date != "" && (b.Date == "" || a.Date < b.Date)
	}), nil
}
