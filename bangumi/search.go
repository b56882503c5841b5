package bangumi

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/anisan-cli/bgmsync/log"
	"github.com/anisan-cli/bgmsync/source"
	"github.com/samber/lo"
)

// searchLimit bounds the candidate list returned per keyword.
const searchLimit = 10

// airDateWindow is how far a premiere date may drift from the catalog's air date.
const airDateWindow = 2 * 24 * time.Hour

type searchFilter struct {
	Type    []int    `json:"type"`
	AirDate []string `json:"air_date,omitempty"`
}

type searchRequest struct {
	Keyword string       `json:"keyword"`
	Sort    string       `json:"sort"`
	Filter  searchFilter `json:"filter"`
}

type searchResponse struct {
	Total int        `json:"total"`
	Data  []*subject `json:"data"`
}

// Search returns anime subjects matching the series. The original title is tried first, then the
// display title; a known premiere date narrows results to subjects airing within two days of it.
func (c *Client) Search(ctx context.Context, series *source.Series) ([]*source.Subject, error) {
	keywords := lo.Uniq(lo.Compact([]string{
		strings.TrimSpace(series.OriginalTitle),
		strings.TrimSpace(series.Title),
	}))

	filter := searchFilter{Type: []int{subjectTypeAnime}}
	if !series.PremiereDate.IsZero() {
		filter.AirDate = []string{
			">=" + series.PremiereDate.Add(-airDateWindow).Format(time.DateOnly),
			"<=" + series.PremiereDate.Add(airDateWindow).Format(time.DateOnly),
		}
	}

	for _, keyword := range keywords {
		found, err := c.search(ctx, searchRequest{Keyword: keyword, Sort: "match", Filter: filter})
		if err != nil {
			return nil, err
		}

		log.Debugf("bangumi search %q returned %d subjects", keyword, len(found))
		if len(found) > 0 {
			return lo.Map(found, func(s *subject, _ int) *source.Subject {
				return s.record()
			}), nil
		}
	}

	return nil, nil
}

func (c *Client) search(ctx context.Context, body searchRequest) ([]*subject, error) {
	var resp searchResponse
	path := "/v0/search/subjects?limit=" + strconv.Itoa(searchLimit)
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}

	for _, s := range resp.Data {
		if c.subjects.Get(s.ID).IsAbsent() && s.Platform != "" {
			if err := c.subjects.Set(s.ID, s); err != nil {
				log.Warnf("bangumi cache: %s", err)
			}
		}
	}

	return resp.Data, nil
}
