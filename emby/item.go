package emby

import (
	"context"
	"fmt"
	"net/url"

	"github.com/anisan-cli/bgmsync/source"
)

// item is the subset of BaseItemDto the sync needs.
type item struct {
	ID                string   `json:"Id"`
	Name              string   `json:"Name"`
	OriginalTitle     string   `json:"OriginalTitle"`
	Type              string   `json:"Type"`
	ParentIndexNumber int      `json:"ParentIndexNumber"`
	IndexNumber       int      `json:"IndexNumber"`
	SeriesID          string   `json:"SeriesId"`
	PremiereDate      string   `json:"PremiereDate"`
	Genres            []string `json:"Genres"`
}

func (c *Client) fetch(ctx context.Context, id string) (*item, error) {
	path := fmt.Sprintf("/Users/%s/Items/%s", url.PathEscape(c.userID), url.PathEscape(id))

	var it item
	if err := c.get(ctx, path, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// Item returns the typed record of a library item.
func (c *Client) Item(ctx context.Context, id string) (*source.Item, error) {
	it, err := c.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	return &source.Item{
		ID:            it.ID,
		Name:          it.Name,
		Type:          source.ItemType(it.Type),
		SeasonNumber:  it.ParentIndexNumber,
		EpisodeNumber: it.IndexNumber,
		SeriesID:      it.SeriesID,
	}, nil
}

// Series returns the metadata snapshot of a series item.
func (c *Client) Series(ctx context.Context, id string) (*source.Series, error) {
	it, err := c.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	return &source.Series{
		ID:            it.ID,
		Title:         it.Name,
		OriginalTitle: it.OriginalTitle,
		PremiereDate:  source.ParseDate(it.PremiereDate),
		Genres:        it.Genres,
	}, nil
}
