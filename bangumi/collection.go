package bangumi

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/anisan-cli/bgmsync/log"
)

type collectionRequest struct {
	Type    int  `json:"type"`
	Private bool `json:"private"`
}

type episodeStateRequest struct {
	Type int `json:"type"`
}

// MarkWatched records an episode as watched. The subject is added to the collection as "doing"
// when it is not collected yet; subjects already collected as done are left untouched.
func (c *Client) MarkWatched(ctx context.Context, subjectID, episodeID int) error {
	col, err := c.collection(ctx, subjectID)
	if err != nil {
		return err
	}

	switch {
	case col == nil:
		body := collectionRequest{Type: collectionDoing, Private: c.private}
		path := "/v0/users/-/collections/" + strconv.Itoa(subjectID)
		if err := c.do(ctx, http.MethodPost, path, body, nil); err != nil {
			return err
		}
		log.Infof("bangumi: collected %s as doing", SubjectURL(subjectID))
	case col.Type == collectionDone:
		log.Debugf("bangumi: %s already done, skipping %s", SubjectURL(subjectID), EpisodeURL(episodeID))
		return nil
	}

	path := "/v0/users/-/collections/-/episodes/" + strconv.Itoa(episodeID)
	if err := c.do(ctx, http.MethodPut, path, episodeStateRequest{Type: collectionDone}, nil); err != nil {
		return err
	}

	log.Infof("bangumi: marked %s watched", EpisodeURL(episodeID))
	return nil
}

// collection returns the owner's collection entry of a subject, nil when it is not collected.
func (c *Client) collection(ctx context.Context, subjectID int) (*collection, error) {
	owner, err := c.owner(ctx)
	if err != nil {
		return nil, err
	}

	var col collection
	path := "/v0/users/" + url.PathEscape(owner) + "/collections/" + strconv.Itoa(subjectID)
	err = c.do(ctx, http.MethodGet, path, nil, &col)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &col, nil
}
