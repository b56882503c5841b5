// Package bangumi provides a client for the bgm.tv v0 REST API, shaped as the sync's tracking catalog.
package bangumi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/anisan-cli/bgmsync/constant"
)

// DefaultAPIURL is the public API endpoint.
const DefaultAPIURL = "https://api.bgm.tv"

var (
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("bangumi: not found")
	// ErrUnauthorized is returned when the access token is missing, expired or lacks scope.
	ErrUnauthorized = errors.New("bangumi: unauthorized (check bangumi.access_token)")
)

// HTTPDoer describes the HTTP client used by the Bangumi service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures a Client.
type Options struct {
	BaseURL     string
	AccessToken string
	// Username owns the collection; resolved through /v0/me when empty.
	Username string
	// Private marks subjects added to the collection as private.
	Private    bool
	Cache      bool
	HTTPClient HTTPDoer
}

// Client is safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	private bool
	client  HTTPDoer

	mu       sync.Mutex
	username string

	subjects  *cacher[int, *subject]
	relations *cacher[int, []*relation]
	episodes  *cacher[int, []*episode]
}

// New returns a client. Catalog listings are cached on disk when opts.Cache is set.
func New(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}

	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	c := &Client{
		baseURL:  baseURL,
		token:    strings.TrimSpace(opts.AccessToken),
		private:  opts.Private,
		client:   client,
		username: strings.TrimSpace(opts.Username),
	}

	if opts.Cache {
		c.subjects = newCacher[int, *subject]("bangumi_subjects.json", subjectLifetime)
		c.relations = newCacher[int, []*relation]("bangumi_relations.json", subjectLifetime)
		c.episodes = newCacher[int, []*episode]("bangumi_episodes.json", episodeLifetime)
	}

	return c
}

// do sends a JSON request and decodes the JSON response into target when it is not nil.
func (c *Client) do(ctx context.Context, method, path string, body, target any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode bangumi request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build bangumi request: %w", err)
	}

	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("bangumi %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	case resp.StatusCode >= http.StatusMultipleChoices:
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("bangumi %s %s returned %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if target == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode bangumi %s: %w", path, err)
	}
	return nil
}

// SubjectURL is the public page of a subject, used in log lines.
func SubjectURL(id int) string {
	return fmt.Sprintf("https://bgm.tv/subject/%d", id)
}

// EpisodeURL is the public page of an episode, used in log lines.
func EpisodeURL(id int) string {
	return fmt.Sprintf("https://bgm.tv/ep/%d", id)
}
