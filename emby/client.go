// Package emby reads item metadata from an Emby or Jellyfin server.
package emby

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/anisan-cli/bgmsync/constant"
)

// HTTPDoer describes the HTTP client used by the media server adapter.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options holds the connection details of one media server user.
type Options struct {
	// Host is scheme://netloc, optionally suffixed with the legacy /emby prefix.
	Host       string
	APIKey     string
	UserID     string
	HTTPClient HTTPDoer
}

// Client talks to the Emby-compatible REST API.
type Client struct {
	host   string
	apiKey string
	userID string
	client HTTPDoer
}

// New validates opts and returns a client.
func New(opts Options) (*Client, error) {
	host := strings.TrimRight(strings.TrimSpace(opts.Host), "/")
	host = strings.TrimSuffix(host, "/emby")

	switch {
	case host == "":
		return nil, errors.New("emby: host is required")
	case strings.TrimSpace(opts.APIKey) == "":
		return nil, errors.New("emby: api key is required")
	case strings.TrimSpace(opts.UserID) == "":
		return nil, errors.New("emby: user id is required")
	}

	if _, err := url.ParseRequestURI(host); err != nil {
		return nil, fmt.Errorf("emby: invalid host %q: %w", host, err)
	}

	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		host:   host,
		apiKey: strings.TrimSpace(opts.APIKey),
		userID: strings.TrimSpace(opts.UserID),
		client: client,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+path, nil)
	if err != nil {
		return fmt.Errorf("build emby request: %w", err)
	}
	req.Header.Set("X-Emby-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("emby request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("emby %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode emby %s: %w", path, err)
	}
	return nil
}
