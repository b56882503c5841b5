// Package event decodes "episode watched" notifications pushed by media server hooks and userscripts.
package event

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/anisan-cli/bgmsync/source"
	"github.com/samber/lo"
)

// Origin server kinds reported in the payload.
const (
	ServerEmby     = "emby"
	ServerJellyfin = "jellyfin"
	ServerPlex     = "plex"
)

// ErrEmpty is returned when a payload carries no episodes.
var ErrEmpty = errors.New("event payload contains no episodes")

// Episode is one watched episode together with the connection details of the server it came from.
// Every episode of a payload is expected to share server, season and series.
type Episode struct {
	Server string `json:"server" jsonschema:"description=Origin media server kind.,enum=emby,enum=jellyfin,enum=plex"`
	Scheme string `json:"scheme" jsonschema:"description=URL scheme of the media server, http or https."`
	Netloc string `json:"netloc" jsonschema:"description=Host and optional port of the media server."`
	APIKey string `json:"api_key" jsonschema:"description=API key used to read item metadata."`
	UserID string `json:"user_id" jsonschema:"description=Media server user id."`

	ID                string `json:"Id,omitempty" jsonschema:"description=Media server item id."`
	Name              string `json:"Name,omitempty"`
	Type              string `json:"Type" jsonschema:"description=Item type. Only Episode is synced."`
	ParentIndexNumber int    `json:"ParentIndexNumber" jsonschema:"description=Season number. 0 is the specials season."`
	Index             int    `json:"index" jsonschema:"description=Episode number within the season."`
	SeriesID          string `json:"SeriesId" jsonschema:"description=Media server id of the owning series."`
}

// Supported reports whether episodes from this server can be resolved through the Emby-compatible API.
func (e *Episode) Supported() bool {
	switch strings.ToLower(strings.TrimSpace(e.Server)) {
	case ServerEmby, ServerJellyfin:
		return true
	default:
		return false
	}
}

// Host is the media server base URL, scheme://netloc.
func (e *Episode) Host() string {
	scheme := strings.TrimSpace(e.Scheme)
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + strings.Trim(strings.TrimSpace(e.Netloc), "/")
}

// Item converts the payload entry into the typed catalog record.
func (e *Episode) Item() *source.Item {
	return &source.Item{
		ID:            e.ID,
		Name:          e.Name,
		Type:          source.ItemType(e.Type),
		SeasonNumber:  e.ParentIndexNumber,
		EpisodeNumber: e.Index,
		SeriesID:      e.SeriesID,
	}
}

// Items converts a whole payload, keeping order.
func Items(episodes []*Episode) []*source.Item {
	items := make([]*source.Item, 0, len(episodes))
	for _, e := range episodes {
		items = append(items, e.Item())
	}
	return items
}

// Decode reads a payload holding either a single episode object or an array of them.
func Decode(r io.Reader) ([]*Episode, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read event: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	if bytes.Equal(data, []byte("null")) {
		return nil, ErrEmpty
	}

	var episodes []*Episode
	if data[0] == '[' {
		if err := json.Unmarshal(data, &episodes); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
	} else {
		var single Episode
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		episodes = []*Episode{&single}
	}

	if len(episodes) == 0 {
		return nil, ErrEmpty
	}

	if i := lo.IndexOf(episodes, nil); i >= 0 {
		return nil, fmt.Errorf("decode event: episode %d is null", i)
	}

	return episodes, nil
}
