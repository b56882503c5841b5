package integration

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anisan-cli/bgmsync/bangumi"
	"github.com/anisan-cli/bgmsync/config"
	"github.com/anisan-cli/bgmsync/emby"
	"github.com/anisan-cli/bgmsync/event"
	"github.com/anisan-cli/bgmsync/log"
	"github.com/anisan-cli/bgmsync/network"
	"github.com/anisan-cli/bgmsync/source"
	"github.com/samber/lo"
)

// Mode selects where a dispatched sync takes its media server from.
type Mode string

const (
	// ModeConfig reads items from the media server in the configuration.
	ModeConfig Mode = "config"
	// ModeEvent reads items from the media server named by the event payload.
	ModeEvent Mode = "event"
	// ModeProbe only verifies the tracking catalog credentials.
	ModeProbe Mode = "probe"
)

// ErrUnknownMode is returned for modes other than config, event and probe.
var ErrUnknownMode = errors.New("unknown sync mode")

// Modes lists the accepted modes.
func Modes() []Mode {
	return []Mode{ModeConfig, ModeEvent, ModeProbe}
}

// ParseMode accepts a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch mode {
	case ModeConfig, ModeEvent, ModeProbe:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Dispatcher builds the catalog clients for a mode and runs the sync.
type Dispatcher struct {
	Settings config.Settings

	NewHTTPClient func(proxy string, timeout time.Duration) (*http.Client, error)
	NewMedia      func(opts emby.Options) (MediaCatalog, error)
	NewTracking   func(opts bangumi.Options) (TrackingCatalog, error)
}

// NewDispatcher returns a Dispatcher building the Emby and Bangumi clients.
func NewDispatcher(settings config.Settings) *Dispatcher {
	return &Dispatcher{
		Settings:      settings,
		NewHTTPClient: network.New,
		NewMedia: func(opts emby.Options) (MediaCatalog, error) {
			return emby.New(opts)
		},
		NewTracking: func(opts bangumi.Options) (TrackingCatalog, error) {
			return bangumi.New(opts), nil
		},
	}
}

// Identify builds the tracking client and returns the account its token belongs to.
// The catalog is queried once.
func (d *Dispatcher) Identify(ctx context.Context) (*source.User, TrackingCatalog, error) {
	_, tracking, err := d.clients()
	if err != nil {
		return nil, nil, err
	}

	me, err := identify(ctx, tracking)
	if err != nil {
		return nil, tracking, err
	}
	return me, tracking, nil
}

func identify(ctx context.Context, tracking TrackingCatalog) (*source.User, error) {
	me, err := tracking.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("bangumi identity check: %w", err)
	}
	log.Infof("bgm: authenticated as %s (%d)", me.Username, me.ID)
	return me, nil
}

func (d *Dispatcher) clients() (*http.Client, TrackingCatalog, error) {
	httpClient, err := d.NewHTTPClient(d.Settings.Proxy, d.Settings.Timeout)
	if err != nil {
		return nil, nil, err
	}

	tracking, err := d.NewTracking(bangumi.Options{
		BaseURL:     d.Settings.Bangumi.APIURL,
		AccessToken: d.Settings.Bangumi.AccessToken,
		Username:    d.Settings.Bangumi.Username,
		Private:     d.Settings.Bangumi.Private,
		Cache:       d.Settings.Bangumi.Cache,
		HTTPClient:  httpClient,
	})
	if err != nil {
		return nil, nil, err
	}
	return httpClient, tracking, nil
}

// Dispatch runs a sync in the given mode.
//
// In config mode the episodes come from payload or, when it is empty, from ids looked up on the
// configured media server. In event mode payload is required and its first episode names the media
// server. In probe mode only the tracking catalog identity is checked. The tracking client is
// returned in every mode so callers may reuse it.
func (d *Dispatcher) Dispatch(ctx context.Context, mode Mode, payload []*event.Episode, ids ...string) (*Outcome, TrackingCatalog, error) {
	switch mode {
	case ModeConfig, ModeProbe:
	case ModeEvent:
		if len(payload) == 0 {
			return nil, nil, ErrNoInput
		}
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	if i := lo.IndexOf(payload, nil); i >= 0 {
		return nil, nil, fmt.Errorf("%w: episode %d of the payload is null", ErrNoInput, i)
	}

	httpClient, tracking, err := d.clients()
	if err != nil {
		return nil, nil, err
	}

	if mode == ModeProbe {
		if _, err := identify(ctx, tracking); err != nil {
			return nil, tracking, err
		}
		return nil, tracking, nil
	}

	var (
		req   = Request{Items: event.Items(payload), IDs: ids}
		media MediaCatalog
	)

	switch mode {
	case ModeConfig:
		if req.Empty() {
			log.Info("bgm: nothing to sync")
			return nil, tracking, nil
		}
		media, err = d.NewMedia(emby.Options{
			Host:       d.Settings.Emby.Host,
			APIKey:     d.Settings.Emby.APIKey,
			UserID:     d.Settings.Emby.UserID,
			HTTPClient: httpClient,
		})
	case ModeEvent:
		first := payload[0]
		if !first.Supported() {
			log.Errorf("bgm: sync by event does not support server=%q", first.Server)
			return newOutcome().stop(Ineligible, ReasonUnsupportedServer), tracking, nil
		}
		media, err = d.NewMedia(emby.Options{
			Host:       first.Host(),
			APIKey:     first.APIKey,
			UserID:     first.UserID,
			HTTPClient: httpClient,
		})
	}
	if err != nil {
		return nil, tracking, err
	}

	options, err := NewOptions(d.Settings.Bangumi.Genres)
	if err != nil {
		return nil, tracking, err
	}

	outcome, err := NewSyncer(media, tracking, options).Sync(ctx, req)
	return outcome, tracking, err
}
