package config

import (
	"strings"
	"time"

	"github.com/anisan-cli/bgmsync/auth"
	"github.com/anisan-cli/bgmsync/key"
	"github.com/spf13/viper"
)

// Bangumi holds the tracking catalog credentials and matching policy.
type Bangumi struct {
	Username    string
	Private     bool
	AccessToken string
	Genres      string
	APIURL      string
	Cache       bool
}

// Emby holds the statically configured media server connection.
type Emby struct {
	Host   string
	APIKey string
	UserID string
}

// Settings is a snapshot of every value the sync pipeline and its clients consume.
// It is resolved once per process so defaults are not looked up per call.
type Settings struct {
	Bangumi Bangumi
	Emby    Emby
	Proxy   string
	Timeout time.Duration
}

// tokenFallback is swapped in tests to avoid touching the system keyring.
var tokenFallback = auth.GetToken

// Load resolves the current configuration into a Settings value.
// An empty access token is looked up in the system keyring.
func Load() Settings {
	s := Settings{
		Bangumi: Bangumi{
			Username:    strings.TrimSpace(viper.GetString(key.BangumiUsername)),
			Private:     viper.GetBool(key.BangumiPrivate),
			AccessToken: strings.TrimSpace(viper.GetString(key.BangumiAccessToken)),
			Genres:      viper.GetString(key.BangumiGenres),
			APIURL:      strings.TrimRight(viper.GetString(key.BangumiAPIURL), "/"),
			Cache:       viper.GetBool(key.BangumiCache),
		},
		Emby: Emby{
			Host:   strings.TrimRight(strings.TrimSpace(viper.GetString(key.EmbyHost)), "/"),
			APIKey: strings.TrimSpace(viper.GetString(key.EmbyAPIKey)),
			UserID: strings.TrimSpace(viper.GetString(key.EmbyUserID)),
		},
		Proxy:   strings.TrimSpace(viper.GetString(key.NetworkProxy)),
		Timeout: time.Duration(viper.GetInt(key.NetworkTimeout)) * time.Second,
	}

	if s.Bangumi.Genres == "" {
		s.Bangumi.Genres = Default[key.BangumiGenres].Value.(string)
	}

	if s.Bangumi.AccessToken == "" {
		if token, err := tokenFallback(); err == nil {
			s.Bangumi.AccessToken = strings.TrimSpace(token)
		}
	}

	return s
}
