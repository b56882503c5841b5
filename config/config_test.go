package config

import (
	"errors"
	"testing"
	"time"

	"github.com/anisan-cli/bgmsync/filesystem"
	"github.com/anisan-cli/bgmsync/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			So(Setup(), ShouldBeNil)
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetString(key.BangumiGenres), ShouldEqual, "动画|anime")
			So(viper.GetBool(key.BangumiPrivate), ShouldBeTrue)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("bangumi.access_token"), ShouldEqual, "bangumi_access_token")
		})

		Convey("Field.Env should carry the application prefix", func() {
			field := Default[key.BangumiAccessToken]
			So(field.Env(), ShouldEqual, "BGMSYNC_BANGUMI_ACCESS_TOKEN")
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a configured environment", t, func() {
		So(Setup(), ShouldBeNil)
		original := tokenFallback
		Reset(func() {
			tokenFallback = original
			viper.Set(key.BangumiAccessToken, "")
			viper.Set(key.EmbyHost, "")
			viper.Set(key.NetworkTimeout, 30)
		})

		Convey("Load resolves defaults once into a typed snapshot", func() {
			tokenFallback = func() (string, error) { return "", errors.New("no keyring") }
			viper.Set(key.EmbyHost, " http://emby.local:8096/ ")
			viper.Set(key.NetworkTimeout, 12)

			s := Load()
			So(s.Bangumi.Private, ShouldBeTrue)
			So(s.Bangumi.Genres, ShouldEqual, "动画|anime")
			So(s.Bangumi.APIURL, ShouldEqual, "https://api.bgm.tv")
			So(s.Bangumi.AccessToken, ShouldBeEmpty)
			So(s.Emby.Host, ShouldEqual, "http://emby.local:8096")
			So(s.Timeout, ShouldEqual, 12*time.Second)
		})

		Convey("An empty access token falls back to the keyring", func() {
			tokenFallback = func() (string, error) { return "from-keyring\n", nil }
			So(Load().Bangumi.AccessToken, ShouldEqual, "from-keyring")
		})

		Convey("A configured access token wins over the keyring", func() {
			tokenFallback = func() (string, error) { return "from-keyring", nil }
			viper.Set(key.BangumiAccessToken, "from-config")
			So(Load().Bangumi.AccessToken, ShouldEqual, "from-config")
		})
	})
}
