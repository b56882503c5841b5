package emby

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anisan-cli/bgmsync/source"
	. "github.com/smartystreets/goconvey/convey"
)

func newServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/Users/u1/Items/ep3", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Emby-Token") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"Id":"ep3","Name":"Episode 3","Type":"Episode","ParentIndexNumber":1,"IndexNumber":3,"SeriesId":"S1"}`))
	})
	mux.HandleFunc("/Users/u1/Items/S1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Id":"S1","Name":"葬送的芙莉莲","OriginalTitle":"葬送のフリーレン","Type":"Series",
			"PremiereDate":"2023-09-29T00:00:00.0000000Z","Genres":["Anime","Fantasy"]}`))
	})
	return httptest.NewServer(mux)
}

func TestNew(t *testing.T) {
	Convey("New validates the connection details", t, func() {
		_, err := New(Options{APIKey: "k", UserID: "u"})
		So(err, ShouldNotBeNil)

		_, err = New(Options{Host: "http://h", UserID: "u"})
		So(err, ShouldNotBeNil)

		_, err = New(Options{Host: "http://h", APIKey: "k"})
		So(err, ShouldNotBeNil)

		c, err := New(Options{Host: "http://h:8096/emby/", APIKey: "k", UserID: "u"})
		So(err, ShouldBeNil)
		So(c.host, ShouldEqual, "http://h:8096")
	})
}

func TestClient(t *testing.T) {
	Convey("Given an Emby server", t, func() {
		srv := newServer()
		Reset(srv.Close)

		c, err := New(Options{Host: srv.URL, APIKey: "secret", UserID: "u1", HTTPClient: srv.Client()})
		So(err, ShouldBeNil)
		ctx := context.Background()

		Convey("Item maps the episode numbering", func() {
			item, err := c.Item(ctx, "ep3")
			So(err, ShouldBeNil)
			So(item, ShouldResemble, &source.Item{
				ID:            "ep3",
				Name:          "Episode 3",
				Type:          source.TypeEpisode,
				SeasonNumber:  1,
				EpisodeNumber: 3,
				SeriesID:      "S1",
			})
		})

		Convey("Series maps titles, premiere date and genres", func() {
			series, err := c.Series(ctx, "S1")
			So(err, ShouldBeNil)
			So(series.Title, ShouldEqual, "葬送的芙莉莲")
			So(series.OriginalTitle, ShouldEqual, "葬送のフリーレン")
			So(series.PremiereDate, ShouldEqual, time.Date(2023, 9, 29, 0, 0, 0, 0, time.UTC))
			So(series.Genres, ShouldResemble, []string{"Anime", "Fantasy"})
		})

		Convey("Error statuses surface as errors", func() {
			_, err := c.Item(ctx, "missing")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "404")
		})

		Convey("A wrong key is reported", func() {
			bad, _ := New(Options{Host: srv.URL, APIKey: "wrong", UserID: "u1", HTTPClient: srv.Client()})
			_, err := bad.Item(ctx, "ep3")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "401")
		})
	})
}
