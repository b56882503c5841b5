package bangumi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/anisan-cli/bgmsync/constant"
	"github.com/anisan-cli/bgmsync/filesystem"
	"github.com/anisan-cli/bgmsync/source"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

// fakeBangumi serves a small franchise:
//
//	100 season one (TV, sort 1-3) -> 150 movie -> 200 season two (TV, sort 1-2) -> 250 second cour (TV, sort 3-4)
type fakeBangumi struct {
	mu        sync.Mutex
	keywords  []string
	collected map[int]collectionRequest
	watched   []int
	episodes  int
	agent     string
	auth      string
}

func (f *fakeBangumi) handler() http.Handler {
	subjects := map[int]subject{
		100: {ID: 100, Type: 2, Name: "葬送のフリーレン", NameCN: "葬送的芙莉莲", Date: "2023-09-29", Platform: "TV"},
		150: {ID: 150, Type: 2, Name: "劇場版", Date: "2024-03-01", Platform: "剧场版"},
		200: {ID: 200, Type: 2, Name: "葬送のフリーレン 第2期", Date: "2026-01-01", Platform: "TV"},
		250: {ID: 250, Type: 2, Name: "葬送のフリーレン 第2期 第2クール", Date: "2026-04-01", Platform: "TV"},
	}
	relations := map[int][]relation{
		100: {{ID: 150, Type: 2, Relation: "续集"}, {ID: 900, Type: 1, Relation: "续集"}},
		150: {{ID: 200, Type: 2, Relation: "续集"}},
		200: {{ID: 250, Type: 2, Relation: "续集"}},
	}
	episodes := map[int][]episode{
		100: {{ID: 1001, Sort: 1, Ep: 1}, {ID: 1002, Sort: 2, Ep: 2}, {ID: 1003, Sort: 3, Ep: 3}},
		200: {{ID: 2001, Sort: 1, Ep: 1}, {ID: 2002, Sort: 2, Ep: 2}},
		250: {{ID: 2501, Sort: 3, Ep: 1}, {ID: 2502, Sort: 4, Ep: 2}},
	}

	id := func(r *http.Request) int {
		n, _ := strconv.Atoi(r.PathValue("id"))
		return n
	}
	write := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v0/me", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.agent, f.auth = r.UserAgent(), r.Header.Get("Authorization")
		f.mu.Unlock()
		write(w, user{ID: 7, Username: "alice", Nickname: "Alice"})
	})
	mux.HandleFunc("POST /v0/search/subjects", func(w http.ResponseWriter, r *http.Request) {
		var body searchRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.keywords = append(f.keywords, body.Keyword)
		f.mu.Unlock()

		if body.Keyword != "葬送のフリーレン" {
			write(w, searchResponse{})
			return
		}
		s := subjects[100]
		write(w, searchResponse{Total: 1, Data: []*subject{&s}})
	})
	mux.HandleFunc("GET /v0/subjects/{id}", func(w http.ResponseWriter, r *http.Request) {
		s, ok := subjects[id(r)]
		if !ok {
			http.NotFound(w, r)
			return
		}
		write(w, s)
	})
	mux.HandleFunc("GET /v0/subjects/{id}/subjects", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := subjects[id(r)]; !ok {
			http.NotFound(w, r)
			return
		}
		write(w, append([]relation{}, relations[id(r)]...))
	})
	mux.HandleFunc("GET /v0/episodes", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.episodes++
		f.mu.Unlock()
		n, _ := strconv.Atoi(r.URL.Query().Get("subject_id"))
		eps := episodes[n]
		page := make([]*episode, 0, len(eps))
		for i := range eps {
			page = append(page, &eps[i])
		}
		write(w, episodePage{Total: len(page), Limit: episodePageSize, Data: page})
	})
	mux.HandleFunc("GET /v0/users/alice/collections/{id}", func(w http.ResponseWriter, r *http.Request) {
		if id(r) == 200 {
			write(w, collection{SubjectID: 200, Type: collectionDone})
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		if req, ok := f.collected[id(r)]; ok {
			write(w, collection{SubjectID: id(r), Type: req.Type, Private: req.Private})
			return
		}
		http.NotFound(w, r)
	})
	mux.HandleFunc("POST /v0/users/-/collections/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body collectionRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.collected[id(r)] = body
		f.mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("PUT /v0/users/-/collections/-/episodes/{id}", func(w http.ResponseWriter, r *http.Request) {
		if id(r) == 4040 {
			http.NotFound(w, r)
			return
		}
		f.mu.Lock()
		f.watched = append(f.watched, id(r))
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func TestClient(t *testing.T) {
	Convey("Given a Bangumi API", t, func() {
		fake := &fakeBangumi{collected: map[int]collectionRequest{}}
		srv := httptest.NewServer(fake.handler())
		Reset(srv.Close)

		c := New(Options{BaseURL: srv.URL + "/", AccessToken: "tok", Private: true, HTTPClient: srv.Client()})
		ctx := context.Background()

		Convey("Me identifies the token owner with the required headers", func() {
			me, err := c.Me(ctx)
			So(err, ShouldBeNil)
			So(me, ShouldResemble, &source.User{ID: 7, Username: "alice", Nickname: "Alice"})
			So(fake.agent, ShouldEqual, constant.UserAgent)
			So(fake.auth, ShouldEqual, "Bearer tok")
		})

		Convey("Search tries the original title before the display title", func() {
			series := &source.Series{
				Title:         "Frieren",
				OriginalTitle: "葬送のフリーレン",
				PremiereDate:  time.Date(2023, 9, 29, 0, 0, 0, 0, time.UTC),
			}
			found, err := c.Search(ctx, series)
			So(err, ShouldBeNil)
			So(found, ShouldHaveLength, 1)
			So(found[0].ID, ShouldEqual, 100)
			So(fake.keywords, ShouldResemble, []string{"葬送のフリーレン"})

			Convey("and falls back when nothing matches", func() {
				found, err := c.Search(ctx, &source.Series{Title: "Frieren", OriginalTitle: "Unknown"})
				So(err, ShouldBeNil)
				So(found, ShouldBeEmpty)
				So(fake.keywords[1:], ShouldResemble, []string{"Unknown", "Frieren"})
			})
		})

		Convey("ResolveSeasonEpisodes", func() {
			Convey("Season one is the matched subject", func() {
				m, err := c.ResolveSeasonEpisodes(ctx, 100, 1, []int{2, 3})
				So(err, ShouldBeNil)
				So(m, ShouldResemble, &source.Mapping{SeasonID: 100, EpisodeIDs: []int{1002, 1003}})
			})

			Convey("Later seasons skip movies along the sequel chain", func() {
				m, err := c.ResolveSeasonEpisodes(ctx, 100, 2, []int{1})
				So(err, ShouldBeNil)
				So(m, ShouldResemble, &source.Mapping{SeasonID: 200, EpisodeIDs: []int{2001}})
			})

			Convey("Numbers past the first cour resolve in the continuation", func() {
				m, err := c.ResolveSeasonEpisodes(ctx, 100, 2, []int{3, 4})
				So(err, ShouldBeNil)
				So(m, ShouldResemble, &source.Mapping{SeasonID: 250, EpisodeIDs: []int{2501, 2502}})
			})

			Convey("Only the found prefix is returned", func() {
				m, err := c.ResolveSeasonEpisodes(ctx, 100, 1, []int{3, 9, 1})
				So(err, ShouldBeNil)
				So(m.EpisodeIDs, ShouldResemble, []int{1003})
			})

			Convey("Missing seasons and episodes give an empty mapping", func() {
				m, err := c.ResolveSeasonEpisodes(ctx, 100, 4, []int{1})
				So(err, ShouldBeNil)
				So(m.Empty(), ShouldBeTrue)

				m, err = c.ResolveSeasonEpisodes(ctx, 100, 1, []int{42})
				So(err, ShouldBeNil)
				So(m.Empty(), ShouldBeTrue)

				m, err = c.ResolveSeasonEpisodes(ctx, 100, 0, []int{1})
				So(err, ShouldBeNil)
				So(m.Empty(), ShouldBeTrue)
			})

			Convey("Unknown subjects are errors", func() {
				_, err := c.ResolveSeasonEpisodes(ctx, 999, 2, []int{1})
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("MarkWatched", func() {
			Convey("collects the subject privately before marking", func() {
				So(c.MarkWatched(ctx, 100, 1003), ShouldBeNil)
				So(fake.collected[100], ShouldResemble, collectionRequest{Type: collectionDoing, Private: true})
				So(fake.watched, ShouldResemble, []int{1003})

				So(c.MarkWatched(ctx, 100, 1002), ShouldBeNil)
				So(fake.collected, ShouldHaveLength, 1)
				So(fake.watched, ShouldResemble, []int{1003, 1002})
			})

			Convey("leaves finished subjects alone", func() {
				So(c.MarkWatched(ctx, 200, 2001), ShouldBeNil)
				So(fake.watched, ShouldBeEmpty)
			})

			Convey("reports rejected updates", func() {
				err := c.MarkWatched(ctx, 100, 4040)
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("A configured username skips /v0/me", func() {
			c := New(Options{BaseURL: srv.URL, Username: "alice", HTTPClient: srv.Client()})
			So(c.MarkWatched(ctx, 100, 1001), ShouldBeNil)
			So(fake.agent, ShouldBeEmpty)
		})
	})
}

func TestClientUnauthorized(t *testing.T) {
	Convey("Rejected tokens surface ErrUnauthorized", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		Reset(srv.Close)

		_, err := New(Options{BaseURL: srv.URL, HTTPClient: srv.Client()}).Me(context.Background())
		So(errors.Is(err, ErrUnauthorized), ShouldBeTrue)
	})
}

func TestCache(t *testing.T) {
	Convey("With caching enabled", t, func() {
		fake := &fakeBangumi{collected: map[int]collectionRequest{}}
		srv := httptest.NewServer(fake.handler())
		Reset(srv.Close)

		c := New(Options{BaseURL: srv.URL, Cache: true, HTTPClient: srv.Client()})
		ctx := context.Background()
		Reset(func() {
			_ = c.episodes.Delete(100)
			_ = c.subjects.Delete(100)
		})

		Convey("Episode listings are served from the cache", func() {
			_, err := c.ResolveSeasonEpisodes(ctx, 100, 1, []int{1})
			So(err, ShouldBeNil)
			_, err = c.ResolveSeasonEpisodes(ctx, 100, 1, []int{2})
			So(err, ShouldBeNil)
			So(fake.episodes, ShouldEqual, 1)
		})

		Convey("A cached listing missing the number is refreshed once", func() {
			_ = c.episodes.Set(100, []*episode{{ID: 1001, Sort: 1, Ep: 1}})
			m, err := c.ResolveSeasonEpisodes(ctx, 100, 1, []int{3})
			So(err, ShouldBeNil)
			So(m.EpisodeIDs, ShouldResemble, []int{1003})
			So(fake.episodes, ShouldEqual, 1)
		})

		Convey("A disabled cache never hits", func() {
			var none *cacher[int, *subject]
			So(none.Get(1).IsAbsent(), ShouldBeTrue)
			So(none.Set(1, &subject{}), ShouldBeNil)
		})
	})
}
