package integration

import (
	"context"
	"errors"
	"time"

	"github.com/anisan-cli/bgmsync/source"
)

var errBoom = errors.New("boom")

type fakeMedia struct {
	items       map[string]*source.Item
	series      map[string]*source.Series
	itemCalls   int
	seriesCalls int
}

func (f *fakeMedia) Item(_ context.Context, id string) (*source.Item, error) {
	f.itemCalls++
	item, ok := f.items[id]
	if !ok {
		return nil, errBoom
	}
	return item, nil
}

func (f *fakeMedia) Series(_ context.Context, id string) (*source.Series, error) {
	f.seriesCalls++
	series, ok := f.series[id]
	if !ok {
		return nil, errBoom
	}
	return series, nil
}

type markCall struct {
	subjectID, episodeID int
}

type fakeTracking struct {
	candidates []*source.Subject
	searchErr  error
	ratio      float64
	mapping    *source.Mapping
	failAt     int
	user       *source.User

	calls    int
	resolved []int
	marks    []markCall
}

func (f *fakeTracking) Search(_ context.Context, _ *source.Series) ([]*source.Subject, error) {
	f.calls++
	return f.candidates, f.searchErr
}

func (f *fakeTracking) TitleRatio(_ *source.Series, _ *source.Subject) float64 {
	return f.ratio
}

func (f *fakeTracking) ResolveSeasonEpisodes(_ context.Context, _, _ int, episodes []int) (*source.Mapping, error) {
	f.calls++
	f.resolved = episodes
	if f.mapping == nil {
		return &source.Mapping{}, nil
	}
	return f.mapping, nil
}

func (f *fakeTracking) MarkWatched(_ context.Context, subjectID, episodeID int) error {
	f.calls++
	if f.failAt >= 0 && len(f.marks) == f.failAt {
		return errBoom
	}
	f.marks = append(f.marks, markCall{subjectID, episodeID})
	return nil
}

func (f *fakeTracking) Me(_ context.Context) (*source.User, error) {
	f.calls++
	if f.user == nil {
		return nil, errBoom
	}
	return f.user, nil
}

func newFakes() (*fakeMedia, *fakeTracking) {
	media := &fakeMedia{
		items: map[string]*source.Item{
			"ep3": {ID: "ep3", Type: source.TypeEpisode, SeasonNumber: 1, EpisodeNumber: 3, SeriesID: "S1"},
			"ep4": {ID: "ep4", Type: source.TypeEpisode, SeasonNumber: 1, EpisodeNumber: 4, SeriesID: "S1"},
		},
		series: map[string]*source.Series{
			"S1": {
				ID:            "S1",
				Title:         "葬送的芙莉莲",
				OriginalTitle: "葬送のフリーレン",
				PremiereDate:  time.Date(2023, 9, 29, 0, 0, 0, 0, time.UTC),
				Genres:        []string{"Anime"},
			},
		},
	}
	tracking := &fakeTracking{
		candidates: []*source.Subject{{ID: 400, Name: "葬送のフリーレン"}, {ID: 401, Name: "other"}},
		ratio:      0.8,
		mapping:    &source.Mapping{SeasonID: 400, EpisodeIDs: []int{1003}},
		failAt:     -1,
		user:       &source.User{ID: 7, Username: "alice"},
	}
	return media, tracking
}
