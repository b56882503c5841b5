package bangumi

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/anisan-cli/bgmsync/source"
	"github.com/metafates/gache"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	. "github.com/smartystreets/goconvey/convey"
)

var errDiskFull = errors.New("disk full")

// brokenFs fails every gache file operation.
type brokenFs struct{}

func (brokenFs) OpenFile(string, int, os.FileMode) (io.ReadWriteCloser, error) {
	return nil, errDiskFull
}

func (brokenFs) MkdirAll(string, os.FileMode) error {
	return errDiskFull
}

func TestCacheWriteFailures(t *testing.T) {
	hook := logtest.NewGlobal()
	defer logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))

	Convey("A failing cache write is logged and the search still succeeds", t, func() {
		hook.Reset()
		fake := &fakeBangumi{collected: map[int]collectionRequest{}}
		srv := httptest.NewServer(fake.handler())
		Reset(srv.Close)

		c := New(Options{BaseURL: srv.URL, HTTPClient: srv.Client()})
		c.subjects = &cacher[int, *subject]{
			internal: gache.New[*cacheData[int, *subject]](&gache.Options{
				Path:       "bangumi_subjects.json",
				FileSystem: brokenFs{},
			}),
		}

		found, err := c.Search(context.Background(), &source.Series{OriginalTitle: "葬送のフリーレン"})
		So(err, ShouldBeNil)
		So(found, ShouldHaveLength, 1)
		So(found[0].ID, ShouldEqual, 100)

		warned := false
		for _, entry := range hook.AllEntries() {
			if entry.Level == logrus.WarnLevel && strings.HasPrefix(entry.Message, "bangumi cache: ") {
				warned = strings.Contains(entry.Message, errDiskFull.Error())
			}
		}
		So(warned, ShouldBeTrue)
	})
}
