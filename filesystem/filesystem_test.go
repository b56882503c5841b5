package filesystem

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBackend(t *testing.T) {
	Convey("Filesystem backend", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("GacheFs writes through the active backend", func() {
			SetMemMapFs()
			fs := GacheFs{}

			So(fs.MkdirAll("/cache", os.ModePerm), ShouldBeNil)
			f, err := fs.OpenFile("/cache/subjects.json", os.O_CREATE|os.O_WRONLY, 0o644)
			So(err, ShouldBeNil)
			_, err = f.Write([]byte("{}"))
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)

			exists, err := API().Exists("/cache/subjects.json")
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})
	})
}
