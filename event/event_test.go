package event

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/anisan-cli/bgmsync/source"
	. "github.com/smartystreets/goconvey/convey"
)

const payload = `[
  {"server": "emby", "scheme": "http", "netloc": "192.168.1.2:8096", "api_key": "k", "user_id": "u",
   "Id": "101", "Type": "Episode", "ParentIndexNumber": 1, "index": 3, "SeriesId": "S1"},
  {"server": "emby", "scheme": "http", "netloc": "192.168.1.2:8096", "api_key": "k", "user_id": "u",
   "Id": "102", "Type": "Episode", "ParentIndexNumber": 1, "index": 4, "SeriesId": "S1"}
]`

func TestDecode(t *testing.T) {
	Convey("Decode", t, func() {
		Convey("reads an array payload in order", func() {
			episodes, err := Decode(strings.NewReader(payload))
			So(err, ShouldBeNil)
			So(episodes, ShouldHaveLength, 2)
			So(episodes[0].Host(), ShouldEqual, "http://192.168.1.2:8096")
			So(episodes[1].Index, ShouldEqual, 4)
		})

		Convey("reads a single object payload", func() {
			episodes, err := Decode(strings.NewReader(`{"server":"jellyfin","Type":"Episode","ParentIndexNumber":2,"index":1,"SeriesId":"S9"}`))
			So(err, ShouldBeNil)
			So(episodes, ShouldHaveLength, 1)
			So(episodes[0].Supported(), ShouldBeTrue)
		})

		Convey("rejects empty payloads", func() {
			_, err := Decode(strings.NewReader("  "))
			So(err, ShouldEqual, ErrEmpty)

			_, err = Decode(strings.NewReader("[]"))
			So(err, ShouldEqual, ErrEmpty)
		})

		Convey("rejects malformed JSON", func() {
			_, err := Decode(strings.NewReader("[{"))
			So(err, ShouldNotBeNil)
		})

		Convey("rejects null episodes", func() {
			_, err := Decode(strings.NewReader("null"))
			So(err, ShouldEqual, ErrEmpty)

			for _, body := range []string{"[null]", `[{"Type":"Episode","index":1}, null]`} {
				episodes, err := Decode(strings.NewReader(body))
				So(err, ShouldNotBeNil)
				So(episodes, ShouldBeNil)
			}
		})
	})
}

func TestEpisode(t *testing.T) {
	Convey("Episode", t, func() {
		e := &Episode{Server: "Emby", Netloc: "media.lan/", Type: "Episode", ID: "7", ParentIndexNumber: 1, Index: 3, SeriesID: "S1"}

		Convey("unifies the payload fields into an Item", func() {
			So(e.Item(), ShouldResemble, &source.Item{
				ID:            "7",
				Type:          source.TypeEpisode,
				SeasonNumber:  1,
				EpisodeNumber: 3,
				SeriesID:      "S1",
			})
		})

		Convey("defaults the scheme to http", func() {
			So(e.Host(), ShouldEqual, "http://media.lan")
		})

		Convey("supports Emby-compatible servers only", func() {
			So(e.Supported(), ShouldBeTrue)
			So((&Episode{Server: ServerPlex}).Supported(), ShouldBeFalse)
			So((&Episode{}).Supported(), ShouldBeFalse)
		})
	})
}

func TestSchema(t *testing.T) {
	Convey("Schema describes an array of episodes", t, func() {
		data, err := json.Marshal(Schema())
		So(err, ShouldBeNil)
		So(string(data), ShouldContainSubstring, `"array"`)
		So(string(data), ShouldContainSubstring, "ParentIndexNumber")
	})
}
