package episode

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseNumbering(t *testing.T) {
	Convey("ParseNumbering", t, func() {
		Convey("Number and count", func() {
			number, count := ParseNumbering("Þáttur 4 af 10")
			So(number.MustGet(), ShouldEqual, 4)
			So(count.MustGet(), ShouldEqual, 10)
		})

		Convey("Number larger than count is kept as-is", func() {
			number, count := ParseNumbering("Þáttur 12 af 10")
			So(number.MustGet(), ShouldEqual, 12)
			So(count.MustGet(), ShouldEqual, 10)
		})

		Convey("Chapter form has no count", func() {
			number, count := ParseNumbering("3. kafli")
			So(number.MustGet(), ShouldEqual, 3)
			So(count.IsPresent(), ShouldBeFalse)
		})

		Convey("Anything else has no numbering", func() {
			number, count := ParseNumbering("Jólatónleikar")
			So(number.IsPresent(), ShouldBeFalse)
			So(count.IsPresent(), ShouldBeFalse)
		})
	})
}

func TestRecord(t *testing.T) {
	Convey("Record", t, func() {
		r := Record{SID: "30228", PID: "abc123", Title: "Kúlugúbbarnir"}

		Convey("String", func() {
			So(r.String(), ShouldEqual, "Kúlugúbbarnir 30228:abc123")
		})

		Convey("WithStreamURL leaves the original untouched", func() {
			resolved := r.WithStreamURL("https://example.com/master.m3u8")
			So(resolved.StreamURL, ShouldEqual, "https://example.com/master.m3u8")
			So(r.StreamURL, ShouldBeEmpty)
		})
	})
}
