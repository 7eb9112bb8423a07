package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jofsarpur/jofsarpur/filesystem"
	"github.com/jofsarpur/jofsarpur/where"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given JSON logging", t, func() {
		So(Setup(Options{Level: "debug", JSON: true}), ShouldBeNil)
		var buf bytes.Buffer
		SetOutput(&buf)

		Convey("Entries carry the run id and extra fields", func() {
			WithFields(Fields{"sid": "30228"}).Info("fetching")

			var decoded map[string]any
			So(json.Unmarshal(buf.Bytes(), &decoded), ShouldBeNil)
			So(decoded["run"], ShouldEqual, RunID())
			So(decoded["sid"], ShouldEqual, "30228")
			So(decoded["msg"], ShouldEqual, "fetching")
		})

		Convey("A new Setup starts a new run", func() {
			first := RunID()
			So(Setup(Options{Level: "info"}), ShouldBeNil)
			So(RunID(), ShouldNotEqual, first)
		})
	})

	Convey("Given an unknown level", t, func() {
		So(Setup(Options{Level: "chatty"}), ShouldBeNil)
		var buf bytes.Buffer
		SetOutput(&buf)

		Convey("Info is used", func() {
			Debug("hidden")
			So(buf.Len(), ShouldEqual, 0)
			Info("shown")
			So(buf.String(), ShouldContainSubstring, "shown")
		})
	})

	Convey("Given file logging", t, func() {
		t.Setenv(where.EnvConfigPath, "/config")
		So(Setup(Options{Level: "info", Write: true}), ShouldBeNil)

		Convey("A daily file is created", func() {
			files := lo.Must(filesystem.API().ReadDir(where.Logs()))
			So(len(files), ShouldEqual, 1)
		})
	})
}
