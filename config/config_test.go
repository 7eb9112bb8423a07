package config

import (
	"errors"
	"testing"
	"time"

	"github.com/jofsarpur/jofsarpur/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

const sample = `
[global]
download_directory = "/tmp/RUV"

[30228]
filenames = "{title}/S01E{episode_number:02d}.mp4"

[31648]
title = "Hvolpasveitin"
filenames = "{title}/{episode_title}.mp4"
exception-aey7p3 = "{title}/Special.mp4"

[1001]
filenames = "{title}/{pid}.mp4"
`

func TestParse(t *testing.T) {
	Convey("Given a valid configuration", t, func() {
		cfg, err := Parse([]byte(sample))
		So(err, ShouldBeNil)

		Convey("Global settings are read", func() {
			So(cfg.Global.DownloadDirectory, ShouldEqual, "/tmp/RUV")
		})

		Convey("Unset global settings take their defaults", func() {
			So(cfg.Global.FFmpeg, ShouldEqual, "ffmpeg")
			So(cfg.Global.RequestTimeout, ShouldEqual, time.Minute)
			So(cfg.Global.HighestVariant, ShouldBeFalse)
			So(cfg.Global.LogLevel, ShouldEqual, "info")
		})

		Convey("Series keep the order of the file", func() {
			So(cfg.SIDs(), ShouldResemble, []string{"30228", "31648", "1001"})
		})

		Convey("A title override is optional", func() {
			So(cfg.Series[0].Title.IsPresent(), ShouldBeFalse)
			So(cfg.Series[1].Title.MustGet(), ShouldEqual, "Hvolpasveitin")
		})

		Convey("Exceptions replace the template for their episode only", func() {
			s := cfg.Series[1]
			So(s.Template("aey7p3"), ShouldEqual, "{title}/Special.mp4")
			So(s.Template("other"), ShouldEqual, "{title}/{episode_title}.mp4")
		})
	})

	Convey("Configuration errors are fatal", t, func() {
		Convey("Missing [global]", func() {
			_, err := Parse([]byte("[30228]\nfilenames = \"{pid}.mp4\"\n"))
			So(errors.Is(err, ErrMissingGlobal), ShouldBeTrue)
		})

		Convey("Missing download_directory", func() {
			_, err := Parse([]byte("[global]\n[30228]\nfilenames = \"{pid}.mp4\"\n"))
			So(errors.Is(err, ErrMissingDownloadDirectory), ShouldBeTrue)
		})

		Convey("Relative download_directory", func() {
			_, err := Parse([]byte("[global]\ndownload_directory = \"videos\"\n[30228]\nfilenames = \"{pid}.mp4\"\n"))
			So(errors.Is(err, ErrRelativeDownloadDirectory), ShouldBeTrue)
		})

		Convey("No series", func() {
			_, err := Parse([]byte("[global]\ndownload_directory = \"/tmp\"\n"))
			So(errors.Is(err, ErrNoSeries), ShouldBeTrue)
		})

		Convey("Series without filenames", func() {
			_, err := Parse([]byte("[global]\ndownload_directory = \"/tmp\"\n[30228]\ntitle = \"x\"\n"))
			So(errors.Is(err, ErrMissingFilenames), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "30228")
		})

		Convey("Non-string template", func() {
			_, err := Parse([]byte("[global]\ndownload_directory = \"/tmp\"\n[30228]\nfilenames = 4\n"))
			So(err, ShouldNotBeNil)
		})

		Convey("Timeouts need a unit and must be positive", func() {
			for _, value := range []string{"30", `"30"`, `"-5s"`, `"0s"`, `"soon"`} {
				doc := "[global]\ndownload_directory = \"/tmp\"\nrequest_timeout = " + value + "\n[30228]\nfilenames = \"{pid}.mp4\"\n"
				_, err := Parse([]byte(doc))
				So(errors.Is(err, ErrInvalidRequestTimeout), ShouldBeTrue)
			}
		})

		Convey("A timeout with a unit is accepted", func() {
			cfg, err := Parse([]byte("[global]\ndownload_directory = \"/tmp\"\nrequest_timeout = \"30s\"\n[30228]\nfilenames = \"{pid}.mp4\"\n"))
			So(err, ShouldBeNil)
			So(cfg.Global.RequestTimeout, ShouldEqual, 30*time.Second)
		})

		Convey("Malformed TOML", func() {
			_, err := Parse([]byte("[global\n"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestEnvOverrides(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		t.Setenv("JOFSARPUR_GLOBAL_FFMPEG", "/opt/ffmpeg/bin/ffmpeg")
		t.Setenv("JOFSARPUR_GLOBAL_REQUEST_TIMEOUT", "15s")

		cfg, err := Parse([]byte(sample))
		So(err, ShouldBeNil)
		So(cfg.Global.FFmpeg, ShouldEqual, "/opt/ffmpeg/bin/ffmpeg")
		So(cfg.Global.RequestTimeout, ShouldEqual, 15*time.Second)
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a configuration file", t, func() {
		filesystem.SetMemMapFs()
		So(filesystem.API().WriteFile("/etc/jofsarpur.toml", []byte(sample), 0o644), ShouldBeNil)

		Convey("It is loaded", func() {
			cfg, err := Load("/etc/jofsarpur.toml")
			So(err, ShouldBeNil)
			So(len(cfg.Series), ShouldEqual, 3)
			So(cfg.Path, ShouldEqual, "/etc/jofsarpur.toml")
		})

		Convey("A missing file is reported", func() {
			_, err := Load("/etc/missing.toml")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestDefault(t *testing.T) {
	Convey("Every default has an environment variable and a description", t, func() {
		for _, field := range Default {
			So(field.Env(), ShouldStartWith, "JOFSARPUR_GLOBAL_")
			So(field.Description, ShouldNotBeEmpty)
		}
	})

	Convey("EnvKeyReplacer should convert dots to underscores", t, func() {
		So(EnvKeyReplacer.Replace("global.log_level"), ShouldEqual, "global_log_level")
	})
}
