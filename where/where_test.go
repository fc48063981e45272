package where

import (
	"os"
	"strings"
	"testing"

	"github.com/sapphirebluet/Movix/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWhere(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	Convey("Where", t, func() {
		Convey("Config honors the env override", func() {
			So(os.Setenv(EnvConfigPath, "/custom/movix"), ShouldBeNil)
			defer os.Unsetenv(EnvConfigPath)

			So(Config(), ShouldEqual, "/custom/movix")
		})

		Convey("Logs lives under Config", func() {
			So(os.Setenv(EnvConfigPath, "/custom/movix"), ShouldBeNil)
			defer os.Unsetenv(EnvConfigPath)

			So(strings.HasPrefix(Logs(), Config()), ShouldBeTrue)
		})

		Convey("Progress points at a json file", func() {
			So(strings.HasSuffix(Progress(), "playback_progress.json"), ShouldBeTrue)
		})
	})
}
