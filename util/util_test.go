package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestFormatTime(t *testing.T) {
	Convey("FormatTime", t, func() {
		So(FormatTime(0), ShouldEqual, "0:00")
		So(FormatTime(65), ShouldEqual, "1:05")
		So(FormatTime(3671), ShouldEqual, "1:01:11")
	})
}
