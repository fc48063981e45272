package progress

import (
	"testing"

	"github.com/sapphirebluet/Movix/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStore(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	Convey("Store", t, func() {
		store := NewStore()

		Convey("Reads empty when nothing was recorded", func() {
			_, ok := store.Get(7)
			So(ok, ShouldBeFalse)
			So(store.All(), ShouldBeEmpty)
		})

		Convey("Ignores positions at or below the floor", func() {
			So(store.Set(7, 3.2), ShouldBeNil)
			So(store.Set(7, MinRecordable), ShouldBeNil)

			_, ok := store.Get(7)
			So(ok, ShouldBeFalse)
		})

		Convey("Persists positions above the floor and loads them back", func() {
			So(store.Set(7, 42.5), ShouldBeNil)

			seconds, ok := store.Get(7)
			So(ok, ShouldBeTrue)
			So(seconds, ShouldEqual, 42.5)

			// A fresh store reads the same file.
			seconds, ok = NewStore().Get(7)
			So(ok, ShouldBeTrue)
			So(seconds, ShouldEqual, 42.5)
		})

		Convey("A low position never overwrites a recorded one", func() {
			So(store.Set(9, 120), ShouldBeNil)
			So(store.Set(9, 2), ShouldBeNil)

			seconds, _ := store.Get(9)
			So(seconds, ShouldEqual, 120)
		})

		Convey("Remove deletes the record", func() {
			So(store.Set(11, 30), ShouldBeNil)
			So(store.Remove(11), ShouldBeNil)

			_, ok := store.Get(11)
			So(ok, ShouldBeFalse)
		})
	})
}
