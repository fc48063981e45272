package player

import (
	"errors"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"

	"github.com/sapphirebluet/Movix/filesystem"
	"github.com/sapphirebluet/Movix/key"
	"github.com/sapphirebluet/Movix/progress"
)

func newTestPlayer(open Opener, snk sink, store *progress.Store) *Player {
	return &Player{
		engine: &Engine{
			width:   2,
			height:  2,
			open:    open,
			newSink: func() (sink, error) { return snk, nil },
		},
		progress: store,
		volume:   1,
	}
}

func TestPlayerControls(t *testing.T) {
	Convey("Play and Stop track the current media", t, func() {
		sess := newChanSession(0)
		p := newTestPlayer(func(url string, w, h int) (Session, error) {
			return sess, nil
		}, &stubSink{}, nil)

		_, ok := p.CurrentMediaID()
		So(ok, ShouldBeFalse)
		So(p.IsPlaying(), ShouldBeFalse)
		So(p.HasPipeline(), ShouldBeFalse)

		p.Play(42, "https://delivery.example/v.mp4")

		id, ok := p.CurrentMediaID()
		So(ok, ShouldBeTrue)
		So(id, ShouldEqual, 42)
		So(p.IsPlaying(), ShouldBeTrue)
		So(p.HasPipeline(), ShouldBeTrue)

		sess.finish()
		p.Stop()

		_, ok = p.CurrentMediaID()
		So(ok, ShouldBeFalse)
		So(p.IsPlaying(), ShouldBeFalse)
		So(p.HasPipeline(), ShouldBeFalse)
	})

	Convey("Pause and resume flip the playing flag", t, func() {
		sess := newChanSession(0)
		snk := &stubSink{}
		p := newTestPlayer(func(url string, w, h int) (Session, error) {
			return sess, nil
		}, snk, nil)

		p.Play(1, "url")

		p.TogglePlayPause()
		So(p.IsPlaying(), ShouldBeFalse)
		So(eventually(snk.Paused), ShouldBeTrue)

		p.TogglePlayPause()
		So(p.IsPlaying(), ShouldBeTrue)
		So(eventually(func() bool { return !snk.Paused() }), ShouldBeTrue)

		Convey("Resume without a pipeline stays stopped", func() {
			sess.finish()
			p.Stop()
			p.Resume()
			So(p.IsPlaying(), ShouldBeFalse)
		})

		sess.finish()
		p.Stop()
	})

	Convey("Volume is clamped and mute overrides it", t, func() {
		sess := newChanSession(0)
		snk := &stubSink{}
		p := newTestPlayer(func(url string, w, h int) (Session, error) {
			return sess, nil
		}, snk, nil)

		p.Play(1, "url")

		p.SetVolume(1.7)
		So(p.Volume(), ShouldEqual, 1)
		p.SetVolume(-0.5)
		So(p.Volume(), ShouldEqual, 0)

		p.SetVolume(0.6)
		So(eventually(func() bool { return snk.Gain() == 0.6 }), ShouldBeTrue)

		p.ToggleMute()
		So(p.IsMuted(), ShouldBeTrue)
		So(p.Volume(), ShouldEqual, 0.6)
		So(eventually(func() bool { return snk.Gain() == 0 }), ShouldBeTrue)

		p.ToggleMute()
		So(p.IsMuted(), ShouldBeFalse)
		So(eventually(func() bool { return snk.Gain() == 0.6 }), ShouldBeTrue)

		sess.finish()
		p.Stop()
	})

	Convey("Seek requests are accepted without effect", t, func() {
		sess := newChanSession(0)
		p := newTestPlayer(func(url string, w, h int) (Session, error) {
			return sess, nil
		}, &stubSink{}, nil)

		p.Play(1, "url")
		sess.units <- videoUnit(0.001)
		So(eventually(func() bool { return p.Position() == 0.001 }), ShouldBeTrue)

		p.Seek(90)
		p.SeekRelative(-10)
		So(p.Position(), ShouldEqual, 0.001)

		sess.finish()
		p.Stop()
	})

	Convey("Replay restarts the last media from the top", t, func() {
		var opened atomic.Int64
		p := newTestPlayer(func(url string, w, h int) (Session, error) {
			opened.Add(1)
			s := newChanSession(0)
			s.finish()
			return s, nil
		}, &stubSink{}, nil)

		p.Replay()
		So(opened.Load(), ShouldEqual, 0)

		p.Play(5, "url")
		So(eventually(p.CheckEnded), ShouldBeTrue)
		So(p.IsPlaying(), ShouldBeFalse)

		p.Replay()
		So(opened.Load(), ShouldEqual, 2)
		So(p.IsPlaying(), ShouldBeTrue)

		id, ok := p.CurrentMediaID()
		So(ok, ShouldBeTrue)
		So(id, ShouldEqual, 5)

		p.Stop()
	})

	Convey("A dead link surfaces through CheckEnded", t, func() {
		p := newTestPlayer(func(url string, w, h int) (Session, error) {
			return nil, errors.New("404")
		}, &stubSink{}, nil)

		p.Play(3, "https://gone.example/v.mp4")
		So(eventually(p.CheckEnded), ShouldBeTrue)
		So(p.IsPlaying(), ShouldBeFalse)
		p.Stop()
	})
}

func TestPlayerProgress(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	viper.Set(key.PlayerSaveProgress, true)
	defer viper.Set(key.PlayerSaveProgress, false)

	Convey("SaveProgress persists the position of the playing media", t, func() {
		store := progress.NewStore()
		sess := newChanSession(0)
		p := newTestPlayer(func(url string, w, h int) (Session, error) {
			return sess, nil
		}, &stubSink{}, store)

		p.Play(21, "url")
		sess.units <- videoUnit(33.5)
		So(eventually(func() bool { return p.Position() == 33.5 }), ShouldBeTrue)

		p.SaveProgress()

		seconds, ok := p.StoredPosition(21)
		So(ok, ShouldBeTrue)
		So(seconds, ShouldEqual, 33.5)

		sess.finish()
		p.Stop()
	})

	Convey("Positions inside the first seconds are not recorded", t, func() {
		store := progress.NewStore()
		sess := newChanSession(0)
		p := newTestPlayer(func(url string, w, h int) (Session, error) {
			return sess, nil
		}, &stubSink{}, store)

		p.Play(22, "url")
		sess.units <- videoUnit(2.5)
		So(eventually(func() bool { return p.Position() == 2.5 }), ShouldBeTrue)

		p.SaveProgress()

		_, ok := p.StoredPosition(22)
		So(ok, ShouldBeFalse)

		sess.finish()
		p.Stop()
	})

	Convey("A player without a store never records", t, func() {
		sess := newChanSession(0)
		p := newTestPlayer(func(url string, w, h int) (Session, error) {
			return sess, nil
		}, &stubSink{}, nil)

		p.Play(23, "url")
		p.SaveProgress()

		_, ok := p.StoredPosition(23)
		So(ok, ShouldBeFalse)

		sess.finish()
		p.Stop()
	})
}
