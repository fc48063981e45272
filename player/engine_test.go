package player

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type stubSink struct {
	mu     sync.Mutex
	gain   float64
	paused bool
	bytes  int
}

func (s *stubSink) Write(pcm []byte) {
	s.mu.Lock()
	s.bytes += len(pcm)
	s.mu.Unlock()
}

func (s *stubSink) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
}

func (s *stubSink) Resume() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
}

func (s *stubSink) SetGain(gain float64) {
	s.mu.Lock()
	s.gain = gain
	s.mu.Unlock()
}

func (s *stubSink) Drained() bool { return true }

func (s *stubSink) Close() {}

func (s *stubSink) Gain() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gain
}

func (s *stubSink) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *stubSink) Bytes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bytes
}

// chanSession feeds scripted units to the worker. Close the units channel to
// signal end of stream.
type chanSession struct {
	units    chan Unit
	duration float64
	finished atomic.Bool
	closed   atomic.Bool
}

func newChanSession(duration float64) *chanSession {
	return &chanSession{units: make(chan Unit, 16), duration: duration}
}

func (s *chanSession) finish() {
	if s.finished.CompareAndSwap(false, true) {
		close(s.units)
	}
}

func (s *chanSession) Duration() float64 { return s.duration }

// Next polls so the worker keeps servicing commands while no unit is
// scripted. An empty unit is skipped by the worker.
func (s *chanSession) Next() (Unit, error) {
	select {
	case u, ok := <-s.units:
		if !ok {
			return Unit{}, io.EOF
		}
		return u, nil
	default:
		time.Sleep(time.Millisecond)
		return Unit{}, nil
	}
}

func (s *chanSession) Close() { s.closed.Store(true) }

// floodSession produces frames as fast as the worker will take them.
type floodSession struct {
	calls  atomic.Int64
	closed atomic.Bool
}

func (s *floodSession) Duration() float64 { return 0 }

func (s *floodSession) Next() (Unit, error) {
	s.calls.Add(1)
	return Unit{Frame: testFrame(), PTS: 0}, nil
}

func (s *floodSession) Close() { s.closed.Store(true) }

func testFrame() *Frame {
	return &Frame{Width: 1, Height: 1, Data: []byte{0, 0, 0, 255}}
}

func videoUnit(pts float64) Unit {
	return Unit{Frame: testFrame(), PTS: pts}
}

func newTestEngine(open Opener, snk sink) *Engine {
	return &Engine{
		width:   2,
		height:  2,
		open:    open,
		newSink: func() (sink, error) { return snk, nil },
	}
}

func eventually(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestEngineLifecycle(t *testing.T) {
	Convey("Playing again tears the previous worker down first", t, func() {
		var opened atomic.Int64
		first := newChanSession(0)
		second := newChanSession(0)
		sessions := []*chanSession{first, second}

		e := newTestEngine(func(url string, w, h int) (Session, error) {
			return sessions[opened.Add(1)-1], nil
		}, &stubSink{})

		e.Play("one", 1)
		first.finish()
		e.Play("two", 1)

		So(opened.Load(), ShouldEqual, 2)
		So(first.closed.Load(), ShouldBeTrue)
		So(second.closed.Load(), ShouldBeFalse)

		second.finish()
		e.Stop()
		So(second.closed.Load(), ShouldBeTrue)
		So(e.Active(), ShouldBeFalse)
	})

	Convey("Stop on an idle engine is a no-op", t, func() {
		e := newTestEngine(nil, nil)
		e.Stop()
		So(e.Active(), ShouldBeFalse)
	})

	Convey("A failed open marks the engine ended", t, func() {
		e := newTestEngine(func(url string, w, h int) (Session, error) {
			return nil, errors.New("unreachable host")
		}, &stubSink{})

		e.Play("http://nowhere", 1)
		So(eventually(e.Ended), ShouldBeTrue)
		e.Stop()
	})

	Convey("A failed audio device marks the engine ended", t, func() {
		e := &Engine{
			open:    func(url string, w, h int) (Session, error) { return newChanSession(0), nil },
			newSink: func() (sink, error) { return nil, errors.New("no device") },
		}

		e.Play("anything", 1)
		So(eventually(e.Ended), ShouldBeTrue)
		e.Stop()
	})
}

func TestEngineBackpressure(t *testing.T) {
	Convey("A stalled consumer blocks the worker at the channel bound", t, func() {
		sess := &floodSession{}
		e := newTestEngine(func(url string, w, h int) (Session, error) {
			return sess, nil
		}, &stubSink{})

		e.Play("flood", 1)

		// The worker fills the buffer and parks on the next send.
		So(eventually(func() bool {
			return sess.calls.Load() == frameChannelDepth+1
		}), ShouldBeTrue)
		time.Sleep(50 * time.Millisecond)
		So(sess.calls.Load(), ShouldEqual, frameChannelDepth+1)

		Convey("and consuming a frame lets it advance by one", func() {
			So(e.RenderFrame(), ShouldNotBeNil)
			So(eventually(func() bool {
				return sess.calls.Load() == frameChannelDepth+2
			}), ShouldBeTrue)
		})

		e.Stop()
		So(sess.closed.Load(), ShouldBeTrue)
	})
}

func TestEnginePlayback(t *testing.T) {
	Convey("Position follows presentation stamps and duration the container", t, func() {
		sess := newChanSession(120.5)
		snk := &stubSink{}
		e := newTestEngine(func(url string, w, h int) (Session, error) {
			return sess, nil
		}, snk)

		e.Play("movie", 1)
		So(eventually(func() bool { return e.Duration() == 120.5 }), ShouldBeTrue)

		sess.units <- videoUnit(0.001)
		So(eventually(func() bool { return e.Position() == 0.001 }), ShouldBeTrue)
		So(e.RenderFrame(), ShouldNotBeNil)

		Convey("audio units are forwarded to the sink", func() {
			sess.units <- Unit{PCM: make([]byte, 1024)}
			So(eventually(func() bool { return snk.Bytes() == 1024 }), ShouldBeTrue)
		})

		Convey("the ended flag raises only after the stream is exhausted", func() {
			So(e.Ended(), ShouldBeFalse)
			sess.finish()
			So(eventually(e.Ended), ShouldBeTrue)
		})

		sess.finish()
		e.Stop()
	})

	Convey("Pause freezes position until resume", t, func() {
		sess := newChanSession(0)
		snk := &stubSink{}
		e := newTestEngine(func(url string, w, h int) (Session, error) {
			return sess, nil
		}, snk)

		e.Play("movie", 1)
		sess.units <- videoUnit(0.001)
		So(eventually(func() bool { return e.Position() == 0.001 }), ShouldBeTrue)
		So(e.RenderFrame(), ShouldNotBeNil)

		e.Pause()
		So(eventually(snk.Paused), ShouldBeTrue)

		// A queued frame must not advance position while paused.
		sess.units <- videoUnit(0.002)
		time.Sleep(3 * pausedIdle)
		So(e.Position(), ShouldEqual, 0.001)

		e.Resume()
		So(eventually(func() bool { return e.Position() == 0.002 }), ShouldBeTrue)
		So(snk.Paused(), ShouldBeFalse)

		sess.finish()
		e.Stop()
	})

	Convey("Gain commands reach the sink while playing", t, func() {
		sess := newChanSession(0)
		snk := &stubSink{}
		e := newTestEngine(func(url string, w, h int) (Session, error) {
			return sess, nil
		}, snk)

		e.Play("movie", 0.8)
		So(eventually(func() bool { return snk.Gain() == 0.8 }), ShouldBeTrue)

		e.SetGain(0.25)
		sess.units <- videoUnit(0.001)
		So(eventually(func() bool { return snk.Gain() == 0.25 }), ShouldBeTrue)

		sess.finish()
		e.Stop()
	})

	Convey("RenderFrame falls back to the last frame shown", t, func() {
		sess := newChanSession(0)
		e := newTestEngine(func(url string, w, h int) (Session, error) {
			return sess, nil
		}, &stubSink{})

		So(e.RenderFrame(), ShouldBeNil)

		e.Play("movie", 1)
		sess.units <- videoUnit(0.001)

		var f *Frame
		So(eventually(func() bool {
			f = e.RenderFrame()
			return f != nil
		}), ShouldBeTrue)

		// Nothing new queued, the previous frame is handed out again.
		So(e.RenderFrame(), ShouldEqual, f)

		sess.finish()
		e.Stop()
		So(e.RenderFrame(), ShouldBeNil)
	})
}
