package player

import (
	"time"

	"github.com/sapphirebluet/Movix/log"
)

// frameChannelDepth bounds the frame channel. A slow consumer blocks the
// producer instead of growing memory; this backpressure is intentional.
const frameChannelDepth = 4

// pausedIdle is how long the worker sleeps between command polls while paused.
const pausedIdle = 50 * time.Millisecond

// Engine owns one decode worker and its channel pair. At most one worker is
// alive per engine at any time: Play tears the previous one down
// synchronously before starting the next.
//
// An Engine is driven from a single goroutine (the UI loop); only the
// published position/duration/ended cell crosses threads.
type Engine struct {
	width   int
	height  int
	open    Opener
	newSink func() (sink, error)

	frames  chan *Frame
	cmds    *commandQueue
	quit    chan struct{}
	done    chan struct{}
	shared  *sharedState
	current *Frame
}

// NewEngine creates an idle engine decoding to the given target resolution.
func NewEngine(width, height int) *Engine {
	return &Engine{
		width:   width,
		height:  height,
		open:    openFFmpeg,
		newSink: newOtoSink,
	}
}

// Play starts decoding url with the given initial gain. Any previous worker
// is stopped and joined first.
func (e *Engine) Play(url string, gain float64) {
	e.Stop()

	e.frames = make(chan *Frame, frameChannelDepth)
	e.cmds = newCommandQueue()
	e.quit = make(chan struct{})
	e.done = make(chan struct{})
	e.shared = newSharedState()
	e.current = nil

	go e.run(url, gain, e.frames, e.cmds, e.quit, e.done, e.shared)
}

// Stop shuts the worker down and blocks until its goroutine has exited,
// making teardown synchronous and leak-free. Safe to call on an idle engine.
func (e *Engine) Stop() {
	if e.done == nil {
		return
	}

	e.cmds.push(command{kind: cmdShutdown})
	close(e.quit)
	<-e.done

	e.frames = nil
	e.cmds = nil
	e.quit = nil
	e.done = nil
	e.current = nil
}

// Active reports whether a worker is currently alive.
func (e *Engine) Active() bool {
	return e.done != nil
}

// Pause asks the worker to suspend decoding and the audio sink.
func (e *Engine) Pause() {
	if e.cmds != nil {
		e.cmds.push(command{kind: cmdPause})
	}
}

// Resume continues a paused worker.
func (e *Engine) Resume() {
	if e.cmds != nil {
		e.cmds.push(command{kind: cmdResume})
	}
}

// SetGain adjusts the audio sink gain of the running worker.
func (e *Engine) SetGain(gain float64) {
	if e.cmds != nil {
		e.cmds.push(command{kind: cmdSetVolume, volume: gain})
	}
}

// RenderFrame returns the newest available frame, or the last one already
// held, so the caller always has something to draw once playback started.
// Never blocks.
func (e *Engine) RenderFrame() *Frame {
	if e.frames == nil {
		return e.current
	}
	select {
	case f := <-e.frames:
		e.current = f
		return f
	default:
		return e.current
	}
}

// CurrentFrame returns the last frame pulled off the channel, if any.
func (e *Engine) CurrentFrame() *Frame {
	return e.current
}

// Position returns the last published presentation timestamp in seconds.
func (e *Engine) Position() float64 {
	if e.shared == nil {
		return 0
	}
	return e.shared.Position()
}

// Duration returns the container's declared duration in seconds.
func (e *Engine) Duration() float64 {
	if e.shared == nil {
		return 0
	}
	return e.shared.Duration()
}

// Ended reports whether the worker reached end of stream or failed to start.
func (e *Engine) Ended() bool {
	if e.shared == nil {
		return false
	}
	return e.shared.Ended()
}

// run is the decode worker. It drains every pending command before each unit
// of decoded work, paces video emission against presentation timestamps, and
// publishes position through the shared cell.
func (e *Engine) run(url string, gain float64, frames chan *Frame, cmds *commandQueue, quit, done chan struct{}, shared *sharedState) {
	defer close(done)

	out, err := e.newSink()
	if err != nil {
		log.Errorf("audio output unavailable: %v", err)
		shared.setEnded()
		return
	}
	defer out.Close()
	out.SetGain(gain)

	sess, err := e.open(url, e.width, e.height)
	if err != nil {
		log.Errorf("open %s: %v", url, err)
		shared.setEnded()
		return
	}
	defer sess.Close()

	shared.setDuration(sess.Duration())

	start := time.Now()
	var pauseOffset time.Duration
	var pauseStart time.Time
	paused := false

	for {
		// Commands have priority over media data.
		shutdown := false
		for {
			c, ok := cmds.pop()
			if !ok {
				break
			}
			switch c.kind {
			case cmdShutdown:
				shutdown = true
			case cmdPause:
				if !paused {
					paused = true
					pauseStart = time.Now()
					out.Pause()
				}
			case cmdResume:
				if paused {
					paused = false
					pauseOffset += time.Since(pauseStart)
					out.Resume()
				}
			case cmdSetVolume:
				out.SetGain(c.volume)
			}
		}
		if shutdown {
			return
		}

		if paused {
			select {
			case <-quit:
				return
			case <-time.After(pausedIdle):
			}
			continue
		}

		unit, err := sess.Next()
		if err != nil {
			break // container exhausted, or decode gave up
		}

		if unit.PCM != nil {
			out.Write(unit.PCM)
			continue
		}
		if unit.Frame == nil {
			continue
		}

		shared.setPosition(unit.PTS)

		// Pace against the monotonic clock anchored at start and adjusted by
		// accumulated pause time, so timing follows the stream's declared
		// presentation stamps rather than decode speed.
		target := time.Duration(unit.PTS * float64(time.Second))
		if wait := target - (time.Since(start) - pauseOffset); wait > 0 {
			select {
			case <-quit:
				return
			case <-time.After(wait):
			}
		}

		select {
		case frames <- unit.Frame:
		case <-quit:
			return
		}
	}

	// Let the audio tail drain before flagging the end.
	for !out.Drained() {
		select {
		case <-quit:
			return
		case <-time.After(100 * time.Millisecond):
		}
	}
	shared.setEnded()
}
