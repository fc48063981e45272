package player

import (
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Audio output format shared by the resampler and the sink.
const (
	outputSampleRate = 44100
	outputChannels   = 2
)

// sink abstracts the platform audio output so the engine can be exercised
// without a sound device.
type sink interface {
	// Write queues interleaved S16 stereo PCM for playback.
	Write(pcm []byte)
	Pause()
	Resume()
	// SetGain adjusts output gain in [0,1].
	SetGain(gain float64)
	// Drained reports whether every queued sample has been consumed.
	Drained() bool
	Close()
}

// The audio device is a process-wide singleton; oto's context may only be
// created once. Every engine gets its own player on the shared context.
var (
	otoCtx  *oto.Context
	otoErr  error
	otoOnce sync.Once
)

func audioContext() (*oto.Context, error) {
	otoOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   outputSampleRate,
			ChannelCount: outputChannels,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			otoErr = err
			return
		}
		<-ready
		otoCtx = ctx
	})
	return otoCtx, otoErr
}

// newOtoSink opens a playback sink on the shared audio device.
func newOtoSink() (sink, error) {
	ctx, err := audioContext()
	if err != nil {
		return nil, err
	}

	buf := &pcmBuffer{}
	player := ctx.NewPlayer(buf)
	player.Play()
	return &otoSink{player: player, buf: buf}, nil
}

type otoSink struct {
	player *oto.Player
	buf    *pcmBuffer
}

func (s *otoSink) Write(pcm []byte) {
	s.buf.Push(pcm)
}

func (s *otoSink) Pause() {
	s.player.Pause()
}

func (s *otoSink) Resume() {
	s.player.Play()
}

func (s *otoSink) SetGain(gain float64) {
	if gain < 0 {
		gain = 0
	}
	if gain > 1 {
		gain = 1
	}
	s.player.SetVolume(gain)
}

func (s *otoSink) Drained() bool {
	return s.buf.Pending() == 0 && s.player.UnplayedBufferSize() == 0
}

func (s *otoSink) Close() {
	_ = s.player.Close()
}

// pcmBuffer feeds the device reader from the decode worker. On underrun it
// emits silence instead of starving the device, which keeps hover previews
// click-free while the network catches up.
type pcmBuffer struct {
	mu   sync.Mutex
	data []byte
}

func (b *pcmBuffer) Push(pcm []byte) {
	b.mu.Lock()
	b.data = append(b.data, pcm...)
	b.mu.Unlock()
}

func (b *pcmBuffer) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

func (b *pcmBuffer) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.data) == 0 {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	n := copy(p, b.data)
	b.data = b.data[n:]
	return n, nil
}
