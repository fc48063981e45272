package player

import (
	"github.com/samber/mo"
	"github.com/spf13/viper"

	"github.com/sapphirebluet/Movix/key"
	"github.com/sapphirebluet/Movix/progress"
	"github.com/sapphirebluet/Movix/streaming"
)

// Target resolutions for the two player roles. Hover previews decode small,
// the fullscreen player decodes at full size.
const (
	PreviewWidth  = 640
	PreviewHeight = 360
	ScreenWidth   = 1920
	ScreenHeight  = 1080
)

// Player is the playback facade over one decode engine. It remembers what is
// playing so the media can be replayed or its position persisted, and owns
// the volume/mute state the engine gain is derived from.
//
// A nil progress store disables persistence, which is what preview players
// use.
type Player struct {
	engine   *Engine
	progress *progress.Store

	media   mo.Option[streaming.ContentID]
	url     string
	playing bool
	muted   bool
	volume  float64
}

// New creates an idle player decoding to the given resolution. Pass a nil
// store for players whose positions should not be remembered.
func New(width, height int, store *progress.Store) *Player {
	return &Player{
		engine:   NewEngine(width, height),
		progress: store,
		volume:   1,
	}
}

// NewPreview creates a muted-by-default preview player. Mute follows the
// configured preference.
func NewPreview() *Player {
	p := New(PreviewWidth, PreviewHeight, nil)
	p.muted = viper.GetBool(key.PlayerPreviewMuted)
	return p
}

// NewScreen creates the fullscreen player, persisting positions to store and
// starting at the configured volume. The configured value is a percentage.
func NewScreen(store *progress.Store) *Player {
	p := New(ScreenWidth, ScreenHeight, store)
	p.SetVolume(viper.GetFloat64(key.PlayerVolume) / 100)
	return p
}

// Play starts playback of the resolved url for the given content id. A
// previous session on this player is torn down first. Startup failures do
// not surface here; poll CheckEnded instead.
func (p *Player) Play(id streaming.ContentID, url string) {
	p.engine.Play(url, p.effectiveGain())
	p.media = mo.Some(id)
	p.url = url
	p.playing = true
}

// Replay restarts the last played media from the beginning.
func (p *Player) Replay() {
	if url := p.url; p.media.IsPresent() && url != "" {
		p.engine.Play(url, p.effectiveGain())
		p.playing = true
	}
}

// Stop tears the decode worker down and forgets the current media.
func (p *Player) Stop() {
	p.engine.Stop()
	p.media = mo.None[streaming.ContentID]()
	p.url = ""
	p.playing = false
}

// Pause suspends decoding and audio output. Position stays frozen at the
// last presented frame until Resume.
func (p *Player) Pause() {
	if p.playing {
		p.engine.Pause()
		p.playing = false
	}
}

// Resume continues a paused session.
func (p *Player) Resume() {
	if !p.playing && p.engine.Active() {
		p.engine.Resume()
		p.playing = true
	}
}

// TogglePlayPause flips between the paused and playing states.
func (p *Player) TogglePlayPause() {
	if p.playing {
		p.Pause()
	} else {
		p.Resume()
	}
}

// SetVolume stores the clamped volume and pushes the effective gain to the
// engine. Mute is preserved across volume changes.
func (p *Player) SetVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	p.volume = volume
	p.engine.SetGain(p.effectiveGain())
}

// Volume returns the stored volume, independent of mute.
func (p *Player) Volume() float64 {
	return p.volume
}

// ToggleMute flips mute without losing the stored volume.
func (p *Player) ToggleMute() {
	p.muted = !p.muted
	p.engine.SetGain(p.effectiveGain())
}

// IsMuted reports whether audio output is muted.
func (p *Player) IsMuted() bool {
	return p.muted
}

// IsPlaying reports whether playback is active and not paused.
func (p *Player) IsPlaying() bool {
	return p.playing
}

// Seek is accepted but is a no-op for this backend.
func (p *Player) Seek(seconds float64) {}

// SeekRelative is accepted but is a no-op for this backend.
func (p *Player) SeekRelative(delta float64) {}

// RenderFrame returns a copy of the newest decoded frame, or of the last one
// shown when nothing new is ready. Nil until the first frame arrives.
func (p *Player) RenderFrame() *Frame {
	return p.engine.RenderFrame().Clone()
}

// GetFrame returns a copy of the last frame handed out by RenderFrame
// without consuming anything from the decode pipeline.
func (p *Player) GetFrame() *Frame {
	return p.engine.CurrentFrame().Clone()
}

// HasPipeline reports whether a decode worker is alive for this player.
func (p *Player) HasPipeline() bool {
	return p.engine.Active()
}

// CurrentMediaID returns the content id of the playing media, if any.
func (p *Player) CurrentMediaID() (streaming.ContentID, bool) {
	return p.media.Get()
}

// Position returns the current playback position in seconds.
func (p *Player) Position() float64 {
	return p.engine.Position()
}

// Duration returns the media duration in seconds, or 0 when unknown.
func (p *Player) Duration() float64 {
	return p.engine.Duration()
}

// CheckEnded polls whether playback finished, either by reaching the end of
// the stream or by failing to start. The playing flag drops on the first
// positive answer.
func (p *Player) CheckEnded() bool {
	if !p.engine.Ended() {
		return false
	}
	p.playing = false
	return true
}

// SaveProgress persists the current position for the playing media. Disabled
// stores, preview players and positions under the recordable floor are all
// silently skipped.
func (p *Player) SaveProgress() {
	if p.progress == nil || !viper.GetBool(key.PlayerSaveProgress) {
		return
	}
	if id, ok := p.media.Get(); ok {
		_ = p.progress.Set(id, p.engine.Position())
	}
}

// StoredPosition returns the persisted position for id, when this player
// carries a progress store.
func (p *Player) StoredPosition(id streaming.ContentID) (float64, bool) {
	if p.progress == nil {
		return 0, false
	}
	return p.progress.Get(id)
}

func (p *Player) effectiveGain() float64 {
	if p.muted {
		return 0
	}
	return p.volume
}
