// Package player implements the per-slot decode engines and their facade API.
//
// Each playback slot (hero loop, card hover, detail hover, full screen) owns
// one Player wrapping one Engine. Engines are fully independent: stopping one
// never touches another's worker or channels.
package player

// Frame is one display-ready video frame in a fixed 4-byte-per-pixel RGBA layout.
// Frames are produced exclusively by the decode worker, handed once to the
// engine's latest-frame slot, and cloned out to the UI on demand.
type Frame struct {
	Width  int
	Height int
	Data   []byte
}

// Clone returns an independent copy for handing to the renderer.
func (f *Frame) Clone() *Frame {
	if f == nil {
		return nil
	}
	data := make([]byte, len(f.Data))
	copy(data, f.Data)
	return &Frame{Width: f.Width, Height: f.Height, Data: data}
}
