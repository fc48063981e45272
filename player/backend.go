package player

// Opener opens a media container at url and prepares a decode pipeline that
// scales video to width×height RGBA and resamples audio to the engine's
// fixed output format. Implementations must tolerate the absence of either
// the video or the audio sub-stream; absence of both is an open failure.
type Opener func(url string, width, height int) (Session, error)

// Session is an open demux/decode pipeline.
type Session interface {
	// Duration returns the container's declared duration in seconds, or 0
	// when unknown.
	Duration() float64

	// Next returns the next decoded unit in presentation order.
	// It returns io.EOF once the container is exhausted.
	Next() (Unit, error)

	// Close releases the container and every codec resource.
	Close()
}

// Unit is one piece of decoded output. Exactly one of Frame or PCM is set:
// video units carry a scaled RGBA frame with its presentation timestamp,
// audio units carry interleaved signed 16-bit stereo PCM at the output rate.
type Unit struct {
	Frame *Frame
	PTS   float64
	PCM   []byte
}
