package player

import (
	"errors"
	"fmt"
	"io"

	"github.com/asticode/go-astiav"

	"github.com/sapphirebluet/Movix/constant"
)

// openFFmpeg opens url with the software decode pipeline: video is scaled to
// width×height RGBA, audio is resampled to interleaved S16 stereo at the
// output rate. HLS playlists and plain mp4 files go through the same path.
func openFFmpeg(url string, width, height int) (Session, error) {
	fc := astiav.AllocFormatContext()
	if fc == nil {
		return nil, errors.New("allocating format context")
	}

	opts := astiav.NewDictionary()
	defer opts.Free()
	_ = opts.Set("user_agent", constant.UserAgent, astiav.NewDictionaryFlags())

	if err := fc.OpenInput(url, nil, opts); err != nil {
		fc.Free()
		return nil, fmt.Errorf("opening input: %w", err)
	}
	if err := fc.FindStreamInfo(nil); err != nil {
		fc.CloseInput()
		fc.Free()
		return nil, fmt.Errorf("finding stream info: %w", err)
	}

	s := &ffmpegSession{
		fc:      fc,
		pkt:     astiav.AllocPacket(),
		decoded: astiav.AllocFrame(),
	}

	for _, st := range fc.Streams() {
		switch st.CodecParameters().MediaType() {
		case astiav.MediaTypeVideo:
			if s.video == nil {
				if v, err := newVideoPipeline(st, width, height); err == nil {
					s.video = v
				}
			}
		case astiav.MediaTypeAudio:
			if s.audio == nil {
				if a, err := newAudioPipeline(st); err == nil {
					s.audio = a
				}
			}
		}
	}

	if s.video == nil && s.audio == nil {
		s.Close()
		return nil, errors.New("no decodable stream")
	}
	return s, nil
}

type ffmpegSession struct {
	fc      *astiav.FormatContext
	pkt     *astiav.Packet
	decoded *astiav.Frame

	video *videoPipeline
	audio *audioPipeline

	pending []Unit
}

func (s *ffmpegSession) Duration() float64 {
	if d := s.fc.Duration(); d > 0 {
		return float64(d) / 1e6
	}
	return 0
}

// Next demuxes packets until at least one decoded unit is available and
// returns units in presentation order. Corrupt packets are skipped.
func (s *ffmpegSession) Next() (Unit, error) {
	for {
		if len(s.pending) > 0 {
			u := s.pending[0]
			s.pending = s.pending[1:]
			return u, nil
		}

		if err := s.fc.ReadFrame(s.pkt); err != nil {
			if errors.Is(err, astiav.ErrEof) {
				return Unit{}, io.EOF
			}
			return Unit{}, fmt.Errorf("reading packet: %w", err)
		}

		switch idx := s.pkt.StreamIndex(); {
		case s.video != nil && idx == s.video.index:
			s.decodeVideo()
		case s.audio != nil && idx == s.audio.index:
			s.decodeAudio()
		}
		s.pkt.Unref()
	}
}

func (s *ffmpegSession) decodeVideo() {
	if err := s.video.dec.SendPacket(s.pkt); err != nil {
		return
	}
	for {
		if err := s.video.dec.ReceiveFrame(s.decoded); err != nil {
			return
		}

		pts := 0.0
		if p := s.decoded.Pts(); p != astiav.NoPtsValue {
			pts = float64(p) * s.video.timeBase.Float64()
		}

		if err := s.video.scaler.ScaleFrame(s.decoded, s.video.scaled); err == nil {
			if data, err := s.video.scaled.Data().Bytes(1); err == nil {
				frame := &Frame{
					Width:  s.video.width,
					Height: s.video.height,
					Data:   data,
				}
				s.pending = append(s.pending, Unit{Frame: frame, PTS: pts})
			}
		}
		s.decoded.Unref()
	}
}

func (s *ffmpegSession) decodeAudio() {
	if err := s.audio.dec.SendPacket(s.pkt); err != nil {
		return
	}
	for {
		if err := s.audio.dec.ReceiveFrame(s.decoded); err != nil {
			return
		}

		if err := s.audio.resampler.ConvertFrame(s.decoded, s.audio.resampled); err == nil {
			if n := s.audio.resampled.NbSamples(); n > 0 {
				if data, err := s.audio.resampled.Data().Bytes(1); err == nil {
					size := n * outputChannels * 2
					if size > len(data) {
						size = len(data)
					}
					pcm := make([]byte, size)
					copy(pcm, data)
					s.pending = append(s.pending, Unit{PCM: pcm})
				}
			}
			s.audio.resampled.Unref()
		}
		s.decoded.Unref()
	}
}

func (s *ffmpegSession) Close() {
	if s.video != nil {
		s.video.close()
	}
	if s.audio != nil {
		s.audio.close()
	}
	if s.decoded != nil {
		s.decoded.Free()
	}
	if s.pkt != nil {
		s.pkt.Free()
	}
	s.fc.CloseInput()
	s.fc.Free()
}

type videoPipeline struct {
	index    int
	dec      *astiav.CodecContext
	timeBase astiav.Rational
	scaler   *astiav.SoftwareScaleContext
	scaled   *astiav.Frame
	width    int
	height   int
}

func newVideoPipeline(st *astiav.Stream, width, height int) (*videoPipeline, error) {
	dec, err := openDecoder(st)
	if err != nil {
		return nil, err
	}

	scaler, err := astiav.CreateSoftwareScaleContext(
		dec.Width(), dec.Height(), dec.PixelFormat(),
		width, height, astiav.PixelFormatRgba,
		astiav.NewSoftwareScaleContextFlags(astiav.SoftwareScaleContextFlagBilinear),
	)
	if err != nil {
		dec.Free()
		return nil, fmt.Errorf("creating scaler: %w", err)
	}

	return &videoPipeline{
		index:    st.Index(),
		dec:      dec,
		timeBase: st.TimeBase(),
		scaler:   scaler,
		scaled:   astiav.AllocFrame(),
		width:    width,
		height:   height,
	}, nil
}

func (v *videoPipeline) close() {
	v.scaled.Free()
	v.scaler.Free()
	v.dec.Free()
}

type audioPipeline struct {
	index     int
	dec       *astiav.CodecContext
	resampler *astiav.SoftwareResampleContext
	resampled *astiav.Frame
}

func newAudioPipeline(st *astiav.Stream) (*audioPipeline, error) {
	dec, err := openDecoder(st)
	if err != nil {
		return nil, err
	}

	resampled := astiav.AllocFrame()
	resampled.SetChannelLayout(astiav.ChannelLayoutStereo)
	resampled.SetSampleFormat(astiav.SampleFormatS16)
	resampled.SetSampleRate(outputSampleRate)

	return &audioPipeline{
		index:     st.Index(),
		dec:       dec,
		resampler: astiav.AllocSoftwareResampleContext(),
		resampled: resampled,
	}, nil
}

func (a *audioPipeline) close() {
	a.resampled.Free()
	a.resampler.Free()
	a.dec.Free()
}

func openDecoder(st *astiav.Stream) (*astiav.CodecContext, error) {
	codec := astiav.FindDecoder(st.CodecParameters().CodecID())
	if codec == nil {
		return nil, fmt.Errorf("no decoder for %s", st.CodecParameters().CodecID())
	}

	dec := astiav.AllocCodecContext(codec)
	if dec == nil {
		return nil, errors.New("allocating codec context")
	}
	if err := st.CodecParameters().ToCodecContext(dec); err != nil {
		dec.Free()
		return nil, fmt.Errorf("copying codec parameters: %w", err)
	}
	if err := dec.Open(codec, nil); err != nil {
		dec.Free()
		return nil, fmt.Errorf("opening decoder: %w", err)
	}
	return dec, nil
}
