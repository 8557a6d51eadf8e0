package audio

import (
	"encoding/binary"
	"errors"
	"io"
)

// frameSize is one 16-bit stereo frame in bytes.
const frameSize = 2 * ChannelCount

// resampler converts 16-bit little-endian stereo PCM from one rate to another by linear
// interpolation between neighbouring source frames.
type resampler struct {
	src  io.Reader
	step float64
	pos  float64

	cur, next [ChannelCount]int16
	started   bool
	eof       bool

	in  [frameSize]byte
	buf [frameSize]byte
	out []byte
}

func newResampler(src io.Reader, from, to int) *resampler {
	return &resampler{src: src, step: float64(from) / float64(to)}
}

func (r *resampler) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(r.out) == 0 {
			f, err := r.frame()
			if err != nil {
				if n > 0 {
					return n, nil
				}
				return 0, err
			}
			for c, v := range f {
				binary.LittleEndian.PutUint16(r.buf[2*c:], uint16(v))
			}
			r.out = r.buf[:]
		}
		c := copy(p[n:], r.out)
		r.out = r.out[c:]
		n += c
	}
	return n, nil
}

func (r *resampler) frame() ([ChannelCount]int16, error) {
	if !r.started {
		cur, err := r.readFrame()
		if err != nil {
			return cur, err
		}
		r.cur, r.next = cur, cur
		if next, err := r.readFrame(); err == nil {
			r.next = next
		} else if isEOF(err) {
			r.eof = true
		} else {
			return r.cur, err
		}
		r.started = true
	}
	for r.pos >= 1 {
		if r.eof {
			return r.cur, io.EOF
		}
		r.cur = r.next
		next, err := r.readFrame()
		switch {
		case err == nil:
			r.next = next
		case isEOF(err):
			r.eof = true
		default:
			return r.cur, err
		}
		r.pos--
	}
	// Past the last source frame there is nothing to interpolate towards.
	if r.eof && r.pos > 0 {
		return r.cur, io.EOF
	}

	var f [ChannelCount]int16
	for c := range f {
		a, b := float64(r.cur[c]), float64(r.next[c])
		f[c] = int16(a + (b-a)*r.pos)
	}
	r.pos += r.step
	return f, nil
}

func (r *resampler) readFrame() ([ChannelCount]int16, error) {
	var f [ChannelCount]int16
	if _, err := io.ReadFull(r.src, r.in[:]); err != nil {
		return f, err
	}
	for c := range f {
		f[c] = int16(binary.LittleEndian.Uint16(r.in[2*c:]))
	}
	return f, nil
}

// A trailing partial frame is dropped.
func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
