package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/hajimehoshi/go-mp3"
	"github.com/hajimehoshi/oto/v2"
	"github.com/rs/zerolog"
)

// Output format. Cues at other rates are resampled to SampleRate.
const (
	SampleRate   = 44100
	ChannelCount = 2
)

// ErrNotReady is returned by Play while the output device is still starting.
var ErrNotReady = errors.New("audio: output not ready")

// track is the part of oto.Player the cue player drives.
type track interface {
	Play()
	Pause()
	IsPlaying() bool
	SetVolume(volume float64)
	Close() error
}

type output interface {
	NewPlayer(r io.Reader) track
}

type otoOutput struct{ ctx *oto.Context }

func (o otoOutput) NewPlayer(r io.Reader) track { return o.ctx.NewPlayer(r) }

// decodeFunc turns an encoded stream into 16-bit little-endian stereo PCM and reports its rate.
type decodeFunc func(r io.Reader) (pcm io.Reader, sampleRate int, err error)

func decodeMP3(r io.Reader) (io.Reader, int, error) {
	d, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, 0, err
	}
	return d, d.SampleRate(), nil
}

// Player plays artwork audio cues, one at a time. Starting a cue stops the previous one.
type Player struct {
	mu     sync.Mutex
	out    output
	ready  <-chan struct{}
	decode decodeFunc
	volume float64
	log    zerolog.Logger

	current track
	file    io.Closer
	cue     string
}

// New opens the audio device and returns a player at volume (0..1).
func New(volume float64, log zerolog.Logger) (*Player, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatSignedInt16LE)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	return newPlayer(otoOutput{ctx}, ready, decodeMP3, volume, log), nil
}

func newPlayer(out output, ready <-chan struct{}, decode decodeFunc, volume float64, log zerolog.Logger) *Player {
	return &Player{out: out, ready: ready, decode: decode, volume: clamp01(volume), log: log}
}

// Play starts the mp3 at path from the beginning. An empty path does nothing.
func (p *Player) Play(path string) error {
	if path == "" {
		return nil
	}
	select {
	case <-p.ready:
	default:
		return ErrNotReady
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open cue: %w", err)
	}
	pcm, rate, err := p.decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("decode cue %s: %w", path, err)
	}
	if rate <= 0 {
		f.Close()
		return fmt.Errorf("cue %s: invalid sample rate %d", path, rate)
	}
	if rate != SampleRate {
		p.log.Debug().Str("cue", path).Int("rate", rate).Msg("resampling audio cue")
		pcm = newResampler(pcm, rate, SampleRate)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	pl := p.out.NewPlayer(pcm)
	pl.SetVolume(p.volume)
	pl.Play()
	p.current, p.file, p.cue = pl, f, path
	p.log.Debug().Str("cue", path).Float64("volume", p.volume).Msg("audio cue started")
	return nil
}

// Playing returns the cue currently playing, or "".
func (p *Player) Playing() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil || !p.current.IsPlaying() {
		return ""
	}
	return p.cue
}

// Stop stops the current cue, if any.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if p.current != nil {
		p.current.Pause()
		_ = p.current.Close()
		p.current = nil
	}
	if p.file != nil {
		_ = p.file.Close()
		p.file = nil
	}
	p.cue = ""
}

// Close stops playback. The oto context lives for the rest of the process.
func (p *Player) Close() error {
	p.Stop()
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
