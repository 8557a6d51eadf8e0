package audio

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pcm(frames ...[2]int16) []byte {
	var b []byte
	for _, f := range frames {
		b = binary.LittleEndian.AppendUint16(b, uint16(f[0]))
		b = binary.LittleEndian.AppendUint16(b, uint16(f[1]))
	}
	return b
}

func TestResampler(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		in, want []byte
	}{
		{
			name: "upsample interpolates",
			from: 22050, to: 44100,
			in:   pcm([2]int16{0, 0}, [2]int16{100, -100}),
			want: pcm([2]int16{0, 0}, [2]int16{50, -50}, [2]int16{100, -100}),
		},
		{
			name: "downsample skips frames",
			from: 88200, to: 44100,
			in:   pcm([2]int16{0, 0}, [2]int16{10, 1}, [2]int16{20, 2}, [2]int16{30, 3}),
			want: pcm([2]int16{0, 0}, [2]int16{20, 2}),
		},
		{
			name: "same rate is unchanged",
			from: 44100, to: 44100,
			in:   pcm([2]int16{1, 2}, [2]int16{3, 4}, [2]int16{5, 6}),
			want: pcm([2]int16{1, 2}, [2]int16{3, 4}, [2]int16{5, 6}),
		},
		{
			name: "partial trailing frame is dropped",
			from: 44100, to: 44100,
			in:   append(pcm([2]int16{7, 8}), 0x01, 0x02),
			want: pcm([2]int16{7, 8}),
		},
		{
			name: "empty input",
			from: 48000, to: 44100,
			in:   nil,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(newResampler(bytes.NewReader(tt.in), tt.from, tt.to))
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), len(got))
			if len(tt.want) > 0 {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResamplerSmallReads(t *testing.T) {
	r := newResampler(bytes.NewReader(pcm([2]int16{0, 0}, [2]int16{100, -100})), 22050, 44100)
	var got []byte
	buf := make([]byte, 3)
	for {
		n, err := r.Read(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	assert.Equal(t, pcm([2]int16{0, 0}, [2]int16{50, -50}, [2]int16{100, -100}), got)
}

func TestPlayResamplesOtherRates(t *testing.T) {
	out := &fakeOutput{}
	p := newPlayer(out, readyChan(), passthrough(48000), 1, zerolog.Nop())

	require.NoError(t, p.Play(writeCue(t, "voice_48k.mp3")))
	require.Len(t, out.players, 1)
	assert.IsType(t, &resampler{}, out.players[0].src)
	assert.True(t, out.players[0].playing)
}
