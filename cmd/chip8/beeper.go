package main

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	sampleRate = 44100
	toneHz     = 432
)

// squareWave is an endless square wave at toneHz, produced as 16-bit
// little-endian stereo samples.
type squareWave struct {
	pos int64
}

func (s *squareWave) Read(buf []byte) (int, error) {
	const halfPeriod = sampleRate / toneHz / 2

	n := len(buf) / 4 * 4
	for i := 0; i < n; i += 4 {
		v := int16(-6000)
		if (s.pos/halfPeriod)%2 == 0 {
			v = 6000
		}
		buf[i] = byte(v)
		buf[i+1] = byte(v >> 8)
		buf[i+2] = byte(v)
		buf[i+3] = byte(v >> 8)
		s.pos++
	}
	return n, nil
}

// beeper plays the tone while the sound timer is non-zero.
type beeper struct {
	player *audio.Player
}

func newBeeper() (*beeper, error) {
	ctx := audio.NewContext(sampleRate)
	player, err := ctx.NewPlayer(&squareWave{})
	if err != nil {
		return nil, err
	}
	return &beeper{player: player}, nil
}

func (b *beeper) set(on bool) {
	switch {
	case on && !b.player.IsPlaying():
		b.player.Play()
	case !on && b.player.IsPlaying():
		b.player.Pause()
	}
}
