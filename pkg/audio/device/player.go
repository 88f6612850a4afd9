//go:build !headless

/*
   R16 - fantasy console
   Copyright (c) 2023, The R16 Authors

   This file is part of R16.

   R16 is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   R16 is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with R16. If not, see <http://www.gnu.org/licenses/>.
*/

// Package device plays sfx tracks on the host sound device.
package device

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
	log "github.com/sirupsen/logrus"

	"github.com/rainbow16/r16/pkg/audio"
)

// Player streams the synth output to the sound device. oto pulls samples via
// Read on its own goroutine; that goroutine only talks to the synth, which in
// turn only reads published handoff snapshots.
type Player struct {
	ctx     *oto.Context
	player  *oto.Player
	synth   *audio.Synth
	samples []float32
	started bool
	mutex   sync.Mutex // setup & control only
}

//
func NewPlayer(h *audio.Handoff) (*Player, error) {

	op := &oto.NewContextOptions{
		SampleRate:   audio.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	p := &Player{ctx: ctx, synth: audio.NewSynth(h)}
	p.player = ctx.NewPlayer(p)
	log.Info("audio player ready")

	return p, nil
}

// Read implements io.Reader for oto.
func (p *Player) Read(b []byte) (int, error) {

	n := len(b) / 4
	if len(p.samples) < n {
		p.samples = make([]float32, n)
	}
	samples := p.samples[:n]
	p.synth.Render(samples)

	for ix, s := range samples {
		binary.LittleEndian.PutUint32(b[ix*4:], math.Float32bits(s))
	}

	return n * 4, nil
}

//
func (p *Player) SetVolume(v int) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.player.SetVolume(float64(v) / 100)
}

//
func (p *Player) Start() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if !p.started {
		p.player.Play()
		p.started = true
	}
}

//
func (p *Player) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.started = false
	return p.player.Close()
}
