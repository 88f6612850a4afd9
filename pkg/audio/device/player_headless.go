//go:build headless

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

package device

import (
	"github.com/rainbow16/r16/pkg/audio"
)

// Player is a silent stand-in for builds without a sound device.
type Player struct {
	synth *audio.Synth
}

//
func NewPlayer(h *audio.Handoff) (*Player, error) {
	return &Player{synth: audio.NewSynth(h)}, nil
}

//
func (p *Player) Read(b []byte) (int, error) {
	for ix := range b {
		b[ix] = 0
	}
	return len(b), nil
}

//
func (p *Player) SetVolume(v int) {
	p.synth.SetVolume(v)
}

//
func (p *Player) Start() {}

//
func (p *Player) Close() error {
	return nil
}
