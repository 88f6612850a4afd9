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

package audio

import (
	"math"
	"math/rand"
	"time"
)

const (
	// SampleRate of all rendered audio
	SampleRate = 44100
	// StepDuration is the length of one item at speed 1
	StepDuration = time.Second / 120
	// organ harmonics
	harmonicCount = 5
)

// NoteFrequency returns the frequency in Hz for a pitch index, index 0 being
// C2 at 65.41 Hz, one semitone per step.
func NoteFrequency(sound byte) float64 {
	return 65.41 * math.Pow(2, float64(sound)/12)
}

// Duration returns how long the track plays.
func (a *Audio) Duration() time.Duration {
	return time.Duration(ItemCount) * a.stepDuration()
}

//
func (a *Audio) stepDuration() time.Duration {
	speed := a.Speed
	if speed == 0 {
		speed = 1
	}
	return time.Duration(speed) * StepDuration
}

// Synth renders a single track to mono float32 samples. It is not safe for
// concurrent use; it lives on the audio goroutine.
type Synth struct {
	audio   *Audio
	pos     int // samples rendered since start
	phase   float64
	noise   float64
	rnd     *rand.Rand
	volume  float64
	handoff *Handoff
	serial  uint64
	start   uint32 // start time of the last trigger picked up
	started bool
}

// NewSynth creates a synth that picks up new triggers from h. h may be nil
// when tracks are set with Play.
func NewSynth(h *Handoff) *Synth {
	return &Synth{
		handoff: h,
		rnd:     rand.New(rand.NewSource(1)),
		volume:  1,
	}
}

// SetVolume sets the master volume, 0 to 100.
func (s *Synth) SetVolume(v int) {
	if v < 0 {
		v = 0
	} else if v > 100 {
		v = 100
	}
	s.volume = float64(v) / 100
}

// Play starts rendering a from its first item.
func (s *Synth) Play(a Audio) {
	s.audio = &a
	s.pos = 0
	s.phase = 0
}

// Stop silences the synth.
func (s *Synth) Stop() {
	s.audio = nil
}

// Playing reports whether the synth still has samples to render.
func (s *Synth) Playing() bool {
	return s.audio != nil
}

// sync checks the handoff for a new snapshot.
func (s *Synth) sync() {

	if s.handoff == nil {
		return
	}

	t, serial := s.handoff.Load()
	if serial == s.serial {
		return
	}
	s.serial = serial

	if t == nil || !t.Playing {
		s.Stop()
		return
	}

	// a trigger keeps being published while it plays, only a new start time
	// restarts the track
	if !s.started || t.StartMillis != s.start {
		s.Play(t.Audio)
		s.start = t.StartMillis
		s.started = true
	}
}

// Render fills out with samples and returns the number of samples belonging
// to the track; the rest of out is silence.
func (s *Synth) Render(out []float32) int {

	s.sync()

	n := 0

	for ix := range out {

		if s.audio == nil {
			out[ix] = 0
			continue
		}

		elapsed := time.Duration(s.pos) * time.Second / SampleRate
		step := int(elapsed / s.audio.stepDuration())
		if step >= ItemCount {
			s.Stop()
			out[ix] = 0
			continue
		}

		it := s.audio.Items[step]
		inc := NoteFrequency(it.Sound) / SampleRate
		s.phase += inc
		if s.phase >= 1 {
			s.phase -= math.Floor(s.phase)
		}

		var v float64
		if it.Volume > 0 {
			v = s.wave(it.WaveType, s.phase, inc, float64(it.Volume)/7)
		}

		out[ix] = float32(v * s.volume)
		s.pos++
		n++
	}

	return n
}

//
func (s *Synth) wave(typ WaveType, phase, inc, vol float64) float64 {

	switch typ {

	case Sine:
		return math.Sin(2*math.Pi*phase) * vol

	case Sawtooth:
		return (phase*2 - 1) * vol

	case Triangle:
		return triangle(phase) * vol

	case TiltedSawtooth:
		return triangle(phase+(phase-0.5)) * vol

	case Noise:
		if phase < inc {
			s.noise = s.rnd.Float64()*4 - 2
		}
		return s.noise * vol

	case Organ:
		var v float64
		ampl := vol
		for i := 1; i <= harmonicCount; i++ {
			v += ampl * float64(i) * math.Sin(2*math.Pi*float64(i)*phase)
			ampl *= 0.5
		}
		return v

	default:
		if phase >= 0.5 {
			return vol
		}
		return -vol
	}
}

//
func triangle(phase float64) float64 {
	if phase < 0.5 {
		return phase*4 - 1
	}
	return (1-phase)*4 - 1
}
