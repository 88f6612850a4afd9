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

package run

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rainbow16/r16/pkg/audio"
)

func TestVolumePercent(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0, volumePercent(0))
	assert.Equal(71, volumePercent(5))
	assert.Equal(100, volumePercent(MaxVolume))
	assert.Equal(0, volumePercent(-3))
	assert.Equal(100, volumePercent(MaxVolume+5))
}

// peak renders a loud square track at the given volume setting
func peak(level int) float64 {

	a := audio.New()
	for ix := range a.Items {
		a.Items[ix] = audio.Item{WaveType: audio.Square, Sound: 24, Volume: 7}
	}

	s := audio.NewSynth(nil)
	s.SetVolume(volumePercent(level))
	s.Play(a)

	out := make([]float32, 2048)
	s.Render(out)

	var ret float64
	for _, v := range out {
		ret = math.Max(ret, math.Abs(float64(v)))
	}
	return ret
}

func TestVolumeLoudness(t *testing.T) {
	assert := assert.New(t)

	assert.InDelta(1.0, peak(MaxVolume), 0.001)
	assert.InDelta(0.71, peak(5), 0.001)
	assert.InDelta(0.0, peak(0), 0.001)
}
