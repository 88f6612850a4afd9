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

// WaveType selects the oscillator used for an item. The numeric value is the
// tag stored in the sfx section and in saved cartridges.
type WaveType byte

const (
	Square WaveType = iota
	Sine
	Sawtooth
	Triangle
	Noise
	TiltedSawtooth
	Organ
)

// WaveTypeCount is the number of known wave types.
const WaveTypeCount = 7

// WaveTypeFromTag maps a stored tag to a wave type. Unknown tags map to Square.
func WaveTypeFromTag(tag byte) WaveType {
	if tag >= WaveTypeCount {
		return Square
	}
	return WaveType(tag)
}

//
func (w WaveType) String() string {
	switch w {
	case Square:
		return "square"
	case Sine:
		return "sine"
	case Sawtooth:
		return "sawtooth"
	case Triangle:
		return "triangle"
	case Noise:
		return "noise"
	case TiltedSawtooth:
		return "tilted-sawtooth"
	case Organ:
		return "organ"
	}
	return "unknown"
}
