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
	"strings"

	"github.com/rainbow16/r16/pkg/memory"
)

const (
	// ItemCount is the number of steps in a track
	ItemCount = 32
	// TrackCount is the number of tracks in a cartridge
	TrackCount = 32
	// PackedLength is the size of a track in section memory: one speed byte
	// plus three bytes per item
	PackedLength = 1 + ItemCount*3
	// HexLength is the size of a track in its persisted hex form
	HexLength = PackedLength * 2
)

// Item is one step of a track.
type Item struct {
	WaveType WaveType
	Sound    byte // pitch index
	Volume   byte // 0 is silent
}

// Audio is a single sfx track.
type Audio struct {
	Speed byte
	Items [ItemCount]Item
}

// New returns a default track: speed 1, all items silent square waves.
func New() Audio {
	return Audio{Speed: 1}
}

// WriteTo packs the track into s at offset: speed, then wave type, sound and
// volume for each item, PackedLength bytes in total.
func (a *Audio) WriteTo(s *memory.Section, offset uint32) {
	s.WriteU8(offset, a.Speed)
	for ix, it := range a.Items {
		o := offset + 1 + uint32(ix)*3
		s.WriteU8(o, byte(it.WaveType))
		s.WriteU8(o+1, it.Sound)
		s.WriteU8(o+2, it.Volume)
	}
}

// ReadFrom unpacks a track written with WriteTo. Unknown wave type tags decode
// to Square.
func ReadFrom(s *memory.Section, offset uint32) Audio {

	a := Audio{Speed: s.ReadU8(offset)}

	for ix := range a.Items {
		o := offset + 1 + uint32(ix)*3
		a.Items[ix] = Item{
			WaveType: WaveTypeFromTag(s.ReadU8(o)),
			Sound:    s.ReadU8(o + 1),
			Volume:   s.ReadU8(o + 2),
		}
	}

	return a
}

// HexString returns the persisted form of the track. Note that the field order
// per item is sound, volume, wave type, which differs from the section layout.
func (a *Audio) HexString() string {

	var sb strings.Builder
	sb.Grow(HexLength)

	writeHexByte(&sb, a.Speed)
	for _, it := range a.Items {
		writeHexByte(&sb, it.Sound)
		writeHexByte(&sb, it.Volume)
		writeHexByte(&sb, byte(it.WaveType))
	}

	return sb.String()
}

// FromHexString parses the persisted form of a track. The input must be
// exactly HexLength characters.
func FromHexString(s string) (Audio, error) {

	if len(s) != HexLength {
		return Audio{}, ErrHexLength
	}

	var b [PackedLength]byte
	for ix := range b {
		v, err := readHexByte(s[ix*2:])
		if err != nil {
			return Audio{}, err
		}
		b[ix] = v
	}

	a := Audio{Speed: b[0]}
	for ix := range a.Items {
		o := 1 + ix*3
		a.Items[ix] = Item{
			Sound:    b[o],
			Volume:   b[o+1],
			WaveType: WaveTypeFromTag(b[o+2]),
		}
	}

	return a, nil
}

// The track hex alphabet is not the usual one: nibble n is written as the
// character '0'+n, i.e. 10 to 15 become ':' to '?'. Saved cartridges depend
// on this, so it must not be replaced with encoding/hex.
func writeHexByte(sb *strings.Builder, b byte) {
	sb.WriteByte('0' + b>>4)
	sb.WriteByte('0' + b&0x0f)
}

//
func readHexByte(s string) (byte, error) {
	hi, lo := s[0]-'0', s[1]-'0'
	if hi > 0x0f || lo > 0x0f {
		return 0, ErrHexDigit
	}
	return hi<<4 | lo, nil
}
