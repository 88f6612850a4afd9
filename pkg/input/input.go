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

package input

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/rainbow16/r16/pkg/memory"
)

// Input translates host events into the keyboard and charpress sections
type Input struct {
	keys  *memory.Section
	chars *memory.Section
}

//
func New(keys, chars *memory.Section) *Input {
	ret := &Input{keys: keys, chars: chars}
	ret.ResetScroll()
	return ret
}

// KeyDown records a pressed key in the first free slot. Keys already down,
// and presses while all slots are taken, are ignored.
func (in *Input) KeyDown(k Keycode) {

	if m := modifierFor(k); m != 0 {
		in.keys.WriteU8(memory.KeyModifiers, in.keys.ReadU8(memory.KeyModifiers)|byte(m))
	}

	if k == KeyNone || in.IsKeyDown(k) {
		return
	}

	for ix := uint32(0); ix < memory.KeySlotCount; ix++ {
		if in.keys.ReadU32D(slot(ix)) == 0 {
			in.keys.WriteU32(slot(ix), uint32(k))
			return
		}
	}

	log.WithField("key", uint32(k)).Debug("all key slots taken")
}

// KeyUp clears every slot holding the key
func (in *Input) KeyUp(k Keycode) {

	if m := modifierFor(k); m != 0 {
		in.keys.WriteU8(memory.KeyModifiers, in.keys.ReadU8(memory.KeyModifiers)&^byte(m))
	}

	if k == KeyNone {
		return
	}

	for ix := uint32(0); ix < memory.KeySlotCount; ix++ {
		if in.keys.ReadU32D(slot(ix)) == uint32(k) {
			in.keys.WriteU32(slot(ix), 0)
		}
	}
}

//
func (in *Input) IsKeyDown(k Keycode) bool {
	if k == KeyNone {
		return false
	}
	for ix := uint32(0); ix < memory.KeySlotCount; ix++ {
		if in.keys.ReadU32D(slot(ix)) == uint32(k) {
			return true
		}
	}
	return false
}

//
func slot(ix uint32) uint32 {
	return memory.KeySlots + ix*4
}

//
func (in *Input) HasModifier(m Modifier) bool {
	return in.keys.ReadU8(memory.KeyModifiers)&byte(m) != 0
}

// TextInput stores the character typed during the current frame
func (in *Input) TextInput(r rune) {
	in.chars.WriteU32(memory.CharpressChar, uint32(r))
}

// Char returns the character typed during the current frame, 0 if none
func (in *Input) Char() rune {
	return rune(in.chars.ReadU32D(memory.CharpressChar))
}

//
func (in *Input) ResetText() {
	in.TextInput(0)
}

// Tick advances the held counter of every button by one frame. A released
// button resets to 0, a held one counts up to 6 and then cycles through 5
// and 6, which drives the repeat of ButtonPressed.
func (in *Input) Tick() {
	for b := Button(0); b < ButtonCount; b++ {
		addr := memory.KeyButtonTicks + uint32(b)
		if !in.IsKeyDown(b.Key()) {
			in.keys.WriteU8(addr, 0)
			continue
		}
		t := in.keys.ReadU8(addr) + 1
		if t >= 7 {
			t = 5
		}
		in.keys.WriteU8(addr, t)
	}
}

// ButtonTicks returns the held counter of a button
func (in *Input) ButtonTicks(b Button) byte {
	return in.keys.ReadU8(memory.KeyButtonTicks + uint32(b%ButtonCount))
}

//
func (in *Input) ButtonDown(b Button) bool {
	return in.ButtonTicks(b) > 0
}

// ButtonPressed is true on the first frame a button is held, and then
// repeatedly while it stays down.
func (in *Input) ButtonPressed(b Button) bool {
	t := in.ButtonTicks(b)
	return t == 1 || t > 5 && t%3 == 0
}

//
func (in *Input) MouseDown(b MouseButton) {
	in.keys.WriteU8(memory.KeyMouseButtons, in.keys.ReadU8(memory.KeyMouseButtons)|byte(b))
}

//
func (in *Input) MouseUp(b MouseButton) {
	in.keys.WriteU8(memory.KeyMouseButtons, in.keys.ReadU8(memory.KeyMouseButtons)&^byte(b))
}

//
func (in *Input) MouseButtonDown(b MouseButton) bool {
	return in.keys.ReadU8(memory.KeyMouseButtons)&byte(b) != 0
}

//
func (in *Input) MouseMove(x, y uint32) {
	in.keys.WriteU32(memory.KeyMouseX, x)
	in.keys.WriteU32(memory.KeyMouseY, y)
}

//
func (in *Input) Mouse() (x, y uint32) {
	return in.keys.ReadU32D(memory.KeyMouseX), in.keys.ReadU32D(memory.KeyMouseY)
}

// Scroll accumulates wheel movement for the current frame
func (in *Input) Scroll(delta int32) {
	v := int64(in.keys.ReadU32D(memory.KeyScroll)) + int64(delta)
	in.keys.WriteU32(memory.KeyScroll, uint32(v))
}

// ResetScroll sets the scroll accumulator to its neutral value
func (in *Input) ResetScroll() {
	in.keys.WriteU32(memory.KeyScroll, math.MaxInt32)
}

// ScrollDelta returns the wheel movement accumulated since the last reset
func (in *Input) ScrollDelta() int32 {
	return int32(int64(in.keys.ReadU32D(memory.KeyScroll)) - math.MaxInt32)
}

//
func (in *Input) SetCursorVisible(v bool) {
	var b byte
	if v {
		b = 1
	}
	in.keys.WriteU8(memory.KeyCursor, b)
}

//
func (in *Input) CursorVisible() bool {
	return in.keys.ReadU8(memory.KeyCursor) == 1
}
