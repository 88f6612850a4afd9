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

package memory

import (
	log "github.com/sirupsen/logrus"
)

// screen geometry
const (
	Width  = 200
	Height = 180
)

// Display section layout
const (
	DisplayTranslation  = 0x00 // 16 bytes, colour translation table
	DisplayPalette      = 0x10 // active palette, mod 4
	DisplayTransparency = 0x11 // 2 bytes, one bit per colour
	DisplayPixels       = 0x13 // Width*Height bytes, row major
	DisplayLength       = Width*Height + DisplayPixels
)

// Keyboard section layout
const (
	KeyModifiers    = 0x00 // bit 0 Ctrl, 1 Alt, 2 Shift, 3 CapsLock, 4 AltGr
	KeySlots        = 0x01 // 10 slots, 4 bytes LE key code each
	KeySlotCount    = 10
	KeyButtonTicks  = 0x26 // 8 bytes, ticks since button got pressed
	KeyButtonCount  = 8
	KeyMouseButtons = 0x2e // bit 0 left, 1 right, 2 middle
	KeyScroll       = 0x2f // u32, offset by math.MaxInt32
	KeyMouseX       = 0x33 // u32
	KeyMouseY       = 0x37 // u32
	KeyCursor       = 0x3b // 1 activates the mouse cursor
	KeyLength       = 60
)

// Charpress section layout
const (
	CharpressChar   = 0x00 // u32 unicode scalar
	CharpressLength = 4
)

// Sfx trigger section layout
const (
	SfxAudio     = 0   // 97 bytes, see audio.Audio
	SfxStartTime = 98  // u32, milliseconds
	SfxPlaying   = 102 // 1 while a sound is playing
	SfxLength    = 103
)

// Registry holds the four fixed sections of the console. They are created in
// a fixed order, so their arena addresses are the same for every console.
type Registry struct {
	*System
	//
	Display   *Section
	Keyboard  *Section
	Charpress *Section
	Sfx       *Section
}

//
func NewRegistry() *Registry {

	m := NewSystem()

	r := &Registry{
		System:    m,
		Display:   m.NewSection(DisplayLength, "Display Memory"),
		Keyboard:  m.NewSection(KeyLength, "Key Memory"),
		Charpress: m.NewSection(CharpressLength, "Charpress Memory"),
		Sfx:       m.NewSection(SfxLength, "SFX Memory"),
	}

	for i := uint32(0); i < 16; i++ {
		r.Display.WriteU8(DisplayTranslation+i, byte(i))
	}

	for _, s := range m.Sections() {
		log.Debug(s.String())
	}

	return r
}
