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

// Keycode identifies a key. Printable keys use their lower case character,
// others the SDL scan code with bit 30 set, so that values stored in the
// keyboard section match what cartridges expect.
type Keycode uint32

//
const (
	KeyNone      Keycode = 0
	KeyBackspace Keycode = 0x08
	KeyTab       Keycode = 0x09
	KeyReturn    Keycode = 0x0d
	KeyEscape    Keycode = 0x1b
	KeySpace     Keycode = 0x20
	KeyDelete    Keycode = 0x7f

	KeyCapsLock Keycode = 0x40000039
	KeyRight    Keycode = 0x4000004f
	KeyLeft     Keycode = 0x40000050
	KeyDown     Keycode = 0x40000051
	KeyUp       Keycode = 0x40000052
	KeyLCtrl    Keycode = 0x400000e0
	KeyLShift   Keycode = 0x400000e1
	KeyLAlt     Keycode = 0x400000e2
	KeyRCtrl    Keycode = 0x400000e4
	KeyRShift   Keycode = 0x400000e5
	KeyRAlt     Keycode = 0x400000e6
)

// KeycodeFromRune returns the key code of a printable key
func KeycodeFromRune(r rune) Keycode {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	return Keycode(r)
}

// Modifier is a bit in the modifier byte of the keyboard section
type Modifier byte

//
const (
	Ctrl     Modifier = 1
	Alt      Modifier = 2
	Shift    Modifier = 4
	CapsLock Modifier = 8
	AltGr    Modifier = 16
)

//
func modifierFor(k Keycode) Modifier {
	switch k {
	case KeyLCtrl, KeyRCtrl:
		return Ctrl
	case KeyLAlt:
		return Alt
	case KeyLShift, KeyRShift:
		return Shift
	case KeyCapsLock:
		return CapsLock
	case KeyRAlt:
		return AltGr
	}
	return 0
}

// Button is one of the eight game buttons
type Button byte

//
const (
	Up Button = iota
	Down
	Left
	Right
	A
	B
	X
	Y
	ButtonCount
)

var buttonKeys = [ButtonCount]Keycode{
	KeyUp, KeyDown, KeyLeft, KeyRight,
	KeycodeFromRune('u'), KeycodeFromRune('i'),
	KeycodeFromRune('o'), KeycodeFromRune('p'),
}

// ButtonFromIndex maps any number onto a button, wrapping at 8
func ButtonFromIndex(ix int) Button {
	ix %= int(ButtonCount)
	if ix < 0 {
		ix += int(ButtonCount)
	}
	return Button(ix)
}

// Key returns the key bound to the button
func (b Button) Key() Keycode {
	return buttonKeys[b%ButtonCount]
}

//
func (b Button) String() string {
	return [...]string{"up", "down", "left", "right", "a", "b", "x", "y"}[b%ButtonCount]
}

// MouseButton is a bit in the mouse button byte of the keyboard section
type MouseButton byte

//
const (
	MouseLeft   MouseButton = 1
	MouseRight  MouseButton = 2
	MouseMiddle MouseButton = 4
)
