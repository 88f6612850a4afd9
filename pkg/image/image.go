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

// Package image holds palette indexed images and their textual form, one
// lower case hex digit per pixel.
package image

import (
	"errors"
	"strings"
)

const (
	// SheetSize is width and height of the sprite sheet
	SheetSize = 128
	// SheetPixels is the number of pixels in the sprite sheet
	SheetPixels = SheetSize * SheetSize
	// PreviewWidth of the optional cartridge preview image
	PreviewWidth = 200
	// PreviewHeight of the optional cartridge preview image
	PreviewHeight = 180
)

var (
	ErrSize  = errors.New("image data does not match dimensions")
	ErrDigit = errors.New("invalid image digit")
	ErrColor = errors.New("colour index out of range")
)

// Image is a palette indexed image, one byte per pixel, row major.
type Image struct {
	Width  int
	Height int
	Pixels []byte
}

//
func New(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]byte, width*height),
	}
}

//
func (i *Image) At(x, y int) byte {
	if x < 0 || y < 0 || x >= i.Width || y >= i.Height {
		return 0
	}
	return i.Pixels[y*i.Width+x]
}

//
func (i *Image) Set(x, y int, c byte) {
	if x < 0 || y < 0 || x >= i.Width || y >= i.Height {
		return
	}
	i.Pixels[y*i.Width+x] = c
}

// Clone returns a deep copy.
func (i *Image) Clone() *Image {
	ret := New(i.Width, i.Height)
	copy(ret.Pixels, i.Pixels)
	return ret
}

// Parse reads an image from its textual form. The text must hold exactly
// width*height digits.
func Parse(width, height int, s string) (*Image, error) {

	if width < 0 || height < 0 || len(s) != width*height {
		return nil, ErrSize
	}

	ret := New(width, height)
	for ix := 0; ix < len(s); ix++ {
		c, ok := ParseDigit(s[ix])
		if !ok {
			return nil, ErrDigit
		}
		ret.Pixels[ix] = c
	}

	return ret, nil
}

// Validate checks that all pixels are valid colour indexes.
func (i *Image) Validate() error {
	if len(i.Pixels) != i.Width*i.Height {
		return ErrSize
	}
	return ValidatePixels(i.Pixels)
}

// String returns the textual form. Call Validate first, pixels above 15 are
// written as 0.
func (i *Image) String() string {
	return FormatPixels(i.Pixels)
}

// FormatPixels writes one digit per pixel.
func FormatPixels(pixels []byte) string {
	var sb strings.Builder
	sb.Grow(len(pixels))
	for _, p := range pixels {
		d, ok := FormatDigit(p)
		if !ok {
			d = '0'
		}
		sb.WriteByte(d)
	}
	return sb.String()
}

// ValidatePixels checks that all pixels are valid colour indexes.
func ValidatePixels(pixels []byte) error {
	for _, p := range pixels {
		if p > 15 {
			return ErrColor
		}
	}
	return nil
}

//
func ParseDigit(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

//
func FormatDigit(v byte) (byte, bool) {
	switch {
	case v < 10:
		return '0' + v, true
	case v < 16:
		return 'a' + v - 10, true
	}
	return 0, false
}

// Placeholder returns the sprite sheet used when a cartridge has none: a
// small diamond in colour 12 near the top left corner.
func Placeholder() []byte {
	ret := make([]byte, SheetPixels)
	for _, ix := range []int{258, 261, 642, 645, 516, 388, 387, 515} {
		ret[ix] = 12
	}
	return ret
}
