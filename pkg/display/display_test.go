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

package display

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rainbow16/r16/pkg/image"
	"github.com/rainbow16/r16/pkg/memory"
)

//
func newDisplay() (*memory.Registry, *Display) {
	reg := memory.NewRegistry()
	return reg, New(reg.Display)
}

func TestSetPixel(t *testing.T) {
	assert := assert.New(t)
	reg, d := newDisplay()

	d.SetPixel(3, 2, 7)
	assert.Equal(byte(7), d.Pixel(3, 2))
	assert.Equal(byte(7), reg.Display.ReadU8(memory.DisplayPixels+2*memory.Width+3))

	d.SetPixel(4, 2, 0x17)
	assert.Equal(byte(7), d.Pixel(4, 2))

	// off screen is dropped
	d.SetPixel(-1, 0, 5)
	d.SetPixel(memory.Width, 0, 5)
	d.SetPixel(0, memory.Height, 5)
	assert.Equal(byte(0), d.Pixel(-1, 0))
	assert.Equal(byte(0), d.Pixel(memory.Width-1, 0))
	assert.Equal(byte(0), d.Pixel(0, memory.Height-1))
}

func TestPal(t *testing.T) {
	assert := assert.New(t)
	_, d := newDisplay()

	d.Pal(3, 9)
	d.SetPixel(0, 0, 3)
	assert.Equal(byte(9), d.Pixel(0, 0))

	d.Pal(0x13, 0x1a)
	d.SetPixel(1, 0, 3)
	assert.Equal(byte(10), d.Pixel(1, 0))

	d.ResetPal()
	d.SetPixel(2, 0, 3)
	assert.Equal(byte(3), d.Pixel(2, 0))
}

func TestPalt(t *testing.T) {
	assert := assert.New(t)
	reg, d := newDisplay()

	d.Clear(1)
	d.Palt(1, true)
	d.Palt(12, true)
	assert.Equal(byte(0x02), reg.Display.ReadU8(memory.DisplayTransparency))
	assert.Equal(byte(0x10), reg.Display.ReadU8(memory.DisplayTransparency+1))

	d.SetPixel(0, 0, 12)
	assert.Equal(byte(1), d.Pixel(0, 0))

	d.Palt(12, false)
	d.SetPixel(0, 0, 12)
	assert.Equal(byte(12), d.Pixel(0, 0))

	d.ResetPalt()
	assert.Equal(byte(0), reg.Display.ReadU8(memory.DisplayTransparency))
	assert.Equal(byte(0), reg.Display.ReadU8(memory.DisplayTransparency+1))
	assert.Equal(byte(0), d.Palette())
}

func TestClear(t *testing.T) {
	assert := assert.New(t)
	_, d := newDisplay()

	d.Pal(2, 11)
	d.Palt(2, true)
	d.Clear(2)
	assert.Equal(byte(11), d.Pixel(0, 0))
	assert.Equal(byte(11), d.Pixel(memory.Width-1, memory.Height-1))
}

func TestPalette(t *testing.T) {
	assert := assert.New(t)
	_, d := newDisplay()

	d.SetPalette(6)
	assert.Equal(byte(2), d.Palette())
	assert.Equal(image.Palettes[2], Colors(6))
}

func TestShapes(t *testing.T) {
	assert := assert.New(t)
	_, d := newDisplay()

	d.RectFill(10, 10, 3, 2, 4)
	assert.Equal(byte(4), d.Pixel(10, 10))
	assert.Equal(byte(4), d.Pixel(12, 11))
	assert.Equal(byte(0), d.Pixel(13, 11))
	assert.Equal(byte(0), d.Pixel(12, 12))

	d.Line(0, 50, 5, 50, 6)
	for x := 0; x <= 5; x++ {
		assert.Equal(byte(6), d.Pixel(x, 50))
	}
	d.Line(20, 20, 23, 23, 8)
	assert.Equal(byte(8), d.Pixel(20, 20))
	assert.Equal(byte(8), d.Pixel(22, 22))
	assert.Equal(byte(8), d.Pixel(23, 23))

	d.Camera(100, 0)
	d.Rect(0, 100, 4, 4, 9)
	assert.Equal(byte(9), d.Pixel(100, 100))
	assert.Equal(byte(9), d.Pixel(103, 103))
	assert.Equal(byte(0), d.Pixel(101, 101))

	d.Camera(0, 0)
	d.Circle(150, 150, 3, 5)
	assert.Equal(byte(5), d.Pixel(150, 150))
	assert.Equal(byte(0), d.Pixel(153, 153))
}

func TestClip(t *testing.T) {
	assert := assert.New(t)
	_, d := newDisplay()

	d.Clip(10, 10, 5, 5)
	d.RectFill(0, 0, 50, 50, 3)
	assert.Equal(byte(3), d.Pixel(10, 10))
	assert.Equal(byte(3), d.Pixel(14, 14))
	assert.Equal(byte(0), d.Pixel(9, 10))
	assert.Equal(byte(0), d.Pixel(15, 14))

	d.ResetClip()
	d.SetPixel(0, 0, 3)
	assert.Equal(byte(3), d.Pixel(0, 0))
}

func TestSpr(t *testing.T) {
	assert := assert.New(t)
	_, d := newDisplay()

	sheet := make([]byte, image.SheetPixels)
	// sprite 17 starts at (8, 8)
	sheet[8*image.SheetSize+8] = 5
	sheet[15*image.SheetSize+15] = 6
	d.SetSheet(sheet)

	d.Spr(17, 40, 40)
	assert.Equal(byte(5), d.Pixel(40, 40))
	assert.Equal(byte(6), d.Pixel(47, 47))

	d.Palt(5, true)
	d.Spr(17, 60, 60)
	assert.Equal(byte(0), d.Pixel(60, 60))

	assert.NotPanics(func() {
		d.Spr(255, 0, 0)
		d.Spr(-1, 0, 0)
		d.Sspr(0, 0, 120, 120, 20, 20)
		d.SetSheet(nil)
		d.Spr(1, 0, 0)
	})
}

func TestRender(t *testing.T) {
	assert := assert.New(t)
	_, d := newDisplay()

	d.SetPixel(1, 1, 12)
	d.SetPalette(3)

	img := d.Render()
	assert.Equal(memory.Width, img.Bounds().Dx())
	assert.Equal(memory.Height, img.Bounds().Dy())
	assert.Equal(image.Palettes[3][12], img.At(1, 1))
	assert.Equal(color.Color(color.RGBA{A: 0xff}), img.At(0, 0))

	shot, err := d.Screenshot(3)
	require.NoError(t, err)
	assert.Equal(memory.Width*3, shot.Bounds().Dx())
	assert.Equal(image.Palettes[3][12], shot.At(5, 5))
	assert.Equal(img.At(0, 0), shot.At(2, 2))

	_, err = d.Screenshot(0)
	assert.Error(err)

	snap := d.Snapshot()
	assert.Equal(byte(12), snap.At(1, 1))
}
