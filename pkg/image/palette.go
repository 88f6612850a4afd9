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

package image

import (
	goimage "image"
	"image/color"
)

// PaletteCount is the number of built in palettes
const PaletteCount = 4

// Palettes are the built in 16 colour palettes.
var Palettes = [PaletteCount]color.Palette{
	hexPalette(
		0x1a1c2c, 0x5d275d, 0xb13e53, 0xef7d57, 0xffcd75, 0xa7f070, 0x38b764, 0x257179,
		0x29366f, 0x3b5dc9, 0x41a6f6, 0x73eff7, 0xf4f4f4, 0x94b0c2, 0x566c86, 0x333c57),
	hexPalette(
		0x28282e, 0x6c5671, 0xd9c8bf, 0xf98284, 0xb0a9e4, 0xaccce4, 0xb3e3da, 0xfeaae4,
		0x87a889, 0xb0eb93, 0xe9f59d, 0xffe6c6, 0xdea38b, 0xffc384, 0xfff7a0, 0xfff7e4),
	hexPalette(
		0x00033c, 0x005260, 0x009d4a, 0x0aff52, 0x003884, 0x008ac5, 0x00f7ff, 0xff5cff,
		0xac29ce, 0x600088, 0xb10585, 0xff004e, 0x2a2e79, 0x4e6ea8, 0xadd4fa, 0xffffff),
	hexPalette(
		0x000000, 0x430067, 0x94216a, 0xff004d, 0xff8426, 0xffdd34, 0x50e112, 0x3fa66f,
		0x365987, 0x0033ff, 0x29adff, 0x00ffcc, 0xfff1e8, 0xc2c3c7, 0xab5236, 0x5f574f),
}

//
func hexPalette(rgb ...uint32) color.Palette {
	ret := make(color.Palette, len(rgb))
	for ix, c := range rgb {
		ret[ix] = color.RGBA{R: byte(c >> 16), G: byte(c >> 8), B: byte(c), A: 0xff}
	}
	return ret
}

// Paletted converts the image into a standard library image using one of the
// built in palettes. Colour indexes wrap around at 16.
func (i *Image) Paletted(palette int) *goimage.Paletted {

	ret := goimage.NewPaletted(
		goimage.Rect(0, 0, i.Width, i.Height), Palettes[palette%PaletteCount])

	for y := 0; y < i.Height; y++ {
		for x := 0; x < i.Width; x++ {
			ret.SetColorIndex(x, y, i.At(x, y)%16)
		}
	}

	return ret
}
