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
	"fmt"
	goimage "image"
	"image/color"

	"golang.org/x/image/draw"

	log "github.com/sirupsen/logrus"

	"github.com/rainbow16/r16/pkg/image"
	"github.com/rainbow16/r16/pkg/memory"
)

// Display draws into the display section of the memory map. All state lives
// in the section, apart from camera offset, clip rectangle, and the sprite
// sheet, which belong to the running cartridge.
type Display struct {
	section *memory.Section
	sheet   []byte
	ox, oy  int
	clip    goimage.Rectangle
}

//
func New(s *memory.Section) *Display {
	return &Display{
		section: s,
		clip:    screen(),
	}
}

//
func screen() goimage.Rectangle {
	return goimage.Rect(0, 0, memory.Width, memory.Height)
}

// SetSheet sets the sprite sheet used by Spr and Sspr
func (d *Display) SetSheet(pixels []byte) {
	d.sheet = pixels
}

// color translates a colour index, and reports false if it is transparent
func (d *Display) color(c byte) (byte, bool) {
	c %= 16
	mask := d.section.ReadU8(memory.DisplayTransparency + uint32(c/8))
	if (mask>>(c%8))&1 > 0 {
		return 0, false
	}
	return d.section.ReadU8(memory.DisplayTranslation + uint32(c)), true
}

//
func (d *Display) inBounds(x, y int) bool {
	return goimage.Pt(x, y).In(d.clip)
}

// SetPixel draws one pixel with colour translation and transparency applied.
// Pixels outside of screen or clip rectangle are dropped.
func (d *Display) SetPixel(x, y int, c byte) {
	if !d.inBounds(x, y) {
		return
	}
	if t, ok := d.color(c); ok {
		d.section.WriteU8(pixelOffset(x, y), t)
	}
}

// Pixel returns the colour index stored for a pixel, or 0 when off screen.
func (d *Display) Pixel(x, y int) byte {
	if !goimage.Pt(x, y).In(screen()) {
		return 0
	}
	return d.section.ReadU8(pixelOffset(x, y))
}

//
func pixelOffset(x, y int) uint32 {
	return memory.DisplayPixels + uint32(y*memory.Width+x)
}

// Clear fills the screen with the translated colour c, ignoring transparency
// and clipping.
func (d *Display) Clear(c byte) {
	t := d.section.ReadU8(memory.DisplayTranslation + uint32(c%16))
	for ix := uint32(0); ix < memory.Width*memory.Height; ix++ {
		d.section.WriteU8(memory.DisplayPixels+ix, t)
	}
}

// Pal makes colour c1 draw as c2
func (d *Display) Pal(c1, c2 byte) {
	d.section.WriteU8(memory.DisplayTranslation+uint32(c1%16), c2%16)
}

// ResetPal restores the identity colour translation
func (d *Display) ResetPal() {
	for ix := byte(0); ix < 16; ix++ {
		d.section.WriteU8(memory.DisplayTranslation+uint32(ix), ix)
	}
}

// Palt sets whether colour c is transparent
func (d *Display) Palt(c byte, transparent bool) {
	c %= 16
	addr := memory.DisplayTransparency + uint32(c/8)
	mask := d.section.ReadU8(addr) &^ (1 << (c % 8))
	if transparent {
		mask |= 1 << (c % 8)
	}
	d.section.WriteU8(addr, mask)
}

// ResetPalt makes all colours opaque
func (d *Display) ResetPalt() {
	d.section.WriteU8(memory.DisplayTransparency, 0)
	d.section.WriteU8(memory.DisplayTransparency+1, 0)
}

// SetPalette selects one of the built in palettes
func (d *Display) SetPalette(p byte) {
	d.section.WriteU8(memory.DisplayPalette, p%image.PaletteCount)
	log.WithField("palette", p%image.PaletteCount).Debug("palette switched")
}

//
func (d *Display) Palette() byte {
	return d.section.ReadU8(memory.DisplayPalette) % image.PaletteCount
}

// Camera sets the offset applied by the shape primitives
func (d *Display) Camera(x, y int) {
	d.ox, d.oy = x, y
}

// Clip restricts drawing to a rectangle, which is cut to the screen
func (d *Display) Clip(x, y, w, h int) {
	d.clip = goimage.Rect(x, y, x+w, y+h).Intersect(screen())
}

//
func (d *Display) ResetClip() {
	d.clip = screen()
}

//
func (d *Display) RectFill(x, y, w, h int, c byte) {
	r := goimage.Rect(x+d.ox, y+d.oy, x+d.ox+w, y+d.oy+h).Intersect(d.clip)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			d.SetPixel(px, py, c)
		}
	}
}

//
func (d *Display) Rect(x, y, w, h int, c byte) {
	d.RectFill(x, y, w, 1, c)
	d.RectFill(x, y, 1, h, c)
	d.RectFill(x, y+h-1, w, 1, c)
	d.RectFill(x+w-1, y, 1, h, c)
}

// Line draws from (x1, y1) to (x2, y2), both end points included
func (d *Display) Line(x1, y1, x2, y2 int, c byte) {

	x1, y1, x2, y2 = x1+d.ox, y1+d.oy, x2+d.ox, y2+d.oy

	dx, sx := abs(x2-x1), sign(x2-x1)
	dy, sy := -abs(y2-y1), sign(y2-y1)
	e := dx + dy

	for {
		d.SetPixel(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

// Circle draws a filled circle
func (d *Display) Circle(cx, cy, r int, c byte) {
	cx, cy = cx+d.ox, cy+d.oy
	rsq := r * r
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if dx, dy := x-cx, y-cy; dx*dx+dy*dy < rsq {
				d.SetPixel(x, y, c)
			}
		}
	}
}

// Sspr copies a w by h area at (x, y) of the sprite sheet to the screen
func (d *Display) Sspr(sx, sy, x, y, w, h int) {
	if x < 0 || y < 0 || len(d.sheet) < image.SheetPixels {
		return
	}
	for oy := 0; oy < h && y+oy < image.SheetSize; oy++ {
		for ox := 0; ox < w && x+ox < image.SheetSize; ox++ {
			d.SetPixel(sx+ox, sy+oy, d.sheet[(y+oy)*image.SheetSize+x+ox])
		}
	}
}

// Spr draws 8x8 sprite idx of the sheet
func (d *Display) Spr(idx, x, y int) {
	if idx < 0 || idx >= 255 {
		return
	}
	d.Sspr(x, y, idx%16*8, idx/16*8, 8, 8)
}

// Colors returns the RGB colours of a built in palette
func Colors(palette byte) color.Palette {
	return image.Palettes[palette%image.PaletteCount]
}

// Render converts the screen into an RGBA image using the current palette.
// Colour translation has already been applied when drawing.
func (d *Display) Render() *goimage.RGBA {

	colors := Colors(d.Palette())
	ret := goimage.NewRGBA(screen())

	pixels := d.section.Bytes(memory.DisplayPixels, memory.Width*memory.Height)
	for ix, p := range pixels {
		ret.Set(ix%memory.Width, ix/memory.Width, colors[p%16])
	}

	return ret
}

// Screenshot renders the screen scaled up by an integer factor
func (d *Display) Screenshot(scale int) (*goimage.RGBA, error) {

	if scale < 1 || scale > 16 {
		return nil, fmt.Errorf("invalid screenshot scale: %d", scale)
	}

	src := d.Render()
	if scale == 1 {
		return src, nil
	}

	dst := goimage.NewRGBA(goimage.Rect(0, 0, memory.Width*scale, memory.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	return dst, nil
}

// Snapshot returns the screen's colour indexes as a preview image
func (d *Display) Snapshot() *image.Image {
	ret := image.New(memory.Width, memory.Height)
	for ix, p := range d.section.Bytes(memory.DisplayPixels, memory.Width*memory.Height) {
		ret.Pixels[ix] = p % 16
	}
	return ret
}

//
func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

//
func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
