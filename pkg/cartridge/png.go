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

package cartridge

import (
	"bytes"
	"encoding/binary"
	goimage "image"
	"image/png"

	log "github.com/sirupsen/logrus"
)

// TrailerLength is the size of the container length stored at the very end
// of a PNG cartridge
const TrailerLength = 4

// EncodePNG creates a PNG cartridge: a viewable PNG, followed by the container,
// followed by the container's length as 32 bit little endian. If shot is nil,
// the preview image is used as the picture, or the sprite sheet if there is no
// preview.
func EncodePNG(state *GameState, shot goimage.Image) ([]byte, error) {

	container, err := Encode(state)
	if err != nil {
		return nil, err
	}

	if shot == nil {
		if state.PreviewImage != nil {
			shot = state.PreviewImage.Paletted(0)
		} else {
			shot = state.Sheet().Paletted(0)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, shot); err != nil {
		return nil, err
	}
	picture := buf.Len()

	buf.Write(container)
	var trailer [TrailerLength]byte
	binary.LittleEndian.PutUint32(trailer[:], uint32(len(container)))
	buf.Write(trailer[:])

	log.WithFields(log.Fields{
		"picture":   picture,
		"container": len(container)}).Debug("PNG cartridge encoded")

	return buf.Bytes(), nil
}

// ContainerFromPNG locates the container embedded in a PNG cartridge.
func ContainerFromPNG(data []byte) ([]byte, error) {

	if len(data) < TrailerLength {
		return nil, ErrNoGameState
	}

	end := len(data) - TrailerLength
	size := binary.LittleEndian.Uint32(data[end:])
	if uint64(size) > uint64(end) {
		log.WithFields(log.Fields{
			"size":      size,
			"available": end}).Debug("PNG trailer length out of range")
		return nil, ErrNoGameState
	}

	return data[end-int(size) : end], nil
}

// DecodePNG decodes the game state embedded in a PNG cartridge.
func DecodePNG(data []byte) (*GameState, error) {
	container, err := ContainerFromPNG(data)
	if err != nil {
		return nil, err
	}
	return Decode(container)
}
