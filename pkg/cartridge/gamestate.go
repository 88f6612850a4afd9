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
	"strings"

	"github.com/rainbow16/r16/pkg/audio"
	"github.com/rainbow16/r16/pkg/image"
)

// DefaultCode is the script skeleton of a new cartridge
const DefaultCode = "function _init()\n\nend\n\nfunction _update()\n\nend\n\nfunction _draw()\n\nend\n"

// GameState is the in-memory form of a cartridge
type GameState struct {
	Filename     string
	Code         []string
	Audios       [audio.TrackCount]audio.Audio
	Image        []byte
	PreviewImage *image.Image
}

// NewGameState creates a game state holding the given script, default audio
// tracks, and the placeholder sprite sheet.
func NewGameState(code string) *GameState {
	ret := &GameState{
		Code:  strings.Split(code, "\n"),
		Image: image.Placeholder(),
	}
	for ix := range ret.Audios {
		ret.Audios[ix] = audio.New()
	}
	return ret
}

// Script returns the script lines joined by newlines
func (s *GameState) Script() string {
	return strings.Join(s.Code, "\n")
}

//
func (s *GameState) SetScript(code string) {
	s.Code = strings.Split(code, "\n")
}

// Sheet returns the sprite sheet as an image sharing the state's pixels
func (s *GameState) Sheet() *image.Image {
	return &image.Image{
		Width:  image.SheetSize,
		Height: image.SheetSize,
		Pixels: s.Image,
	}
}

// Clone returns a deep copy of the state
func (s *GameState) Clone() *GameState {
	ret := &GameState{
		Filename: s.Filename,
		Code:     append([]string(nil), s.Code...),
		Audios:   s.Audios,
		Image:    append([]byte(nil), s.Image...),
	}
	if s.PreviewImage != nil {
		ret.PreviewImage = s.PreviewImage.Clone()
	}
	return ret
}
