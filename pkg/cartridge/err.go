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

import "errors"

var (
	// ErrNoGameState is returned when data does not hold a decodable cartridge
	ErrNoGameState = errors.New("no game state found")
	// ErrNotLatin1 is returned when the script holds characters outside Latin-1
	ErrNotLatin1 = errors.New("script contains characters outside of Latin-1")
	// ErrInvalidPixel is returned when an image holds colour indexes above 15
	ErrInvalidPixel = errors.New("image contains invalid colour index")
	// ErrImageSize is returned when a sprite sheet or preview has the wrong size
	ErrImageSize = errors.New("image has wrong size")
)
