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
	"fmt"
)

// Section is a named, fixed length, bounds checked view into the arena of a
// System. All accessors are total: reads outside the section return 0, writes
// outside the section are dropped. Callers rely on this and never check bounds
// themselves.
type Section struct {
	mem    *System
	start  uint32
	length uint32
	name   string
}

//
func (s *Section) Start() uint32 {
	return s.start
}

//
func (s *Section) Length() uint32 {
	return s.length
}

//
func (s *Section) Name() string {
	return s.name
}

//
func (s *Section) index(offset uint32) (int, bool) {
	if offset >= s.length {
		return 0, false
	}
	ix := uint64(s.start) + uint64(offset)
	if ix >= uint64(len(s.mem.arena)) {
		return 0, false
	}
	return int(ix), true
}

// Get reads the byte at offset, reporting whether offset lies inside the
// section.
func (s *Section) Get(offset uint32) (byte, bool) {
	if ix, ok := s.index(offset); ok {
		return s.mem.arena[ix], true
	}
	return 0, false
}

// ReadU8 reads the byte at offset, 0 when out of range.
func (s *Section) ReadU8(offset uint32) byte {
	v, _ := s.Get(offset)
	return v
}

// WriteU8 stores v at offset, no-op when out of range.
func (s *Section) WriteU8(offset uint32, v byte) {
	if ix, ok := s.index(offset); ok {
		s.mem.arena[ix] = v
	}
}

// ReadU32 reads a little endian uint32 starting at offset. If any of the four
// bytes lies outside the section, the value is absent.
func (s *Section) ReadU32(offset uint32) (uint32, bool) {

	var ret uint32

	for i := uint32(0); i < 4; i++ {
		if offset+i < offset { // wrapped around
			return 0, false
		}
		v, ok := s.Get(offset + i)
		if !ok {
			return 0, false
		}
		ret |= uint32(v) << (i * 8)
	}

	return ret, true
}

// ReadU32D is ReadU32 with 0 substituted for an absent value.
func (s *Section) ReadU32D(offset uint32) uint32 {
	v, _ := s.ReadU32(offset)
	return v
}

// WriteU32 stores v little endian at offset. Each of the four byte writes is
// bounds checked on its own, so a write straddling the end of the section
// stores only the bytes that fit.
func (s *Section) WriteU32(offset uint32, v uint32) {
	for i := uint32(0); i < 4; i++ {
		if offset+i < offset {
			return
		}
		s.WriteU8(offset+i, byte(v>>(i*8)))
	}
}

// Clear zeroes the whole section.
func (s *Section) Clear() {
	for o := uint32(0); o < s.length; o++ {
		s.WriteU8(o, 0)
	}
}

// Bytes returns a copy of length bytes starting at offset, out of range bytes
// reading as 0.
func (s *Section) Bytes(offset, length uint32) []byte {
	ret := make([]byte, length)
	for i := range ret {
		o := offset + uint32(i)
		if o < offset {
			break
		}
		ret[i] = s.ReadU8(o)
	}
	return ret
}

//
func (s *Section) String() string {
	return fmt.Sprintf("MemorySection %s (%d bytes, starts at %#x)",
		s.name, s.length, s.start)
}
