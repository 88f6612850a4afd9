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

// System owns the byte arena backing all emulated memory. Sections are carved
// out of the arena strictly in sequence, so offsets handed out by NewSection
// stay valid for the lifetime of the system. A System is meant to be used from
// the simulation goroutine only; the audio side receives copies via the audio
// handoff.
type System struct {
	arena    []byte
	sections []*Section
}

//
func NewSystem() *System {
	return &System{}
}

// NewSection appends length zero bytes to the arena and returns a section
// starting at the previous end of the arena.
func (m *System) NewSection(length uint32, name string) *Section {

	s := &Section{
		mem:    m,
		start:  uint32(len(m.arena)),
		length: length,
		name:   name,
	}

	m.arena = append(m.arena, make([]byte, length)...)
	m.sections = append(m.sections, s)

	log.WithFields(log.Fields{
		"name":   name,
		"start":  s.start,
		"length": length}).Debug("memory section created")

	return s
}

// Len returns the current size of the arena in bytes.
func (m *System) Len() int {
	return len(m.arena)
}

// Sections returns all sections in creation order.
func (m *System) Sections() []*Section {
	ret := make([]*Section, len(m.sections))
	copy(ret, m.sections)
	return ret
}

// Peek reads an absolute arena address, ignoring section boundaries. Addresses
// beyond the arena read as 0.
func (m *System) Peek(addr int) byte {
	if addr < 0 || addr >= len(m.arena) {
		return 0
	}
	return m.arena[addr]
}

// Poke writes an absolute arena address, ignoring section boundaries. Writes
// beyond the arena are dropped.
func (m *System) Poke(addr int, v byte) {
	if addr < 0 || addr >= len(m.arena) {
		log.WithField("address", addr).Trace("poke out of range dropped")
		return
	}
	m.arena[addr] = v
}
