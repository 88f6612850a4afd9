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

package audio

import (
	"sync/atomic"

	"github.com/rainbow16/r16/pkg/memory"
)

// Trigger is the live sfx state as stored in the sfx trigger section.
type Trigger struct {
	Audio       Audio
	StartMillis uint32
	Playing     bool
}

// ReadTrigger decodes the sfx trigger section.
func ReadTrigger(s *memory.Section) Trigger {
	return Trigger{
		Audio:       ReadFrom(s, memory.SfxAudio),
		StartMillis: s.ReadU32D(memory.SfxStartTime),
		Playing:     s.ReadU8(memory.SfxPlaying) > 0,
	}
}

// Write stores the trigger into the sfx trigger section.
func (t *Trigger) Write(s *memory.Section) {
	t.Audio.WriteTo(s, memory.SfxAudio)
	s.WriteU32(memory.SfxStartTime, t.StartMillis)
	if t.Playing {
		s.WriteU8(memory.SfxPlaying, 1)
	} else {
		s.WriteU8(memory.SfxPlaying, 0)
	}
}

// Handoff passes sfx trigger snapshots from the simulation goroutine, which
// owns the memory system, to the audio goroutine. The producer publishes a
// fresh copy after every change, the consumer only ever sees complete
// snapshots and never touches the arena.
type Handoff struct {
	current atomic.Pointer[Trigger]
	serial  atomic.Uint64
}

//
func NewHandoff() *Handoff {
	return &Handoff{}
}

// Publish copies the sfx trigger section and makes it visible to the consumer.
func (h *Handoff) Publish(s *memory.Section) {
	t := ReadTrigger(s)
	h.Store(t)
}

// Store publishes t.
func (h *Handoff) Store(t Trigger) {
	h.current.Store(&t)
	h.serial.Add(1)
}

// Load returns the latest snapshot together with its serial number, which
// changes with every publication. A nil snapshot means nothing was published
// yet.
func (h *Handoff) Load() (*Trigger, uint64) {
	// serial first, so a concurrent Store can only make the serial look older
	// than the snapshot, which at worst causes one extra reload
	s := h.serial.Load()
	return h.current.Load(), s
}
