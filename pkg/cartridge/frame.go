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
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Magic is the header every cartridge container starts with
var Magic = []byte{'R', '1', '6', 0x10}

const (
	// FrameMarker precedes every frame in a container
	FrameMarker byte = 0x12
	// FrameHeaderLength is marker, type, and 32 bit payload length
	FrameHeaderLength = 6
)

// FrameType identifies the payload held in a frame
type FrameType byte

//
const (
	Script       FrameType = 0
	Sfx          FrameType = 1
	Images       FrameType = 2
	PreviewImage FrameType = 3
	Unknown      FrameType = 0xff
)

// FrameTypeFromTag maps a frame type byte to its type. Tags not assigned to
// a payload yield Unknown.
func FrameTypeFromTag(tag byte) FrameType {
	switch t := FrameType(tag); t {
	case Script, Sfx, Images, PreviewImage:
		return t
	}
	return Unknown
}

//
func (t FrameType) String() string {
	switch t {
	case Script:
		return "script"
	case Sfx:
		return "sfx"
	case Images:
		return "images"
	case PreviewImage:
		return "preview"
	}
	return "unknown"
}

// Frame is a single typed payload of a container
type Frame struct {
	Type    FrameType
	Tag     byte
	Offset  int
	Payload []byte
}

//
func (f *Frame) String() string {
	return fmt.Sprintf("frame %s (tag %#02x, %d bytes at %#x)",
		f.Type, f.Tag, len(f.Payload), f.Offset)
}

//
func writeFrame(buf *bytes.Buffer, t FrameType, payload []byte) {
	var hdr [FrameHeaderLength]byte
	hdr[0] = FrameMarker
	hdr[1] = byte(t)
	binary.LittleEndian.PutUint32(hdr[2:], uint32(len(payload)))
	buf.Write(hdr[:])
	buf.Write(payload)
}

// Frames scans a container and returns its frames in order of appearance.
// Scanning stops silently at the first malformed or truncated frame; frames
// scanned up to that point are returned. An error is only returned when the
// data does not start with the container magic.
func Frames(data []byte) ([]*Frame, error) {

	if len(data) < len(Magic) || !bytes.Equal(data[:len(Magic)], Magic) {
		return nil, ErrNoGameState
	}

	var ret []*Frame

	for off := len(Magic); off < len(data); {

		if len(data)-off < FrameHeaderLength {
			log.WithField("offset", off).Debug("truncated frame header")
			break
		}

		if data[off] != FrameMarker {
			log.WithFields(log.Fields{
				"offset": off,
				"marker": data[off]}).Debug("invalid frame marker")
			break
		}

		size := binary.LittleEndian.Uint32(data[off+2:])
		start := off + FrameHeaderLength
		if uint64(size) > uint64(len(data)-start) {
			log.WithFields(log.Fields{
				"offset": off,
				"size":   size}).Debug("truncated frame payload")
			break
		}

		end := start + int(size)
		ret = append(ret, &Frame{
			Type:    FrameTypeFromTag(data[off+1]),
			Tag:     data[off+1],
			Offset:  off,
			Payload: data[start:end],
		})
		off = end
	}

	return ret, nil
}
