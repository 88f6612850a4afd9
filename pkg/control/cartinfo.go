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

package control

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/rainbow16/r16/pkg/audio"
	"github.com/rainbow16/r16/pkg/cartridge"
)

// TrackInfo summarizes an audio track
type TrackInfo struct {
	Track    int    `json:"track"`
	Speed    byte   `json:"speed"`
	Notes    int    `json:"notes"`
	Duration string `json:"duration"`
}

// CartInfo summarizes a cartridge
type CartInfo struct {
	Name        string      `json:"name"`
	Lines       int         `json:"lines"`
	ScriptBytes int         `json:"scriptBytes"`
	Preview     bool        `json:"preview"`
	Tracks      []TrackInfo `json:"tracks"`
}

// NewCartInfo creates the summary of a cartridge. Only tracks with at least
// one audible note are listed.
func NewCartInfo(s *cartridge.GameState) *CartInfo {

	ret := &CartInfo{
		Name:        s.Filename,
		Lines:       len(s.Code),
		ScriptBytes: len(s.Script()),
		Preview:     s.PreviewImage != nil,
		Tracks:      []TrackInfo{},
	}

	for ix := range s.Audios {
		a := &s.Audios[ix]
		notes := 0
		for _, it := range a.Items {
			if it.Volume > 0 {
				notes++
			}
		}
		if notes == 0 {
			continue
		}
		ret.Tracks = append(ret.Tracks, TrackInfo{
			Track:    ix,
			Speed:    a.Speed,
			Notes:    notes,
			Duration: a.Duration().String(),
		})
	}

	return ret
}

// WriteCartInfo prints a cartridge summary
func WriteCartInfo(w io.Writer, c *CartInfo) {

	fmt.Fprintf(w, "\n%s\n\n", c.Name)
	fmt.Fprintf(w, "script:   %d lines, %d bytes\n", c.Lines, c.ScriptBytes)
	fmt.Fprintf(w, "preview:  %v\n", c.Preview)
	fmt.Fprintf(w, "sfx:      %d of %d tracks used\n", len(c.Tracks), audio.TrackCount)

	if len(c.Tracks) > 0 {
		fmt.Fprintln(w)
		for _, t := range c.Tracks {
			fmt.Fprintf(w, "  track %2d  speed %3d  %2d notes  %s\n",
				t.Track, t.Speed, t.Notes, t.Duration)
		}
	}

	fmt.Fprintln(w)
}

// WriteFrameDump lists the frames of a container. If frame names a frame type,
// the payload of the first frame of that type is hex dumped.
func WriteFrameDump(w io.Writer, container []byte, frame string) error {

	frames, err := cartridge.Frames(container)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d bytes, %d frames\n\n", len(container), len(frames))
	for _, f := range frames {
		fmt.Fprintf(w, "%-8s tag %#02x  offset %#06x  %7d bytes\n",
			f.Type, f.Tag, f.Offset, len(f.Payload))
	}
	fmt.Fprintln(w)

	if frame == "" {
		return nil
	}

	for _, f := range frames {
		if f.Type.String() == frame {
			d := hex.Dumper(w)
			defer d.Close()
			_, err := d.Write(f.Payload)
			return err
		}
	}

	return fmt.Errorf("no %s frame in cartridge", frame)
}
