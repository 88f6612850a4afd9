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
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	log "github.com/sirupsen/logrus"
)

const wavBitDepth = 16

// RenderTrack renders the complete track a at full volume.
func RenderTrack(a Audio) []float32 {

	n := int(a.Duration().Seconds()*SampleRate) + SampleRate/100
	out := make([]float32, n)

	s := NewSynth(nil)
	s.Play(a)
	rendered := s.Render(out)

	return out[:rendered]
}

// WriteWAV renders a and writes it as 16 bit mono PCM WAV.
func WriteWAV(w io.WriteSeeker, a Audio) error {

	samples := RenderTrack(a)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: SampleRate},
		Data:           make([]int, len(samples)),
		SourceBitDepth: wavBitDepth,
	}

	for ix, s := range samples {
		// organ harmonics can overshoot
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		buf.Data[ix] = int(s * 32767)
	}

	enc := wav.NewEncoder(w, SampleRate, wavBitDepth, 1, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("error encoding WAV: %v", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("error finishing WAV: %v", err)
	}

	log.WithFields(log.Fields{
		"samples":  len(samples),
		"duration": a.Duration()}).Debug("sfx track written as WAV")

	return nil
}

// SeekBuffer is an in-memory io.WriteSeeker, for WAV encoding without a file.
type SeekBuffer struct {
	buf []byte
	pos int
}

//
func (b *SeekBuffer) Write(p []byte) (int, error) {
	if end := b.pos + len(p); end > len(b.buf) {
		b.buf = append(b.buf, make([]byte, end-len(b.buf))...)
	}
	n := copy(b.buf[b.pos:], p)
	b.pos += n
	return n, nil
}

//
func (b *SeekBuffer) Seek(offset int64, whence int) (int64, error) {

	var pos int64

	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(b.pos) + offset
	case io.SeekEnd:
		pos = int64(len(b.buf)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if pos < 0 {
		return 0, fmt.Errorf("negative seek position: %d", pos)
	}

	b.pos = int(pos)
	return pos, nil
}

//
func (b *SeekBuffer) Bytes() []byte {
	return b.buf
}
