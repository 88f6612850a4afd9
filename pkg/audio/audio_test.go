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
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rainbow16/r16/pkg/memory"
)

func sampleAudio() Audio {
	a := Audio{Speed: 0xfe}
	for ix := range a.Items {
		a.Items[ix] = Item{
			WaveType: WaveType(ix % WaveTypeCount),
			Sound:    byte(ix * 7),
			Volume:   byte(ix % 8),
		}
	}
	return a
}

func TestAudio_New(t *testing.T) {
	assert := assert.New(t)

	a := New()
	assert.Equal(byte(1), a.Speed)
	for _, it := range a.Items {
		assert.Equal(Item{WaveType: Square}, it)
	}
}

func TestAudio_HexRoundTrip(t *testing.T) {
	assert := assert.New(t)

	for _, a := range []Audio{New(), {}, sampleAudio()} {
		hex := a.HexString()
		assert.Len(hex, HexLength)
		got, err := FromHexString(hex)
		assert.NoError(err)
		assert.Equal(a, got)
	}

	// every byte value survives
	a := New()
	for v := 0; v < 256; v++ {
		a.Speed = byte(v)
		a.Items[3].Sound = byte(v)
		got, err := FromHexString(a.HexString())
		assert.NoError(err)
		assert.Equal(a, got)
	}
}

func TestAudio_HexLayout(t *testing.T) {
	assert := assert.New(t)

	a := New()
	a.Speed = 0x1c
	a.Items[0] = Item{WaveType: Organ, Sound: 0x25, Volume: 7}

	hex := a.HexString()
	assert.Equal("1<", hex[0:2]) // speed, 0xc written as '0'+12
	assert.Equal("25", hex[2:4]) // sound
	assert.Equal("07", hex[4:6]) // volume
	assert.Equal("06", hex[6:8]) // wave type
	assert.Equal("000000", hex[8:14])
}

func TestAudio_FromHexStringErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := FromHexString("")
	assert.ErrorIs(err, ErrHexLength)

	_, err = FromHexString(strings.Repeat("0", HexLength-1))
	assert.ErrorIs(err, ErrHexLength)

	_, err = FromHexString(strings.Repeat("0", HexLength+2))
	assert.ErrorIs(err, ErrHexLength)

	_, err = FromHexString("0g" + strings.Repeat("0", HexLength-2))
	assert.ErrorIs(err, ErrHexDigit)
}

func TestAudio_UnknownWaveTag(t *testing.T) {
	assert := assert.New(t)

	// tag 0x09 in the first item
	hex := "01" + "00" + "00" + "09" + strings.Repeat("0", HexLength-8)
	a, err := FromHexString(hex)
	assert.NoError(err)
	assert.Equal(Square, a.Items[0].WaveType)

	r := memory.NewRegistry()
	blank := New()
	blank.WriteTo(r.Sfx, 0)
	r.Sfx.WriteU8(1, 0xff)
	r.Sfx.WriteU8(4, byte(Noise))
	got := ReadFrom(r.Sfx, 0)
	assert.Equal(Square, got.Items[0].WaveType)
	assert.Equal(Noise, got.Items[1].WaveType)
}

func TestAudio_Section(t *testing.T) {
	assert := assert.New(t)

	r := memory.NewRegistry()
	a := sampleAudio()
	a.WriteTo(r.Sfx, 0)

	assert.Equal(a.Speed, r.Sfx.ReadU8(0))
	assert.Equal(byte(a.Items[1].WaveType), r.Sfx.ReadU8(4))
	assert.Equal(a.Items[1].Sound, r.Sfx.ReadU8(5))
	assert.Equal(a.Items[1].Volume, r.Sfx.ReadU8(6))
	assert.Equal(a.Items[31].Volume, r.Sfx.ReadU8(PackedLength-1))
	assert.Equal(byte(0), r.Sfx.ReadU8(PackedLength))

	assert.Equal(a, ReadFrom(r.Sfx, 0))
}

func TestTrigger(t *testing.T) {
	assert := assert.New(t)

	r := memory.NewRegistry()
	tr := Trigger{Audio: sampleAudio(), StartMillis: 123456, Playing: true}
	tr.Write(r.Sfx)

	assert.Equal(byte(1), r.Sfx.ReadU8(memory.SfxPlaying))
	assert.Equal(uint32(123456), r.Sfx.ReadU32D(memory.SfxStartTime))
	assert.Equal(tr, ReadTrigger(r.Sfx))

	h := NewHandoff()
	got, serial := h.Load()
	assert.Nil(got)
	assert.Equal(uint64(0), serial)

	h.Publish(r.Sfx)
	got, serial = h.Load()
	assert.Equal(uint64(1), serial)
	assert.Equal(tr, *got)

	// snapshot is a copy
	r.Sfx.Clear()
	got, _ = h.Load()
	assert.True(got.Playing)
}

func TestSynth(t *testing.T) {
	assert := assert.New(t)

	h := NewHandoff()
	s := NewSynth(h)
	out := make([]float32, 64)

	assert.Equal(0, s.Render(out))
	assert.False(s.Playing())

	a := New()
	for ix := range a.Items {
		a.Items[ix] = Item{WaveType: WaveType(ix % WaveTypeCount), Sound: 24, Volume: 7}
	}
	h.Store(Trigger{Audio: a, StartMillis: 10, Playing: true})

	assert.Equal(len(out), s.Render(out))
	assert.True(s.Playing())

	// republishing the same trigger does not restart
	h.Store(Trigger{Audio: a, StartMillis: 10, Playing: true})
	s.Render(out)
	assert.Equal(128, s.pos)

	h.Store(Trigger{Audio: a, StartMillis: 20, Playing: true})
	s.Render(out)
	assert.Equal(64, s.pos)

	h.Store(Trigger{})
	assert.Equal(0, s.Render(out))
	assert.False(s.Playing())
}

func TestRenderTrack(t *testing.T) {
	assert := assert.New(t)

	a := New()
	a.Speed = 2
	a.Items[0] = Item{WaveType: Square, Sound: 12, Volume: 7}

	samples := RenderTrack(a)
	want := int(a.Duration().Seconds() * SampleRate)
	assert.InDelta(want, len(samples), 2)

	var loud bool
	for _, s := range samples[:100] {
		if s != 0 {
			loud = true
		}
	}
	assert.True(loud)
	// last item is silent
	assert.Equal(float32(0), samples[len(samples)-1])
}

func TestWriteWAV(t *testing.T) {
	require := require.New(t)

	buf := &SeekBuffer{}
	a := sampleAudio()
	a.Speed = 1
	require.NoError(WriteWAV(buf, a))

	b := buf.Bytes()
	require.True(len(b) > 44)
	require.True(bytes.HasPrefix(b, []byte("RIFF")))
	require.Equal([]byte("WAVE"), b[8:12])
}

func TestNoteFrequency(t *testing.T) {
	assert := assert.New(t)
	assert.InDelta(65.41, NoteFrequency(0), 0.001)
	assert.InDelta(130.82, NoteFrequency(12), 0.001)
	assert.InDelta(440.0, NoteFrequency(33), 0.5)
}
