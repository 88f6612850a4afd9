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
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"

	log "github.com/sirupsen/logrus"

	"github.com/rainbow16/r16/pkg/audio"
	"github.com/rainbow16/r16/pkg/image"
)

// Encode serializes a game state into a cartridge container. The preview
// frame is only written when the state carries a preview image.
func Encode(state *GameState) ([]byte, error) {

	if state == nil {
		return nil, ErrNoGameState
	}

	script, err := charmap.ISO8859_1.NewEncoder().String(state.Script())
	if err != nil {
		return nil, ErrNotLatin1
	}

	if len(state.Image) != image.SheetPixels {
		return nil, fmt.Errorf("%w: sprite sheet has %d pixels, want %d",
			ErrImageSize, len(state.Image), image.SheetPixels)
	}
	if image.ValidatePixels(state.Image) != nil {
		return nil, ErrInvalidPixel
	}

	var preview string
	if p := state.PreviewImage; p != nil {
		if p.Width != image.PreviewWidth || p.Height != image.PreviewHeight ||
			len(p.Pixels) != p.Width*p.Height {
			return nil, fmt.Errorf("%w: preview is %dx%d, want %dx%d",
				ErrImageSize, p.Width, p.Height,
				image.PreviewWidth, image.PreviewHeight)
		}
		if p.Validate() != nil {
			return nil, ErrInvalidPixel
		}
		preview = p.String()
	}

	var sfx strings.Builder
	sfx.Grow(audio.TrackCount * audio.HexLength)
	for ix := range state.Audios {
		sfx.WriteString(state.Audios[ix].HexString())
	}

	var buf bytes.Buffer
	buf.Write(Magic)
	if state.PreviewImage != nil {
		writeFrame(&buf, PreviewImage, []byte(preview))
	}
	writeFrame(&buf, Script, []byte(script))
	writeFrame(&buf, Sfx, []byte(sfx.String()))
	writeFrame(&buf, Images, []byte(image.FormatPixels(state.Image)))

	log.WithFields(log.Fields{
		"size":    buf.Len(),
		"preview": state.PreviewImage != nil}).Debug("cartridge encoded")

	return buf.Bytes(), nil
}

// Decode parses a cartridge container. Malformed trailing data does not fail
// decoding, as long as the container magic is present. Missing frames are
// replaced by defaults: an empty script, default audio tracks, and the
// placeholder sprite sheet. When a frame type appears more than once, the
// first occurrence wins.
func Decode(data []byte) (*GameState, error) {

	frames, err := Frames(data)
	if err != nil {
		return nil, err
	}

	found := map[FrameType]*Frame{}
	for _, f := range frames {
		if f.Type == Unknown {
			log.WithField("tag", f.Tag).Debug("skipping frame of unknown type")
			continue
		}
		if _, ok := found[f.Type]; ok {
			log.WithField("type", f.Type).Debug("skipping duplicate frame")
			continue
		}
		found[f.Type] = f
	}

	ret := NewGameState("")

	if f, ok := found[Script]; ok {
		script, err := charmap.ISO8859_1.NewDecoder().Bytes(f.Payload)
		if err != nil {
			return nil, err
		}
		ret.SetScript(string(script))
	}

	if f, ok := found[Sfx]; ok {
		decodeSfx(f.Payload, &ret.Audios)
	}

	if f, ok := found[Images]; ok {
		ret.Image = decodeSheet(f.Payload)
	}

	if f, ok := found[PreviewImage]; ok {
		if p, err := image.Parse(
			image.PreviewWidth, image.PreviewHeight, string(f.Payload)); err != nil {
			log.Warnf("dropping preview image: %v", err)
		} else {
			ret.PreviewImage = p
		}
	}

	log.WithFields(log.Fields{
		"frames":  len(frames),
		"lines":   len(ret.Code),
		"preview": ret.PreviewImage != nil}).Debug("cartridge decoded")

	return ret, nil
}

// decodeSfx fills tracks from consecutive hex chunks. Tracks without a
// complete chunk, or with an invalid one, keep their defaults.
func decodeSfx(payload []byte, tracks *[audio.TrackCount]audio.Audio) {
	for ix := range tracks {
		start := ix * audio.HexLength
		end := start + audio.HexLength
		if end > len(payload) {
			break
		}
		a, err := audio.FromHexString(string(payload[start:end]))
		if err != nil {
			log.WithField("track", ix).Warnf("invalid audio track: %v", err)
			continue
		}
		tracks[ix] = a
	}
}

// decodeSheet turns the images payload into pixels. Pixels beyond the end of
// the payload, and invalid digits, become 0.
func decodeSheet(payload []byte) []byte {
	ret := make([]byte, image.SheetPixels)
	for ix := 0; ix < len(ret) && ix < len(payload); ix++ {
		if v, ok := image.ParseDigit(payload[ix]); ok {
			ret[ix] = v
		}
	}
	return ret
}
