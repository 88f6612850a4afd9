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
	"bytes"
	"fmt"
	"image/png"
	"io"
	"net/http"

	"github.com/rainbow16/r16/pkg/audio"
	"github.com/rainbow16/r16/pkg/cartridge"
	"github.com/rainbow16/r16/pkg/image"
	"github.com/rainbow16/r16/pkg/repo"
)

// loadData reads the raw cartridge either from the reference given in the ref
// argument, or from the request body. For uploads, the name argument
// determines type and compression.
func (a *api) loadData(w http.ResponseWriter, req *http.Request) (
	data []byte, name, typ string, ok bool) {

	var in io.ReadCloser
	file := getArg(req, "name")

	if ref := getArg(req, "ref"); ref != "" {
		src, err := repo.Resolve(req.Context(), ref, a.repository)
		if handleError(err, http.StatusNotAcceptable, w) {
			return
		}
		in = src
		if file == "" {
			file = src.Name()
		}

	} else {
		if req.Method != http.MethodPost {
			handleError(fmt.Errorf("no cartridge reference given"),
				http.StatusBadRequest, w)
			return
		}
		in = http.MaxBytesReader(w, req.Body, cartridge.MaxCartSize)
		if file == "" {
			file = "upload." + cartridge.TypeR16
		}
	}

	data, name, typ, err := cartridge.ReadData(in, file)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	return data, name, typ, true
}

//
func (a *api) loadCart(w http.ResponseWriter, req *http.Request) (
	*cartridge.GameState, bool) {

	data, name, typ, ok := a.loadData(w, req)
	if !ok {
		return nil, false
	}

	container, err := cartridge.Container(data, typ)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return nil, false
	}

	state, err := cartridge.Decode(container)
	if err != nil {
		handleError(fmt.Errorf("cartridge corrupted: %v", err),
			http.StatusUnprocessableEntity, w)
		return nil, false
	}

	state.Filename = name
	return state, true
}

//
func (a *api) info(w http.ResponseWriter, req *http.Request) {

	state, ok := a.loadCart(w, req)
	if !ok {
		return
	}

	info := NewCartInfo(state)
	if wantsJSON(req) {
		sendJSONReply(info, http.StatusOK, w)
		return
	}

	var buf bytes.Buffer
	WriteCartInfo(&buf, info)
	sendReply(buf.Bytes(), http.StatusOK, w)
}

//
func (a *api) script(w http.ResponseWriter, req *http.Request) {
	if state, ok := a.loadCart(w, req); ok {
		sendReply([]byte(state.Script()), http.StatusOK, w)
	}
}

// preview sends the preview image as PNG, or the sprite sheet if there is no
// preview or the sheet flag is set
func (a *api) preview(w http.ResponseWriter, req *http.Request) {

	palette, err := getIntArg(req, "palette", 0)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}
	if palette < 0 || palette >= image.PaletteCount {
		handleError(fmt.Errorf("palette must be between 0 and %d",
			image.PaletteCount-1), http.StatusUnprocessableEntity, w)
		return
	}

	state, ok := a.loadCart(w, req)
	if !ok {
		return
	}

	img := state.PreviewImage
	if img == nil || isFlagSet(req, "sheet") {
		img = state.Sheet()
	}

	var buf bytes.Buffer
	if handleError(png.Encode(&buf, img.Paletted(palette)),
		http.StatusInternalServerError, w) {
		return
	}

	sendBinaryReply(buf.Bytes(), "image/png", http.StatusOK, w)
}

// sfx renders one audio track as WAV
func (a *api) sfx(w http.ResponseWriter, req *http.Request) {

	track, err := getIntArg(req, "track", 0)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}
	if track < 0 || track >= audio.TrackCount {
		handleError(fmt.Errorf("track must be between 0 and %d",
			audio.TrackCount-1), http.StatusUnprocessableEntity, w)
		return
	}

	state, ok := a.loadCart(w, req)
	if !ok {
		return
	}

	var buf audio.SeekBuffer
	if handleError(audio.WriteWAV(&buf, state.Audios[track]),
		http.StatusInternalServerError, w) {
		return
	}

	sendBinaryReply(buf.Bytes(), "audio/wav", http.StatusOK, w)
}

//
func (a *api) dump(w http.ResponseWriter, req *http.Request) {

	data, _, typ, ok := a.loadData(w, req)
	if !ok {
		return
	}

	container, err := cartridge.Container(data, typ)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}
	if _, err := cartridge.Frames(container); handleError(
		err, http.StatusUnprocessableEntity, w) {
		return
	}

	frame := getArg(req, "frame")
	read, write := io.Pipe()

	go func() {
		write.CloseWithError(WriteFrameDump(write, container, frame))
	}()

	sendStreamReply(read, http.StatusOK, w)
}

// convert re-encodes a cartridge into the type given by the type argument
func (a *api) convert(w http.ResponseWriter, req *http.Request) {

	typ := getArg(req, "type")
	if typ == "" {
		typ = cartridge.TypePNG
	}

	f, err := cartridge.NewFormat(typ)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	state, ok := a.loadCart(w, req)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if handleError(f.Write(state, &buf), http.StatusUnprocessableEntity, w) {
		return
	}

	contentType := "application/octet-stream"
	if typ != cartridge.TypeR16 {
		contentType = "image/png"
		typ = cartridge.TypePNG
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", state.Filename+"."+typ))
	sendBinaryReply(buf.Bytes(), contentType, http.StatusOK, w)
}
