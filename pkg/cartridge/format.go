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
	goimage "image"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// MaxCartSize limits how much data is read for a single cartridge
const MaxCartSize = 8 * 1024 * 1024

// Format reads and writes cartridges of one file type
type Format interface {
	Read(in io.Reader) (*GameState, error)
	Write(state *GameState, out io.Writer) error
}

// NewFormat returns the format for a cartridge type
func NewFormat(typ string) (Format, error) {
	switch typ {
	case TypeR16:
		return &R16{}, nil
	case TypePNG, "png":
		return &PNG{}, nil
	}
	return nil, fmt.Errorf("unsupported cartridge type: %s", typ)
}

// R16 is the bare container format
type R16 struct{}

//
func (f *R16) Read(in io.Reader) (*GameState, error) {
	data, err := readAll(in)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

//
func (f *R16) Write(state *GameState, out io.Writer) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// PNG is the container embedded behind a PNG picture. When Screenshot is set,
// it is used as the picture.
type PNG struct {
	Screenshot goimage.Image
}

//
func (f *PNG) Read(in io.Reader) (*GameState, error) {
	data, err := readAll(in)
	if err != nil {
		return nil, err
	}
	return DecodePNG(data)
}

//
func (f *PNG) Write(state *GameState, out io.Writer) error {
	data, err := EncodePNG(state, f.Screenshot)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

//
func readAll(in io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(in, MaxCartSize+1))
	if err != nil {
		return nil, err
	}
	if n > MaxCartSize {
		return nil, fmt.Errorf("cartridge exceeds %d bytes", MaxCartSize)
	}
	return buf.Bytes(), nil
}

// ReadData reads the raw, decompressed cartridge data from r. The name of the
// cartridge file or URL determines type and compression. A type found inside
// an archive takes precedence over the outer name. If no type can be
// determined, r16 is assumed.
func ReadData(r io.ReadCloser, file string) (data []byte, name, typ string, err error) {

	var compressor string
	name, typ, compressor = SplitNameTypeCompressor(file)

	cr, err := NewCartReader(r, compressor)
	if err != nil {
		return nil, "", "", err
	}
	defer cr.Close()

	if cr.Type() != "" {
		typ = cr.Type()
		name = cr.Name()
	}
	if typ == "" {
		typ = TypeR16
	}

	if data, err = readAll(cr); err != nil {
		return nil, "", "", err
	}

	return data, name, typ, nil
}

// Container returns the bare container held in data of the given type
func Container(data []byte, typ string) ([]byte, error) {
	switch typ {
	case TypeR16:
		return data, nil
	case TypePNG, "png":
		return ContainerFromPNG(data)
	}
	return nil, fmt.Errorf("unsupported cartridge type: %s", typ)
}

// Read decodes a cartridge from r, see ReadData.
func Read(r io.ReadCloser, file string) (*GameState, error) {

	data, name, typ, err := ReadData(r, file)
	if err != nil {
		return nil, err
	}

	f, err := NewFormat(typ)
	if err != nil {
		return nil, err
	}

	state, err := f.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	state.Filename = name

	log.WithFields(log.Fields{
		"file": file,
		"name": name,
		"type": typ}).Info("cartridge loaded")

	return state, nil
}

// Load reads a cartridge file from disk
func Load(file string) (*GameState, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	return Read(f, file)
}

// Save writes a cartridge to disk, using the file name to pick the type. The
// screenshot is only used for PNG cartridges and may be nil.
func Save(state *GameState, file string, shot goimage.Image) error {

	_, typ, compressor := SplitNameTypeCompressor(file)
	if compressor != "" {
		return fmt.Errorf("saving compressed cartridges is not supported")
	}
	if typ == "" {
		typ = TypeR16
	}

	var f Format
	if typ == TypeR16 {
		f = &R16{}
	} else {
		f = &PNG{Screenshot: shot}
	}

	var buf bytes.Buffer
	if err := f.Write(state, &buf); err != nil {
		return err
	}

	if err := os.WriteFile(file, buf.Bytes(), 0644); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"file": file,
		"type": typ,
		"size": buf.Len()}).Info("cartridge saved")

	return nil
}
