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
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"

	log "github.com/sirupsen/logrus"
)

// cartridge file types
const (
	TypeR16 = "r16"
	TypePNG = "r16.png"
)

// NewCartReader wraps r to transparently decompress a cartridge. An empty
// compressor passes the data through unchanged.
func NewCartReader(r io.ReadCloser, compressor string) (*CartReader, error) {

	log.WithField("compressor", compressor).Debug("cartridge reader requested")

	var ret *CartReader
	var err error

	switch compressor {

	case "gzip", "gz":
		ret, err = getGZipReader(r)

	case "zip":
		ret, err = getZipReader(r, false)

	case "7z":
		ret, err = getZipReader(r, true)

	case "":
		ret = &CartReader{readCloser: r}
	}

	if err != nil {
		return nil, err
	}

	if ret == nil {
		return nil, fmt.Errorf("unsupported compressor: %s", compressor)
	}

	log.WithFields(log.Fields{
		"compressor": ret.compressor,
		"name":       ret.name,
		"type":       ret.typ}).Debug("cartridge reader created")

	return ret, nil
}

//
type CartReader struct {
	readCloser io.ReadCloser
	//
	name       string
	typ        string
	compressor string
}

//
func (r *CartReader) Read(p []byte) (n int, err error) {
	return r.readCloser.Read(p)
}

//
func (r *CartReader) Close() error {
	return r.readCloser.Close()
}

// Name is the cartridge name found inside an archive, if any
func (r *CartReader) Name() string {
	return r.name
}

// Type is the cartridge type found inside an archive, if any
func (r *CartReader) Type() string {
	return r.typ
}

//
func (r *CartReader) Compressor() string {
	return r.compressor
}

//
func getGZipReader(r io.ReadCloser) (*CartReader, error) {

	gzr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}

	ret := &CartReader{readCloser: gzr}
	ret.name, ret.typ, _ = SplitNameTypeCompressor(gzr.Name)
	ret.compressor = "gzip"

	return ret, nil
}

//
func getZipReader(r io.ReadCloser, zip7 bool) (*CartReader, error) {

	var sponge bytes.Buffer
	size, err := io.Copy(&sponge, r)
	r.Close()
	if err != nil {
		return nil, err
	}

	ret := &CartReader{}
	var entry string

	if zip7 {
		zr, err := sevenzip.NewReader(bytes.NewReader(sponge.Bytes()), size)
		if err != nil {
			return nil, err
		}
		if len(zr.File) == 0 {
			return nil, fmt.Errorf("empty 7-zip archive")
		}
		if len(zr.File) > 1 {
			log.Warn("7-zip archive has more than one entry, using first")
		}
		entry = zr.File[0].Name
		ret.compressor = "7z"
		if ret.readCloser, err = zr.File[0].Open(); err != nil {
			return nil, err
		}

	} else {
		zr, err := zip.NewReader(bytes.NewReader(sponge.Bytes()), size)
		if err != nil {
			return nil, err
		}
		if len(zr.File) == 0 {
			return nil, fmt.Errorf("empty zip archive")
		}
		if len(zr.File) > 1 {
			log.Warn("zip archive has more than one entry, using first")
		}
		entry = zr.File[0].Name
		ret.compressor = "zip"
		if ret.readCloser, err = zr.File[0].Open(); err != nil {
			return nil, err
		}
	}

	ret.name, ret.typ, _ = SplitNameTypeCompressor(entry)
	return ret, nil
}

// SplitNameTypeCompressor takes apart a cartridge file name. A trailing .png
// following .r16 yields type r16.png, a lone .png is also taken as r16.png.
func SplitNameTypeCompressor(file string) (name, typ, compressor string) {

	_, n := filepath.Split(file)

	for {
		ext := filepath.Ext(n)
		if ext == "" || ext == n {
			name = n
			break
		}

		n = strings.TrimSuffix(n, ext)
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))

		switch ext {

		case "r16":
			if typ == "" {
				typ = TypeR16
			}

		case "png":
			typ = TypePNG

		case "gzip", "gz", "zip", "7z":
			compressor = ext
		}
	}

	return
}
