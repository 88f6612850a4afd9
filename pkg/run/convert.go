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

package run

import (
	"fmt"
	"io"
	"net/url"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/rainbow16/r16/pkg/cartridge"
)

//
func NewConvert() *Convert {

	c := &Convert{}
	c.Runner = *NewRunner(
		"convert [-i|--input {file}] [-r|--ref {reference}] -o|--output {file} [-y|--yes] [-a|--address {address}]",
		"convert cartridges between plain and PNG format",
		`
Use the convert command to convert a cartridge between the plain r16 format and
the r16.png format, which is a PNG picture with the cartridge appended. The
output type is taken from the output file name. The input can be a local file,
possibly compressed, or a cartridge reference resolved by the API server.`,
		`  r16 convert -i snake.r16 -o snake.r16.png
  r16 convert -r repo://games/snake.r16.png -o snake.r16`,
		runnerHelpEpilogue, c.Run)

	c.AddBaseSettings()
	c.AddSetting(&c.Input, "input", "i", "", nil, "cartridge input file", false)
	c.AddSetting(&c.Ref, "ref", "r", "", nil, "cartridge reference", false)
	c.AddSetting(&c.Output, "output", "o", "", nil, "cartridge output file", true)
	c.AddSetting(&c.Force, "yes", "y", "", false,
		"overwrite existing output file without asking", false)

	return c
}

//
type Convert struct {
	//
	Runner
	//
	Input  string
	Ref    string
	Output string
	Force  bool
}

//
func (c *Convert) Run() error {

	if err := c.ParseSettings(); err != nil {
		return err
	}
	if err := validateSource(c.Input, c.Ref); err != nil {
		return err
	}

	_, typ, compressor := cartridge.SplitNameTypeCompressor(c.Output)
	if compressor != "" {
		return fmt.Errorf("compressed output is not supported")
	}
	if typ == "" {
		typ = cartridge.TypeR16
	}

	if err := confirmOverwrite(c.Output, c.Force); err != nil {
		return err
	}

	if c.Input != "" {
		state, err := loadInput(c.Input)
		if err != nil {
			return err
		}
		return cartridge.Save(state, c.Output, nil)
	}

	resp, err := c.cartCall("convert", c.Ref, false, url.Values{"type": {typ}})
	if err != nil {
		return err
	}
	defer resp.Close()

	out, err := os.Create(c.Output)
	if err != nil {
		return err
	}
	defer out.Close()

	n, err := io.Copy(out, resp)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"file": c.Output,
		"type": typ,
		"size": n}).Info("cartridge saved")

	return nil
}
