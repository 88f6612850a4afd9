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

	"github.com/rainbow16/r16/pkg/control"
)

//
func NewDump() *Dump {

	d := &Dump{}
	d.Runner = *NewRunner(
		"dump [-i|--input {file}] [-r|--ref {reference}] [-f|--frame {frame}] [-a|--address {address}]",
		"dump cartridge frames",
		`
Use the dump command to list the frames of a cartridge container, and to output
a hex dump of a single frame, either from a local file or from a cartridge
reference resolved by the API server. Frames are script, sfx, images, and
preview.`,
		"", runnerHelpEpilogue, d.Run)

	d.AddBaseSettings()
	d.AddSetting(&d.Input, "input", "i", "", nil, "cartridge input file", false)
	d.AddSetting(&d.Ref, "ref", "r", "", nil, "cartridge reference", false)
	d.AddSetting(&d.Frame, "frame", "f", "", nil, "frame to dump", false)

	return d
}

//
type Dump struct {
	//
	Runner
	//
	Input string
	Ref   string
	Frame string
}

//
func (d *Dump) Run() error {

	if err := d.ParseSettings(); err != nil {
		return err
	}
	if err := validateSource(d.Input, d.Ref); err != nil {
		return err
	}

	if d.Input != "" {
		container, _, _, err := readInput(d.Input)
		if err != nil {
			return err
		}
		if err := control.WriteFrameDump(os.Stdout, container, d.Frame); err != nil {
			return err
		}

	} else {
		var args url.Values
		if d.Frame != "" {
			args = url.Values{"frame": {d.Frame}}
		}
		resp, err := d.cartCall("dump", d.Ref, false, args)
		if err != nil {
			return err
		}
		defer resp.Close()

		if _, err := io.Copy(os.Stdout, resp); err != nil {
			return err
		}
	}

	fmt.Println()
	return nil
}
