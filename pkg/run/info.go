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
	"io"
	"os"

	"github.com/rainbow16/r16/pkg/control"
)

//
func NewInfo() *Info {

	i := &Info{}
	i.Runner = *NewRunner(
		"info [-i|--input {file}] [-r|--ref {reference}] [-a|--address {address}]",
		"show cartridge info",
		`
Use the info command to show script size and used sfx tracks of a cartridge,
either from a local file, or from a cartridge reference resolved by the API
server. References are of the form repo://{path} or http(s)://{url}.`,
		"", runnerHelpEpilogue, i.Run)

	i.AddBaseSettings()
	i.AddSetting(&i.Input, "input", "i", "", nil, "cartridge input file", false)
	i.AddSetting(&i.Ref, "ref", "r", "", nil, "cartridge reference", false)

	return i
}

//
type Info struct {
	//
	Runner
	//
	Input string
	Ref   string
}

//
func (i *Info) Run() error {

	if err := i.ParseSettings(); err != nil {
		return err
	}
	if err := validateSource(i.Input, i.Ref); err != nil {
		return err
	}

	if i.Input != "" {
		state, err := loadInput(i.Input)
		if err != nil {
			return err
		}
		control.WriteCartInfo(os.Stdout, control.NewCartInfo(state))
		return nil
	}

	resp, err := i.cartCall("info", i.Ref, false, nil)
	if err != nil {
		return err
	}
	defer resp.Close()

	_, err = io.Copy(os.Stdout, resp)
	return err
}
