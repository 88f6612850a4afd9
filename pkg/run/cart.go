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

	"github.com/rainbow16/r16/pkg/cartridge"
)

// readInput reads a local cartridge file, decompressing it if needed, and
// returns the bare container along with the cartridge name and type.
func readInput(file string) (container []byte, name, typ string, err error) {

	f, err := os.Open(file)
	if err != nil {
		return nil, "", "", err
	}

	data, name, typ, err := cartridge.ReadData(f, file)
	if err != nil {
		return nil, "", "", err
	}

	if container, err = cartridge.Container(data, typ); err != nil {
		return nil, "", "", err
	}

	return container, name, typ, nil
}

// loadInput reads and decodes a local cartridge file
func loadInput(file string) (*cartridge.GameState, error) {
	container, name, _, err := readInput(file)
	if err != nil {
		return nil, err
	}
	state, err := cartridge.Decode(container)
	if err != nil {
		return nil, fmt.Errorf("cartridge corrupted: %v", err)
	}
	state.Filename = name
	return state, nil
}

// cartCall calls a /cart endpoint of the API for the cartridge reference ref,
// adding the given extra query arguments.
func (r *Runner) cartCall(endpoint, ref string, json bool,
	args url.Values) (io.ReadCloser, error) {

	if args == nil {
		args = url.Values{}
	}
	args.Set("ref", ref)
	return r.apiCall("GET",
		fmt.Sprintf("/cart/%s?%s", endpoint, args.Encode()), json, nil)
}

// validateSource makes sure exactly one of input file and reference is given
func validateSource(input, ref string) error {
	if (input == "") == (ref == "") {
		return fmt.Errorf("either input file or cartridge reference is required")
	}
	return nil
}

// confirmOverwrite checks whether file may be written. Existing files are
// only overwritten when force is set or the user agrees.
func confirmOverwrite(file string, force bool) error {
	if _, err := os.Stat(file); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if force || GetUserConfirmation(
		fmt.Sprintf("%s already exists, overwrite?", file)) {
		return nil
	}
	return fmt.Errorf("not overwriting %s", file)
}
