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

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rainbow16/r16/pkg/run"
)

//
func main() {

	root := &cobra.Command{
		Use:   "r16",
		Short: "R16 is a tiny fantasy console",
		Long: `
R16 is a tiny fantasy console with a 128x128 pixel screen, 16 colours, 32 sfx
tracks, and Lua scripting. Cartridges are stored as plain .r16 files, or as
.r16.png pictures showing a preview of the game.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		&run.NewPlay().Command,
		&run.NewInfo().Command,
		&run.NewDump().Command,
		&run.NewConvert().Command,
		&run.NewSfx().Command,
		&run.NewSearch().Command,
		&run.NewServe().Command,
		&run.NewVersion().Command,
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
