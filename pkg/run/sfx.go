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
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/rainbow16/r16/pkg/audio"
)

//
func NewSfx() *Sfx {

	s := &Sfx{}
	s.Runner = *NewRunner(
		"sfx [-i|--input {file}] [-r|--ref {reference}] -t|--track {track} -o|--output {file} [-y|--yes] [-a|--address {address}]",
		"export an sfx track as WAV",
		`
Use the sfx command to render one of the 32 sfx tracks of a cartridge into a
WAV file. The input can be a local file or a cartridge reference resolved by
the API server.`,
		"", runnerHelpEpilogue, s.Run)

	s.AddBaseSettings()
	s.AddSetting(&s.Input, "input", "i", "", nil, "cartridge input file", false)
	s.AddSetting(&s.Ref, "ref", "r", "", nil, "cartridge reference", false)
	s.AddSetting(&s.Track, "track", "t", "", 0, "track number (0-31)", false)
	s.AddSetting(&s.Output, "output", "o", "", nil, "WAV output file", true)
	s.AddSetting(&s.Force, "yes", "y", "", false,
		"overwrite existing output file without asking", false)

	return s
}

//
type Sfx struct {
	//
	Runner
	//
	Input  string
	Ref    string
	Track  int
	Output string
	Force  bool
}

//
func (s *Sfx) Run() error {

	if err := s.ParseSettings(); err != nil {
		return err
	}
	if err := validateSource(s.Input, s.Ref); err != nil {
		return err
	}
	if s.Track < 0 || s.Track >= audio.TrackCount {
		return fmt.Errorf("track must be between 0 and %d", audio.TrackCount-1)
	}
	if err := confirmOverwrite(s.Output, s.Force); err != nil {
		return err
	}

	var in io.ReadCloser
	var track audio.Audio

	if s.Ref != "" {
		resp, err := s.cartCall("sfx", s.Ref, false,
			url.Values{"track": {strconv.Itoa(s.Track)}})
		if err != nil {
			return err
		}
		in = resp
		defer in.Close()
	} else {
		state, err := loadInput(s.Input)
		if err != nil {
			return err
		}
		track = state.Audios[s.Track]
	}

	out, err := os.Create(s.Output)
	if err != nil {
		return err
	}
	defer out.Close()

	if in != nil {
		_, err = io.Copy(out, in)
	} else {
		err = audio.WriteWAV(out, track)
	}
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"file":  s.Output,
		"track": s.Track}).Info("sfx track exported")

	return nil
}
