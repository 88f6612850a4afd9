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
	"context"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/rainbow16/r16/pkg/audio/device"
	"github.com/rainbow16/r16/pkg/cartridge"
	"github.com/rainbow16/r16/pkg/console"
)

// MaxVolume is the loudest setting of the volume flag
const MaxVolume = 7

// volumePercent maps a volume setting of 0 to MaxVolume onto the player's
// 0 to 100 scale.
func volumePercent(level int) int {
	if level < 0 {
		return 0
	}
	if level > MaxVolume {
		level = MaxVolume
	}
	return level * 100 / MaxVolume
}

//
func NewPlay() *Play {

	p := &Play{}
	p.Runner = *NewRunner(
		"play -i|--input {file} [-n|--frames {count}] [-s|--screenshot {file}] [--scale {factor}] [--preview {file}] [--volume {0-7}]",
		"run a cartridge",
		`
Use the play command to run a cartridge without a window. With a frame count,
the cartridge is run for that many frames as fast as possible and sound is off.
Without one, it runs at 30 frames per second with sound until it stops itself
or the command is interrupted. Afterwards, the screen can be saved as a PNG
screenshot, and the cartridge can be saved along with the screen as its preview
image.`,
		`  r16 play -i snake.r16 -n 60 -s snake.png --scale 4
  r16 play -i snake.r16 -n 120 --preview snake.r16.png`,
		runnerHelpEpilogue, p.Run)

	p.AddSetting(&p.LogLevel, "log-level", "", "", "info",
		"log level, one of debug, info, warn, error", false)
	p.AddSetting(&p.Config, "config", "", "", defaultConfig(),
		"config file", false)
	p.AddSetting(&p.Input, "input", "i", "", nil, "cartridge input file", true)
	p.AddSetting(&p.Frames, "frames", "n", "", 0,
		"number of frames to run; 0 runs in real time until stopped", false)
	p.AddSetting(&p.Screenshot, "screenshot", "s", "", nil,
		"PNG file for a screenshot taken when done", false)
	p.AddSetting(&p.Scale, "scale", "", "", 1, "screenshot scale (1-16)", false)
	p.AddSetting(&p.Preview, "preview", "", "", nil,
		"save the cartridge to this file with the final screen as preview", false)
	p.AddSetting(&p.Volume, "volume", "", "", 5,
		fmt.Sprintf("sound volume (0-%d)", MaxVolume), false)
	p.AddSetting(&p.Force, "yes", "y", "", false,
		"overwrite existing output files without asking", false)

	return p
}

//
type Play struct {
	//
	Runner
	//
	Input      string
	Frames     int
	Screenshot string
	Scale      int
	Preview    string
	Volume     int
	Force      bool
}

//
func (p *Play) Run() error {

	if err := p.ParseSettings(); err != nil {
		return err
	}
	if p.Frames < 0 {
		return fmt.Errorf("frame count must not be negative")
	}
	if p.Volume < 0 || p.Volume > MaxVolume {
		return fmt.Errorf("volume must be between 0 and %d", MaxVolume)
	}

	for _, out := range []string{p.Screenshot, p.Preview} {
		if out != "" {
			if err := confirmOverwrite(out, p.Force); err != nil {
				return err
			}
		}
	}

	container, name, _, err := readInput(p.Input)
	if err != nil {
		return err
	}

	c := console.New()
	if err := c.LoadCartridge(container, name+"."+cartridge.TypeR16); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := c.Start(ctx); err != nil {
		return err
	}

	if p.Frames > 0 {
		err = c.RunFrames(ctx, p.Frames)
	} else {
		err = p.live(ctx, c)
	}
	if err != nil {
		return err
	}

	if p.Screenshot != "" {
		if err := p.saveScreenshot(c); err != nil {
			return err
		}
	}

	if p.Preview != "" {
		c.CapturePreview()
		if err := c.Save(p.Preview); err != nil {
			return err
		}
	}

	return nil
}

//
func (p *Play) live(ctx context.Context, c *console.Console) error {

	player, err := device.NewPlayer(c.Handoff())
	if err != nil {
		log.Warnf("no sound: %v", err)
	} else {
		player.SetVolume(volumePercent(p.Volume))
		player.Start()
		defer player.Close()
	}

	log.WithField("cartridge", c.State().Filename).Info(
		"running, press Ctrl-C to stop")
	return c.Run(ctx)
}

//
func (p *Play) saveScreenshot(c *console.Console) error {

	img, err := c.Screenshot(p.Scale)
	if err != nil {
		return err
	}

	f, err := os.Create(p.Screenshot)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return err
	}

	log.WithField("file", p.Screenshot).Info("screenshot saved")
	return nil
}
