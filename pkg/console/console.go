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

package console

import (
	"context"
	"errors"
	"fmt"
	goimage "image"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rainbow16/r16/pkg/audio"
	"github.com/rainbow16/r16/pkg/cartridge"
	"github.com/rainbow16/r16/pkg/display"
	"github.com/rainbow16/r16/pkg/image"
	"github.com/rainbow16/r16/pkg/input"
	"github.com/rainbow16/r16/pkg/memory"
	"github.com/rainbow16/r16/pkg/script"
)

// FrameDuration is the length of one simulation step
const FrameDuration = time.Second / 30

// Console is the fantasy console machine. It is driven from a single
// goroutine; the only state shared with other goroutines is the sfx Handoff.
type Console struct {
	mem     *memory.Registry
	display *display.Display
	input   *input.Input
	handoff *audio.Handoff
	state   *cartridge.GameState
	vm      *script.VM
	frame   uint64
	clock   func() time.Time
	seed    int64
}

// Option configures a Console
type Option func(*Console)

// WithClock sets the wall clock used for sfx start times
func WithClock(clock func() time.Time) Option {
	return func(c *Console) {
		c.clock = clock
	}
}

// WithSeed sets the seed of the script's random numbers
func WithSeed(seed int64) Option {
	return func(c *Console) {
		c.seed = seed
	}
}

// New creates a console holding a fresh cartridge with the default script
func New(opts ...Option) *Console {

	mem := memory.NewRegistry()

	ret := &Console{
		mem:     mem,
		display: display.New(mem.Display),
		input:   input.New(mem.Keyboard, mem.Charpress),
		handoff: audio.NewHandoff(),
		state:   cartridge.NewGameState(cartridge.DefaultCode),
		clock:   time.Now,
		seed:    time.Now().UnixNano(),
	}

	for _, o := range opts {
		o(ret)
	}

	ret.display.SetSheet(ret.state.Image)
	return ret
}

// LoadCartridge decodes a cartridge and makes it the current one. The file
// name decides between plain and PNG cartridges. The current cartridge stays
// in place if decoding fails.
func (c *Console) LoadCartridge(data []byte, name string) error {

	_, typ, _ := cartridge.SplitNameTypeCompressor(name)

	var state *cartridge.GameState
	var err error
	if typ == cartridge.TypePNG {
		state, err = cartridge.DecodePNG(data)
	} else {
		state, err = cartridge.Decode(data)
	}

	if err != nil {
		log.WithFields(log.Fields{"name": name, "error": err}).Warn(
			"cannot load cartridge")
		return err
	}

	state.Filename, _, _ = cartridge.SplitNameTypeCompressor(name)
	c.SetState(state)
	return nil
}

// SetState makes state the current cartridge. The script is not started.
func (c *Console) SetState(state *cartridge.GameState) {
	c.Stop()
	c.state = state
	c.display.SetSheet(state.Image)
	log.WithFields(log.Fields{
		"name":  state.Filename,
		"lines": len(state.Code)}).Info("cartridge inserted")
}

//
func (c *Console) State() *cartridge.GameState {
	return c.state
}

// Start resets the machine, loads the cartridge script, and runs its _init
// function.
func (c *Console) Start(ctx context.Context) error {

	c.Stop()

	c.display.ResetPal()
	c.display.ResetPalt()
	c.display.ResetClip()
	c.display.Camera(0, 0)
	c.display.Clear(0)
	c.frame = 0

	c.vm = script.New(c, c.seed)
	if err := c.vm.Load(c.state.Script()); err != nil {
		c.Stop()
		return err
	}

	if err := c.vm.Call(ctx, "_init"); err != nil {
		c.Stop()
		return err
	}

	for _, fn := range []string{"_update", "_draw"} {
		if !c.vm.Has(fn) {
			log.WithFields(log.Fields{
				"name":     c.state.Filename,
				"function": fn}).Warn("cartridge does not define function")
		}
	}

	log.WithField("name", c.state.Filename).Info("cartridge started")
	return nil
}

// Stop ends the running script and silences sound
func (c *Console) Stop() {
	if c.vm != nil {
		c.vm.Close()
		c.vm = nil
		c.StopSfx()
	}
}

//
func (c *Console) Running() bool {
	return c.vm != nil
}

// Step advances the machine by one frame: button counters, _update, scroll
// reset, _draw, text input reset, and sfx expiry.
func (c *Console) Step(ctx context.Context, now time.Time) error {

	if c.vm == nil {
		return fmt.Errorf("no cartridge running")
	}

	c.input.Tick()
	c.frame++

	err := c.vm.Call(ctx, "_update")
	c.input.ResetScroll()
	if err == nil {
		err = c.vm.Call(ctx, "_draw")
	}
	c.input.ResetText()
	c.expireSfx(now)

	if err != nil {
		if errors.Is(err, script.ErrStop) {
			log.Info("cartridge stopped itself")
		}
		c.Stop()
		return err
	}

	return nil
}

// Run steps the machine at the fixed frame rate until the context is done or
// the script stops. A script that stops itself is not an error.
func (c *Console) Run(ctx context.Context) error {

	ticker := time.NewTicker(FrameDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.Stop()
			return nil
		case now := <-ticker.C:
			if err := c.Step(ctx, now); err != nil {
				if errors.Is(err, script.ErrStop) {
					return nil
				}
				return err
			}
		}
	}
}

// RunFrames steps the machine n times without waiting, advancing a simulated
// clock by one frame duration per step.
func (c *Console) RunFrames(ctx context.Context, n int) error {
	now := c.clock()
	for i := 0; i < n; i++ {
		now = now.Add(FrameDuration)
		if err := c.Step(ctx, now); err != nil {
			if errors.Is(err, script.ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}

// Sfx plays track idx when it is in 0..31, and stops playback when negative.
// Other values are ignored.
func (c *Console) Sfx(idx int) {
	switch {
	case idx < 0:
		c.StopSfx()
	case idx < audio.TrackCount:
		c.TriggerSfx(idx)
	}
}

// TriggerSfx copies a track into the sfx trigger section, stamps the start
// time, and hands the result to the audio side.
func (c *Console) TriggerSfx(idx int) {
	t := audio.Trigger{
		Audio:       c.state.Audios[idx%audio.TrackCount],
		StartMillis: millis(c.clock()),
		Playing:     true,
	}
	t.Write(c.mem.Sfx)
	c.handoff.Publish(c.mem.Sfx)
	log.WithFields(log.Fields{
		"track": idx,
		"start": t.StartMillis}).Debug("sfx triggered")
}

// StopSfx clears the sfx trigger section
func (c *Console) StopSfx() {
	c.mem.Sfx.Clear()
	c.handoff.Publish(c.mem.Sfx)
}

// expireSfx ends playback once the track's duration has passed
func (c *Console) expireSfx(now time.Time) {
	t := audio.ReadTrigger(c.mem.Sfx)
	if !t.Playing {
		return
	}
	if elapsed := millis(now) - t.StartMillis; time.Duration(elapsed)*time.Millisecond >= t.Audio.Duration() {
		c.mem.Sfx.WriteU8(memory.SfxPlaying, 0)
		c.handoff.Publish(c.mem.Sfx)
		log.Debug("sfx finished")
	}
}

// millis is wall clock time in milliseconds, truncated to 32 bits
func millis(t time.Time) uint32 {
	return uint32(t.UnixMilli())
}

// Time is the number of frames since the cartridge was started
func (c *Console) Time() float64 {
	return float64(c.frame)
}

//
func (c *Console) Peek(addr int) byte {
	return c.mem.Peek(addr)
}

//
func (c *Console) Poke(addr int, v byte) {
	c.mem.Poke(addr, v)
}

//
func (c *Console) Display() *display.Display {
	return c.display
}

//
func (c *Console) Input() *input.Input {
	return c.input
}

// Handoff is the sfx snapshot channel to hand to an audio player
func (c *Console) Handoff() *audio.Handoff {
	return c.handoff
}

//
func (c *Console) Memory() *memory.Registry {
	return c.mem
}

// CapturePreview stores the current screen as the cartridge's preview image
func (c *Console) CapturePreview() *image.Image {
	c.state.PreviewImage = c.display.Snapshot()
	return c.state.PreviewImage
}

// Screenshot renders the current screen, scaled up
func (c *Console) Screenshot(scale int) (goimage.Image, error) {
	img, err := c.display.Screenshot(scale)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Save writes the current cartridge to file, the name's extension selects
// the type.
func (c *Console) Save(file string) error {
	return cartridge.Save(c.state, file, nil)
}
