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
	"fmt"
	"path/filepath"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rainbow16/r16/pkg/audio"
	"github.com/rainbow16/r16/pkg/cartridge"
	"github.com/rainbow16/r16/pkg/input"
	"github.com/rainbow16/r16/pkg/memory"
)

var t0 = time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)

//
func newConsole(t *testing.T, code string) *Console {
	c := New(WithClock(func() time.Time { return t0 }), WithSeed(1))
	state := cartridge.NewGameState(code)
	state.Audios[2].Speed = 1
	state.Audios[2].Items[0] = audio.Item{WaveType: audio.Sine, Sound: 12, Volume: 5}
	c.SetState(state)
	require.NoError(t, c.Start(context.Background()))
	t.Cleanup(c.Stop)
	return c
}

func TestNew(t *testing.T) {
	assert := assert.New(t)

	c := New()
	assert.Equal(cartridge.DefaultCode, c.State().Script())
	assert.False(c.Running())
	assert.Error(c.Step(context.Background(), t0))

	require.NoError(t, c.Start(context.Background()))
	assert.True(c.Running())
	assert.NoError(c.Step(context.Background(), t0))
	c.Stop()
}

func TestStep_Order(t *testing.T) {
	assert := assert.New(t)

	c := newConsole(t, `
n = 0
function _init() n = 10 end
function _update() n = n + 1 end
function _draw() setp(0, 0, n % 16) end
`)

	ctx := context.Background()
	require.NoError(t, c.Step(ctx, t0))
	assert.Equal(byte(11), c.Display().Pixel(0, 0))
	require.NoError(t, c.Step(ctx, t0))
	assert.Equal(byte(12), c.Display().Pixel(0, 0))
	assert.Equal(2.0, c.Time())
}

func TestStep_InputResets(t *testing.T) {
	assert := assert.New(t)

	charpress := memory.DisplayLength + memory.KeyLength
	c := newConsole(t, fmt.Sprintf(`
function _update()
	poke(%d, peek(%d))
	if btnp(4) then setp(1, 0, 1) end
end
`, memory.DisplayPixels, charpress))

	c.Input().TextInput('k')
	c.Input().Scroll(3)
	c.Input().KeyDown(input.KeycodeFromRune('u'))

	require.NoError(t, c.Step(context.Background(), t0))
	assert.Equal(byte('k'), c.Display().Pixel(0, 0))
	assert.Equal(byte(1), c.Display().Pixel(1, 0))
	assert.Equal(rune(0), c.Input().Char())
	assert.Equal(int32(0), c.Input().ScrollDelta())
	assert.Equal(byte(1), c.Input().ButtonTicks(input.A))
}

func TestSfx(t *testing.T) {
	assert := assert.New(t)

	c := newConsole(t, "function _init() sfx(2) end")
	sfx := c.Memory().Sfx

	assert.Equal(byte(1), sfx.ReadU8(memory.SfxPlaying))
	assert.Equal(uint32(t0.UnixMilli()), sfx.ReadU32D(memory.SfxStartTime))
	assert.Equal(c.State().Audios[2], audio.ReadFrom(sfx, memory.SfxAudio))

	trig, serial := c.Handoff().Load()
	require.NotNil(t, trig)
	assert.True(trig.Playing)
	assert.Equal(byte(12), trig.Audio.Items[0].Sound)

	// still playing
	require.NoError(t, c.Step(context.Background(), t0.Add(100*time.Millisecond)))
	assert.Equal(byte(1), sfx.ReadU8(memory.SfxPlaying))

	// expired
	require.NoError(t, c.Step(context.Background(), t0.Add(time.Second)))
	assert.Equal(byte(0), sfx.ReadU8(memory.SfxPlaying))
	trig, s := c.Handoff().Load()
	assert.False(trig.Playing)
	assert.Greater(s, serial)
}

func TestSfx_Stop(t *testing.T) {
	assert := assert.New(t)

	c := newConsole(t, "function _init() sfx(2) sfx(40) sfx(-1) end")
	sfx := c.Memory().Sfx

	assert.Equal(make([]byte, memory.SfxLength), sfx.Bytes(0, memory.SfxLength))
	trig, _ := c.Handoff().Load()
	assert.False(trig.Playing)
}

func TestStopScript(t *testing.T) {
	assert := assert.New(t)

	c := newConsole(t, `
n = 0
function _update()
	n = n + 1
	if n == 3 then stop() end
	setp(0, 0, n)
end
`)

	assert.NoError(c.RunFrames(context.Background(), 10))
	assert.False(c.Running())
	assert.Equal(byte(2), c.Display().Pixel(0, 0))
}

func TestScriptError(t *testing.T) {
	assert := assert.New(t)

	c := New()
	c.SetState(cartridge.NewGameState("function _update() error('bad') end"))
	require.NoError(t, c.Start(context.Background()))
	assert.Error(c.RunFrames(context.Background(), 1))
	assert.False(c.Running())

	c.SetState(cartridge.NewGameState("function ("))
	assert.Error(c.Start(context.Background()))
	assert.False(c.Running())
}

func TestRun_Cancel(t *testing.T) {
	assert := assert.New(t)

	c := newConsole(t, "function _update() end")

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	assert.NoError(c.Run(ctx))
	assert.False(c.Running())
	assert.Greater(c.Time(), 0.0)
}

func TestLoadCartridge(t *testing.T) {
	assert := assert.New(t)

	c := New()
	state := cartridge.NewGameState("x = 1")
	data, err := cartridge.Encode(state)
	require.NoError(t, err)

	require.NoError(t, c.LoadCartridge(data, "game.r16"))
	assert.Equal("x = 1", c.State().Script())
	assert.Equal("game", c.State().Filename)

	assert.Error(c.LoadCartridge([]byte("garbage"), "other.r16"))
	assert.Equal("game", c.State().Filename)

	png, err := cartridge.EncodePNG(cartridge.NewGameState("y = 2"), nil)
	require.NoError(t, err)
	require.NoError(t, c.LoadCartridge(png, "pic.r16.png"))
	assert.Equal("y = 2", c.State().Script())
}

func TestSave(t *testing.T) {
	assert := assert.New(t)

	c := newConsole(t, "function _init() cls(7) end")
	preview := c.CapturePreview()
	assert.Equal(byte(7), preview.At(10, 10))

	file := filepath.Join(t.TempDir(), "saved.r16.png")
	require.NoError(t, c.Save(file))

	back, err := cartridge.Load(file)
	require.NoError(t, err)
	require.NotNil(t, back.PreviewImage)
	assert.Equal(byte(7), back.PreviewImage.At(0, 0))

	shot, err := c.Screenshot(2)
	require.NoError(t, err)
	assert.Equal(400, shot.Bounds().Dx())
}

func TestStart_MissingCallbacks(t *testing.T) {
	assert := assert.New(t)

	hook := logtest.NewGlobal()
	defer hook.Reset()

	newConsole(t, "function _draw() cls(1) end")

	var missing []string
	for _, e := range hook.AllEntries() {
		if fn, ok := e.Data["function"]; ok {
			missing = append(missing, fn.(string))
		}
	}
	assert.Equal([]string{"_update"}, missing)

	hook.Reset()
	newConsole(t, "function _update() end\nfunction _draw() end")
	for _, e := range hook.AllEntries() {
		assert.NotContains(e.Data, "function")
	}
}
