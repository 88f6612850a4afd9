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
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rainbow16/r16/pkg/cartridge"
	"github.com/rainbow16/r16/pkg/control"
)

//
type testRunner struct {
	Runner
	Name  string
	Count int
	Flag  bool
}

//
func newTestRunner(args ...string) *testRunner {
	t := &testRunner{}
	t.Runner = *NewRunner("test", "", "", "", "", t.ParseSettings)
	t.AddBaseSettings()
	t.AddSetting(&t.Name, "name", "n", "", "dflt", "a name", false)
	t.AddSetting(&t.Count, "count", "c", "", 3, "a count", false)
	t.AddSetting(&t.Flag, "flag", "", "R16_TEST_FLAG", false, "a flag", false)
	t.SetArgs(append([]string{"--config", ""}, args...))
	return t
}

func TestSettingsDefaults(t *testing.T) {
	assert := assert.New(t)

	r := newTestRunner()
	require.NoError(t, r.Execute())

	assert.Equal("dflt", r.Name)
	assert.Equal(3, r.Count)
	assert.False(r.Flag)
	assert.Equal(DefaultAddress, r.Address)
	assert.False(r.IsSet("name"))
}

func TestSettingsPrecedence(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("R16_NAME", "env")
	t.Setenv("R16_COUNT", "7")
	t.Setenv("R16_TEST_FLAG", "true")

	r := newTestRunner("-n", "flag")
	require.NoError(t, r.Execute())

	assert.Equal("flag", r.Name)
	assert.Equal(7, r.Count)
	assert.True(r.Flag)
	assert.True(r.IsSet("name"))
	assert.True(r.IsSet("count"))
}

func TestSettingsConfigFile(t *testing.T) {
	assert := assert.New(t)

	cfg := filepath.Join(t.TempDir(), "r16.yaml")
	require.NoError(t, os.WriteFile(cfg,
		[]byte("count: 9\nlog-level: debug\naddress: localhost:9000\n"), 0644))

	r := newTestRunner("--config", cfg)
	require.NoError(t, r.Execute())

	assert.Equal(9, r.Count)
	assert.Equal("localhost:9000", r.Address)
	assert.Equal("debug", r.LogLevel)
	assert.True(r.IsSet("count"))
}

func TestSettingsInvalid(t *testing.T) {

	r := newTestRunner("--log-level", "loud")
	assert.Error(t, r.Execute())

	req := &testRunner{}
	req.Runner = *NewRunner("test", "", "", "", "", req.ParseSettings)
	req.AddSetting(&req.Name, "name", "n", "", nil, "a name", true)
	req.SetArgs([]string{})
	assert.Error(t, req.Execute())
}

func TestConfirmOverwrite(t *testing.T) {
	assert := assert.New(t)

	file := filepath.Join(t.TempDir(), "out.r16")
	assert.NoError(confirmOverwrite(file, false))

	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	assert.NoError(confirmOverwrite(file, true))
	// tests do not run on a terminal, so there is nobody to agree
	assert.Error(confirmOverwrite(file, false))
}

func TestValidateSource(t *testing.T) {
	assert := assert.New(t)
	assert.NoError(validateSource("a.r16", ""))
	assert.NoError(validateSource("", "repo://a.r16"))
	assert.Error(validateSource("", ""))
	assert.Error(validateSource("a.r16", "repo://a.r16"))
}

func TestReadInput(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	state := cartridge.NewGameState("print('hi')")
	file := filepath.Join(dir, "hello.r16.png")
	require.NoError(t, cartridge.Save(state, file, nil))

	container, name, typ, err := readInput(file)
	require.NoError(t, err)
	assert.Equal("hello", name)
	assert.Equal(cartridge.TypePNG, typ)
	assert.Equal(cartridge.Magic, container[:len(cartridge.Magic)])

	loaded, err := loadInput(file)
	require.NoError(t, err)
	assert.Equal("hello", loaded.Filename)
	assert.Equal(state.Script(), loaded.Script())

	_, err = loadInput(filepath.Join(dir, "missing.r16"))
	assert.Error(err)
}

func TestAPICall(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	require.NoError(t, cartridge.Save(
		cartridge.NewGameState("-- snake"), filepath.Join(dir, "snake.r16"), nil))

	server := httptest.NewServer(control.NewAPIServer("", dir, nil).Handler())
	defer server.Close()

	r := newTestRunner()
	r.Address = server.URL

	resp, err := r.cartCall("script", "repo://snake.r16", false, nil)
	require.NoError(t, err)
	body, err := io.ReadAll(resp)
	resp.Close()
	require.NoError(t, err)
	assert.Equal("-- snake", string(body))

	_, err = r.cartCall("script", "repo://missing.r16", false, nil)
	assert.Error(err)

	_, err = r.apiCall("GET", "/nothing", false, nil)
	assert.Error(err)
}
