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

package control

import (
	"bytes"
	"encoding/json"
	goimage "image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rainbow16/r16/pkg/audio"
	"github.com/rainbow16/r16/pkg/cartridge"
	"github.com/rainbow16/r16/pkg/image"
	"github.com/rainbow16/r16/pkg/repo"
)

//
func sampleCart() *cartridge.GameState {
	s := cartridge.NewGameState("-- demo\nfunction _draw() cls(1) end")
	s.Audios[5].Speed = 3
	s.Audios[5].Items[0] = audio.Item{WaveType: audio.Sine, Sound: 24, Volume: 6}
	s.Audios[5].Items[1] = audio.Item{WaveType: audio.Noise, Sound: 12, Volume: 2}
	return s
}

//
func newTestServer(t *testing.T, withIndex bool) (*httptest.Server, string) {

	root := t.TempDir()
	carts := filepath.Join(root, "carts")
	require.NoError(t, os.MkdirAll(carts, 0755))

	require.NoError(t, cartridge.Save(sampleCart(), filepath.Join(carts, "demo.r16"), nil))
	withPreview := sampleCart()
	withPreview.SetScript("-- picture\nfunction _draw() spr(0, 0, 0) end")
	withPreview.PreviewImage = image.New(image.PreviewWidth, image.PreviewHeight)
	withPreview.PreviewImage.Pixels[0] = 8
	require.NoError(t, cartridge.Save(withPreview, filepath.Join(carts, "pic.r16.png"), nil))

	var index *repo.Index
	if withIndex {
		var err error
		index, err = repo.NewIndex(filepath.Join(root, "index"), carts)
		require.NoError(t, err)
		require.NoError(t, index.Start())
		t.Cleanup(index.Stop)
	}

	server := httptest.NewServer(NewAPIServer("", carts, index).Handler())
	t.Cleanup(server.Close)
	return server, carts
}

//
func get(t *testing.T, url string, json bool) (int, []byte, http.Header) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if json {
		req.Header.Set("Accept", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body, resp.Header
}

func TestVersion(t *testing.T) {
	assert := assert.New(t)
	server, _ := newTestServer(t, false)

	status, body, _ := get(t, server.URL+"/version", true)
	assert.Equal(http.StatusOK, status)
	var v Version
	require.NoError(t, json.Unmarshal(body, &v))
	assert.Equal("dev", v.Server)

	status, body, _ = get(t, server.URL+"/version", false)
	assert.Equal(http.StatusOK, status)
	assert.Contains(string(body), "server:")
}

func TestInfo(t *testing.T) {
	assert := assert.New(t)
	server, _ := newTestServer(t, false)

	status, body, _ := get(t, server.URL+"/cart/info?ref=repo://demo.r16", true)
	require.Equal(t, http.StatusOK, status, string(body))

	var info CartInfo
	require.NoError(t, json.Unmarshal(body, &info))
	assert.Equal("demo", info.Name)
	assert.Equal(2, info.Lines)
	assert.False(info.Preview)
	require.Len(t, info.Tracks, 1)
	assert.Equal(5, info.Tracks[0].Track)
	assert.Equal(2, info.Tracks[0].Notes)

	status, body, _ = get(t, server.URL+"/cart/info?ref=repo://pic.r16.png", false)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(string(body), "preview:  true")

	status, _, _ = get(t, server.URL+"/cart/info?ref=repo://missing.r16", false)
	assert.Equal(http.StatusNotAcceptable, status)

	status, _, _ = get(t, server.URL+"/cart/info?ref=repo://../x.r16", false)
	assert.Equal(http.StatusNotAcceptable, status)

	status, _, _ = get(t, server.URL+"/cart/info", false)
	assert.Equal(http.StatusBadRequest, status)
}

func TestUpload(t *testing.T) {
	assert := assert.New(t)
	server, _ := newTestServer(t, false)

	data, err := cartridge.Encode(sampleCart())
	require.NoError(t, err)

	resp, err := http.Post(server.URL+"/cart/script?name=up.r16",
		"application/octet-stream", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Equal(sampleCart().Script(), string(body))

	resp, err = http.Post(server.URL+"/cart/script",
		"application/octet-stream", strings.NewReader("garbage"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestPreview(t *testing.T) {
	assert := assert.New(t)
	server, _ := newTestServer(t, false)

	status, body, hdr := get(t, server.URL+"/cart/preview?ref=repo://pic.r16.png", false)
	require.Equal(t, http.StatusOK, status)
	assert.Equal("image/png", hdr.Get("Content-Type"))
	img, err := png.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(goimage.Rect(0, 0, image.PreviewWidth, image.PreviewHeight), img.Bounds())
	assert.Equal(image.Palettes[0][8], img.(*goimage.Paletted).At(0, 0))

	status, body, _ = get(t, server.URL+"/cart/preview?ref=repo://demo.r16&palette=2", false)
	require.Equal(t, http.StatusOK, status)
	img, err = png.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(image.SheetSize, img.Bounds().Dx())

	status, _, _ = get(t, server.URL+"/cart/preview?ref=repo://demo.r16&palette=4", false)
	assert.Equal(http.StatusUnprocessableEntity, status)
}

func TestSfx(t *testing.T) {
	assert := assert.New(t)
	server, _ := newTestServer(t, false)

	status, body, hdr := get(t, server.URL+"/cart/sfx?ref=repo://demo.r16&track=5", false)
	require.Equal(t, http.StatusOK, status)
	assert.Equal("audio/wav", hdr.Get("Content-Type"))
	assert.Equal("RIFF", string(body[:4]))
	assert.Equal("WAVE", string(body[8:12]))

	status, _, _ = get(t, server.URL+"/cart/sfx?ref=repo://demo.r16&track=32", false)
	assert.Equal(http.StatusUnprocessableEntity, status)
	status, _, _ = get(t, server.URL+"/cart/sfx?ref=repo://demo.r16&track=x", false)
	assert.Equal(http.StatusUnprocessableEntity, status)
}

func TestDump(t *testing.T) {
	assert := assert.New(t)
	server, _ := newTestServer(t, false)

	status, body, _ := get(t, server.URL+"/cart/dump?ref=repo://pic.r16.png", false)
	require.Equal(t, http.StatusOK, status)
	out := string(body)
	assert.Contains(out, "4 frames")
	assert.Contains(out, "preview")
	assert.Contains(out, "images")

	status, body, _ = get(t, server.URL+"/cart/dump?ref=repo://demo.r16&frame=script", false)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(string(body), "-- demo")
}

func TestConvert(t *testing.T) {
	assert := assert.New(t)
	server, _ := newTestServer(t, false)

	status, body, hdr := get(t, server.URL+"/cart/convert?ref=repo://demo.r16", false)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(hdr.Get("Content-Disposition"), "demo.r16.png")

	state, err := cartridge.DecodePNG(body)
	require.NoError(t, err)
	assert.Equal(sampleCart().Script(), state.Script())

	status, body, _ = get(t, server.URL+"/cart/convert?ref=repo://pic.r16.png&type=r16", false)
	require.Equal(t, http.StatusOK, status)
	state, err = cartridge.Decode(body)
	require.NoError(t, err)
	assert.NotNil(state.PreviewImage)

	status, _, _ = get(t, server.URL+"/cart/convert?ref=repo://demo.r16&type=tap", false)
	assert.Equal(http.StatusUnprocessableEntity, status)
}

func TestSearch(t *testing.T) {
	assert := assert.New(t)

	server, _ := newTestServer(t, false)
	status, _, _ := get(t, server.URL+"/search?term=demo", false)
	assert.Equal(http.StatusServiceUnavailable, status)

	server, _ = newTestServer(t, true)

	var res repo.SearchResult
	assert.Eventually(func() bool {
		status, body, _ := get(t, server.URL+"/search?term=demo", true)
		return status == http.StatusOK &&
			json.Unmarshal(body, &res) == nil && len(res.Hits) == 1
	}, 5*time.Second, 50*time.Millisecond)
	assert.Equal("demo.r16", res.Hits[0].Ref)

	status, body, _ := get(t, server.URL+"/search?term=demo", false)
	assert.Equal(http.StatusOK, status)
	assert.Contains(string(body), "repo://demo.r16")

	status, _, _ = get(t, server.URL+"/search?term=demo&items=0", false)
	assert.Equal(http.StatusUnprocessableEntity, status)
	status, _, _ = get(t, server.URL+"/search", false)
	assert.Equal(http.StatusUnprocessableEntity, status)
}

func TestWriteFrameDump(t *testing.T) {
	assert := assert.New(t)

	data, err := cartridge.Encode(sampleCart())
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Error(WriteFrameDump(&buf, data, "preview"))
	assert.Contains(buf.String(), "3 frames")

	assert.Error(WriteFrameDump(&buf, []byte("nope"), ""))
}
