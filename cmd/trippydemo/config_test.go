// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[window]
width = 800
height = 600
title = "sprites"

[scene]
clear_color = [0.0, 0.5, 1.0, 1.0]
sprites = 10
sort = "texture"

[device]
check_errors = true
`

func TestParseConfig(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, parseConfig([]byte(sampleConfig), &cfg))

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "sprites", cfg.Window.Title)
	// Unset keys keep their defaults.
	assert.True(t, cfg.Window.VSync)
	assert.Equal(t, 18.0, cfg.Scene.FontSize)

	assert.Equal(t, [4]float32{0, 0.5, 1, 1}, cfg.Scene.ClearColor)
	assert.Equal(t, 10, cfg.Scene.Sprites)
	assert.Equal(t, "texture", cfg.Scene.Sort)
	assert.True(t, cfg.Device.CheckErrors)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", "[window]\ncolour = 1\n"},
		{"syntax", "[window\n"},
		{"zero width", "[window]\nwidth = 0\n"},
		{"negative sprites", "[scene]\nsprites = -1\n"},
		{"clear color range", "[scene]\nclear_color = [2.0, 0.0, 0.0, 1.0]\n"},
		{"sort mode", "[scene]\nsort = \"random\"\n"},
		{"font size", "[scene]\nfont_size = 0.0\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := defaultConfig()
			assert.Error(t, parseConfig([]byte(test.data), &cfg))
		})
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "demo.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scene]\nsprites = 3\n"), 0o644))
	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Scene.Sprites)
}

func TestBeginModes(t *testing.T) {
	for name := range beginModes {
		_, err := beginMode(name)
		assert.NoError(t, err, name)
	}
	_, err := beginMode("")
	assert.Error(t, err)
}

func TestWatchConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scene]\nsprites = 1\n"), 0o644))

	w, err := watchConfig(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("[scene]\nsprites = -1\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("[scene]\nsprites = 7\n"), 0o644))

	// Partially written files may be seen in between.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-w.Configs:
			assert.NotEqual(t, -1, cfg.Scene.Sprites)
			if cfg.Scene.Sprites == 7 {
				return
			}
		case <-deadline:
			t.Fatal("no configuration reloaded")
		}
	}
}
