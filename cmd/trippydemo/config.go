// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the demo configuration file.
type Config struct {
	Window WindowConfig `toml:"window"`
	Scene  SceneConfig  `toml:"scene"`
	Device DeviceConfig `toml:"device"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type SceneConfig struct {
	// ClearColor is RGBA in [0, 1].
	ClearColor [4]float32 `toml:"clear_color"`
	Sprites    int        `toml:"sprites"`
	// Texture is an image file for the sprites. A generated checkerboard
	// is used when empty.
	Texture  string  `toml:"texture"`
	FontSize float64 `toml:"font_size"`
	// Sort selects the batcher mode: deferred, immediate, on_the_fly,
	// back_to_front, front_to_back or texture.
	Sort string `toml:"sort"`
}

type DeviceConfig struct {
	CheckErrors bool `toml:"check_errors"`
	Debug       bool `toml:"debug"`
}

func defaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  1024,
			Height: 768,
			Title:  "trippydemo",
			VSync:  true,
		},
		Scene: SceneConfig{
			ClearColor: [4]float32{0.1, 0.1, 0.15, 1},
			Sprites:    200,
			FontSize:   18,
			Sort:       "deferred",
		},
	}
}

// loadConfig reads a TOML file over the defaults. An empty path returns
// the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := parseConfig(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func parseConfig(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("line %d, column %d: %w", row, col, err)
		}
		return err
	}
	return cfg.validate()
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Scene.Sprites < 0 {
		return fmt.Errorf("invalid sprite count %d", c.Scene.Sprites)
	}
	if c.Scene.FontSize <= 0 {
		return fmt.Errorf("invalid font size %g", c.Scene.FontSize)
	}
	for _, v := range c.Scene.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("clear color %v outside [0, 1]", c.Scene.ClearColor)
		}
	}
	if _, err := beginMode(c.Scene.Sort); err != nil {
		return err
	}
	return nil
}
