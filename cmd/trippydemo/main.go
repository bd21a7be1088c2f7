// SPDX-License-Identifier: Unlicense OR MIT

// Command trippydemo draws batched sprites and text with trippygl in a GLFW
// window.
//
// Usage:
//
//	trippydemo [-config demo.toml] [-watch]
//
// With -watch, edits to the configuration file are applied while running.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"trippygl.org"
	_ "trippygl.org/driver/opengl"
)

var (
	configPath = flag.String("config", "demo.toml", "configuration file; defaults are used if it does not exist")
	watch      = flag.Bool("watch", false, "reload the configuration file when it changes")
)

func init() {
	// GLFW and the GL context are bound to the main thread.
	runtime.LockOSThread()
}

func main() {
	flag.Parse()
	if err := mainErr(); err != nil {
		fmt.Fprintf(os.Stderr, "trippydemo: %v\n", err)
		os.Exit(1)
	}
}

func mainErr() error {
	cfg, err := loadConfig(*configPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = defaultConfig(), nil
	}
	if err != nil {
		return err
	}
	setupLogging(cfg.Device)

	var w *configWatcher
	if *watch {
		w, err = watchConfig(*configPath)
		if err != nil {
			return fmt.Errorf("watch %s: %w", *configPath, err)
		}
		defer w.Close()
	}

	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	win, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		return err
	}
	defer win.Destroy()
	win.MakeContextCurrent()
	setVSync(cfg.Window.VSync)

	d, err := trippygl.NewDevice(trippygl.Config{CheckErrors: cfg.Device.CheckErrors})
	if err != nil {
		return err
	}
	defer d.Dispose()
	lim := d.Limits()
	slog.Info("device created", "renderer", lim.Renderer, "vendor", lim.Vendor, "version", lim.Version)

	s, err := newScene(d, cfg.Scene)
	if err != nil {
		return err
	}
	defer s.Release()

	var (
		last   = time.Now()
		frames int
		fps    int
		second time.Time
	)
	for !win.ShouldClose() {
		glfw.PollEvents()
		if w != nil {
			select {
			case next := <-w.Configs:
				cfg = applyConfig(win, s, cfg, next)
			default:
			}
		}

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now
		frames++
		if now.Sub(second) >= time.Second {
			fps, frames, second = frames, 0, now
		}

		fw, fh := win.GetFramebufferSize()
		size := image.Pt(fw, fh)
		s.Update(dt, size)

		d.SetViewport(image.Rectangle{Max: size})
		c := cfg.Scene.ClearColor
		d.SetClearColor(c[0], c[1], c[2], c[3])
		d.Clear(trippygl.ClearColor)
		status := fmt.Sprintf("%d fps, %d sprites, %s", fps, len(s.sprites), cfg.Scene.Sort)
		if err := s.Draw(size, status); err != nil {
			return err
		}
		win.SwapBuffers()
	}
	return nil
}

// applyConfig switches to next, keeping cur for the parts that fail to
// apply.
func applyConfig(win *glfw.Window, s *scene, cur, next Config) Config {
	setupLogging(next.Device)
	if next.Window.Title != cur.Window.Title {
		win.SetTitle(next.Window.Title)
	}
	if next.Window.Width != cur.Window.Width || next.Window.Height != cur.Window.Height {
		win.SetSize(next.Window.Width, next.Window.Height)
	}
	if next.Window.VSync != cur.Window.VSync {
		setVSync(next.Window.VSync)
	}
	if next.Device.CheckErrors != cur.Device.CheckErrors {
		slog.Warn("check_errors takes effect on restart")
		next.Device.CheckErrors = cur.Device.CheckErrors
	}
	if err := s.apply(next.Scene); err != nil {
		slog.Error("apply scene config", "err", err)
		next.Scene = s.cfg
	}
	return next
}

func setVSync(on bool) {
	if on {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

func setupLogging(cfg DeviceConfig) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	trippygl.SetLogger(l)
}
