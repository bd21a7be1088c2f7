// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/chewxy/math32"

	"trippygl.org"
	"trippygl.org/f32"
	"trippygl.org/fontgen"
)

var beginModes = map[string]trippygl.BeginMode{
	"deferred":      trippygl.BeginDeferred,
	"immediate":     trippygl.BeginImmediate,
	"on_the_fly":    trippygl.BeginOnTheFly,
	"back_to_front": trippygl.BeginSortBackToFront,
	"front_to_back": trippygl.BeginSortFrontToBack,
	"texture":       trippygl.BeginSortByTexture,
}

func beginMode(name string) (trippygl.BeginMode, error) {
	m, ok := beginModes[name]
	if !ok {
		return 0, fmt.Errorf("unknown sort mode %q", name)
	}
	return m, nil
}

type sprite struct {
	pos, vel   f32.Point
	angle      float32
	spin       float32
	scale      float32
	color      color.NRGBA
	depth      float32
	useTexture int
}

// scene bounces textured sprites around the window and draws a frame
// around it with a line batch.
type scene struct {
	d *trippygl.GraphicsDevice

	textured *trippygl.SimpleShaderProgram
	flat     *trippygl.SimpleShaderProgram
	batcher  *trippygl.TextureBatcher
	lines    *trippygl.PrimitiveBatcher[trippygl.VertexColor]
	lineBuf  *trippygl.VertexBuffer[trippygl.VertexColor]
	font     *trippygl.TextureFont
	// textures[0] is the configured texture, textures[1] a generated one.
	textures [2]*trippygl.Texture2D

	cfg     SceneConfig
	mode    trippygl.BeginMode
	sprites []sprite
	rng     *rand.Rand
}

func newScene(d *trippygl.GraphicsDevice, cfg SceneConfig) (s *scene, err error) {
	s = &scene{
		d:   d,
		rng: rand.New(rand.NewPCG(1, 2)),
	}
	defer func() {
		if err != nil {
			s.Release()
		}
	}()
	if s.textured, err = trippygl.NewSimpleShaderProgram(d, true); err != nil {
		return nil, err
	}
	if s.flat, err = trippygl.NewSimpleShaderProgram(d, false); err != nil {
		return nil, err
	}
	if s.batcher, err = trippygl.NewTextureBatcher(d, 256); err != nil {
		return nil, err
	}
	if err = s.batcher.SetSimpleShaderProgram(s.textured); err != nil {
		return nil, err
	}
	if s.lines, err = trippygl.NewPrimitiveBatcher[trippygl.VertexColor](0, 64); err != nil {
		return nil, err
	}
	if s.lineBuf, err = trippygl.NewVertexBuffer[trippygl.VertexColor](d, 64, 0, trippygl.IndexUint16, trippygl.StreamDraw); err != nil {
		return nil, err
	}
	if s.textures[1], err = trippygl.NewTexture2DFromImage(d, checkerboard(32, 8), false); err != nil {
		return nil, err
	}
	if err = s.apply(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// apply switches the scene to cfg, reloading what changed.
func (s *scene) apply(cfg SceneConfig) error {
	mode, err := beginMode(cfg.Sort)
	if err != nil {
		return err
	}
	if s.font == nil || cfg.FontSize != s.cfg.FontSize {
		face, err := fontgen.DefaultFace(cfg.FontSize)
		if err != nil {
			return err
		}
		font, err := fontgen.Build(s.d, face, fontgen.ASCII())
		if err != nil {
			return err
		}
		if s.font != nil {
			s.font.Dispose()
		}
		s.font = font
	}
	if s.textures[0] == nil || cfg.Texture != s.cfg.Texture {
		var tex *trippygl.Texture2D
		if cfg.Texture != "" {
			tex, err = trippygl.NewTexture2DFromFile(s.d, cfg.Texture, true)
			if err != nil {
				return err
			}
			if err := tex.SetTextureFilters(trippygl.MinLinearMipmapLinear, trippygl.MagLinear); err != nil {
				tex.Dispose()
				return err
			}
		} else {
			tex, err = trippygl.NewTexture2DFromImage(s.d, checkerboard(32, 4), false)
			if err != nil {
				return err
			}
		}
		if s.textures[0] != nil {
			s.textures[0].Dispose()
		}
		s.textures[0] = tex
	}
	s.cfg = cfg
	s.mode = mode
	s.resize(cfg.Sprites)
	return nil
}

func (s *scene) resize(n int) {
	if n <= len(s.sprites) {
		s.sprites = s.sprites[:n]
		return
	}
	for len(s.sprites) < n {
		r := s.rng
		s.sprites = append(s.sprites, sprite{
			pos:   f32.Pt(r.Float32()*640, r.Float32()*480),
			vel:   f32.Pt(r.Float32()*200-100, r.Float32()*200-100),
			spin:  r.Float32()*4 - 2,
			scale: 0.5 + r.Float32(),
			color: color.NRGBA{
				R: uint8(128 + r.IntN(128)),
				G: uint8(128 + r.IntN(128)),
				B: uint8(128 + r.IntN(128)),
				A: 255,
			},
			depth:      r.Float32()*2 - 1,
			useTexture: r.IntN(len(s.textures)),
		})
	}
}

// Update advances the sprites by dt seconds within a size sized area.
func (s *scene) Update(dt float32, size image.Point) {
	w, h := float32(size.X), float32(size.Y)
	for i := range s.sprites {
		sp := &s.sprites[i]
		sp.pos = sp.pos.Add(sp.vel.Mul(dt))
		if sp.pos.X < 0 && sp.vel.X < 0 || sp.pos.X > w && sp.vel.X > 0 {
			sp.vel.X = -sp.vel.X
		}
		if sp.pos.Y < 0 && sp.vel.Y < 0 || sp.pos.Y > h && sp.vel.Y > 0 {
			sp.vel.Y = -sp.vel.Y
		}
		sp.angle = math32.Mod(sp.angle+sp.spin*dt, 2*math32.Pi)
	}
}

// Draw renders the scene into the current framebuffer of size pixels.
func (s *scene) Draw(size image.Point, status string) error {
	w, h := float32(size.X), float32(size.Y)
	s.d.SetBlendState(trippygl.BlendAlpha)
	s.d.SetDepthState(trippygl.DepthNone)

	if err := s.textured.SetViewportTransform(w, h, f32.Identity()); err != nil {
		return err
	}
	if err := s.batcher.Begin(s.mode); err != nil {
		return err
	}
	for _, sp := range s.sprites {
		tex := s.textures[sp.useTexture]
		origin := f32.Pt(float32(tex.Width())/2, float32(tex.Height())/2)
		scale := f32.Pt(sp.scale, sp.scale)
		if err := s.batcher.DrawEx(tex, sp.pos, image.Rectangle{}, sp.color, scale, sp.angle, origin, sp.depth); err != nil {
			s.batcher.End()
			return err
		}
	}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if err := s.batcher.DrawString(s.font, status, f32.Pt(8, 8), white, f32.Pt(1, 1), 0, f32.Point{}, 1); err != nil {
		s.batcher.End()
		return err
	}
	if err := s.batcher.End(); err != nil {
		return err
	}
	return s.drawFrame(w, h)
}

// drawFrame outlines the window with a line strip.
func (s *scene) drawFrame(w, h float32) error {
	c := color.NRGBA{R: 255, G: 200, B: 0, A: 255}
	v := func(x, y float32) trippygl.VertexColor {
		return trippygl.VertexColor{Position: f32.Vec3{X: x, Y: y}, Color: c}
	}
	s.lines.ClearLines()
	s.lines.AddLineStrip([]trippygl.VertexColor{
		v(2, 2), v(w-2, 2), v(w-2, h-2), v(2, h-2), v(2, 2),
	})
	verts := s.lines.LineVertices()
	if n := len(verts); n > s.lineBuf.Vertices().Len() {
		if err := s.lineBuf.RecreateStorage(n, 0, trippygl.StreamDraw); err != nil {
			return err
		}
	}
	if err := s.lineBuf.Vertices().SetData(0, verts); err != nil {
		return err
	}
	if err := s.flat.SetViewportTransform(w, h, f32.Identity()); err != nil {
		return err
	}
	if err := s.d.BindShaderProgram(s.flat.ShaderProgram); err != nil {
		return err
	}
	if err := s.d.BindVertexArray(s.lineBuf.VertexArray()); err != nil {
		return err
	}
	return s.d.DrawArrays(trippygl.Lines, 0, len(verts))
}

// Release disposes the scene's resources. The device is left alive.
func (s *scene) Release() {
	if s.batcher != nil {
		s.batcher.Dispose()
	}
	if s.lineBuf != nil {
		s.lineBuf.Dispose()
	}
	if s.font != nil {
		s.font.Dispose()
	}
	for _, t := range s.textures {
		if t != nil {
			t.Dispose()
		}
	}
	if s.textured != nil {
		s.textured.Dispose()
	}
	if s.flat != nil {
		s.flat.Dispose()
	}
}

// checkerboard returns a size by size image of cells by cells squares.
func checkerboard(size, cells int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	cell := max(size/cells, 1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			if (x/cell+y/cell)%2 == 1 {
				c = color.NRGBA{R: 90, G: 90, B: 90, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
