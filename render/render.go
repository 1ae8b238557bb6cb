// Package render draws the simulation onto an ebiten screen.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/lifeforms/ecs"
	"github.com/plus3/lifeforms/sim"
)

// Screen is the image being drawn this frame.
type Screen struct {
	*ebiten.Image
}

// Background is the colour the screen is cleared to.
type Background struct {
	Color color.RGBA
}

// RenderSystem draws halos, then lifeforms, onto the Screen singleton.
type RenderSystem struct {
	Screen     ecs.Singleton[Screen]
	Camera     ecs.Singleton[sim.Camera]
	Background ecs.Singleton[Background]

	Shapes ecs.Query[struct {
		*sim.Position
		*sim.Circle
	}]
	Halos ecs.Query[struct {
		*sim.Halo
		*ecs.Parent
	}]

	// Drawn is the number of circles drawn in the last frame.
	Drawn int
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get()
	if screen == nil || screen.Image == nil {
		return
	}
	camera := sim.Camera{Zoom: 1}
	if c := s.Camera.Get(); c != nil {
		camera = *c
	}
	if bg := s.Background.Get(); bg != nil {
		screen.Fill(bg.Color)
	}

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	s.Drawn = 0

	for item := range s.Halos.Iter() {
		owner, ok := frame.Storage.ResolveEntityRef(item.Parent.Ref)
		if !ok {
			continue
		}
		pos := ecs.ReadComponent[sim.Position](frame.Storage, owner)
		if pos == nil {
			continue
		}
		life := 1.0
		if lt := ecs.ReadComponent[sim.Lifetime](frame.Storage, owner); lt != nil {
			life = 1 - lt.Timer.Fraction()
		}
		c := fade(item.Halo.Color, life)
		sx, sy := WorldToScreen(camera, w, h, pos.X, pos.Y)
		vector.StrokeCircle(screen.Image, sx, sy, item.Halo.Radius*zoomOf(camera), 2, c, true)
		s.Drawn++
	}

	for item := range s.Shapes.Iter() {
		sx, sy := WorldToScreen(camera, w, h, item.Position.X, item.Position.Y)
		r := item.Circle.Radius * zoomOf(camera)
		vector.DrawFilledCircle(screen.Image, sx, sy, r, item.Circle.Fill, true)
		if item.Circle.OutlineWidth > 0 {
			vector.StrokeCircle(screen.Image, sx, sy, r, item.Circle.OutlineWidth, item.Circle.Outline, true)
		}
		s.Drawn++
	}
}

func zoomOf(camera sim.Camera) float32 {
	if camera.Zoom == 0 {
		return 1
	}
	return camera.Zoom
}

// fade scales a non-premultiplied colour's alpha by k in [0, 1] and returns
// it premultiplied, as color.RGBA expects.
func fade(c color.RGBA, k float64) color.RGBA {
	k = min(1, max(0, k))
	a := float64(c.A) * k
	scale := a / 255
	return color.RGBA{
		R: uint8(float64(c.R) * scale),
		G: uint8(float64(c.G) * scale),
		B: uint8(float64(c.B) * scale),
		A: uint8(a),
	}
}
