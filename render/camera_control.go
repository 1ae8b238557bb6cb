package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/lifeforms/ecs"
	"github.com/plus3/lifeforms/ecs/debugui"
	"github.com/plus3/lifeforms/sim"
)

const (
	minZoom  = 0.25
	maxZoom  = 8
	zoomStep = 0.1
)

// CameraControlSystem pans the camera with a left-button drag and zooms it
// around the cursor with the wheel. Home resets the view. Input captured by
// the inspector is ignored.
type CameraControlSystem struct {
	Camera     ecs.Singleton[sim.Camera]
	ImguiInput ecs.Singleton[debugui.ImguiInputState]
	Screen     ecs.Singleton[Screen]

	dragging bool
	lastX    int
	lastY    int
}

func (s *CameraControlSystem) Execute(frame *ecs.UpdateFrame) {
	camera := s.Camera.Get()
	screen := s.Screen.Get()
	if camera == nil || screen == nil || screen.Image == nil {
		return
	}
	if in := s.ImguiInput.Get(); in != nil && in.WantCaptureMouse {
		s.dragging = false
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		*camera = sim.Camera{Zoom: 1}
	}

	mx, my := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.dragging = true
		s.lastX, s.lastY = mx, my
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		s.dragging = false
	}
	if s.dragging {
		Pan(camera, float32(mx-s.lastX), float32(my-s.lastY))
		s.lastX, s.lastY = mx, my
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
		ZoomAt(camera, w, h, float32(mx), float32(my), float32(dy)*zoomStep)
	}
}

// Pan moves the camera so the world follows a cursor drag of (dx, dy) pixels.
func Pan(camera *sim.Camera, dx, dy float32) {
	zoom := zoomOf(*camera)
	camera.X -= dx / zoom
	camera.Y += dy / zoom
}

// ZoomAt changes the zoom by delta, keeping the world point under the pixel
// (sx, sy) fixed.
func ZoomAt(camera *sim.Camera, w, h int, sx, sy, delta float32) {
	wx, wy := ScreenToWorld(*camera, w, h, sx, sy)
	camera.Zoom = min(maxZoom, max(minZoom, zoomOf(*camera)+delta))
	nx, ny := ScreenToWorld(*camera, w, h, sx, sy)
	camera.X += wx - nx
	camera.Y += wy - ny
}
