package render

import "github.com/plus3/lifeforms/sim"

// WorldToScreen maps a world point to pixel coordinates for a w by h
// viewport. World space has its origin at the viewport centre and y up.
func WorldToScreen(camera sim.Camera, w, h int, x, y float32) (sx, sy float32) {
	zoom := camera.Zoom
	if zoom == 0 {
		zoom = 1
	}
	sx = float32(w)/2 + (x-camera.X)*zoom
	sy = float32(h)/2 - (y-camera.Y)*zoom
	return sx, sy
}

// ScreenToWorld is the inverse of WorldToScreen.
func ScreenToWorld(camera sim.Camera, w, h int, sx, sy float32) (x, y float32) {
	zoom := camera.Zoom
	if zoom == 0 {
		zoom = 1
	}
	x = camera.X + (sx-float32(w)/2)/zoom
	y = camera.Y - (sy-float32(h)/2)/zoom
	return x, y
}
