// Package celtic implements the dynamics engine behind the Celtic orbit
// explorer: the pixel/plane coordinate mapping, the family of Celtic
// iteration formulas, the escape-time raster engine and the orbit/period
// analyzer. The package is pure computation; rendering, input handling and
// audio live in the clients under cmd/.
package celtic

// Viewport is the affine mapping between pixel space and the complex plane.
// Width and Height are fixed for the life of a session; Zoom and the offsets
// change under pan/zoom interactions.
type Viewport struct {
	Width, Height int
	Zoom          float64 // pixels per plane unit, always > 0
	OffsetX       float64
	OffsetY       float64
}

// ViewAt builds a viewport of the given dimensions centered on a plane point.
func ViewAt(width, height int, center complex128, zoom float64) Viewport {
	return Viewport{
		Width:   width,
		Height:  height,
		Zoom:    zoom,
		OffsetX: real(center) * zoom,
		OffsetY: imag(center) * zoom,
	}
}

// ToComplex maps a pixel coordinate onto the complex plane.
func (v Viewport) ToComplex(px, py int) complex128 {
	return complex(
		(float64(px)+v.OffsetX-float64(v.Width)/2)/v.Zoom,
		(float64(py)+v.OffsetY-float64(v.Height)/2)/v.Zoom,
	)
}

// ToPixel is the algebraic inverse of ToComplex. It is used to place plane
// points (orbit vertices, the Julia marker) back onto the screen and may
// return coordinates outside the raster.
func (v Viewport) ToPixel(z complex128) (x, y float64) {
	x = real(z)*v.Zoom + float64(v.Width)/2 - v.OffsetX
	y = imag(z)*v.Zoom + float64(v.Height)/2 - v.OffsetY
	return x, y
}

// Contains reports whether the pixel lies inside the raster bounds.
func (v Viewport) Contains(px, py int) bool {
	return px >= 0 && px < v.Width && py >= 0 && py < v.Height
}

// Pan returns the viewport shifted by a pixel delta.
func (v Viewport) Pan(dx, dy float64) Viewport {
	v.OffsetX += dx
	v.OffsetY += dy
	return v
}

// ZoomAround scales the zoom by factor while keeping the plane point under
// the given pixel stationary: ToComplex at (px, py) yields the same value
// before and after the call.
func (v Viewport) ZoomAround(px, py int, factor float64) Viewport {
	before := v.ToComplex(px, py)
	v.Zoom *= factor
	after := v.ToComplex(px, py)
	v.OffsetX += (real(before) - real(after)) * v.Zoom
	v.OffsetY += (imag(before) - imag(after)) * v.Zoom
	return v
}
