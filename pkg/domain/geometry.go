package domain

import "fmt"

// Rect is an axis-aligned rectangle in scene coordinates.
// A rectangle whose width and height are both zero is null; a rectangle with a
// non-positive width or height is empty. Only null rectangles are ignored by
// United, so a zero-width state still stretches the region.
type Rect struct {
	X      float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y      float64 `json:"y" yaml:"y" mapstructure:"y"`
	Width  float64 `json:"width" yaml:"width" mapstructure:"width"`
	Height float64 `json:"height" yaml:"height" mapstructure:"height"`
}

// IsNull reports whether both width and height are zero.
func (r Rect) IsNull() bool {
	return r.Width == 0 && r.Height == 0
}

// IsEmpty reports whether the rectangle covers no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Normalized returns the same rectangle with a non-negative width and height.
func (r Rect) Normalized() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// United returns the bounding rectangle of r and o.
// Null rectangles are ignored, so the union of two null rectangles is Rect{}.
func (r Rect) United(o Rect) Rect {
	if o.IsNull() {
		if r.IsNull() {
			return Rect{}
		}
		return r
	}
	if r.IsNull() {
		return o
	}

	r, o = r.Normalized(), o.Normalized()
	left := min(r.X, o.X)
	top := min(r.Y, o.Y)
	right := max(r.Right(), o.Right())
	bottom := max(r.Bottom(), o.Bottom())

	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// Equal reports whether both rectangles describe the same geometry.
// All null rectangles are equal to each other.
func (r Rect) Equal(o Rect) bool {
	if r.IsNull() || o.IsNull() {
		return r.IsNull() && o.IsNull()
	}
	return r == o
}

func (r Rect) String() string {
	if r.IsNull() {
		return "(empty)"
	}
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}
