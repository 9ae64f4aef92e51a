package bitmap

import (
	"fmt"
	"image"
)

// Bounds is an integer rectangle in pixel coordinates.
type Bounds struct {
	X, Y          int // Top-left corner
	Width, Height int // Dimensions
}

// Rect is a convenience constructor for Bounds.
func Rect(x, y, width, height int) Bounds {
	return Bounds{X: x, Y: y, Width: width, Height: height}
}

// BoundsFromImage converts an image.Rectangle.
func BoundsFromImage(r image.Rectangle) Bounds {
	return Bounds{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Image converts b to an image.Rectangle.
func (b Bounds) Image() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Area returns Width*Height.
func (b Bounds) Area() int {
	return b.Width * b.Height
}

// IsEmpty reports whether the rectangle covers no pixels.
func (b Bounds) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Contains reports whether other fits entirely inside b.
func (b Bounds) Contains(other Bounds) bool {
	if other.X < b.X || other.Y < b.Y {
		return false
	}
	if other.X+other.Width > b.X+b.Width {
		return false
	}
	if other.Y+other.Height > b.Y+b.Height {
		return false
	}
	return true
}

// Clamp intersects value with clamp, shrinking whichever edges exceed it.
// Clipped dimensions never go below zero.
func Clamp(value, clamp Bounds) Bounds {
	x, y, w, h := value.X, value.Y, value.Width, value.Height

	if x < clamp.X {
		w -= clamp.X - x
		x = clamp.X
	}
	if y < clamp.Y {
		h -= clamp.Y - y
		y = clamp.Y
	}
	if x+w > clamp.X+clamp.Width {
		w -= (x + w) - (clamp.X + clamp.Width)
	}
	if y+h > clamp.Y+clamp.Height {
		h -= (y + h) - (clamp.Y + clamp.Height)
	}

	// An empty result starting past the far edge is pulled back onto it so
	// that clamp still contains it.
	if right := clamp.X + max(clamp.Width, 0); x > right {
		x = right
	}
	if bottom := clamp.Y + max(clamp.Height, 0); y > bottom {
		y = bottom
	}

	return Bounds{X: x, Y: y, Width: max(w, 0), Height: max(h, 0)}
}

// String returns "x,y wxh".
func (b Bounds) String() string {
	return fmt.Sprintf("%d,%d %dx%d", b.X, b.Y, b.Width, b.Height)
}
