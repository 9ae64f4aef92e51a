package bitmap

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Affine is a 2D affine transform mapping source pixel coordinates to
// destination pixel coordinates:
//
//	| a  b  c |
//	| d  e  f |
//	| 0  0  1 |
type Affine struct {
	a, b, c float64 // x' = ax + by + c
	d, e, f float64 // y' = dx + ey + f
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{a: 1, e: 1}
}

// Translate returns a transform shifting points by (tx, ty).
func Translate(tx, ty float64) Affine {
	return Affine{a: 1, c: tx, e: 1, f: ty}
}

// Scale returns a transform scaling by (sx, sy) around the origin.
// Negative factors flip.
func Scale(sx, sy float64) Affine {
	return Affine{a: sx, e: sy}
}

// Rotate returns a rotation by angle radians around the origin. With y
// pointing down, positive angles turn clockwise on screen.
func Rotate(angle float64) Affine {
	sin, cos := math.Sincos(angle)
	return Affine{a: cos, b: -sin, d: sin, e: cos}
}

// Shear returns a transform skewing x by sx*y and y by sy*x.
func Shear(sx, sy float64) Affine {
	return Affine{a: 1, b: sx, d: sy, e: 1}
}

// RotateAt returns a rotation by angle radians around (cx, cy).
func RotateAt(angle, cx, cy float64) Affine {
	return Translate(cx, cy).Multiply(Rotate(angle)).Multiply(Translate(-cx, -cy))
}

// ScaleAt returns a scaling by (sx, sy) around (cx, cy).
func ScaleAt(sx, sy, cx, cy float64) Affine {
	return Translate(cx, cy).Multiply(Scale(sx, sy)).Multiply(Translate(-cx, -cy))
}

// AffineFromAff3 converts a row-major x/image matrix.
func AffineFromAff3(m f64.Aff3) Affine {
	return Affine{a: m[0], b: m[1], c: m[2], d: m[3], e: m[4], f: m[5]}
}

// Aff3 returns the transform as a row-major x/image matrix, usable with
// golang.org/x/image/draw transformers.
func (m Affine) Aff3() f64.Aff3 {
	return f64.Aff3{m.a, m.b, m.c, m.d, m.e, m.f}
}

// Multiply returns m·other: other is applied first, then m.
func (m Affine) Multiply(other Affine) Affine {
	return Affine{
		a: m.a*other.a + m.b*other.d,
		b: m.a*other.b + m.b*other.e,
		c: m.a*other.c + m.b*other.f + m.c,
		d: m.d*other.a + m.e*other.d,
		e: m.d*other.b + m.e*other.e,
		f: m.d*other.c + m.e*other.f + m.f,
	}
}

// Determinant returns ae - bd.
func (m Affine) Determinant() float64 {
	return m.a*m.e - m.b*m.d
}

// Invert returns the inverse transform, or false when m is singular or its
// inverse is not finite.
func (m Affine) Invert() (Affine, bool) {
	det := m.Determinant()
	if det == 0 {
		return Affine{}, false
	}
	inv := 1 / det
	r := Affine{
		a: m.e * inv,
		b: -m.b * inv,
		c: (m.b*m.f - m.c*m.e) * inv,
		d: -m.d * inv,
		e: m.a * inv,
		f: (m.c*m.d - m.a*m.f) * inv,
	}
	for _, x := range [...]float64{r.a, r.b, r.c, r.d, r.e, r.f} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Affine{}, false
		}
	}
	return r, true
}

// TransformPoint applies m to (x, y).
func (m Affine) TransformPoint(x, y float64) (float64, float64) {
	return m.a*x + m.b*y + m.c, m.d*x + m.e*y + m.f
}

// IsIdentity reports whether m is exactly the identity.
func (m Affine) IsIdentity() bool {
	return m == Identity()
}

// footprint returns the integer bounding box of rectangle b mapped by m,
// clipped to clip.
func (m Affine) footprint(b, clip Bounds) Bounds {
	x0, y0 := float64(b.X), float64(b.Y)
	x1, y1 := float64(b.X+b.Width), float64(b.Y+b.Height)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		x, y := m.TransformPoint(p[0], p[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	if math.IsNaN(minX+maxX+minY+maxY) {
		return Bounds{X: clip.X, Y: clip.Y}
	}
	lo := func(v float64, edge int) float64 { return math.Max(v, float64(edge)) }
	hi := func(v float64, edge int) float64 { return math.Min(v, float64(edge)) }
	left := int(math.Floor(hi(lo(minX, clip.X), clip.X+clip.Width)))
	top := int(math.Floor(hi(lo(minY, clip.Y), clip.Y+clip.Height)))
	right := int(math.Ceil(hi(lo(maxX, clip.X), clip.X+clip.Width)))
	bottom := int(math.Ceil(hi(lo(maxY, clip.Y), clip.Y+clip.Height)))
	return Bounds{X: left, Y: top, Width: right - left, Height: bottom - top}
}
