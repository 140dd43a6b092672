// Package r2geo holds small planar helpers used by the viewport math on the
// world-pixel plane.
package r2geo

import "math"

import "github.com/golang/geo/r2"

// Length returns sqrt(x*x+y*y). Unlike r2.Point.Norm it does not go
// through math.Hypot.
func Length(p r2.Point) float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

func Distance(p0, p1 r2.Point) float64 {
	return Length(p1.Sub(p0))
}

// Lerp returns a + t*(b-a).
func Lerp(a, b r2.Point, t float64) r2.Point {
	return r2.Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
}

// CornersRect returns the smallest rectangle containing both corners,
// regardless of their order.
func CornersRect(a, b r2.Point) r2.Rect {
	return r2.RectFromPoints(a, b)
}
