package lib

import "fmt"
import "math"

import "github.com/golang/geo/r2"

import "github.com/pwiecz/viewport_patterns/lib/r2geo"

// BoundingBox in degrees. West < East and South < North are expected
// but not checked.
type BoundingBox struct {
	West  float64
	South float64
	East  float64
	North float64
}

// Padding in pixels around the fitted bounds.
type Padding struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

func UniformPadding(p float64) Padding {
	return Padding{Top: p, Bottom: p, Left: p, Right: p}
}

func (p Padding) valid() bool {
	return isFinite(p.Top, p.Bottom, p.Left, p.Right)
}

// FitBoundsOptions zero value means no padding and no offset.
type FitBoundsOptions struct {
	Padding Padding
	// Offset of the bounds center from the viewport center, in pixels.
	Offset r2.Point
}

type FitBoundsParams struct {
	Width   float64
	Height  float64
	Bounds  BoundingBox
	Options FitBoundsOptions
}

// FitBounds finds the center and zoom of a flat (no pitch, no bearing)
// viewport of the given size that shows the whole bounding box.
func FitBounds(params FitBoundsParams) (ViewState, error) {
	padding := params.Options.Padding
	if !padding.valid() {
		return ViewState{}, fmt.Errorf("%w: non-finite padding %+v", ErrPrecondition, padding)
	}
	offset := params.Options.Offset
	if !isFinite(offset.X, offset.Y) {
		return ViewState{}, fmt.Errorf("%w: non-finite offset %v", ErrPrecondition, offset)
	}

	viewport, err := NewWebMercatorViewport(ViewportProps{
		Width:  params.Width,
		Height: params.Height,
	})
	if err != nil {
		return ViewState{}, err
	}
	bounds := params.Bounds
	nw, err := viewport.Project(r2.Point{X: bounds.West, Y: bounds.North})
	if err != nil {
		return ViewState{}, err
	}
	se, err := viewport.Project(r2.Point{X: bounds.East, Y: bounds.South})
	if err != nil {
		return ViewState{}, err
	}
	rect := r2geo.CornersRect(nw, se)
	size := rect.Size()

	targetWidth := viewport.Width() - padding.Left - padding.Right - math.Abs(offset.X)*2
	targetHeight := viewport.Height() - padding.Top - padding.Bottom - math.Abs(offset.Y)*2
	scaleX := targetWidth / size.X
	scaleY := targetHeight / size.Y

	// Asymmetric padding moves the center, measured at the fitted scale.
	paddingShift := r2.Point{
		X: (padding.Right - padding.Left) / 2 / scaleX,
		Y: (padding.Bottom - padding.Top) / 2 / scaleY,
	}
	center, err := viewport.Unproject(rect.Center().Add(paddingShift))
	if err != nil {
		return ViewState{}, err
	}
	zoom := viewport.Zoom() + math.Log2(math.Abs(math.Min(scaleX, scaleY)))
	return ViewState{Longitude: center.X, Latitude: center.Y, Zoom: zoom}, nil
}
