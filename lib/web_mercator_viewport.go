package lib

import "fmt"
import "math"

import "github.com/golang/geo/r2"
import "github.com/golang/geo/r3"

// ViewportProps describe a Web-Mercator camera. Angles are in degrees.
// Zero Altitude, NearZMultiplier and FarZMultiplier select the defaults.
type ViewportProps struct {
	Width           float64
	Height          float64
	Longitude       float64
	Latitude        float64
	Zoom            float64
	Pitch           float64
	Bearing         float64
	Altitude        float64
	NearZMultiplier float64
	FarZMultiplier  float64
}

// ViewState is the part of a camera computed by FitBounds and FlyToViewport.
type ViewState struct {
	Longitude float64
	Latitude  float64
	Zoom      float64
}

func (p ViewportProps) ViewState() ViewState {
	return ViewState{Longitude: p.Longitude, Latitude: p.Latitude, Zoom: p.Zoom}
}

// WithViewState returns a copy of p centered at s.
func (p ViewportProps) WithViewState(s ViewState) ViewportProps {
	p.Longitude = s.Longitude
	p.Latitude = s.Latitude
	p.Zoom = s.Zoom
	return p
}

type mercatorProjector struct{}

func (mercatorProjector) ProjectFlat(lngLat r2.Point, scale float64) (r2.Point, error) {
	return LngLatToWorld(lngLat, scale)
}
func (mercatorProjector) UnprojectFlat(xy r2.Point, scale float64) r2.Point {
	return WorldToLngLat(xy, scale)
}

// WebMercatorViewport is a Viewport looking at a Web-Mercator map.
// Flat positions are longitude/latitude pairs in degrees, altitudes are in
// meters.
type WebMercatorViewport struct {
	Viewport
	props  ViewportProps
	center r3.Vector
}

// withDefaults fills in the size and altitude the way the viewport will
// use them, so that props describing the same camera compare equal.
func (p ViewportProps) withDefaults() ViewportProps {
	p.Width, p.Height = sizeOrOne(p.Width), sizeOrOne(p.Height)
	if p.Altitude == 0 {
		p.Altitude = DefaultAltitude
	}
	p.Altitude = math.Max(MinAltitude, p.Altitude)
	return p
}

func NewWebMercatorViewport(props ViewportProps) (*WebMercatorViewport, error) {
	props = props.withDefaults()
	if !isFinite(props.Zoom, props.Pitch, props.Bearing, props.Altitude) {
		return nil, fmt.Errorf("%w: non-finite camera parameters %+v", ErrPrecondition, props)
	}

	scale := ZoomToScale(props.Zoom)
	centerXY, err := LngLatToWorld(r2.Point{X: props.Longitude, Y: props.Latitude}, scale)
	if err != nil {
		return nil, err
	}
	center := r3.Vector{X: centerXY.X, Y: centerXY.Y, Z: 0}

	nearZMultiplier := props.NearZMultiplier
	if nearZMultiplier == 0 {
		nearZMultiplier = 1 / props.Height
	}
	farZMultiplier := props.FarZMultiplier
	if farZMultiplier == 0 {
		farZMultiplier = 1.01
	}
	projectionMatrix := GetProjectionMatrix(ProjectionMatrixParams{
		Width:           props.Width,
		Height:          props.Height,
		Pitch:           props.Pitch,
		Altitude:        props.Altitude,
		NearZMultiplier: nearZMultiplier,
		FarZMultiplier:  farZMultiplier,
	})
	viewMatrix := GetViewMatrix(ViewMatrixParams{
		Height:   props.Height,
		Center:   &center,
		Pitch:    props.Pitch,
		Bearing:  props.Bearing,
		Altitude: props.Altitude,
		FlipY:    true,
	})
	scales, err := GetDistanceScales(DistanceScalesParams{
		Latitude:  props.Latitude,
		Longitude: props.Longitude,
		Scale:     scale,
	})
	if err != nil {
		return nil, err
	}

	viewport, err := newViewport(props.Width, props.Height, viewportParams{
		viewMatrix:       viewMatrix,
		projectionMatrix: projectionMatrix,
		scale:            scale,
		pixelsPerMeter:   scales.PixelsPerMeter.Z,
		flat:             mercatorProjector{},
	})
	if err != nil {
		return nil, err
	}
	return &WebMercatorViewport{
		Viewport: *viewport,
		props:    props,
		center:   center,
	}, nil
}

func (v *WebMercatorViewport) Longitude() float64 { return v.props.Longitude }
func (v *WebMercatorViewport) Latitude() float64  { return v.props.Latitude }
func (v *WebMercatorViewport) Zoom() float64      { return v.props.Zoom }
func (v *WebMercatorViewport) Pitch() float64     { return v.props.Pitch }
func (v *WebMercatorViewport) Bearing() float64   { return v.props.Bearing }
func (v *WebMercatorViewport) Altitude() float64  { return v.props.Altitude }

// Center is the world position of the map center, Z is always 0.
func (v *WebMercatorViewport) Center() r3.Vector { return v.center }

// Props returns the props the viewport was built from, with defaults
// and clamping applied.
func (v *WebMercatorViewport) Props() ViewportProps { return v.props }

func (v *WebMercatorViewport) ViewState() ViewState { return v.props.ViewState() }

// GetMapCenterByLngLatPosition returns the map center at which screen pixel
// pos would show lngLat, e.g. to keep the location under a dragging cursor.
func (v *WebMercatorViewport) GetMapCenterByLngLatPosition(lngLat, pos r2.Point) (r2.Point, error) {
	from, err := PixelsToWorld(r3.Vector{X: pos.X, Y: pos.Y, Z: math.NaN()}, v.pixelUnprojectionMatrix, 0)
	if err != nil {
		return r2.Point{}, err
	}
	to, err := LngLatToWorld(lngLat, v.scale)
	if err != nil {
		return r2.Point{}, err
	}
	translate := to.Sub(r2.Point{X: from.X, Y: from.Y})
	newCenter := r2.Point{X: v.center.X, Y: v.center.Y}.Add(translate)
	return WorldToLngLat(newCenter, v.scale), nil
}

// GetLocationAtPoint is the same as GetMapCenterByLngLatPosition.
func (v *WebMercatorViewport) GetLocationAtPoint(lngLat, pos r2.Point) (r2.Point, error) {
	return v.GetMapCenterByLngLatPosition(lngLat, pos)
}

// FitBounds returns a viewport of the same size showing the whole bounds.
// Pitch and bearing are reset.
func (v *WebMercatorViewport) FitBounds(bounds BoundingBox, options FitBoundsOptions) (*WebMercatorViewport, error) {
	state, err := FitBounds(FitBoundsParams{
		Width:   v.width,
		Height:  v.height,
		Bounds:  bounds,
		Options: options,
	})
	if err != nil {
		return nil, err
	}
	return NewWebMercatorViewport(ViewportProps{
		Width:     v.width,
		Height:    v.height,
		Longitude: state.Longitude,
		Latitude:  state.Latitude,
		Zoom:      state.Zoom,
	})
}
