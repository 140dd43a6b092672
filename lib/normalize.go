package lib

import "math"

import "github.com/golang/geo/r2"

// Latitude range of a square Web-Mercator map.
const (
	MaxLatitude = 85.05113
	MinLatitude = -MaxLatitude
)

// NormalizeViewportProps wraps longitude and bearing into [-180, 180] and
// adjusts zoom and latitude so that the viewport shows no area above or
// below the map.
func NormalizeViewportProps(props ViewportProps) (ViewportProps, error) {
	if props.Longitude < -180 || props.Longitude > 180 {
		props.Longitude = mod(props.Longitude+180, 360) - 180
	}
	if props.Bearing < -180 || props.Bearing > 180 {
		props.Bearing = mod(props.Bearing+180, 360) - 180
	}

	flat := ViewportProps{
		Width:     props.Width,
		Height:    props.Height,
		Longitude: props.Longitude,
		Latitude:  props.Latitude,
		Zoom:      props.Zoom,
	}
	flatViewport, err := NewWebMercatorViewport(flat)
	if err != nil {
		return ViewportProps{}, err
	}
	height := flatViewport.Height()
	topY, bottomY, err := mapVerticalExtent(flatViewport)
	if err != nil {
		return ViewportProps{}, err
	}

	if bottomY-topY < height {
		props.Zoom += math.Log2(height / (bottomY - topY))
		flat.Zoom = props.Zoom
		flatViewport, err = NewWebMercatorViewport(flat)
		if err != nil {
			return ViewportProps{}, err
		}
		topY, bottomY, err = mapVerticalExtent(flatViewport)
		if err != nil {
			return ViewportProps{}, err
		}
	}

	shiftY := 0.
	if topY > 0 {
		shiftY = topY
	} else if bottomY < height {
		shiftY = bottomY - height
	}
	if shiftY != 0 {
		center, err := flatViewport.Unproject(r2.Point{X: flatViewport.Width() / 2, Y: height/2 + shiftY})
		if err != nil {
			return ViewportProps{}, err
		}
		props.Latitude = center.Y
	}
	return props, nil
}

// mapVerticalExtent returns the pixel rows of the top and bottom edges
// of the map.
func mapVerticalExtent(viewport *WebMercatorViewport) (float64, float64, error) {
	top, err := viewport.Project(r2.Point{X: viewport.Longitude(), Y: MaxLatitude})
	if err != nil {
		return 0, 0, err
	}
	bottom, err := viewport.Project(r2.Point{X: viewport.Longitude(), Y: MinLatitude})
	if err != nil {
		return 0, 0, err
	}
	return top.Y, bottom.Y, nil
}
