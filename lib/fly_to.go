package lib

import "fmt"
import "math"

import "github.com/golang/geo/r2"

import "github.com/pwiecz/viewport_patterns/lib/r2geo"

const (
	flightCurvature = 1.414
	// Below this world pixel distance start and end centers are the same.
	flightEpsilon = 0.01
)

// FlyToViewport returns the camera at fraction t of a "zoom out, pan,
// zoom in" flight from start to end (van Wijk and Nuij's optimal path).
// Only longitude, latitude, zoom and the size of start are used; a
// non-positive width or height counts as 1 like in NewWebMercatorViewport.
func FlyToViewport(start, end ViewportProps, t float64) (ViewState, error) {
	if !isFinite(t, start.Zoom, end.Zoom, start.Longitude, end.Longitude) {
		return ViewState{}, fmt.Errorf("%w: non-finite flight input t=%v zoom=%v->%v longitude=%v->%v",
			ErrPrecondition, t, start.Zoom, end.Zoom, start.Longitude, end.Longitude)
	}
	startZoom := start.Zoom
	startScale := ZoomToScale(startZoom)
	scale := ZoomToScale(end.Zoom - startZoom)
	startCenterXY, err := LngLatToWorld(r2.Point{X: start.Longitude, Y: start.Latitude}, startScale)
	if err != nil {
		return ViewState{}, err
	}
	endCenterXY, err := LngLatToWorld(r2.Point{X: end.Longitude, Y: end.Latitude}, startScale)
	if err != nil {
		return ViewState{}, err
	}
	uDelta := endCenterXY.Sub(startCenterXY)

	w0 := math.Max(sizeOrOne(start.Width), sizeOrOne(start.Height))
	w1 := w0 / scale
	u1 := r2geo.Distance(startCenterXY, endCenterXY)

	if math.Abs(u1) < flightEpsilon {
		return ViewState{
			Longitude: lerp(start.Longitude, end.Longitude, t),
			Latitude:  lerp(start.Latitude, end.Latitude, t),
			Zoom:      lerp(start.Zoom, end.Zoom, t),
		}, nil
	}

	const rho = flightCurvature
	const rho2 = rho * rho
	b0 := (w1*w1 - w0*w0 + rho2*rho2*u1*u1) / (2 * w0 * rho2 * u1)
	b1 := (w1*w1 - w0*w0 - rho2*rho2*u1*u1) / (2 * w1 * rho2 * u1)
	r0 := math.Log(math.Sqrt(b0*b0+1) - b0)
	r1 := math.Log(math.Sqrt(b1*b1+1) - b1)
	pathLength := (r1 - r0) / rho
	s := t * pathLength

	w := math.Cosh(r0) / math.Cosh(r0+rho*s)
	u := w0 * ((math.Cosh(r0)*math.Tanh(r0+rho*s) - math.Sinh(r0)) / rho2) / u1

	scaleIncrement := 1 / w
	newZoom := startZoom + ScaleToZoom(scaleIncrement)
	newCenterWorld := uDelta.Mul(u).Add(startCenterXY).Mul(scaleIncrement)
	newCenter := WorldToLngLat(newCenterWorld, ZoomToScale(newZoom))
	return ViewState{Longitude: newCenter.X, Latitude: newCenter.Y, Zoom: newZoom}, nil
}

// InterpolateViewportProps flies longitude, latitude and zoom like
// FlyToViewport and interpolates pitch, bearing and altitude linearly.
// The size and the clip plane multipliers are taken from end.
func InterpolateViewportProps(start, end ViewportProps, t float64) (ViewportProps, error) {
	state, err := FlyToViewport(start, end, t)
	if err != nil {
		return ViewportProps{}, err
	}
	props := end.WithViewState(state)
	props.Pitch = lerp(start.Pitch, end.Pitch, t)
	props.Bearing = lerp(start.Bearing, end.Bearing, t)
	props.Altitude = lerp(defaultIfZero(start.Altitude, DefaultAltitude), defaultIfZero(end.Altitude, DefaultAltitude), t)
	return props, nil
}

type flightFrameResponse struct {
	index int
	props ViewportProps
	err   error
}

func flightFrameWorker(start, end ViewportProps, params flightParams, numFrames int,
	requestChannel chan int, responseChannel chan flightFrameResponse) {
	for index := range requestChannel {
		t := params.easing(float64(index) / float64(numFrames-1))
		props, err := InterpolateViewportProps(start, end, t)
		responseChannel <- flightFrameResponse{index: index, props: props, err: err}
	}
}

// SampleFlight returns numFrames cameras evenly spaced in (eased) time
// along the flight from start to end, both included.
func SampleFlight(start, end ViewportProps, numFrames int, options ...FlightOption) ([]ViewportProps, error) {
	if numFrames < 2 {
		return nil, fmt.Errorf("%w: too few frames: %d", ErrPrecondition, numFrames)
	}
	params := defaultFlightParams()
	for _, option := range options {
		option.apply(&params)
	}
	if params.numWorkers < 1 {
		return nil, fmt.Errorf("%w: too few workers: %d", ErrPrecondition, params.numWorkers)
	}

	requestChannel := make(chan int, params.numWorkers)
	responseChannel := make(chan flightFrameResponse, params.numWorkers)
	for i := 0; i < params.numWorkers; i++ {
		go flightFrameWorker(start, end, params, numFrames, requestChannel, responseChannel)
	}
	go func() {
		for i := 0; i < numFrames; i++ {
			requestChannel <- i
		}
		close(requestChannel)
	}()

	frames := make([]ViewportProps, numFrames)
	var firstErr error
	params.progressFunc(0, numFrames)
	for numDone := 1; numDone <= numFrames; numDone++ {
		resp := <-responseChannel
		if resp.err != nil && firstErr == nil {
			firstErr = resp.err
		}
		frames[resp.index] = resp.props
		params.progressFunc(numDone, numFrames)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return frames, nil
}
