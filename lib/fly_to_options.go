package lib

import "runtime"

type FlightOption interface {
	apply(params *flightParams)
}

type FlightNumWorkers int

func (f FlightNumWorkers) apply(params *flightParams) {
	params.numWorkers = int(f)
}

type FlightProgressFunc func(int, int)

func (f FlightProgressFunc) apply(params *flightParams) {
	params.progressFunc = (func(int, int))(f)
}

// FlightEasing maps the linear frame time in [0,1] to the flight fraction.
type FlightEasing func(float64) float64

func (f FlightEasing) apply(params *flightParams) {
	params.easing = (func(float64) float64)(f)
}

type flightParams struct {
	progressFunc func(int, int)
	easing       func(float64) float64
	numWorkers   int
}

func defaultFlightParams() flightParams {
	return flightParams{
		progressFunc: func(int, int) {},
		easing:       func(t float64) float64 { return t },
		numWorkers:   runtime.GOMAXPROCS(0),
	}
}

// EaseInOutCubic is a smooth easing for SampleFlight.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := 2*t - 2
	return 0.5*f*f*f + 1
}
