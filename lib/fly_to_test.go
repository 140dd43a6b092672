package lib

import "errors"
import "math"
import "sync"
import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

var (
	flightStart = ViewportProps{Width: 800, Height: 600, Longitude: -122.45, Latitude: 37.78, Zoom: 12}
	flightEnd   = ViewportProps{Width: 800, Height: 600, Longitude: -74.0, Latitude: 40.7, Zoom: 11}
)

func assertViewState(t *testing.T, expected, actual ViewState, delta float64) {
	t.Helper()
	assert.InDelta(t, expected.Longitude, actual.Longitude, delta, "longitude")
	assert.InDelta(t, expected.Latitude, actual.Latitude, delta, "latitude")
	assert.InDelta(t, expected.Zoom, actual.Zoom, delta, "zoom")
}

func TestFlyToViewport(t *testing.T) {
	tests := []struct {
		t      float64
		result ViewState
	}{
		{0, flightStart.ViewState()},
		{0.25, ViewState{Longitude: -122.40172379441466, Latitude: 37.782969818617424, Zoom: 7.518116284908618}},
		{0.5, ViewState{Longitude: -106.30000000013197, Latitude: 38.766827271338926, Zoom: 3.6183128564007436}},
		{1, flightEnd.ViewState()},
	}
	for _, test := range tests {
		state, err := FlyToViewport(flightStart, flightEnd, test.t)
		require.NoError(t, err)
		assertViewState(t, test.result, state, 1e-7)
	}
}

func TestFlyToViewportEndpoints(t *testing.T) {
	tests := []struct {
		name       string
		start, end ViewportProps
		middle     ViewState
	}{
		{"zoom out", flightStart, flightEnd,
			ViewState{Longitude: -106.30000000013197, Latitude: 38.766827271338926, Zoom: 3.6183128564007436}},
		{"zoom in",
			ViewportProps{Width: 800, Height: 600, Longitude: -74, Latitude: 40.7, Zoom: 3},
			ViewportProps{Width: 800, Height: 600, Longitude: -73.98, Latitude: 40.75, Zoom: 15},
			ViewState{Longitude: -73.98000488162039, Latitude: 40.74998780053221, Zoom: 8.999997229115}},
		{"antimeridian",
			ViewportProps{Width: 800, Height: 600, Longitude: 179.5, Latitude: -17, Zoom: 6},
			ViewportProps{Width: 800, Height: 600, Longitude: -178.5, Latitude: -14, Zoom: 7},
			ViewState{Longitude: -59.16666666666727, Latitude: -15.004794651695866, Zoom: 0.7369925581186161}},
		{"tall viewport",
			ViewportProps{Width: 300, Height: 900, Longitude: 2.35, Latitude: 48.86, Zoom: 10},
			ViewportProps{Width: 300, Height: 900, Longitude: 13.4, Latitude: 52.52, Zoom: 9},
			ViewState{Longitude: 6.033333333333382, Latitude: 50.11179707085563, Zoom: 5.746555402262753}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			state, err := FlyToViewport(test.start, test.end, 0)
			require.NoError(t, err)
			assertViewState(t, test.start.ViewState(), state, 1e-9)

			state, err = FlyToViewport(test.start, test.end, 0.5)
			require.NoError(t, err)
			assertViewState(t, test.middle, state, 1e-7)

			state, err = FlyToViewport(test.start, test.end, 1)
			require.NoError(t, err)
			assertViewState(t, test.end.ViewState(), state, 1e-7)
		})
	}
}

func TestFlyToViewportUnsizedProps(t *testing.T) {
	start := ViewportProps{Longitude: -122.45, Latitude: 37.78, Zoom: 12}
	end := ViewportProps{Longitude: -74.0, Latitude: 40.7, Zoom: 11}

	state, err := FlyToViewport(start, end, 0)
	require.NoError(t, err)
	assertViewState(t, start.ViewState(), state, 1e-9)

	state, err = FlyToViewport(start, end, 0.5)
	require.NoError(t, err)
	assertViewState(t, ViewState{Longitude: -106.29998816666524, Latitude: 38.7668279894896, Zoom: -6.025533007327059}, state, 1e-4)

	sized := start
	sized.Width, sized.Height = 1, 1
	sizedState, err := FlyToViewport(sized, end, 0.5)
	require.NoError(t, err)
	assert.Equal(t, sizedState, state)

	state, err = FlyToViewport(start, end, 1)
	require.NoError(t, err)
	assertViewState(t, end.ViewState(), state, 1e-3)
}

func TestFlyToViewportNonFiniteLongitude(t *testing.T) {
	for _, lng := range []float64{math.NaN(), math.Inf(1)} {
		start := flightStart
		start.Longitude = lng
		_, err := FlyToViewport(start, flightEnd, 0.5)
		assert.True(t, errors.Is(err, ErrPrecondition), "start longitude %v", lng)
		_, err = FlyToViewport(flightStart, start, 0.5)
		assert.True(t, errors.Is(err, ErrPrecondition), "end longitude %v", lng)
	}
}

func TestFlyToViewportZoomsOutInTheMiddle(t *testing.T) {
	minZoom := math.Inf(1)
	for i := 0; i <= 20; i++ {
		state, err := FlyToViewport(flightStart, flightEnd, float64(i)/20)
		require.NoError(t, err)
		minZoom = math.Min(minZoom, state.Zoom)
	}
	assert.Less(t, minZoom, flightEnd.Zoom-5)
}

func TestFlyToViewportSameCenter(t *testing.T) {
	start := ViewportProps{Width: 800, Height: 600, Longitude: 10, Latitude: 50, Zoom: 4}
	end := start
	end.Zoom = 8
	for _, f := range []float64{0, 0.25, 0.5, 1} {
		state, err := FlyToViewport(start, end, f)
		require.NoError(t, err)
		assert.Equal(t, ViewState{Longitude: 10, Latitude: 50, Zoom: 4 + 4*f}, state)
	}
}

func TestFlyToViewportInvalidInput(t *testing.T) {
	_, err := FlyToViewport(flightStart, flightEnd, math.NaN())
	assert.True(t, errors.Is(err, ErrPrecondition))

	end := flightEnd
	end.Latitude = -100
	_, err = FlyToViewport(flightStart, end, 0.5)
	assert.True(t, errors.Is(err, ErrPrecondition))
}

func TestInterpolateViewportProps(t *testing.T) {
	start := flightStart
	start.Pitch = 10
	start.Bearing = -30
	end := flightEnd
	end.Width = 1024
	end.Pitch = 50
	end.Bearing = 30
	end.Altitude = 2.5

	props, err := InterpolateViewportProps(start, end, 0.5)
	require.NoError(t, err)
	assertViewState(t, ViewState{Longitude: -106.30000000013197, Latitude: 38.766827271338926, Zoom: 3.6183128564007436},
		props.ViewState(), 1e-7)
	assert.Equal(t, 1024., props.Width)
	assert.Equal(t, 600., props.Height)
	assert.InDelta(t, 30, props.Pitch, 1e-12)
	assert.InDelta(t, 0, props.Bearing, 1e-12)
	assert.InDelta(t, 2, props.Altitude, 1e-12)
}

func TestSampleFlight(t *testing.T) {
	var mutex sync.Mutex
	var progress [][2]int
	frames, err := SampleFlight(flightStart, flightEnd, 5,
		FlightNumWorkers(3),
		FlightProgressFunc(func(done, total int) {
			mutex.Lock()
			defer mutex.Unlock()
			progress = append(progress, [2]int{done, total})
		}))
	require.NoError(t, err)
	require.Len(t, frames, 5)
	assertViewState(t, flightStart.ViewState(), frames[0].ViewState(), 1e-7)
	assertViewState(t, ViewState{Longitude: -122.40172379441466, Latitude: 37.782969818617424, Zoom: 7.518116284908618},
		frames[1].ViewState(), 1e-7)
	assertViewState(t, ViewState{Longitude: -106.30000000013197, Latitude: 38.766827271338926, Zoom: 3.6183128564007436},
		frames[2].ViewState(), 1e-7)
	assertViewState(t, flightEnd.ViewState(), frames[4].ViewState(), 1e-7)

	require.Len(t, progress, 6)
	assert.Equal(t, [2]int{0, 5}, progress[0])
	assert.Equal(t, [2]int{5, 5}, progress[5])
}

func TestSampleFlightEasing(t *testing.T) {
	frames, err := SampleFlight(flightStart, flightEnd, 3, FlightEasing(EaseInOutCubic), FlightNumWorkers(1))
	require.NoError(t, err)
	// EaseInOutCubic(0.5) == 0.5
	assertViewState(t, ViewState{Longitude: -106.30000000013197, Latitude: 38.766827271338926, Zoom: 3.6183128564007436},
		frames[1].ViewState(), 1e-7)

	assert.Equal(t, 0., EaseInOutCubic(0))
	assert.Equal(t, 1., EaseInOutCubic(1))
	assert.Less(t, EaseInOutCubic(0.25), 0.25)
}

func TestSampleFlightInvalidInput(t *testing.T) {
	_, err := SampleFlight(flightStart, flightEnd, 1)
	assert.True(t, errors.Is(err, ErrPrecondition))

	_, err = SampleFlight(flightStart, flightEnd, 10, FlightNumWorkers(0))
	assert.True(t, errors.Is(err, ErrPrecondition))

	end := flightEnd
	end.Latitude = math.NaN()
	_, err = SampleFlight(flightStart, end, 10)
	assert.True(t, errors.Is(err, ErrPrecondition))
}
