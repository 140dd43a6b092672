package lib

import "errors"
import "math"
import "testing"

import "github.com/go-gl/mathgl/mgl64"
import "github.com/golang/geo/r2"
import "github.com/golang/geo/r3"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func TestZoomToScale(t *testing.T) {
	assert.Equal(t, 1., ZoomToScale(0))
	assert.Equal(t, 1024., ZoomToScale(10))
	assert.Equal(t, 0.5, ZoomToScale(-1))
	assert.InDelta(t, 11.5, ScaleToZoom(ZoomToScale(11.5)), 1e-12)
}

func TestLngLatToWorld(t *testing.T) {
	tests := []struct {
		lngLat r2.Point
		scale  float64
		world  r2.Point
	}{
		{r2.Point{X: 0, Y: 0}, 1, r2.Point{X: 256, Y: 256}},
		{r2.Point{X: 180, Y: 0}, 1, r2.Point{X: 512, Y: 256}},
		{r2.Point{X: -122.43, Y: 37.75}, 1, r2.Point{X: 81.87733333333331, Y: 197.9435150498708}},
		{r2.Point{X: -122.43, Y: 37.75}, ZoomToScale(11.5), r2.Point{X: 237142.08819393057, Y: 573305.6585058921}},
	}
	for _, test := range tests {
		world, err := LngLatToWorld(test.lngLat, test.scale)
		require.NoError(t, err)
		assert.InDelta(t, test.world.X, world.X, 1e-6, "x of %v", test.lngLat)
		assert.InDelta(t, test.world.Y, world.Y, 1e-6, "y of %v", test.lngLat)
	}
}

func TestLngLatToWorldInvalidInput(t *testing.T) {
	inputs := []struct {
		lngLat r2.Point
		scale  float64
	}{
		{r2.Point{X: math.NaN(), Y: 0}, 1},
		{r2.Point{X: math.Inf(1), Y: 0}, 1},
		{r2.Point{X: 0, Y: 90.5}, 1},
		{r2.Point{X: 0, Y: -91}, 1},
		{r2.Point{X: 0, Y: math.NaN()}, 1},
		{r2.Point{X: 0, Y: 0}, math.Inf(1)},
	}
	for _, input := range inputs {
		_, err := LngLatToWorld(input.lngLat, input.scale)
		if !errors.Is(err, ErrPrecondition) {
			t.Errorf("Expected precondition error for %v at scale %f, got %v", input.lngLat, input.scale, err)
		}
	}
}

func TestWorldToLngLatRoundTrip(t *testing.T) {
	for _, scale := range []float64{0.25, 1, 3, ZoomToScale(17.3)} {
		for lng := -180.; lng <= 180; lng += 22.5 {
			for lat := -85.; lat <= 85; lat += 8.5 {
				world, err := LngLatToWorld(r2.Point{X: lng, Y: lat}, scale)
				require.NoError(t, err)
				lngLat := WorldToLngLat(world, scale)
				assert.InDelta(t, lng, lngLat.X, 1e-9)
				assert.InDelta(t, lat, lngLat.Y, 1e-9)
			}
		}
	}
	topRight := WorldToLngLat(r2.Point{X: 512, Y: 0}, 1)
	assert.InDelta(t, 180, topRight.X, 1e-12)
	assert.InDelta(t, 85.0511287798066, topRight.Y, 1e-9)
}

func TestMeterZoom(t *testing.T) {
	zoom, err := MeterZoom(37.75)
	require.NoError(t, err)
	assert.InDelta(t, 15.915761586040631, zoom, 1e-9)

	_, err = MeterZoom(math.NaN())
	assert.True(t, errors.Is(err, ErrPrecondition))
}

func TestGetDistanceScales(t *testing.T) {
	scales, err := GetDistanceScales(DistanceScalesParams{
		Latitude:  37.75,
		Longitude: -122.43,
		Zoom:      11.5,
	})
	require.NoError(t, err)
	const ppm = 0.04685147940153139
	assert.InDelta(t, ppm, scales.PixelsPerMeter.X, 1e-12)
	assert.InDelta(t, -ppm, scales.PixelsPerMeter.Y, 1e-12)
	assert.InDelta(t, ppm, scales.PixelsPerMeter.Z, 1e-12)
	assert.InDelta(t, 21.344043192952277, scales.MetersPerPixel.X, 1e-9)
	assert.InDelta(t, 4119.195556608141, scales.PixelsPerDegree.X, 1e-8)
	assert.InDelta(t, -5209.624223453616, scales.PixelsPerDegree.Y, 1e-8)
	assert.InDelta(t, 0.0002427658474227496, scales.DegreesPerPixel.X, 1e-15)
	assert.InDelta(t, -0.0001919524244182568, scales.DegreesPerPixel.Y, 1e-15)
	assert.Equal(t, r3.Vector{}, scales.PixelsPerDegree2)
	assert.Equal(t, r3.Vector{}, scales.PixelsPerMeter2)
}

func TestGetDistanceScalesScaleOverridesZoom(t *testing.T) {
	byZoom, err := GetDistanceScales(DistanceScalesParams{Latitude: 37.75, Zoom: 11.5, HighPrecision: true})
	require.NoError(t, err)
	byScale, err := GetDistanceScales(DistanceScalesParams{Latitude: 37.75, Zoom: 3, Scale: ZoomToScale(11.5), HighPrecision: true})
	require.NoError(t, err)
	assert.Equal(t, byZoom, byScale)

	assert.InDelta(t, -35.20086548299199, byZoom.PixelsPerDegree2.Y, 1e-9)
	assert.InDelta(t, 5.693996011354914e-09, byZoom.PixelsPerMeter2.X, 1e-20)
	assert.Equal(t, byZoom.PixelsPerMeter2.X, byZoom.PixelsPerMeter2.Z)
}

func TestGetDistanceScalesInvalidInput(t *testing.T) {
	_, err := GetDistanceScales(DistanceScalesParams{Latitude: math.Inf(-1)})
	assert.True(t, errors.Is(err, ErrPrecondition))
}

func TestAddMetersToLngLat(t *testing.T) {
	result, err := AddMetersToLngLat(r3.Vector{X: -122.43, Y: 37.75, Z: 0}, r3.Vector{X: 1000, Y: 1000, Z: 10})
	require.NoError(t, err)
	assert.InDelta(t, -122.41862467859234, result.X, 1e-9)
	assert.InDelta(t, 37.75899270855575, result.Y, 1e-9)
	assert.Equal(t, 10., result.Z)

	noAltitude, err := AddMetersToLngLat(r3.Vector{X: -122.43, Y: 37.75, Z: math.NaN()}, r3.Vector{X: 0, Y: 0, Z: math.NaN()})
	require.NoError(t, err)
	assert.InDelta(t, -122.43, noAltitude.X, 1e-9)
	assert.InDelta(t, 37.75, noAltitude.Y, 1e-9)
	assert.Equal(t, 0., noAltitude.Z)
}

func TestGetViewMatrix(t *testing.T) {
	// Without rotation and centering the view only moves the camera up
	// and scales heights.
	vm := GetViewMatrix(ViewMatrixParams{Height: 600, Altitude: 1.5})
	expected := mgl64.Translate3D(0, 0, -1.5).Mul4(mgl64.Scale3D(1, 1, 1./600))
	assert.True(t, vm.ApproxEqual(expected), "got %v", vm)

	center := r3.Vector{X: 10, Y: 20, Z: 0}
	vm = GetViewMatrix(ViewMatrixParams{Height: 600, Altitude: 1.5, Center: &center, FlipY: true})
	p := vm.Mul4x1(mgl64.Vec4{10, 20, 0, 1})
	assert.InDelta(t, 0, p[0], 1e-12)
	assert.InDelta(t, 0, p[1], 1e-12)
	assert.InDelta(t, -1.5, p[2], 1e-12)
	p = vm.Mul4x1(mgl64.Vec4{10, 21, 0, 1})
	assert.InDelta(t, -1, p[1], 1e-12)

	vm = GetViewMatrix(ViewMatrixParams{Height: 1, Altitude: 1, Bearing: 90})
	p = vm.Mul4x1(mgl64.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 0, p[0], 1e-12)
	assert.InDelta(t, 1, p[1], 1e-12)
}

func TestGetProjectionParameters(t *testing.T) {
	params := GetProjectionParameters(ProjectionMatrixParams{Width: 800, Height: 600})
	assert.InDelta(t, 2*math.Atan(200), params.Fov, 1e-12)
	assert.InDelta(t, 800./600, params.Aspect, 1e-12)
	assert.Equal(t, DefaultAltitude, params.FocalDistance)
	assert.Equal(t, 1., params.Near)
	// Looking straight down the far plane is the map itself.
	assert.InDelta(t, DefaultAltitude, params.Far, 1e-12)

	pitched := GetProjectionParameters(ProjectionMatrixParams{
		Width: 800, Height: 600, Pitch: 60, Altitude: 1.5, NearZMultiplier: 0.1, FarZMultiplier: 2,
	})
	assert.Equal(t, 0.1, pitched.Near)
	assert.Greater(t, pitched.Far, 2*DefaultAltitude)

	m := GetProjectionMatrix(ProjectionMatrixParams{Width: 800, Height: 600})
	assert.True(t, m.ApproxEqual(mgl64.Perspective(params.Fov, params.Aspect, params.Near, params.Far)))
}

func TestWorldToPixels(t *testing.T) {
	m := mgl64.Scale3D(2, 2, 2)
	m[15] = 2
	pixels, err := WorldToPixels(r3.Vector{X: 1, Y: 2, Z: math.NaN()}, m)
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec4{1, 2, 0, 1}, pixels)

	_, err = WorldToPixels(r3.Vector{X: math.Inf(1), Y: 2}, m)
	assert.True(t, errors.Is(err, ErrPrecondition))
}

func TestPixelsToWorld(t *testing.T) {
	// Depth maps linearly to world z, world z = 10 * depth.
	m := mgl64.Scale3D(1, 1, 10)
	world, err := PixelsToWorld(r3.Vector{X: 3, Y: 4, Z: 0.5}, m, 0)
	require.NoError(t, err)
	assert.Equal(t, r3.Vector{X: 3, Y: 4, Z: 5}, world)

	world, err = PixelsToWorld(r3.Vector{X: 3, Y: 4, Z: math.NaN()}, m, 7)
	require.NoError(t, err)
	assert.InDelta(t, 3, world.X, 1e-12)
	assert.InDelta(t, 4, world.Y, 1e-12)
	assert.InDelta(t, 7, world.Z, 1e-12)

	_, err = PixelsToWorld(r3.Vector{X: math.NaN(), Y: 4}, m, 0)
	assert.True(t, errors.Is(err, ErrPrecondition))
}
