package lib

import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func TestNormalizeViewportProps(t *testing.T) {
	tests := []struct {
		name     string
		props    ViewportProps
		expected ViewportProps
	}{
		{
			name:     "wraps longitude and fills the height",
			props:    ViewportProps{Width: 800, Height: 600, Longitude: 190, Latitude: 0, Zoom: 0},
			expected: ViewportProps{Width: 800, Height: 600, Longitude: -170, Latitude: 0, Zoom: 0.22881857712872292},
		},
		{
			name:     "shifts down from the north edge",
			props:    ViewportProps{Width: 800, Height: 600, Longitude: -122.45, Latitude: 84, Zoom: 1.5},
			expected: ViewportProps{Width: 800, Height: 600, Longitude: -122.45, Latitude: 71.95101582651077, Zoom: 1.5},
		},
		{
			name:     "shifts up from the south edge",
			props:    ViewportProps{Width: 800, Height: 600, Longitude: -122.45, Latitude: -84, Zoom: 1.5},
			expected: ViewportProps{Width: 800, Height: 600, Longitude: -122.45, Latitude: -71.95101582651166, Zoom: 1.5},
		},
		{
			name:     "wraps bearing",
			props:    ViewportProps{Width: 800, Height: 600, Longitude: 370, Latitude: -10, Zoom: 2, Bearing: 200},
			expected: ViewportProps{Width: 800, Height: 600, Longitude: 10, Latitude: -10, Zoom: 2, Bearing: -160},
		},
		{
			name:     "already valid",
			props:    ViewportProps{Width: 800, Height: 600, Longitude: -122.45, Latitude: 80, Zoom: 3, Pitch: 40},
			expected: ViewportProps{Width: 800, Height: 600, Longitude: -122.45, Latitude: 80, Zoom: 3, Pitch: 40},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			props, err := NormalizeViewportProps(test.props)
			require.NoError(t, err)
			assert.Equal(t, test.expected.Width, props.Width)
			assert.Equal(t, test.expected.Height, props.Height)
			assert.InDelta(t, test.expected.Longitude, props.Longitude, 1e-9)
			assert.InDelta(t, test.expected.Latitude, props.Latitude, 1e-9)
			assert.InDelta(t, test.expected.Zoom, props.Zoom, 1e-9)
			assert.InDelta(t, test.expected.Bearing, props.Bearing, 1e-9)
			assert.Equal(t, test.expected.Pitch, props.Pitch)
		})
	}
}

func TestMod(t *testing.T) {
	assert.Equal(t, 10., mod(370., 360.))
	assert.Equal(t, 350., mod(-10., 360.))
	assert.Equal(t, 0., mod(720., 360.))
	assert.Equal(t, float32(1.5), mod(float32(-0.5), float32(2)))
}
