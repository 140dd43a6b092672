package lib

import "fmt"
import "math"

import "github.com/go-gl/mathgl/mgl64"
import "github.com/golang/geo/r2"
import "github.com/golang/geo/r3"
import "github.com/golang/geo/s1"

import "github.com/pwiecz/viewport_patterns/lib/r2geo"

const (
	piOver4          = math.Pi / 4
	degreesToRadians = float64(s1.Degree)
	radiansToDegrees = 180 / math.Pi
)

const (
	// TileSize is the width in world pixels of the whole map at zoom 0.
	TileSize = 512
	// EarthCircumference in meters, as used by the distance scales.
	EarthCircumference = 40.03e6
	// DefaultAltitude of the camera, in viewport heights.
	DefaultAltitude = 1.5
	// MinAltitude below which the projection degenerates.
	MinAltitude = 0.75
)

func ZoomToScale(zoom float64) float64 {
	return math.Pow(2, zoom)
}

func ScaleToZoom(scale float64) float64 {
	return math.Log2(scale)
}

// LngLatToWorld projects a longitude/latitude pair (degrees) onto the
// world-pixel plane of a map scale*TileSize pixels wide. The origin is
// at the north-west corner of the map, y grows southwards.
func LngLatToWorld(lngLat r2.Point, scale float64) (r2.Point, error) {
	lng, lat := lngLat.X, lngLat.Y
	if !isFinite(lng, scale) {
		return r2.Point{}, fmt.Errorf("%w: non-finite longitude %v or scale %v", ErrPrecondition, lng, scale)
	}
	if !isFinite(lat) || lat < -90 || lat > 90 {
		return r2.Point{}, fmt.Errorf("%w: invalid latitude %v", ErrPrecondition, lat)
	}
	scale *= TileSize
	lambda2 := lng * degreesToRadians
	phi2 := lat * degreesToRadians
	x := scale * (lambda2 + math.Pi) / (2 * math.Pi)
	y := scale * (math.Pi - math.Log(math.Tan(piOver4+phi2*0.5))) / (2 * math.Pi)
	return r2.Point{X: x, Y: y}, nil
}

// WorldToLngLat is the inverse of LngLatToWorld.
func WorldToLngLat(xy r2.Point, scale float64) r2.Point {
	scale *= TileSize
	lambda2 := xy.X/scale*(2*math.Pi) - math.Pi
	phi2 := 2 * (math.Atan(math.Exp(math.Pi-xy.Y/scale*(2*math.Pi))) - piOver4)
	return r2.Point{X: lambda2 * radiansToDegrees, Y: phi2 * radiansToDegrees}
}

// MeterZoom returns the zoom level at which one world pixel is about one
// meter at the given latitude.
func MeterZoom(latitude float64) (float64, error) {
	if !isFinite(latitude) {
		return 0, fmt.Errorf("%w: non-finite latitude %v", ErrPrecondition, latitude)
	}
	latCosine := math.Cos(latitude * degreesToRadians)
	return ScaleToZoom(EarthCircumference*latCosine) - 9, nil
}

// DistanceScales are linear approximations of the world-pixel/meter/degree
// ratios around a location. Components are x (east), y (south) and altitude.
type DistanceScales struct {
	PixelsPerMeter  r3.Vector
	MetersPerPixel  r3.Vector
	PixelsPerDegree r3.Vector
	DegreesPerPixel r3.Vector
	// Second order terms, filled only when HighPrecision was requested.
	PixelsPerDegree2 r3.Vector
	PixelsPerMeter2  r3.Vector
}

type DistanceScalesParams struct {
	Latitude  float64
	Longitude float64
	Zoom      float64
	// Scale overrides Zoom when positive.
	Scale         float64
	HighPrecision bool
}

func GetDistanceScales(params DistanceScalesParams) (DistanceScales, error) {
	scale := params.Scale
	if scale <= 0 {
		scale = ZoomToScale(params.Zoom)
	}
	if !isFinite(params.Latitude, params.Longitude, scale) {
		return DistanceScales{}, fmt.Errorf("%w: non-finite distance scale input (%v,%v,%v)",
			ErrPrecondition, params.Latitude, params.Longitude, scale)
	}

	worldSize := TileSize * scale
	latCosine := math.Cos(params.Latitude * degreesToRadians)

	pixelsPerDegreeX := worldSize / 360
	pixelsPerDegreeY := pixelsPerDegreeX / latCosine
	altPixelsPerMeter := worldSize / EarthCircumference / latCosine

	result := DistanceScales{
		PixelsPerMeter:  r3.Vector{X: altPixelsPerMeter, Y: -altPixelsPerMeter, Z: altPixelsPerMeter},
		MetersPerPixel:  r3.Vector{X: 1 / altPixelsPerMeter, Y: -1 / altPixelsPerMeter, Z: 1 / altPixelsPerMeter},
		PixelsPerDegree: r3.Vector{X: pixelsPerDegreeX, Y: -pixelsPerDegreeY, Z: altPixelsPerMeter},
		DegreesPerPixel: r3.Vector{X: 1 / pixelsPerDegreeX, Y: -1 / pixelsPerDegreeY, Z: 1 / altPixelsPerMeter},
	}
	if params.HighPrecision {
		latCosine2 := degreesToRadians * math.Tan(params.Latitude*degreesToRadians) / latCosine
		pixelsPerDegreeY2 := pixelsPerDegreeX * latCosine2 / 2
		altPixelsPerDegree2 := worldSize / EarthCircumference * latCosine2
		altPixelsPerMeter2 := altPixelsPerDegree2 / pixelsPerDegreeY * altPixelsPerMeter

		result.PixelsPerDegree2 = r3.Vector{X: 0, Y: -pixelsPerDegreeY2, Z: altPixelsPerDegree2}
		result.PixelsPerMeter2 = r3.Vector{X: altPixelsPerMeter2, Y: 0, Z: altPixelsPerMeter2}
	}
	return result, nil
}

// AddMetersToLngLat offsets a lng/lat/altitude position by a displacement
// given in meters (east, north, up). NaN altitudes count as zero.
func AddMetersToLngLat(lngLatZ r3.Vector, xyz r3.Vector) (r3.Vector, error) {
	const scale = 1
	scales, err := GetDistanceScales(DistanceScalesParams{
		Longitude:     lngLatZ.X,
		Latitude:      lngLatZ.Y,
		Scale:         scale,
		HighPrecision: true,
	})
	if err != nil {
		return r3.Vector{}, err
	}
	worldspace, err := LngLatToWorld(r2.Point{X: lngLatZ.X, Y: lngLatZ.Y}, scale)
	if err != nil {
		return r3.Vector{}, err
	}
	worldspace.X += xyz.X * (scales.PixelsPerMeter.X + scales.PixelsPerMeter2.X*xyz.Y)
	worldspace.Y += xyz.Y * (scales.PixelsPerMeter.Y + scales.PixelsPerMeter2.Y*xyz.Y)

	newLngLat := WorldToLngLat(worldspace, scale)
	return r3.Vector{X: newLngLat.X, Y: newLngLat.Y, Z: zeroIfNaN(lngLatZ.Z) + zeroIfNaN(xyz.Z)}, nil
}

type ViewMatrixParams struct {
	Height   float64
	Pitch    float64
	Bearing  float64
	Altitude float64
	// Center, when set, is moved to the origin of the view.
	Center *r3.Vector
	FlipY  bool
}

// GetViewMatrix places the camera Altitude viewport heights above the map,
// tilted by Pitch and rotated by Bearing (both in degrees).
func GetViewMatrix(params ViewMatrixParams) mgl64.Mat4 {
	vm := mgl64.Translate3D(0, 0, -params.Altitude)
	vm = vm.Mul4(mgl64.Scale3D(1, 1, 1/params.Height))
	vm = vm.Mul4(mgl64.HomogRotate3DX(-params.Pitch * degreesToRadians))
	vm = vm.Mul4(mgl64.HomogRotate3DZ(params.Bearing * degreesToRadians))
	if params.FlipY {
		vm = vm.Mul4(mgl64.Scale3D(1, -1, 1))
	}
	if params.Center != nil {
		c := params.Center.Mul(-1)
		vm = vm.Mul4(mgl64.Translate3D(c.X, c.Y, c.Z))
	}
	return vm
}

type ProjectionMatrixParams struct {
	Width  float64
	Height float64
	// Zero Altitude means DefaultAltitude.
	Altitude float64
	Pitch    float64
	// Zero multipliers mean 1.
	NearZMultiplier float64
	FarZMultiplier  float64
}

type ProjectionParameters struct {
	// Fov is the vertical field of view in radians.
	Fov           float64
	Aspect        float64
	FocalDistance float64
	Near          float64
	Far           float64
}

func GetProjectionParameters(params ProjectionMatrixParams) ProjectionParameters {
	altitude := params.Altitude
	if altitude == 0 {
		altitude = DefaultAltitude
	}
	nearZMultiplier := params.NearZMultiplier
	if nearZMultiplier == 0 {
		nearZMultiplier = 1
	}
	farZMultiplier := params.FarZMultiplier
	if farZMultiplier == 0 {
		farZMultiplier = 1
	}

	pitchRadians := params.Pitch * degreesToRadians
	halfFov := math.Atan(0.5 / altitude)
	topHalfSurfaceDistance := math.Sin(halfFov) * altitude / math.Sin(math.Pi/2-pitchRadians-halfFov)
	// Distance to the farthest visible point of the map plane.
	farZ := math.Cos(math.Pi/2-pitchRadians)*topHalfSurfaceDistance + altitude

	return ProjectionParameters{
		Fov:           2 * math.Atan(params.Height/2/altitude),
		Aspect:        params.Width / params.Height,
		FocalDistance: altitude,
		Near:          nearZMultiplier,
		Far:           farZ * farZMultiplier,
	}
}

func GetProjectionMatrix(params ProjectionMatrixParams) mgl64.Mat4 {
	p := GetProjectionParameters(params)
	return mgl64.Perspective(p.Fov, p.Aspect, p.Near, p.Far)
}

// transformVector multiplies a homogeneous vector by m and divides by w.
func transformVector(m mgl64.Mat4, v mgl64.Vec4) mgl64.Vec4 {
	result := m.Mul4x1(v)
	return result.Mul(1 / result[3])
}

// WorldToPixels transforms a world position with a pixel projection matrix.
// A NaN Z counts as zero.
func WorldToPixels(xyz r3.Vector, pixelProjectionMatrix mgl64.Mat4) (mgl64.Vec4, error) {
	z := zeroIfNaN(xyz.Z)
	if !isFinite(xyz.X, xyz.Y, z) {
		return mgl64.Vec4{}, fmt.Errorf("%w: non-finite world position %v", ErrPrecondition, xyz)
	}
	return transformVector(pixelProjectionMatrix, mgl64.Vec4{xyz.X, xyz.Y, z, 1}), nil
}

// PixelsToWorld inverts WorldToPixels. A finite Z is the pixel depth.
// When Z is NaN the pixel ray is intersected with the plane z = targetZ
// (world units) instead.
func PixelsToWorld(xyz r3.Vector, pixelUnprojectionMatrix mgl64.Mat4, targetZ float64) (r3.Vector, error) {
	if !isFinite(xyz.X, xyz.Y) {
		return r3.Vector{}, fmt.Errorf("%w: invalid pixel coordinate %v,%v", ErrPrecondition, xyz.X, xyz.Y)
	}
	if isFinite(xyz.Z) {
		coord := transformVector(pixelUnprojectionMatrix, mgl64.Vec4{xyz.X, xyz.Y, xyz.Z, 1})
		return r3.Vector{X: coord[0], Y: coord[1], Z: coord[2]}, nil
	}

	coord0 := transformVector(pixelUnprojectionMatrix, mgl64.Vec4{xyz.X, xyz.Y, 0, 1})
	coord1 := transformVector(pixelUnprojectionMatrix, mgl64.Vec4{xyz.X, xyz.Y, 1, 1})
	z0 := coord0[2]
	z1 := coord1[2]
	t := 0.
	if z0 != z1 {
		t = (zeroIfNaN(targetZ) - z0) / (z1 - z0)
	}
	xy := r2geo.Lerp(r2.Point{X: coord0[0], Y: coord0[1]}, r2.Point{X: coord1[0], Y: coord1[1]}, t)
	return r3.Vector{X: xy.X, Y: xy.Y, Z: lerp(z0, z1, t)}, nil
}
