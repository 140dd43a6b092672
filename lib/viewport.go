package lib

import "fmt"
import "math"

import "github.com/go-gl/mathgl/mgl64"
import "github.com/golang/geo/r2"
import "github.com/golang/geo/r3"

// FlatProjector maps positions between a viewport's own 2D coordinate
// system and its world plane at a given scale.
type FlatProjector interface {
	ProjectFlat(xy r2.Point, scale float64) (r2.Point, error)
	UnprojectFlat(xy r2.Point, scale float64) r2.Point
}

type identityProjector struct{}

func (identityProjector) ProjectFlat(xy r2.Point, _ float64) (r2.Point, error) {
	return xy, nil
}
func (identityProjector) UnprojectFlat(xy r2.Point, _ float64) r2.Point {
	return xy
}

// Viewport is a camera defined by a view and a projection matrix, mapping
// world positions to pixels of a width x height screen with the origin in
// the top left corner. A Viewport never changes after construction.
type Viewport struct {
	width          float64
	height         float64
	scale          float64
	pixelsPerMeter float64
	flat           FlatProjector

	viewMatrix              mgl64.Mat4
	projectionMatrix        mgl64.Mat4
	viewProjectionMatrix    mgl64.Mat4
	pixelProjectionMatrix   mgl64.Mat4
	pixelUnprojectionMatrix mgl64.Mat4
}

type viewportParams struct {
	viewMatrix       mgl64.Mat4
	projectionMatrix mgl64.Mat4
	scale            float64
	pixelsPerMeter   float64
	flat             FlatProjector
}

type ViewportOption interface {
	apply(params *viewportParams)
}

// ViewMatrix sets the view matrix of the viewport (identity by default).
type ViewMatrix mgl64.Mat4

func (m ViewMatrix) apply(params *viewportParams) {
	params.viewMatrix = mgl64.Mat4(m)
}

// ProjectionMatrix sets the projection matrix of the viewport (identity by default).
type ProjectionMatrix mgl64.Mat4

func (m ProjectionMatrix) apply(params *viewportParams) {
	params.projectionMatrix = mgl64.Mat4(m)
}

// NewViewport builds a viewport. Non positive sizes are replaced by 1.
// It returns ErrDegenerateCamera if the resulting pixel projection matrix
// has no inverse.
func NewViewport(width, height float64, options ...ViewportOption) (*Viewport, error) {
	params := viewportParams{
		viewMatrix:       mgl64.Ident4(),
		projectionMatrix: mgl64.Ident4(),
		scale:            1,
		pixelsPerMeter:   1,
		flat:             identityProjector{},
	}
	for _, option := range options {
		option.apply(&params)
	}
	return newViewport(width, height, params)
}

func newViewport(width, height float64, params viewportParams) (*Viewport, error) {
	width, height = sizeOrOne(width), sizeOrOne(height)
	v := &Viewport{
		width:            width,
		height:           height,
		scale:            params.scale,
		pixelsPerMeter:   params.pixelsPerMeter,
		flat:             params.flat,
		viewMatrix:       params.viewMatrix,
		projectionMatrix: params.projectionMatrix,
	}
	v.viewProjectionMatrix = v.projectionMatrix.Mul4(v.viewMatrix)

	m := mgl64.Scale3D(width/2, -height/2, 1)
	m = m.Mul4(mgl64.Translate3D(1, -1, 0))
	m = m.Mul4(v.viewProjectionMatrix)
	det := m.Det()
	if det == 0 || !isFinite(det) {
		return nil, ErrDegenerateCamera
	}
	inv := m.Inv()
	// mgl64 returns a zero matrix instead of failing.
	if inv == (mgl64.Mat4{}) {
		return nil, ErrDegenerateCamera
	}
	v.pixelProjectionMatrix = m
	v.pixelUnprojectionMatrix = inv
	return v, nil
}

func (v *Viewport) Width() float64          { return v.width }
func (v *Viewport) Height() float64         { return v.height }
func (v *Viewport) Scale() float64          { return v.scale }
func (v *Viewport) PixelsPerMeter() float64 { return v.pixelsPerMeter }

func (v *Viewport) ViewMatrix() mgl64.Mat4              { return v.viewMatrix }
func (v *Viewport) ProjectionMatrix() mgl64.Mat4        { return v.projectionMatrix }
func (v *Viewport) ViewProjectionMatrix() mgl64.Mat4    { return v.viewProjectionMatrix }
func (v *Viewport) PixelProjectionMatrix() mgl64.Mat4   { return v.pixelProjectionMatrix }
func (v *Viewport) PixelUnprojectionMatrix() mgl64.Mat4 { return v.pixelUnprojectionMatrix }

// Equals compares sizes and the view and projection matrices. The derived
// matrices are not compared.
func (v *Viewport) Equals(other *Viewport) bool {
	if v == nil || other == nil {
		return false
	}
	return v.width == other.width && v.height == other.height &&
		v.projectionMatrix.ApproxFuncEqual(other.projectionMatrix, matrixElementsEqual) &&
		v.viewMatrix.ApproxFuncEqual(other.viewMatrix, matrixElementsEqual)
}

// matrixElementsEqual uses the relative tolerance of gl-matrix's equals.
func matrixElementsEqual(a, b float64) bool {
	const epsilon = 1e-6
	return math.Abs(a-b) <= epsilon*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

type projectParams struct {
	topLeft bool
	targetZ float64
}

type ProjectOption interface {
	apply(params *projectParams)
}

// TopLeft selects whether pixel coordinates have their origin in the top
// left (default) or in the bottom left corner.
type TopLeft bool

func (t TopLeft) apply(params *projectParams) {
	params.topLeft = bool(t)
}

// TargetZ is the altitude in meters of the plane onto which Unproject casts
// pixels with no explicit depth. Zero by default.
type TargetZ float64

func (t TargetZ) apply(params *projectParams) {
	params.targetZ = float64(t)
}

func newProjectParams(options []ProjectOption) projectParams {
	params := projectParams{topLeft: true}
	for _, option := range options {
		option.apply(&params)
	}
	return params
}

// ProjectPosition maps a flat position to the world plane and converts
// its altitude from meters to world units.
func (v *Viewport) ProjectPosition(xyz r3.Vector) (r3.Vector, error) {
	xy, err := v.flat.ProjectFlat(r2.Point{X: xyz.X, Y: xyz.Y}, v.scale)
	if err != nil {
		return r3.Vector{}, err
	}
	return r3.Vector{X: xy.X, Y: xy.Y, Z: zeroIfNaN(xyz.Z) * v.pixelsPerMeter}, nil
}

func (v *Viewport) UnprojectPosition(xyz r3.Vector) r3.Vector {
	xy := v.flat.UnprojectFlat(r2.Point{X: xyz.X, Y: xyz.Y}, v.scale)
	return r3.Vector{X: xy.X, Y: xy.Y, Z: zeroIfNaN(xyz.Z) / v.pixelsPerMeter}
}

// ProjectFlat uses the viewport's own scale.
func (v *Viewport) ProjectFlat(xy r2.Point) (r2.Point, error) {
	return v.flat.ProjectFlat(xy, v.scale)
}

func (v *Viewport) UnprojectFlat(xy r2.Point) r2.Point {
	return v.flat.UnprojectFlat(xy, v.scale)
}

// Project3 returns pixel coordinates of a position. Z of the result is the
// depth in pixel projection space.
func (v *Viewport) Project3(xyz r3.Vector, options ...ProjectOption) (r3.Vector, error) {
	params := newProjectParams(options)
	worldPosition, err := v.ProjectPosition(xyz)
	if err != nil {
		return r3.Vector{}, err
	}
	coord, err := WorldToPixels(worldPosition, v.pixelProjectionMatrix)
	if err != nil {
		return r3.Vector{}, err
	}
	y := coord[1]
	if !params.topLeft {
		y = v.height - y
	}
	return r3.Vector{X: coord[0], Y: y, Z: coord[2]}, nil
}

func (v *Viewport) Project(xy r2.Point, options ...ProjectOption) (r2.Point, error) {
	p, err := v.Project3(r3.Vector{X: xy.X, Y: xy.Y}, options...)
	if err != nil {
		return r2.Point{}, err
	}
	return r2.Point{X: p.X, Y: p.Y}, nil
}

// Unproject3 is the inverse of Project3 when xyz.Z is a finite depth.
// When xyz.Z is NaN the pixel is cast onto the TargetZ plane and the
// result has Z equal to TargetZ.
func (v *Viewport) Unproject3(xyz r3.Vector, options ...ProjectOption) (r3.Vector, error) {
	params := newProjectParams(options)
	if !isFinite(params.targetZ) {
		return r3.Vector{}, fmt.Errorf("%w: non-finite target z %v", ErrPrecondition, params.targetZ)
	}
	y := xyz.Y
	if !params.topLeft {
		y = v.height - y
	}
	coord, err := PixelsToWorld(r3.Vector{X: xyz.X, Y: y, Z: xyz.Z}, v.pixelUnprojectionMatrix, params.targetZ*v.pixelsPerMeter)
	if err != nil {
		return r3.Vector{}, err
	}
	position := v.UnprojectPosition(coord)
	if isFinite(xyz.Z) {
		return position, nil
	}
	position.Z = params.targetZ
	return position, nil
}

func (v *Viewport) Unproject(xy r2.Point, options ...ProjectOption) (r2.Point, error) {
	p, err := v.Unproject3(r3.Vector{X: xy.X, Y: xy.Y, Z: math.NaN()}, options...)
	if err != nil {
		return r2.Point{}, err
	}
	return r2.Point{X: p.X, Y: p.Y}, nil
}
