package lib

import "errors"
import "math"

// ErrPrecondition is returned (wrapped) when an input is out of its valid
// domain: non-finite coordinates, latitude outside [-90, 90], malformed padding.
var ErrPrecondition = errors.New("precondition violation")

// ErrDegenerateCamera is returned when the pixel projection matrix of a
// viewport cannot be inverted.
var ErrDegenerateCamera = errors.New("pixel project matrix not invertible")

func isFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
