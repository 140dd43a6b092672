package main

import "fmt"
import "math"
import "strconv"
import "strings"

import "github.com/golang/geo/r2"
import "github.com/golang/geo/r3"
import "github.com/pwiecz/viewport_patterns/lib"

func parseFloats(str string, minCount, maxCount int) ([]float64, error) {
	parts := strings.Split(str, ",")
	if len(parts) < minCount || len(parts) > maxCount {
		if minCount == maxCount {
			return nil, fmt.Errorf("Expected %d comma separated numbers, got \"%s\"", minCount, str)
		}
		return nil, fmt.Errorf("Expected %d to %d comma separated numbers, got \"%s\"", minCount, maxCount, str)
	}
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("Cannot parse \"%s\" as a number", part)
		}
		values = append(values, value)
	}
	return values, nil
}

// parsePosition parses "a,b" or "a,b,c". A missing third value is NaN.
func parsePosition(str string) (r3.Vector, error) {
	values, err := parseFloats(str, 2, 3)
	if err != nil {
		return r3.Vector{}, err
	}
	position := r3.Vector{X: values[0], Y: values[1], Z: math.NaN()}
	if len(values) == 3 {
		position.Z = values[2]
	}
	return position, nil
}

func parseBounds(str string) (lib.BoundingBox, error) {
	values, err := parseFloats(str, 4, 4)
	if err != nil {
		return lib.BoundingBox{}, err
	}
	return lib.BoundingBox{West: values[0], South: values[1], East: values[2], North: values[3]}, nil
}

// viewportValue is a <lng>,<lat>,<zoom>[,<pitch>,<bearing>] flag.
type viewportValue struct {
	str     string
	IsSet   bool
	State   lib.ViewState
	Pitch   float64
	Bearing float64
}

func (v *viewportValue) Set(str string) error {
	values, err := parseFloats(str, 3, 5)
	if err != nil {
		return err
	}
	if len(values) == 4 {
		return fmt.Errorf("Cannot parse \"%s\" as lng,lat,zoom[,pitch,bearing]", str)
	}
	v.State = lib.ViewState{Longitude: values[0], Latitude: values[1], Zoom: values[2]}
	v.Pitch, v.Bearing = 0, 0
	if len(values) == 5 {
		v.Pitch, v.Bearing = values[3], values[4]
	}
	v.str = str
	v.IsSet = true
	return nil
}

func (v viewportValue) String() string {
	return v.str
}

func (v viewportValue) Props(width, height float64) lib.ViewportProps {
	return lib.ViewportProps{
		Width:   width,
		Height:  height,
		Pitch:   v.Pitch,
		Bearing: v.Bearing,
	}.WithViewState(v.State)
}

// paddingValue is either a single number or <top>,<bottom>,<left>,<right>.
type paddingValue struct {
	str     string
	IsSet   bool
	Padding lib.Padding
}

func (p *paddingValue) Set(str string) error {
	values, err := parseFloats(str, 1, 4)
	if err != nil {
		return err
	}
	switch len(values) {
	case 1:
		p.Padding = lib.UniformPadding(values[0])
	case 4:
		p.Padding = lib.Padding{Top: values[0], Bottom: values[1], Left: values[2], Right: values[3]}
	default:
		return fmt.Errorf("Cannot parse \"%s\" as padding or top,bottom,left,right", str)
	}
	p.str = str
	p.IsSet = true
	return nil
}

func (p paddingValue) String() string {
	return p.str
}

// pointValue is a <x>,<y> flag.
type pointValue struct {
	str   string
	Point r2.Point
}

func (p *pointValue) Set(str string) error {
	values, err := parseFloats(str, 2, 2)
	if err != nil {
		return err
	}
	p.Point = r2.Point{X: values[0], Y: values[1]}
	p.str = str
	return nil
}

func (p pointValue) String() string {
	return p.str
}
