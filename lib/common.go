package lib

import "fmt"
import "math"
import "strings"

import "github.com/golang/geo/s2"
import "golang.org/x/exp/constraints"

func lerp[T constraints.Float](start, end, t T) T {
	return t*end + (1-t)*start
}

// mod returns value modulo divisor with the sign of divisor.
func mod[T constraints.Float](value, divisor T) T {
	modulus := T(math.Mod(float64(value), float64(divisor)))
	if modulus < 0 {
		return divisor + modulus
	}
	return modulus
}

func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// sizeOrOne replaces a non-positive or NaN viewport dimension with 1.
func sizeOrOne(v float64) float64 {
	if !(v > 0) {
		return 1
	}
	return v
}

func defaultIfZero(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func lngLatToJSONCoords(lng, lat float64) string {
	return fmt.Sprintf(`{"lat":%f,"lng":%f}`, lat, lng)
}
func latLngToJSONCoords(latLng s2.LatLng) string {
	return lngLatToJSONCoords(latLng.Lng.Degrees(), latLng.Lat.Degrees())
}

// PolylineFromViewStates draws the path of a flight's centers in the
// IITC draw tools JSON format.
func PolylineFromViewStates(states []ViewState) string {
	var json strings.Builder
	json.WriteString(`{"type":"polyline","latLngs":[`)
	for i, state := range states {
		if i > 0 {
			json.WriteString(",")
		}
		json.WriteString(lngLatToJSONCoords(state.Longitude, state.Latitude))
	}
	json.WriteString(`],"color":"#a24ac3"}`)
	return json.String()
}

func MarkersFromLocations(locations []Location) string {
	var json strings.Builder
	for i, location := range locations {
		if i > 0 {
			fmt.Fprintf(&json, ", ")
		}
		fmt.Fprintf(&json, `{"type":"marker","latLng":%s,"color":"#a24ac3"}`, latLngToJSONCoords(location.LatLng))
	}
	return json.String()
}

func PrintProgressBar(done int, total int) {
	const maxWidth = 50
	if total <= 0 {
		return
	}
	doneWidth := done * maxWidth / total
	var b strings.Builder
	b.WriteString("\r[")
	for i := 1; i < doneWidth; i++ {
		b.WriteRune('=')
	}
	if done < total {
		b.WriteRune('>')
	} else {
		b.WriteRune('=')
	}
	for i := doneWidth; i < maxWidth; i++ {
		b.WriteRune(' ')
	}
	percent := 100. * float32(done) / float32(total)
	b.WriteString(fmt.Sprintf("] %3.1f%% (%d/%d)", percent, done, total))
	fmt.Print(b.String())
}
