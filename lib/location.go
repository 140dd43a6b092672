package lib

import "encoding/csv"
import "encoding/json"
import "fmt"
import "io"
import "os"
import "path"
import "strconv"
import "strings"

import "github.com/golang/geo/s2"

// Location is a named place.
type Location struct {
	Name   string
	LatLng s2.LatLng
}

func newLocation(name string, lat, lng float64) (Location, error) {
	if !isFinite(lat, lng) || lat < -90 || lat > 90 {
		return Location{}, fmt.Errorf("%w: invalid latitude %v or longitude %v of \"%s\"", ErrPrecondition, lat, lng, name)
	}
	return Location{Name: name, LatLng: s2.LatLngFromDegrees(lat, lng)}, nil
}

// ParseFile reads locations from a .csv or a .json file, see
// ReadLocationsCSV and ReadLocationsJSON.
func ParseFile(filename string) ([]Location, error) {
	var read func(io.Reader) ([]Location, error)
	switch path.Ext(filename) {
	case ".csv":
		read = ReadLocationsCSV
	case ".json":
		read = ReadLocationsJSON
	default:
		return nil, fmt.Errorf("unknown extension of file %s", filename)
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	locations, err := read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return locations, nil
}

// Spreadsheet exports escape quotes inside quoted fields with a backslash.
var csvBackslashEscapes = strings.NewReplacer(`\\`, `\`, `\"`, `""`)

// ReadLocationsCSV reads "name,latitude,longitude" rows.
func ReadLocationsCSV(r io.Reader) ([]Location, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(strings.NewReader(csvBackslashEscapes.Replace(string(content))))
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true
	var locations []Location
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		lat, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: cannot parse latitude \"%s\"", line, record[1])
		}
		lng, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: cannot parse longitude \"%s\"", line, record[2])
		}
		location, err := newLocation(record[0], lat, lng)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		locations = append(locations, location)
	}
	return locations, nil
}

// ReadLocationsJSON reads an IITC-style list of
// {"title": ..., "coordinates": {"lat": "...", "lng": "..."}} objects.
func ReadLocationsJSON(r io.Reader) ([]Location, error) {
	var records []struct {
		Title       string `json:"title"`
		Coordinates struct {
			Lat float64 `json:"lat,string"`
			Lng float64 `json:"lng,string"`
		} `json:"coordinates"`
	}
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, err
	}
	locations := make([]Location, 0, len(records))
	for _, record := range records {
		location, err := newLocation(record.Title, record.Coordinates.Lat, record.Coordinates.Lng)
		if err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}
	return locations, nil
}

// BoundsOfLocations returns the smallest bounding box containing all the
// locations. If the box crosses the antimeridian East is greater than 180,
// so that West < East always holds.
func BoundsOfLocations(locations []Location) (BoundingBox, error) {
	if len(locations) == 0 {
		return BoundingBox{}, fmt.Errorf("%w: no locations", ErrPrecondition)
	}
	rect := s2.EmptyRect()
	for _, location := range locations {
		rect = rect.AddPoint(location.LatLng)
	}
	lo, hi := rect.Lo(), rect.Hi()
	east := hi.Lng.Degrees()
	if rect.Lng.IsInverted() {
		east += 360
	}
	return BoundingBox{
		West:  lo.Lng.Degrees(),
		South: lo.Lat.Degrees(),
		East:  east,
		North: hi.Lat.Degrees(),
	}, nil
}
