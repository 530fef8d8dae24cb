package model

import (
	"math"
	"strconv"
	"strings"
)

// Location is a latitude/longitude pair. It is persisted as a composite
// column and travels over the wire in the textual form "(lat,lon)".
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ParseLocation decodes the textual composite form into a Location.
// The first character and the last character are treated as delimiters and
// excluded; the first comma splits latitude from longitude. Malformed input
// (no comma, non-numeric segments) yields NaN components instead of an
// error; structured input is validated by the request schema before it ever
// reaches the database, so only store-produced text arrives here.
func ParseLocation(s string) Location {
	i := strings.IndexByte(s, ',')
	if i < 0 {
		return Location{Latitude: math.NaN(), Longitude: math.NaN()}
	}
	return Location{
		Latitude:  parseCoord(segment(s, 1, i)),
		Longitude: parseCoord(segment(s, i+1, len(s)-1)),
	}
}

// Flatten encodes a Location for persistence: the composite column is built
// by the statement's ROW(...) constructor from the two scalars, in
// (latitude, longitude) order.
func (l Location) Flatten() (float64, float64) {
	return l.Latitude, l.Longitude
}

func parseCoord(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// segment is s[a:b] clamped to valid bounds, empty when the range collapses.
func segment(s string, a, b int) string {
	if a < 0 {
		a = 0
	}
	if b > len(s) {
		b = len(s)
	}
	if a >= b {
		return ""
	}
	return s[a:b]
}
