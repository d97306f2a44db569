package geo

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedCoordinate is returned when a DMS string does not match
// the expected degrees-minutes-seconds pattern.
var ErrMalformedCoordinate = errors.New("malformed DMS coordinate")

// dmsComponentRegex matches one DMS component, e.g. 4°08'49.9"N.
var dmsComponentRegex = regexp.MustCompile(`^(\d+)°(\d+)'([\d.]+)"([NSEW])$`)

// ParseDMS converts a legacy degrees-minutes-seconds coordinate pair
// such as `4°08'49.9"N 9°17'08.8"E` into decimal degrees. Southern and
// western hemispheres yield negative values.
func ParseDMS(dms string) (Coordinate, error) {
	parts := strings.Fields(dms)
	if len(parts) != 2 {
		return Coordinate{}, ErrMalformedCoordinate
	}

	latitude, latDir, err := parseDMSComponent(parts[0])
	if err != nil {
		return Coordinate{}, err
	}
	longitude, lonDir, err := parseDMSComponent(parts[1])
	if err != nil {
		return Coordinate{}, err
	}

	if latDir != "N" && latDir != "S" {
		return Coordinate{}, ErrMalformedCoordinate
	}
	if lonDir != "E" && lonDir != "W" {
		return Coordinate{}, ErrMalformedCoordinate
	}

	if latDir == "S" {
		latitude = -latitude
	}
	if lonDir == "W" {
		longitude = -longitude
	}

	return Coordinate{Latitude: latitude, Longitude: longitude}, nil
}

func parseDMSComponent(s string) (float64, string, error) {
	match := dmsComponentRegex.FindStringSubmatch(s)
	if match == nil {
		return 0, "", ErrMalformedCoordinate
	}

	degrees, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, "", ErrMalformedCoordinate
	}
	minutes, err := strconv.ParseFloat(match[2], 64)
	if err != nil {
		return 0, "", ErrMalformedCoordinate
	}
	seconds, err := strconv.ParseFloat(match[3], 64)
	if err != nil {
		return 0, "", ErrMalformedCoordinate
	}

	return degrees + minutes/60 + seconds/3600, match[4], nil
}
