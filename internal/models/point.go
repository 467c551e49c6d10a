package models

import (
	"encoding/json"
	"fmt"
)

// Coordinate validation constants for WGS84 lat/lng.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Point represents a PostGIS Point geography in SRID 4326 (WGS84).
// The database stores it as geography(Point,4326); reads go through
// ST_AsGeoJSON and writes use ST_SetSRID(ST_MakePoint(lng,lat),4326).
type Point struct {
	Lat float64
	Lng float64
}

// Valid reports whether the point's coordinates are inside the WGS84
// lat/lng ranges.
func (p Point) Valid() bool {
	return p.Lat >= MinLatitude && p.Lat <= MaxLatitude &&
		p.Lng >= MinLongitude && p.Lng <= MaxLongitude
}

// Scan implements sql.Scanner for reading point geography from the
// database. PostGIS with ST_AsGeoJSON returns a GeoJSON Point whose
// coordinates are in (longitude, latitude) order.
func (p *Point) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to scan Point: expected []byte or string, got %T", value)
	}

	var geom struct {
		Type        string     `json:"type"`
		Coordinates [2]float64 `json:"coordinates"`
	}

	if err := json.Unmarshal(bytes, &geom); err != nil {
		return fmt.Errorf("failed to unmarshal point geometry: %w", err)
	}

	if geom.Type != "Point" {
		return fmt.Errorf("expected Point type, got %s", geom.Type)
	}

	p.Lng = geom.Coordinates[0]
	p.Lat = geom.Coordinates[1]

	return nil
}

// MarshalJSON renders the point with named latitude/longitude fields
// for API responses.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}{
		Latitude:  p.Lat,
		Longitude: p.Lng,
	})
}

// UnmarshalJSON parses the named latitude/longitude form used in API
// requests.
func (p *Point) UnmarshalJSON(data []byte) error {
	var loc struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}

	if err := json.Unmarshal(data, &loc); err != nil {
		return fmt.Errorf("failed to unmarshal point: %w", err)
	}

	p.Lat = loc.Latitude
	p.Lng = loc.Longitude

	return nil
}
