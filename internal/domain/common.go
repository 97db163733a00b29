package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type Point struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

type BoundingBox struct {
	MinLat float64 `json:"min_lat" db:"min_lat"`
	MinLon float64 `json:"min_lon" db:"min_lon"`
	MaxLat float64 `json:"max_lat" db:"max_lat"`
	MaxLon float64 `json:"max_lon" db:"max_lon"`
}

// OverpassFilter - bbox в порядке Overpass QL: (south,west,north,east)
func (b BoundingBox) OverpassFilter() string {
	return fmt.Sprintf("%.7f,%.7f,%.7f,%.7f", b.MinLat, b.MinLon, b.MaxLat, b.MaxLon)
}

// Width - протяжённость по долготе в градусах
func (b BoundingBox) Width() float64 { return b.MaxLon - b.MinLon }

// Height - протяжённость по широте в градусах
func (b BoundingBox) Height() float64 { return b.MaxLat - b.MinLat }

// Polygon - GeoJSON Polygon; координаты в порядке [lon, lat].
// Хранится в PostGIS через ST_GeomFromGeoJSON / ST_AsGeoJSON.
type Polygon struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

func (p Polygon) Value() (driver.Value, error) {
	return valueJSON(p)
}

func (p *Polygon) Scan(src interface{}) error {
	return scanJSON(src, p)
}

// LineString - GeoJSON LineString; координаты в порядке [lon, lat]
type LineString struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

// NewLineString строит линию из упорядоченных точек
func NewLineString(points []Point) LineString {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Lon, p.Lat}
	}
	return LineString{Type: "LineString", Coordinates: coords}
}

// Centroid - среднее вершин линии; для коротких уличных сегментов этого достаточно
func (l LineString) Centroid() Point {
	if len(l.Coordinates) == 0 {
		return Point{}
	}
	var lat, lon float64
	for _, c := range l.Coordinates {
		lon += c[0]
		lat += c[1]
	}
	n := float64(len(l.Coordinates))
	return Point{Lat: lat / n, Lon: lon / n}
}

func (l LineString) Value() (driver.Value, error) {
	return valueJSON(l)
}

func (l *LineString) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// Tags - сырой набор OSM-тегов (jsonb)
type Tags map[string]string

func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "{}", nil
	}
	return valueJSON(t)
}

func (t *Tags) Scan(src interface{}) error {
	return scanJSON(src, t)
}

func valueJSON(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal json value: %w", err)
	}
	return string(data), nil
}

func scanJSON(src interface{}, dest interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported json source type %T", src)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal json value: %w", err)
	}
	return nil
}
