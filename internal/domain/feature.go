package domain

import "github.com/google/uuid"

// RoadSegment - одна OSM-линия highway=*; после вставки не изменяется
type RoadSegment struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	AreaID     uuid.UUID  `json:"area_id" db:"area_id"`
	Geometry   LineString `json:"geometry" db:"geometry"`
	Highway    string     `json:"highway" db:"highway"`
	Lanes      *int       `json:"lanes,omitempty" db:"lanes"`
	SpeedLimit *int       `json:"speed_limit,omitempty" db:"speed_limit"`
	Sidewalk   bool       `json:"sidewalk" db:"sidewalk"`
	Surface    *string    `json:"surface,omitempty" db:"surface"`
	OSMID      int64      `json:"osm_id" db:"osm_id"`
	Tags       Tags       `json:"tags" db:"tags"`
}

// Intersection - концевой узел дорожного сегмента (дедуплицируется по OSM ID)
type Intersection struct {
	ID            uuid.UUID `json:"id" db:"id"`
	AreaID        uuid.UUID `json:"area_id" db:"area_id"`
	Point                   // lat/lon
	Degree        int       `json:"degree" db:"degree"`
	IsMajor       bool      `json:"is_major" db:"is_major"`
	TrafficSignal bool      `json:"traffic_signal" db:"traffic_signal"`
	OSMID         int64     `json:"osm_id" db:"osm_id"`
}

// Amenity - OSM-узел с тегом amenity=*
type Amenity struct {
	ID       uuid.UUID `json:"id" db:"id"`
	AreaID   uuid.UUID `json:"area_id" db:"area_id"`
	Point              // lat/lon
	Category string    `json:"category" db:"category"`
	Name     *string   `json:"name,omitempty" db:"name"`
	OSMID    int64     `json:"osm_id" db:"osm_id"`
	Tags     Tags      `json:"tags" db:"tags"`
}

// Features - результат одной экстракции
type Features struct {
	Roads         []*RoadSegment
	Intersections []*Intersection
	Amenities     []*Amenity
}
