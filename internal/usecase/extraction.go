package usecase

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
)

var sidewalkValues = map[string]bool{
	"yes":   true,
	"both":  true,
	"left":  true,
	"right": true,
}

// Ключи sidewalk:* учитываются, даже если основной ключ отсутствует или "no"
var sidewalkSubKeys = []string{"sidewalk:left", "sidewalk:right", "sidewalk:both"}

var majorRoadClasses = map[string]bool{
	"primary":        true,
	"primary_link":   true,
	"secondary":      true,
	"secondary_link": true,
	"tertiary":       true,
	"tertiary_link":  true,
}

// ExtractFeatures разбирает сырой граф Overpass в три типизированные коллекции.
// Функция чистая: порядок результата детерминирован (дороги в порядке ways,
// перекрёстки в порядке первого появления, amenity по osm id).
func ExtractFeatures(areaID uuid.UUID, data *domain.OSMData) *domain.Features {
	features := &domain.Features{
		Roads:         make([]*domain.RoadSegment, 0),
		Intersections: make([]*domain.Intersection, 0),
		Amenities:     make([]*domain.Amenity, 0),
	}
	if data == nil {
		return features
	}

	features.Amenities = extractAmenities(areaID, data.Nodes)

	byOSMID := make(map[int64]*domain.Intersection)
	for _, way := range data.Ways {
		highway := way.Tags["highway"]
		if highway == "" {
			continue
		}

		points, nodeIDs := resolveWay(way, data.Nodes)
		if len(points) < 2 {
			continue
		}

		features.Roads = append(features.Roads, &domain.RoadSegment{
			ID:         uuid.New(),
			AreaID:     areaID,
			Geometry:   domain.NewLineString(points),
			Highway:    highway,
			Lanes:      parseLeadingInt(way.Tags["lanes"]),
			SpeedLimit: parseLeadingInt(way.Tags["maxspeed"]),
			Sidewalk:   HasSidewalk(way.Tags),
			Surface:    optionalTag(way.Tags, "surface"),
			OSMID:      way.ID,
			Tags:       domain.Tags(way.Tags),
		})

		first, last := nodeIDs[0], nodeIDs[len(nodeIDs)-1]
		endpoints := []int64{first}
		if last != first {
			endpoints = append(endpoints, last)
		}

		for _, nodeID := range endpoints {
			node := data.Nodes[nodeID]
			inter, ok := byOSMID[nodeID]
			if !ok {
				inter = &domain.Intersection{
					ID:            uuid.New(),
					AreaID:        areaID,
					Point:         domain.Point{Lat: node.Lat, Lon: node.Lon},
					TrafficSignal: node.Tags["highway"] == "traffic_signals",
					OSMID:         nodeID,
				}
				byOSMID[nodeID] = inter
				features.Intersections = append(features.Intersections, inter)
			}
			inter.Degree++
			if majorRoadClasses[highway] {
				inter.IsMajor = true
			}
		}
	}

	return features
}

// HasSidewalk - у дороги есть тротуар хотя бы с одной стороны
func HasSidewalk(tags map[string]string) bool {
	if sidewalkValues[tags["sidewalk"]] {
		return true
	}
	for _, key := range sidewalkSubKeys {
		v := tags[key]
		if v == "yes" || v == "separate" {
			return true
		}
	}
	return false
}

func extractAmenities(areaID uuid.UUID, nodes map[int64]*domain.OSMNode) []*domain.Amenity {
	amenities := make([]*domain.Amenity, 0)
	for _, node := range nodes {
		category := node.Tags["amenity"]
		if category == "" {
			continue
		}
		amenities = append(amenities, &domain.Amenity{
			ID:       uuid.New(),
			AreaID:   areaID,
			Point:    domain.Point{Lat: node.Lat, Lon: node.Lon},
			Category: category,
			Name:     optionalTag(node.Tags, "name"),
			OSMID:    node.ID,
			Tags:     domain.Tags(node.Tags),
		})
	}

	sort.Slice(amenities, func(i, j int) bool {
		return amenities[i].OSMID < amenities[j].OSMID
	})
	return amenities
}

// resolveWay возвращает точки и id только тех узлов, что есть в ответе
func resolveWay(way *domain.OSMWay, nodes map[int64]*domain.OSMNode) ([]domain.Point, []int64) {
	points := make([]domain.Point, 0, len(way.NodeIDs))
	ids := make([]int64, 0, len(way.NodeIDs))
	for _, id := range way.NodeIDs {
		node, ok := nodes[id]
		if !ok {
			continue
		}
		points = append(points, domain.Point{Lat: node.Lat, Lon: node.Lon})
		ids = append(ids, id)
	}
	return points, ids
}

// parseLeadingInt: "50" → 50, "30 mph" → 30, "2;3" → 2, "none" → nil
func parseLeadingInt(value string) *int {
	value = strings.TrimSpace(value)
	n, digits := 0, 0
	for _, r := range value {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
	}
	if digits == 0 {
		return nil
	}
	return &n
}

func optionalTag(tags map[string]string, key string) *string {
	v, ok := tags[key]
	if !ok || v == "" {
		return nil
	}
	return &v
}
