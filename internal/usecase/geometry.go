package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
	"github.com/Chintnn/walkability-pathfinder/internal/pkg/errors"
	"github.com/Chintnn/walkability-pathfinder/internal/pkg/utils"
	"github.com/Chintnn/walkability-pathfinder/internal/usecase/dto"
)

const minRingPoints = 4

// ValidatedGeometry - результат проверки полигона
type ValidatedGeometry struct {
	Polygon     domain.Polygon
	BBox        domain.BoundingBox
	AreaKm2     float64
	Fingerprint string
}

// ValidateGeometry проверяет внешнее кольцо GeoJSON Polygon и считает bbox и площадь.
// Внутренние кольца (дыры) не участвуют ни в bbox, ни в площади.
func ValidateGeometry(input dto.GeometryInput) (*ValidatedGeometry, error) {
	if input.Type != "Polygon" {
		return nil, invalidGeometry("geometry type must be Polygon")
	}

	rings, err := decodeRings(input.Coordinates)
	if err != nil {
		return nil, err
	}
	if len(rings) == 0 {
		return nil, invalidGeometry("polygon has no rings")
	}

	coords := make([][][]float64, len(rings))
	for i, ring := range rings {
		if len(ring) < minRingPoints {
			return nil, invalidGeometry(fmt.Sprintf("ring %d has %d points, at least %d required", i, len(ring), minRingPoints))
		}

		parsed := make([][]float64, len(ring))
		for j, raw := range ring {
			pair, err := decodePair(raw)
			if err != nil {
				return nil, invalidGeometry(fmt.Sprintf("ring %d point %d: %v", i, j, err))
			}
			if !utils.ValidateCoordinates(pair[1], pair[0]) {
				return nil, invalidGeometry(fmt.Sprintf("ring %d point %d is out of WGS84 range", i, j))
			}
			parsed[j] = pair
		}

		first, last := parsed[0], parsed[len(parsed)-1]
		if first[0] != last[0] || first[1] != last[1] {
			return nil, invalidGeometry(fmt.Sprintf("ring %d is not closed", i))
		}
		coords[i] = parsed
	}

	bbox := ringBBox(coords[0])
	return &ValidatedGeometry{
		Polygon:     domain.Polygon{Type: "Polygon", Coordinates: coords},
		BBox:        bbox,
		AreaKm2:     utils.EquirectangularAreaKm2(bbox.MinLat, bbox.MinLon, bbox.MaxLat, bbox.MaxLon),
		Fingerprint: Fingerprint(coords),
	}, nil
}

// Fingerprint - стабильный хеш координат полигона; одинаковая геометрия даёт одинаковый отпечаток
func Fingerprint(coords [][][]float64) string {
	h := sha256.New()
	for _, ring := range coords {
		for _, p := range ring {
			fmt.Fprintf(h, "%.7f,%.7f;", p[0], p[1])
		}
		h.Write([]byte("|"))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func decodeRings(raw json.RawMessage) ([][]json.RawMessage, error) {
	if len(raw) == 0 {
		return nil, invalidGeometry("coordinates are missing")
	}
	var rings [][]json.RawMessage
	if err := json.Unmarshal(raw, &rings); err != nil {
		return nil, invalidGeometry("coordinates must be an array of linear rings")
	}
	return rings, nil
}

func decodePair(raw json.RawMessage) ([]float64, error) {
	var pair []float64
	if err := json.Unmarshal(raw, &pair); err != nil {
		return nil, fmt.Errorf("position must be a [lon, lat] pair of numbers")
	}
	if len(pair) != 2 {
		return nil, fmt.Errorf("position must have exactly 2 values, got %d", len(pair))
	}
	return pair, nil
}

func ringBBox(ring [][]float64) domain.BoundingBox {
	bbox := domain.BoundingBox{
		MinLat: math.Inf(1), MinLon: math.Inf(1),
		MaxLat: math.Inf(-1), MaxLon: math.Inf(-1),
	}
	for _, p := range ring {
		bbox.MinLon = math.Min(bbox.MinLon, p[0])
		bbox.MaxLon = math.Max(bbox.MaxLon, p[0])
		bbox.MinLat = math.Min(bbox.MinLat, p[1])
		bbox.MaxLat = math.Max(bbox.MaxLat, p[1])
	}
	return bbox
}

func invalidGeometry(reason string) error {
	return errors.ErrInvalidGeometry.WithDetails(map[string]interface{}{
		"reason": reason,
	})
}
