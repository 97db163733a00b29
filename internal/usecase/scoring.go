package usecase

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
)

// Веса формулы walkability
const (
	weightSidewalk     = 0.5
	weightIntersection = 0.3
	weightAmenity      = 0.2
)

const (
	maxClusters     = 3
	roadsPerCluster = 10
)

// Baseline - метрики всей области, относительно которых нормируются плотности кластеров
type Baseline struct {
	SidewalkCoverage    float64
	IntersectionDensity float64
	AmenityDensity      float64
}

// Band - полоса вдоль длинной оси bbox
type Band struct {
	Roads         []*domain.RoadSegment
	Intersections []*domain.Intersection
	Amenities     []*domain.Amenity
}

// ClusterCount - k = min(3, max(1, ⌊n/10⌋))
func ClusterCount(roads int) int {
	k := roads / roadsPerCluster
	if k < 1 {
		k = 1
	}
	if k > maxClusters {
		k = maxClusters
	}
	return k
}

// ComputeMetrics считает структурные метрики группы сегментов
func ComputeMetrics(roads []*domain.RoadSegment, intersections, amenities int) domain.ClusterMetrics {
	m := domain.ClusterMetrics{RoadCount: len(roads)}
	if len(roads) == 0 {
		return m
	}

	sidewalks := 0
	for _, r := range roads {
		if r.Sidewalk {
			sidewalks++
		}
	}

	n := float64(len(roads))
	m.SidewalkCoverage = float64(sidewalks) / n
	m.IntersectionDensity = float64(intersections) / n
	m.AmenityDensity = float64(amenities) / n
	return m
}

// BaselineFrom - базовая линия по всей области
func BaselineFrom(m domain.ClusterMetrics) Baseline {
	return Baseline{
		SidewalkCoverage:    m.SidewalkCoverage,
		IntersectionDensity: m.IntersectionDensity,
		AmenityDensity:      m.AmenityDensity,
	}
}

// WalkabilityScore = 0.5·sidewalk + 0.3·rel(int, baseInt) + 0.2·rel(amen, baseAmen), в [0,1]
func WalkabilityScore(m domain.ClusterMetrics, base Baseline) float64 {
	score := weightSidewalk*m.SidewalkCoverage +
		weightIntersection*relative(m.IntersectionDensity, base.IntersectionDensity) +
		weightAmenity*relative(m.AmenityDensity, base.AmenityDensity)
	return clamp01(score)
}

// relative - x/(x+b); 0 когда обе величины нулевые
func relative(x, b float64) float64 {
	if x <= 0 && b <= 0 {
		return 0
	}
	if x < 0 {
		x = 0
	}
	return x / (x + math.Max(b, 0))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// PartitionSpatialBands делит сегменты на k полос одинакового размера вдоль длинной оси bbox.
// Сегменты сортируются по центроиду (при равенстве по osm id); точки попадают в полосу,
// чей диапазон их содержит, границы - середины между соседними полосами.
func PartitionSpatialBands(
	bbox domain.BoundingBox,
	roads []*domain.RoadSegment,
	intersections []*domain.Intersection,
	amenities []*domain.Amenity,
	k int,
) []Band {
	if len(roads) == 0 {
		return nil
	}
	if k < 1 {
		k = 1
	}
	if k > len(roads) {
		k = len(roads)
	}

	axis := longerAxis(bbox)

	type keyed struct {
		road *domain.RoadSegment
		key  float64
	}
	sorted := make([]keyed, len(roads))
	for i, r := range roads {
		sorted[i] = keyed{road: r, key: axis(r.Geometry.Centroid())}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].key != sorted[j].key {
			return sorted[i].key < sorted[j].key
		}
		return sorted[i].road.OSMID < sorted[j].road.OSMID
	})

	bands := make([]Band, k)
	upper := make([]float64, k-1)
	size, extra := len(sorted)/k, len(sorted)%k
	pos := 0
	for b := 0; b < k; b++ {
		n := size
		if b < extra {
			n++
		}
		for _, item := range sorted[pos : pos+n] {
			bands[b].Roads = append(bands[b].Roads, item.road)
		}
		pos += n
		if b < k-1 {
			upper[b] = (sorted[pos-1].key + sorted[pos].key) / 2
		}
	}

	bandFor := func(p domain.Point) int {
		v := axis(p)
		return sort.Search(len(upper), func(i int) bool { return v <= upper[i] })
	}
	for _, inter := range intersections {
		b := bandFor(inter.Point)
		bands[b].Intersections = append(bands[b].Intersections, inter)
	}
	for _, a := range amenities {
		b := bandFor(a.Point)
		bands[b].Amenities = append(bands[b].Amenities, a)
	}

	return bands
}

// longerAxis выбирает ось с большей протяжённостью на местности
func longerAxis(bbox domain.BoundingBox) func(domain.Point) float64 {
	midLat := (bbox.MinLat + bbox.MaxLat) / 2
	width := bbox.Width() * math.Cos(midLat*math.Pi/180)
	if width >= bbox.Height() {
		return func(p domain.Point) float64 { return p.Lon }
	}
	return func(p domain.Point) float64 { return p.Lat }
}

// BuildClusters - разбиение, метрики и оценка кластеров области
func BuildClusters(
	areaID uuid.UUID,
	bbox domain.BoundingBox,
	roads []*domain.RoadSegment,
	intersections []*domain.Intersection,
	amenities []*domain.Amenity,
	now time.Time,
) []*domain.Cluster {
	base := BaselineFrom(ComputeMetrics(roads, len(intersections), len(amenities)))
	bands := PartitionSpatialBands(bbox, roads, intersections, amenities, ClusterCount(len(roads)))

	clusters := make([]*domain.Cluster, 0, len(bands))
	for i, band := range bands {
		metrics := ComputeMetrics(band.Roads, len(band.Intersections), len(band.Amenities))
		score := WalkabilityScore(metrics, base)
		clusters = append(clusters, &domain.Cluster{
			ID:               uuid.New(),
			AreaID:           areaID,
			Label:            fmt.Sprintf("Band %d", i+1),
			Method:           domain.ClusterMethodSpatialBands,
			Metrics:          metrics,
			WalkabilityScore: score,
			Severity:         domain.SeverityForScore(score),
			CreatedAt:        now,
		})
	}
	return clusters
}

// OverallWalkability - средний score кластеров, округлённый до сотых
func OverallWalkability(clusters []*domain.Cluster) float64 {
	if len(clusters) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range clusters {
		sum += c.WalkabilityScore
	}
	return math.Round(sum/float64(len(clusters))*100) / 100
}
