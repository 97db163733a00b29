package usecase

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
)

// recommendBelow - кластеры с score ниже порога получают рекомендацию
const recommendBelow = 0.60

type intervention struct {
	metric    string
	threshold float64
	value     func(domain.ClusterMetrics) float64
	action    domain.ActionType
	cost      domain.CostClass
	impact    domain.ImpactEstimate
}

// Оценка эффекта одна на все вмешательства
var defaultImpact = domain.ImpactEstimate{WalkabilityDelta: 0.15, CO2ReductionKgYear: 2500, AccessibilityDelta: 0.20}

// Порядок задаёт приоритет при равной относительной слабости
var interventions = []intervention{
	{
		metric:    "sidewalk coverage",
		threshold: 0.40,
		value:     func(m domain.ClusterMetrics) float64 { return m.SidewalkCoverage },
		action:    domain.ActionAddSidewalk,
		cost:      domain.CostHigh,
		impact:    defaultImpact,
	},
	{
		metric:    "crossings",
		threshold: 0.10,
		value:     func(m domain.ClusterMetrics) float64 { return m.IntersectionDensity },
		action:    domain.ActionAddCrossing,
		cost:      domain.CostMedium,
		impact:    defaultImpact,
	},
	{
		metric:    "amenity access",
		threshold: 0.15,
		value:     func(m domain.ClusterMetrics) float64 { return m.AmenityDensity },
		action:    domain.ActionImproveAccess,
		cost:      domain.CostLow,
		impact:    defaultImpact,
	},
}

// RecommendForCluster выбирает вмешательство по самой слабой метрике относительно её порога.
// nil для кластеров со score >= 0.60.
func RecommendForCluster(c *domain.Cluster, now time.Time) *domain.Recommendation {
	if c.WalkabilityScore >= recommendBelow {
		return nil
	}

	weakest := 0
	weakestRatio := math.Inf(1)
	issues := make([]string, 0, len(interventions))
	for i, iv := range interventions {
		v := iv.value(c.Metrics)
		ratio := v / iv.threshold
		if ratio < weakestRatio {
			weakest, weakestRatio = i, ratio
		}
		if v < iv.threshold {
			issues = append(issues, iv.metric)
		}
	}

	chosen := interventions[weakest]
	if len(issues) == 0 {
		issues = append(issues, chosen.metric)
	}

	return &domain.Recommendation{
		ID:         uuid.New(),
		AreaID:     c.AreaID,
		ClusterID:  c.ID,
		ActionType: chosen.action,
		Rationale: fmt.Sprintf("Low %s in %s. Walkability score: %.0f%%.",
			strings.Join(issues, ", "), c.Label, c.WalkabilityScore*100),
		Impact:    chosen.impact,
		CostClass: chosen.cost,
		Priority:  domain.PriorityForSeverity(c.Severity),
		CreatedAt: now,
	}
}

// SynthesizeRecommendations - рекомендации для всех кластеров области
func SynthesizeRecommendations(clusters []*domain.Cluster, now time.Time) []*domain.Recommendation {
	recs := make([]*domain.Recommendation, 0, len(clusters))
	for _, c := range clusters {
		if rec := RecommendForCluster(c, now); rec != nil {
			recs = append(recs, rec)
		}
	}
	return recs
}
