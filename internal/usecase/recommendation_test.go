package usecase_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
	"github.com/Chintnn/walkability-pathfinder/internal/usecase"
)

func cluster(score float64, metrics domain.ClusterMetrics) *domain.Cluster {
	return &domain.Cluster{
		ID:               uuid.New(),
		AreaID:           uuid.New(),
		Label:            "Band 1",
		Metrics:          metrics,
		WalkabilityScore: score,
		Severity:         domain.SeverityForScore(score),
	}
}

func TestRecommendForCluster(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		cluster  *domain.Cluster
		action   domain.ActionType
		cost     domain.CostClass
		priority int
	}{
		{
			name:     "missing sidewalks on critical cluster",
			cluster:  cluster(0.2, domain.ClusterMetrics{SidewalkCoverage: 0.1, IntersectionDensity: 0.5, AmenityDensity: 0.5}),
			action:   domain.ActionAddSidewalk,
			cost:     domain.CostHigh,
			priority: 1,
		},
		{
			name:     "few crossings on high cluster",
			cluster:  cluster(0.45, domain.ClusterMetrics{SidewalkCoverage: 0.9, IntersectionDensity: 0.02, AmenityDensity: 0.3}),
			action:   domain.ActionAddCrossing,
			cost:     domain.CostMedium,
			priority: 2,
		},
		{
			name:     "poor amenity access on medium cluster",
			cluster:  cluster(0.58, domain.ClusterMetrics{SidewalkCoverage: 0.9, IntersectionDensity: 1, AmenityDensity: 0.01}),
			action:   domain.ActionImproveAccess,
			cost:     domain.CostLow,
			priority: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := usecase.RecommendForCluster(tt.cluster, now)
			require.NotNil(t, rec)
			assert.Equal(t, tt.action, rec.ActionType)
			assert.Equal(t, tt.cost, rec.CostClass)
			assert.Equal(t, tt.priority, rec.Priority)
			assert.Equal(t, tt.cluster.ID, rec.ClusterID)
			assert.Equal(t, tt.cluster.AreaID, rec.AreaID)
			assert.NotEmpty(t, rec.Rationale)
			assert.Greater(t, rec.Impact.WalkabilityDelta, 0.0)
		})
	}
}

func TestRecommendForCluster_ImpactTable(t *testing.T) {
	rec := usecase.RecommendForCluster(cluster(0.1, domain.ClusterMetrics{}), time.Now())
	require.NotNil(t, rec)
	assert.Equal(t, domain.ActionAddSidewalk, rec.ActionType)
	assert.Equal(t, domain.ImpactEstimate{WalkabilityDelta: 0.15, CO2ReductionKgYear: 2500, AccessibilityDelta: 0.20}, rec.Impact)
	assert.Contains(t, rec.Rationale, "sidewalk coverage, crossings, amenity access")
	assert.Contains(t, rec.Rationale, "10%")
}

func TestRecommendForCluster_ImpactSharedAcrossActions(t *testing.T) {
	want := domain.ImpactEstimate{WalkabilityDelta: 0.15, CO2ReductionKgYear: 2500, AccessibilityDelta: 0.20}
	clusters := map[domain.ActionType]*domain.Cluster{
		domain.ActionAddSidewalk:   cluster(0.3, domain.ClusterMetrics{SidewalkCoverage: 0, IntersectionDensity: 1, AmenityDensity: 1}),
		domain.ActionAddCrossing:   cluster(0.3, domain.ClusterMetrics{SidewalkCoverage: 1, IntersectionDensity: 0, AmenityDensity: 1}),
		domain.ActionImproveAccess: cluster(0.3, domain.ClusterMetrics{SidewalkCoverage: 1, IntersectionDensity: 1, AmenityDensity: 0}),
	}

	for action, c := range clusters {
		rec := usecase.RecommendForCluster(c, time.Now())
		require.NotNil(t, rec)
		assert.Equal(t, action, rec.ActionType)
		assert.Equal(t, want, rec.Impact, string(action))
	}
}

func TestRecommendForCluster_NoneAtOrAboveThreshold(t *testing.T) {
	assert.Nil(t, usecase.RecommendForCluster(cluster(0.60, domain.ClusterMetrics{}), time.Now()))
	assert.Nil(t, usecase.RecommendForCluster(cluster(0.95, domain.ClusterMetrics{}), time.Now()))
	assert.NotNil(t, usecase.RecommendForCluster(cluster(0.5999, domain.ClusterMetrics{SidewalkCoverage: 1, IntersectionDensity: 1, AmenityDensity: 1}), time.Now()))
}

func TestSynthesizeRecommendations(t *testing.T) {
	clusters := []*domain.Cluster{
		cluster(0.3, domain.ClusterMetrics{}),
		cluster(0.8, domain.ClusterMetrics{SidewalkCoverage: 1}),
		cluster(0.5, domain.ClusterMetrics{SidewalkCoverage: 0.1}),
	}

	recs := usecase.SynthesizeRecommendations(clusters, time.Now())
	require.Len(t, recs, 2)
	assert.Equal(t, 1, recs[0].Priority)
	assert.Equal(t, 2, recs[1].Priority)
	assert.Empty(t, usecase.SynthesizeRecommendations(nil, time.Now()))
}
