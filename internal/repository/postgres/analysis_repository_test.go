package postgres_test

import (
	"time"

	"github.com/google/uuid"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
)

func (s *RepositorySuite) TestSaveResults_OrderedReads() {
	area, _ := s.createArea("Neukölln", 52.48, 13.43)
	now := time.Now().UTC()

	newCluster := func(label string, score float64) *domain.Cluster {
		return &domain.Cluster{
			ID:     uuid.New(),
			AreaID: area.ID,
			Label:  label,
			Method: domain.ClusterMethodSpatialBands,
			Metrics: domain.ClusterMetrics{
				SidewalkCoverage: score,
				RoadCount:        4,
			},
			WalkabilityScore: score,
			Severity:         domain.SeverityForScore(score),
			CreatedAt:        now,
		}
	}
	good := newCluster("Band 1", 0.82)
	bad := newCluster("Band 2", 0.31)
	mid := newCluster("Band 3", 0.50)

	newRec := func(c *domain.Cluster, action domain.ActionType) *domain.Recommendation {
		return &domain.Recommendation{
			ID:         uuid.New(),
			AreaID:     area.ID,
			ClusterID:  c.ID,
			ActionType: action,
			Rationale:  "Low sidewalk coverage in " + c.Label + ".",
			Impact:     domain.ImpactEstimate{WalkabilityDelta: 0.15, CO2ReductionKgYear: 2500, AccessibilityDelta: 0.2},
			CostClass:  domain.CostHigh,
			Priority:   domain.PriorityForSeverity(c.Severity),
			CreatedAt:  now,
		}
	}
	recs := []*domain.Recommendation{
		newRec(mid, domain.ActionAddCrossing),
		newRec(bad, domain.ActionAddSidewalk),
	}

	s.Require().NoError(s.repos.Analysis.SaveResults(s.ctx, []*domain.Cluster{good, bad, mid}, recs))

	clusters, err := s.repos.Analysis.GetClusters(s.ctx, area.ID)
	s.Require().NoError(err)
	s.Require().Len(clusters, 3)
	s.Equal("Band 2", clusters[0].Label)
	s.Equal("Band 3", clusters[1].Label)
	s.Equal("Band 1", clusters[2].Label)
	s.Equal(domain.SeverityCritical, clusters[0].Severity)
	s.Equal(4, clusters[0].Metrics.RoadCount)

	gotRecs, err := s.repos.Analysis.GetRecommendations(s.ctx, area.ID)
	s.Require().NoError(err)
	s.Require().Len(gotRecs, 2)
	s.Equal(1, gotRecs[0].Priority)
	s.Equal(bad.ID, gotRecs[0].ClusterID)
	s.Equal(2, gotRecs[1].Priority)
	s.InDelta(2500, gotRecs[0].Impact.CO2ReductionKgYear, 1e-9)
}

func (s *RepositorySuite) TestSaveResults_RollsBackOnBrokenReference() {
	area, _ := s.createArea("Tempelhof", 52.47, 13.38)

	cluster := &domain.Cluster{
		ID:               uuid.New(),
		AreaID:           area.ID,
		Label:            "Band 1",
		Method:           domain.ClusterMethodSpatialBands,
		WalkabilityScore: 0.2,
		Severity:         domain.SeverityCritical,
		CreatedAt:        time.Now(),
	}
	orphan := &domain.Recommendation{
		ID:         uuid.New(),
		AreaID:     area.ID,
		ClusterID:  uuid.New(),
		ActionType: domain.ActionAddSidewalk,
		CostClass:  domain.CostHigh,
		Priority:   1,
		CreatedAt:  time.Now(),
	}

	err := s.repos.Analysis.SaveResults(s.ctx, []*domain.Cluster{cluster}, []*domain.Recommendation{orphan})
	s.Error(err)

	clusters, err := s.repos.Analysis.GetClusters(s.ctx, area.ID)
	s.Require().NoError(err)
	s.Empty(clusters)
}
