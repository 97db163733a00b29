package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
	"github.com/Chintnn/walkability-pathfinder/internal/repository/postgres/testhelpers"
)

// RepositorySuite runs the postgres repositories against a real PostGIS database
type RepositorySuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repos  testhelpers.Repositories
	ctx    context.Context
}

func (s *RepositorySuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	// tables may already exist
	_ = testhelpers.ApplyMigrations(s.testDB.DB.DB, "../../../migrations")

	s.repos = testhelpers.NewRepositoriesForTest(s.testDB.DB, s.testDB.Logger)
}

func (s *RepositorySuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.testDB.Cleanup(s.ctx))
}

// createArea persists a fixture area with its pending task
func (s *RepositorySuite) createArea(name string, lat, lon float64) (*domain.Area, *domain.AnalysisTask) {
	area, task := testhelpers.NewAreaFixture(name, lat, lon)
	s.Require().NoError(s.repos.Areas.CreateWithTask(s.ctx, area, task))
	return area, task
}

func TestRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database tests in short mode")
	}
	suite.Run(t, new(RepositorySuite))
}
