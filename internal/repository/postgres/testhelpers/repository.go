package testhelpers

import (
	"github.com/Chintnn/walkability-pathfinder/internal/domain/repository"
	"github.com/Chintnn/walkability-pathfinder/internal/repository/postgres"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Repositories bundles every postgres repository over one test connection
type Repositories struct {
	Areas    repository.AreaRepository
	Tasks    repository.TaskRepository
	Features repository.FeatureRepository
	Analysis repository.AnalysisRepository
}

// NewRepositoriesForTest wraps the test connection and builds all repositories
func NewRepositoriesForTest(db *sqlx.DB, logger *zap.Logger) Repositories {
	pgDB := postgres.NewDBForTest(db, logger)
	return Repositories{
		Areas:    postgres.NewAreaRepository(pgDB),
		Tasks:    postgres.NewTaskRepository(pgDB),
		Features: postgres.NewFeatureRepository(pgDB),
		Analysis: postgres.NewAnalysisRepository(pgDB),
	}
}
