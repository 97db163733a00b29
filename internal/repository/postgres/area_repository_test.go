package postgres_test

import (
	"time"

	"github.com/google/uuid"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
	"github.com/Chintnn/walkability-pathfinder/internal/pkg/errors"
	"github.com/Chintnn/walkability-pathfinder/internal/repository/postgres/testhelpers"
)

func (s *RepositorySuite) TestCreateWithTask_RoundTrip() {
	area, task := s.createArea("Mitte", 52.52, 13.40)

	got, err := s.repos.Areas.GetByID(s.ctx, area.ID)
	s.Require().NoError(err)
	s.Equal("Mitte", got.Name)
	s.Equal(domain.AreaStatusProcessing, got.Status)
	s.InDelta(52.52, got.MinLat, 1e-9)
	s.InDelta(13.405, got.MaxLon, 1e-9)
	s.Equal("Polygon", got.Geometry.Type)
	s.Require().Len(got.Geometry.Coordinates, 1)
	s.Len(got.Geometry.Coordinates[0], 5)

	gotTask, err := s.repos.Tasks.GetByID(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Equal(area.ID, gotTask.AreaID)
	s.Equal(domain.TaskStatusPending, gotTask.Status)
	s.Equal(domain.ProgressQueued, gotTask.Progress)
	s.Equal(domain.TaskTypeFullAnalysis, gotTask.TaskType)
	s.Nil(gotTask.Result)
	s.Nil(gotTask.ErrorCode)
}

func (s *RepositorySuite) TestCreateWithTask_ActiveFingerprintConflict() {
	_, first := s.createArea("Mitte", 52.52, 13.40)

	dup, dupTask := testhelpers.NewAreaFixture("Mitte again", 52.52, 13.40)
	err := s.repos.Areas.CreateWithTask(s.ctx, dup, dupTask)
	s.ErrorIs(err, errors.ErrAnalysisInProgress)

	// the failed insert must not leave an orphan area behind
	_, err = s.repos.Areas.GetByID(s.ctx, dup.ID)
	s.ErrorIs(err, errors.ErrAreaNotFound)

	ok, err := s.repos.Tasks.Fail(s.ctx, first.ID, "UPSTREAM_FETCH_ERROR", "boom")
	s.Require().NoError(err)
	s.True(ok)

	again, againTask := testhelpers.NewAreaFixture("Mitte rerun", 52.52, 13.40)
	s.NoError(s.repos.Areas.CreateWithTask(s.ctx, again, againTask))
}

func (s *RepositorySuite) TestAreaGetByID_NotFound() {
	_, err := s.repos.Areas.GetByID(s.ctx, uuid.New())
	s.ErrorIs(err, errors.ErrAreaNotFound)
}

func (s *RepositorySuite) TestAreaUpdateStatus() {
	area, _ := s.createArea("Kreuzberg", 52.49, 13.41)

	s.Require().NoError(s.repos.Areas.UpdateStatus(s.ctx, area.ID, domain.AreaStatusCompleted))

	got, err := s.repos.Areas.GetByID(s.ctx, area.ID)
	s.Require().NoError(err)
	s.Equal(domain.AreaStatusCompleted, got.Status)

	err = s.repos.Areas.UpdateStatus(s.ctx, uuid.New(), domain.AreaStatusFailed)
	s.ErrorIs(err, errors.ErrAreaNotFound)
}

func (s *RepositorySuite) TestTaskAdvanceProgress_CompareAndSet() {
	_, task := s.createArea("Wedding", 52.54, 13.36)

	ok, err := s.repos.Tasks.AdvanceProgress(s.ctx, task.ID, domain.ProgressQueued, domain.ProgressExtractionStarted)
	s.Require().NoError(err)
	s.True(ok)

	// redelivered stage loses the race
	ok, err = s.repos.Tasks.AdvanceProgress(s.ctx, task.ID, domain.ProgressQueued, domain.ProgressExtractionStarted)
	s.Require().NoError(err)
	s.False(ok)

	got, err := s.repos.Tasks.GetByID(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Equal(domain.TaskStatusProcessing, got.Status)
	s.Equal(domain.ProgressExtractionStarted, got.Progress)
}

func (s *RepositorySuite) TestTaskComplete_IsTerminal() {
	_, task := s.createArea("Moabit", 52.53, 13.34)

	summary := domain.ResultSummary{Clusters: 3, Recommendations: 2, OverallWalkability: 0.47}
	ok, err := s.repos.Tasks.Complete(s.ctx, task.ID, summary)
	s.Require().NoError(err)
	s.True(ok)

	got, err := s.repos.Tasks.GetByID(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Equal(domain.TaskStatusCompleted, got.Status)
	s.Equal(domain.ProgressDone, got.Progress)
	s.Require().NotNil(got.Result)
	s.Equal(summary, *got.Result)

	ok, err = s.repos.Tasks.Fail(s.ctx, task.ID, "ANALYSIS_TIMEOUT", "late")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RepositorySuite) TestTaskFail_RecordsError() {
	_, task := s.createArea("Pankow", 52.57, 13.40)

	ok, err := s.repos.Tasks.Fail(s.ctx, task.ID, "NO_ROAD_DATA", "No road data found for analysis")
	s.Require().NoError(err)
	s.True(ok)

	got, err := s.repos.Tasks.GetByID(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Equal(domain.TaskStatusFailed, got.Status)
	s.Require().NotNil(got.ErrorCode)
	s.Equal("NO_ROAD_DATA", *got.ErrorCode)
	s.Require().NotNil(got.ErrorMessage)
	s.Equal("No road data found for analysis", *got.ErrorMessage)
}

func (s *RepositorySuite) TestTaskFailStale() {
	_, stale := s.createArea("Lichtenberg", 52.51, 13.50)
	_, fresh := s.createArea("Pankow", 52.57, 13.40)
	_, done := s.createArea("Spandau", 52.53, 13.20)

	_, err := s.repos.Tasks.Complete(s.ctx, done.ID, domain.ResultSummary{})
	s.Require().NoError(err)

	// возраст задачи задаётся часами базы, а не часами процесса
	for _, id := range []uuid.UUID{stale.ID, done.ID} {
		_, err = s.testDB.DB.ExecContext(s.ctx,
			`UPDATE analysis_tasks SET updated_at = NOW() - interval '2 hours' WHERE id = $1`, id)
		s.Require().NoError(err)
	}

	n, err := s.repos.Tasks.FailStale(s.ctx, time.Hour, "ANALYSIS_TIMEOUT", "Analysis did not finish in time")
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	got, err := s.repos.Tasks.GetByID(s.ctx, stale.ID)
	s.Require().NoError(err)
	s.Equal(domain.TaskStatusFailed, got.Status)
	s.Require().NotNil(got.ErrorCode)
	s.Equal("ANALYSIS_TIMEOUT", *got.ErrorCode)

	got, err = s.repos.Tasks.GetByID(s.ctx, fresh.ID)
	s.Require().NoError(err)
	s.Equal(domain.TaskStatusPending, got.Status)

	got, err = s.repos.Tasks.GetByID(s.ctx, done.ID)
	s.Require().NoError(err)
	s.Equal(domain.TaskStatusCompleted, got.Status)
}

func (s *RepositorySuite) TestTaskGetByID_NotFound() {
	_, err := s.repos.Tasks.GetByID(s.ctx, uuid.New())
	s.ErrorIs(err, errors.ErrTaskNotFound)
}
