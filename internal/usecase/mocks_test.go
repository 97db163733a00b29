package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
)

// MockAreaRepository is a mock of AreaRepository
type MockAreaRepository struct {
	mock.Mock
}

func (m *MockAreaRepository) CreateWithTask(ctx context.Context, area *domain.Area, task *domain.AnalysisTask) error {
	args := m.Called(ctx, area, task)
	return args.Error(0)
}

func (m *MockAreaRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Area, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Area), args.Error(1)
}

func (m *MockAreaRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AreaStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockTaskRepository is a mock of TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AnalysisTask, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisTask), args.Error(1)
}

func (m *MockTaskRepository) AdvanceProgress(ctx context.Context, id uuid.UUID, from, to int) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) Complete(ctx context.Context, id uuid.UUID, summary domain.ResultSummary) (bool, error) {
	args := m.Called(ctx, id, summary)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) Fail(ctx context.Context, id uuid.UUID, code, message string) (bool, error) {
	args := m.Called(ctx, id, code, message)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) FailStale(ctx context.Context, olderThan time.Duration, code, message string) (int64, error) {
	args := m.Called(ctx, olderThan, code, message)
	return args.Get(0).(int64), args.Error(1)
}

// MockFeatureRepository is a mock of FeatureRepository
type MockFeatureRepository struct {
	mock.Mock
}

func (m *MockFeatureRepository) SaveRoads(ctx context.Context, roads []*domain.RoadSegment) error {
	args := m.Called(ctx, roads)
	return args.Error(0)
}

func (m *MockFeatureRepository) SaveIntersections(ctx context.Context, intersections []*domain.Intersection) error {
	args := m.Called(ctx, intersections)
	return args.Error(0)
}

func (m *MockFeatureRepository) SaveAmenities(ctx context.Context, amenities []*domain.Amenity) error {
	args := m.Called(ctx, amenities)
	return args.Error(0)
}

func (m *MockFeatureRepository) GetRoads(ctx context.Context, areaID uuid.UUID) ([]*domain.RoadSegment, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RoadSegment), args.Error(1)
}

func (m *MockFeatureRepository) GetIntersections(ctx context.Context, areaID uuid.UUID) ([]*domain.Intersection, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Intersection), args.Error(1)
}

func (m *MockFeatureRepository) GetAmenities(ctx context.Context, areaID uuid.UUID) ([]*domain.Amenity, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Amenity), args.Error(1)
}

// MockAnalysisRepository is a mock of AnalysisRepository
type MockAnalysisRepository struct {
	mock.Mock
}

func (m *MockAnalysisRepository) SaveResults(ctx context.Context, clusters []*domain.Cluster, recommendations []*domain.Recommendation) error {
	args := m.Called(ctx, clusters, recommendations)
	return args.Error(0)
}

func (m *MockAnalysisRepository) GetClusters(ctx context.Context, areaID uuid.UUID) ([]*domain.Cluster, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Cluster), args.Error(1)
}

func (m *MockAnalysisRepository) GetRecommendations(ctx context.Context, areaID uuid.UUID) ([]*domain.Recommendation, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Recommendation), args.Error(1)
}

// MockOSMRepository is a mock of OSMRepository
type MockOSMRepository struct {
	mock.Mock
}

func (m *MockOSMRepository) FetchArea(ctx context.Context, bbox domain.BoundingBox) (*domain.OSMData, error) {
	args := m.Called(ctx, bbox)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OSMData), args.Error(1)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, maxCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	args := m.Called(ctx, stream, group, messageIDs)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetAreaResults(ctx context.Context, areaID uuid.UUID) (*domain.AreaResults, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AreaResults), args.Error(1)
}

func (m *MockCacheRepository) SetAreaResults(ctx context.Context, results *domain.AreaResults, ttl time.Duration) error {
	args := m.Called(ctx, results, ttl)
	return args.Error(0)
}
