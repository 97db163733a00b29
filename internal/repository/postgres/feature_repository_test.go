package postgres_test

import (
	"github.com/google/uuid"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func (s *RepositorySuite) TestFeatures_SaveAndLoad() {
	area, _ := s.createArea("Prenzlauer Berg", 52.54, 13.42)

	roads := []*domain.RoadSegment{
		{
			ID:     uuid.New(),
			AreaID: area.ID,
			Geometry: domain.NewLineString([]domain.Point{
				{Lat: 52.541, Lon: 13.421},
				{Lat: 52.542, Lon: 13.423},
			}),
			Highway:    "residential",
			Lanes:      intPtr(2),
			SpeedLimit: intPtr(30),
			Sidewalk:   true,
			Surface:    strPtr("asphalt"),
			OSMID:      1001,
			Tags:       domain.Tags{"highway": "residential", "sidewalk": "both"},
		},
		{
			ID:     uuid.New(),
			AreaID: area.ID,
			Geometry: domain.NewLineString([]domain.Point{
				{Lat: 52.542, Lon: 13.423},
				{Lat: 52.543, Lon: 13.424},
			}),
			Highway: "primary",
			OSMID:   1002,
			Tags:    domain.Tags{"highway": "primary"},
		},
	}
	intersections := []*domain.Intersection{
		{ID: uuid.New(), AreaID: area.ID, Point: domain.Point{Lat: 52.542, Lon: 13.423}, Degree: 2, IsMajor: true, OSMID: 7},
	}
	amenities := []*domain.Amenity{
		{ID: uuid.New(), AreaID: area.ID, Point: domain.Point{Lat: 52.5415, Lon: 13.4215}, Category: "cafe", Name: strPtr("Kaffee"), OSMID: 55, Tags: domain.Tags{"amenity": "cafe"}},
	}

	s.Require().NoError(s.repos.Features.SaveRoads(s.ctx, roads))
	s.Require().NoError(s.repos.Features.SaveIntersections(s.ctx, intersections))
	s.Require().NoError(s.repos.Features.SaveAmenities(s.ctx, amenities))

	gotRoads, err := s.repos.Features.GetRoads(s.ctx, area.ID)
	s.Require().NoError(err)
	s.Require().Len(gotRoads, 2)
	s.Equal(int64(1001), gotRoads[0].OSMID)
	s.True(gotRoads[0].Sidewalk)
	s.Require().NotNil(gotRoads[0].Lanes)
	s.Equal(2, *gotRoads[0].Lanes)
	s.Equal("both", gotRoads[0].Tags["sidewalk"])
	s.Require().Len(gotRoads[0].Geometry.Coordinates, 2)
	s.InDelta(13.421, gotRoads[0].Geometry.Coordinates[0][0], 1e-9)
	s.Nil(gotRoads[1].Lanes)
	s.Nil(gotRoads[1].Surface)

	gotInts, err := s.repos.Features.GetIntersections(s.ctx, area.ID)
	s.Require().NoError(err)
	s.Require().Len(gotInts, 1)
	s.InDelta(52.542, gotInts[0].Lat, 1e-9)
	s.InDelta(13.423, gotInts[0].Lon, 1e-9)
	s.True(gotInts[0].IsMajor)

	gotAmenities, err := s.repos.Features.GetAmenities(s.ctx, area.ID)
	s.Require().NoError(err)
	s.Require().Len(gotAmenities, 1)
	s.Equal("cafe", gotAmenities[0].Category)
	s.Require().NotNil(gotAmenities[0].Name)
	s.Equal("Kaffee", *gotAmenities[0].Name)
}

func (s *RepositorySuite) TestFeatures_EmptyAndDuplicateIntersections() {
	area, _ := s.createArea("Friedrichshain", 52.51, 13.45)

	s.NoError(s.repos.Features.SaveRoads(s.ctx, nil))
	s.NoError(s.repos.Features.SaveAmenities(s.ctx, []*domain.Amenity{}))

	node := func() *domain.Intersection {
		return &domain.Intersection{ID: uuid.New(), AreaID: area.ID, Point: domain.Point{Lat: 52.511, Lon: 13.451}, Degree: 3, OSMID: 9}
	}
	s.Require().NoError(s.repos.Features.SaveIntersections(s.ctx, []*domain.Intersection{node()}))
	s.Require().NoError(s.repos.Features.SaveIntersections(s.ctx, []*domain.Intersection{node()}))

	got, err := s.repos.Features.GetIntersections(s.ctx, area.ID)
	s.Require().NoError(err)
	s.Len(got, 1)

	roads, err := s.repos.Features.GetRoads(s.ctx, area.ID)
	s.Require().NoError(err)
	s.Empty(roads)
}
