package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio-site/internal/models"
)

func ptr(f float64) *float64 { return &f }

func project(id string, status models.ProjectStatus, lat, lng float64) models.Project {
	return models.Project{
		ID:        id,
		Title:     "Project " + id,
		Address:   "Street " + id,
		Status:    status,
		Latitude:  ptr(lat),
		Longitude: ptr(lng),
	}
}

func TestBuildFilterByStatus(t *testing.T) {
	list := []models.Project{
		project("a", models.StatusCompleted, 41.30, 69.24),
		project("b", models.StatusOngoing, 41.31, 69.25),
		project("c", models.StatusOngoing, 41.32, 69.26),
		project("d", models.StatusPlanned, 41.33, 69.27),
	}

	data := Build(list, "ongoing")
	require.Len(t, data.Markers, 2)
	require.Len(t, data.Heat, 2)
	for _, m := range data.Markers {
		assert.Equal(t, models.StatusOngoing, m.Status)
		assert.Equal(t, "#f59e0b", m.Color)
	}
	for _, h := range data.Heat {
		assert.Equal(t, HeatWeight, h[2])
	}

	all := Build(list, "")
	assert.Len(t, all.Markers, 4)
	assert.Len(t, all.Heat, 4)

	upper := Build(list, " ONGOING ")
	assert.Len(t, upper.Markers, 2)
}

func TestBuildSkipsMissingCoordinates(t *testing.T) {
	noLat := models.Project{ID: "x", Status: models.StatusCompleted, Longitude: ptr(10)}
	bad := project("y", models.StatusCompleted, 95, 10)
	nan := project("z", models.StatusCompleted, math.NaN(), 10)
	ok := project("ok", models.StatusCompleted, 10, 20)

	data := Build([]models.Project{noLat, bad, nan, ok}, "")
	require.Len(t, data.Markers, 1)
	assert.Equal(t, "ok", data.Markers[0].ID)
	assert.Equal(t, "project-ok-ok", data.Markers[0].Slug)
}

func TestBuildBoundsAndCenter(t *testing.T) {
	data := Build([]models.Project{
		project("a", models.StatusCompleted, 40, 60),
		project("b", models.StatusPlanned, 42, 70),
	}, "")
	require.NotNil(t, data.Bounds)
	assert.Equal(t, Point{Lat: 40, Lng: 60}, data.Bounds.SouthWest)
	assert.Equal(t, Point{Lat: 42, Lng: 70}, data.Bounds.NorthEast)
	assert.Equal(t, Point{Lat: 41, Lng: 65}, data.Center)

	empty := Build(nil, "")
	assert.Nil(t, empty.Bounds)
	assert.Equal(t, defaultCenter, empty.Center)
	assert.NotNil(t, empty.Markers)
	assert.NotNil(t, empty.Heat)
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, "#16a34a", StatusColor(models.StatusCompleted))
	assert.Equal(t, "#f59e0b", StatusColor(models.StatusOngoing))
	assert.Equal(t, "#3b82f6", StatusColor(models.StatusPlanned))
	assert.Equal(t, defaultColor, StatusColor("archived"))
}

func TestCellSizeHalvesPerZoom(t *testing.T) {
	for z := MinZoom; z < MaxZoom; z++ {
		assert.InDelta(t, CellSize(z)/2, CellSize(z+1), 1e-12)
	}
	assert.Equal(t, CellSize(MinZoom), CellSize(-5))
	assert.Equal(t, CellSize(MaxZoom), CellSize(99))
}

func TestClusterMarkers(t *testing.T) {
	markers := Build([]models.Project{
		project("a", models.StatusCompleted, 41.300, 69.240),
		project("b", models.StatusOngoing, 41.301, 69.241),
		project("c", models.StatusPlanned, 39.650, 66.960),
	}, "").Markers

	far := ClusterMarkers(markers, 2)
	require.Len(t, far, 1)
	assert.Equal(t, 3, far[0].Count)

	mid := ClusterMarkers(markers, 8)
	require.Len(t, mid, 2)
	assert.Equal(t, 2, mid[0].Count)
	assert.InDelta(t, 41.3005, mid[0].Lat, 1e-9)
	assert.InDelta(t, 69.2405, mid[0].Lng, 1e-9)
	assert.Equal(t, 1, mid[1].Count)

	near := ClusterMarkers(markers, MaxClusterZoom)
	assert.Len(t, near, 3)

	total := 0
	for _, c := range mid {
		total += c.Count
		assert.Len(t, c.Markers, c.Count)
	}
	assert.Equal(t, len(markers), total)

	assert.Empty(t, ClusterMarkers(nil, 5))
}

func TestToFeatureCollection(t *testing.T) {
	markers := Build([]models.Project{project("a", models.StatusOngoing, 41.3, 69.2)}, "").Markers

	fc := ToFeatureCollection(markers)
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 1)
	f := fc.Features[0]
	assert.Equal(t, "Feature", f.Type)
	assert.Equal(t, "Point", f.Geometry.Type)
	assert.Equal(t, []float64{69.2, 41.3}, f.Geometry.Coordinates)
	assert.Equal(t, "ongoing", f.Properties.Status)
	assert.Equal(t, "#f59e0b", f.Properties.Color)

	assert.NotNil(t, ToFeatureCollection(nil).Features)
}
