// Package geo готовит данные карты объектов: маркеры, тепловой слой,
// кластеры и GeoJSON. Рендеринг тайлов остаётся на стороне клиента.
package geo

import (
	"math"
	"strings"

	"studio-site/internal/models"
	"studio-site/internal/slug"
)

// HeatWeight — одинаковый вес каждой точки теплового слоя.
const HeatWeight = 1.0

var statusColors = map[models.ProjectStatus]string{
	models.StatusCompleted: "#16a34a",
	models.StatusOngoing:   "#f59e0b",
	models.StatusPlanned:   "#3b82f6",
}

const defaultColor = "#6b7280"

// центр по умолчанию, если на карте нет ни одного объекта (Ташкент)
var defaultCenter = Point{Lat: 41.2995, Lng: 69.2401}

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Marker struct {
	ID      string               `json:"id"`
	Slug    string               `json:"slug"`
	Title   string               `json:"title"`
	Address string               `json:"address"`
	Status  models.ProjectStatus `json:"status"`
	Color   string               `json:"color"`
	Lat     float64              `json:"lat"`
	Lng     float64              `json:"lng"`
}

// HeatPoint сериализуется как [lat, lng, weight].
type HeatPoint [3]float64

type Bounds struct {
	SouthWest Point `json:"south_west"`
	NorthEast Point `json:"north_east"`
}

type MapData struct {
	Markers []Marker    `json:"markers"`
	Heat    []HeatPoint `json:"heat"`
	Bounds  *Bounds     `json:"bounds,omitempty"`
	Center  Point       `json:"center"`
	Status  string      `json:"status,omitempty"`
}

// StatusColor; неизвестный статус получает нейтральный серый.
func StatusColor(s models.ProjectStatus) string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return defaultColor
}

// Build пересобирает маркеры и тепловой слой целиком на каждый фильтр.
// Проекты без координат на карту не попадают.
func Build(projects []models.Project, statusFilter string) MapData {
	statusFilter = strings.ToLower(strings.TrimSpace(statusFilter))

	data := MapData{
		Markers: make([]Marker, 0, len(projects)),
		Heat:    make([]HeatPoint, 0, len(projects)),
		Status:  statusFilter,
	}
	for _, p := range projects {
		if !p.HasLocation() || !validCoords(*p.Latitude, *p.Longitude) {
			continue
		}
		if statusFilter != "" && !strings.EqualFold(string(p.Status), statusFilter) {
			continue
		}
		m := Marker{
			ID:      p.ID,
			Slug:    slug.Build(p.Title, p.ID),
			Title:   p.Title,
			Address: p.Address,
			Status:  p.Status,
			Color:   StatusColor(p.Status),
			Lat:     *p.Latitude,
			Lng:     *p.Longitude,
		}
		data.Markers = append(data.Markers, m)
		data.Heat = append(data.Heat, HeatPoint{m.Lat, m.Lng, HeatWeight})
	}

	data.Bounds = boundsOf(data.Markers)
	if data.Bounds == nil {
		data.Center = defaultCenter
	} else {
		data.Center = Point{
			Lat: (data.Bounds.SouthWest.Lat + data.Bounds.NorthEast.Lat) / 2,
			Lng: (data.Bounds.SouthWest.Lng + data.Bounds.NorthEast.Lng) / 2,
		}
	}
	return data
}

func validCoords(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func boundsOf(markers []Marker) *Bounds {
	if len(markers) == 0 {
		return nil
	}
	b := &Bounds{
		SouthWest: Point{Lat: markers[0].Lat, Lng: markers[0].Lng},
		NorthEast: Point{Lat: markers[0].Lat, Lng: markers[0].Lng},
	}
	for _, m := range markers[1:] {
		b.SouthWest.Lat = math.Min(b.SouthWest.Lat, m.Lat)
		b.SouthWest.Lng = math.Min(b.SouthWest.Lng, m.Lng)
		b.NorthEast.Lat = math.Max(b.NorthEast.Lat, m.Lat)
		b.NorthEast.Lng = math.Max(b.NorthEast.Lng, m.Lng)
	}
	return b
}
