package geo

import (
	"math"
	"sort"
)

const (
	MinZoom = 0
	MaxZoom = 20
	// с этого зума маркеры не объединяются
	MaxClusterZoom = 16

	// размер ячейки на нулевом зуме, в градусах
	baseCellDeg = 60.0
)

type Cluster struct {
	Lat     float64  `json:"lat"`
	Lng     float64  `json:"lng"`
	Count   int      `json:"count"`
	Markers []Marker `json:"markers"`
}

type cellKey struct {
	X, Y int
}

// CellSize: сторона ячейки сетки в градусах; на каждом зуме вдвое меньше.
func CellSize(zoom int) float64 {
	zoom = clampZoom(zoom)
	return baseCellDeg / math.Exp2(float64(zoom))
}

func clampZoom(zoom int) int {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

// ClusterMarkers группирует маркеры по ячейкам сетки. Центр кластера — центроид
// его маркеров. Порядок детерминирован: по убыванию размера, затем по координатам.
func ClusterMarkers(markers []Marker, zoom int) []Cluster {
	zoom = clampZoom(zoom)
	if len(markers) == 0 {
		return []Cluster{}
	}

	if zoom >= MaxClusterZoom {
		out := make([]Cluster, 0, len(markers))
		for _, m := range markers {
			out = append(out, Cluster{Lat: m.Lat, Lng: m.Lng, Count: 1, Markers: []Marker{m}})
		}
		sortClusters(out)
		return out
	}

	size := CellSize(zoom)
	cells := make(map[cellKey]*Cluster)
	order := make([]cellKey, 0)
	for _, m := range markers {
		k := cellKey{
			X: int(math.Floor((m.Lng + 180) / size)),
			Y: int(math.Floor((m.Lat + 90) / size)),
		}
		c, ok := cells[k]
		if !ok {
			c = &Cluster{}
			cells[k] = c
			order = append(order, k)
		}
		c.Markers = append(c.Markers, m)
		c.Count++
		c.Lat += m.Lat
		c.Lng += m.Lng
	}

	out := make([]Cluster, 0, len(cells))
	for _, k := range order {
		c := cells[k]
		c.Lat /= float64(c.Count)
		c.Lng /= float64(c.Count)
		out = append(out, *c)
	}
	sortClusters(out)
	return out
}

func sortClusters(list []Cluster) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Count != list[j].Count {
			return list[i].Count > list[j].Count
		}
		if list[i].Lat != list[j].Lat {
			return list[i].Lat < list[j].Lat
		}
		return list[i].Lng < list[j].Lng
	})
}
