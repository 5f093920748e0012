package geo

type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type FeatureProperties struct {
	ID      string `json:"id"`
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Address string `json:"address"`
	Status  string `json:"status"`
	Color   string `json:"color"`
}

type Feature struct {
	Type       string            `json:"type"`
	Geometry   Geometry          `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// ToFeatureCollection; координаты в порядке GeoJSON: [lng, lat].
func ToFeatureCollection(markers []Marker) FeatureCollection {
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]Feature, 0, len(markers)),
	}
	for _, m := range markers {
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{m.Lng, m.Lat},
			},
			Properties: FeatureProperties{
				ID:      m.ID,
				Slug:    m.Slug,
				Title:   m.Title,
				Address: m.Address,
				Status:  string(m.Status),
				Color:   m.Color,
			},
		})
	}
	return fc
}
