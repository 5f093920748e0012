package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studio-site/internal/geo"
	"studio-site/internal/logging"
	"studio-site/internal/models"
)

type mapResponse struct {
	geo.MapData
	Zoom     *int          `json:"zoom,omitempty"`
	Clusters []geo.Cluster `json:"clusters,omitempty"`
}

// mapData: общий разбор ?status= для обоих эндпоинтов карты.
func (h *Handler) mapData(c *gin.Context) (geo.MapData, bool) {
	status := c.Query("status")
	if status != "" {
		if _, ok := models.ParseProjectStatus(status); !ok {
			jsonError(c, http.StatusBadRequest, "Неизвестный статус")
			return geo.MapData{}, false
		}
	}

	list, err := h.projects.ListByStatus(c.Request.Context(), status)
	if err != nil {
		logging.Error().Err(err).Msg("map projects")
		jsonError(c, http.StatusInternalServerError, "Ошибка загрузки карты")
		return geo.MapData{}, false
	}
	return geo.Build(list, status), true
}

// MapData: маркеры и тепловой слой; с ?zoom= ещё и кластеры.
func (h *Handler) MapData(c *gin.Context) {
	data, ok := h.mapData(c)
	if !ok {
		return
	}

	resp := mapResponse{MapData: data}
	if z := c.Query("zoom"); z != "" {
		zoom, err := strconv.Atoi(z)
		if err != nil {
			jsonError(c, http.StatusBadRequest, "Некорректный zoom")
			return
		}
		resp.Zoom = &zoom
		resp.Clusters = geo.ClusterMarkers(data.Markers, zoom)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) MapGeoJSON(c *gin.Context) {
	data, ok := h.mapData(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, geo.ToFeatureCollection(data.Markers))
}
