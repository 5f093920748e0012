package handlers

import (
	"net/http"
	"strconv"
	"time"

	"studio-site/internal/database"
	"studio-site/internal/logging"
	"studio-site/internal/models"

	"github.com/gin-gonic/gin"
)

type auditRow struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entity_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
}

func auditRows(logs []models.AuditLog) []auditRow {
	out := make([]auditRow, 0, len(logs))
	for _, l := range logs {
		out = append(out, auditRow{
			ID:        l.ID,
			CreatedAt: l.CreatedAt,
			Username:  l.User.Username,
			Entity:    l.Entity,
			EntityID:  l.EntityID,
			Action:    l.Action,
			Details:   l.Details,
		})
	}
	return out
}

// ?entity= и ?limit= необязательны.
func (h *Handler) ListAuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	logs, err := database.ListAuditLogs(h.db.WithContext(c.Request.Context()), c.Query("entity"), limit)
	if err != nil {
		logging.Error().Err(err).Msg("list audit logs")
		jsonError(c, http.StatusInternalServerError, "Ошибка загрузки журнала")
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": auditRows(logs)})
}

func (h *Handler) AuditPage(c *gin.Context) {
	logs, err := database.ListAuditLogs(h.db.WithContext(c.Request.Context()), c.Query("entity"), 0)
	if err != nil {
		logging.Error().Err(err).Msg("audit page")
		c.String(http.StatusInternalServerError, "Ошибка загрузки журнала")
		return
	}

	render(c, http.StatusOK, "audit_list.html", gin.H{
		"logs":         logs,
		"FilterEntity": c.Query("entity"),
	})
}
