package database

import (
	"studio-site/internal/logging"
	"studio-site/internal/models"

	"gorm.io/gorm"
)

// CreateAuditLog пишет запись в журнал аудита. Ошибка только логируется:
// журнал не должен ломать основную операцию.
func CreateAuditLog(db *gorm.DB, userID uint, entity, entityID, action, details string) {
	if db == nil {
		return
	}
	record := models.AuditLog{
		UserID:   userID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	if err := db.Create(&record).Error; err != nil {
		logging.Warn().Err(err).Str("entity", entity).Str("action", action).Msg("failed to write audit log")
	}
}

// ListAuditLogs возвращает последние записи журнала, опционально по одной сущности.
func ListAuditLogs(db *gorm.DB, entity string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	q := db.Preload("User").Order("created_at desc").Limit(limit)
	if entity != "" {
		q = q.Where("entity = ?", entity)
	}

	var logs []models.AuditLog
	if err := q.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
