// Package analytics пишет просмотры и лайки. Запись просмотров — fire-and-forget:
// ошибки логируются и не доходят до страницы. Переключение лайка, наоборот,
// возвращает ошибку, чтобы клиент мог откатить оптимистичное состояние.
package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"studio-site/internal/logging"
	"studio-site/internal/metrics"
	"studio-site/internal/models"
)

const defaultWriteTimeout = 5 * time.Second

// Event: контекст запроса, из которого пишется событие.
type Event struct {
	Path      string
	VisitorID string
	UserAgent string
	Referrer  string
}

type Recorder struct {
	db           *gorm.DB
	writeTimeout time.Duration
	wg           sync.WaitGroup
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db, writeTimeout: defaultWriteTimeout}
}

// RecordPageView не блокирует вызывающего.
func (r *Recorder) RecordPageView(ctx context.Context, ev Event) {
	if ev.Path == "" {
		return
	}
	row := models.PageView{
		Path:      truncate(ev.Path, 512),
		VisitorID: ev.VisitorID,
		UserAgent: ev.UserAgent,
		Referrer:  ev.Referrer,
	}
	r.fire(ctx, "page_view", &row)
}

// RecordProjectView пропускается, если id проекта ещё неизвестен.
func (r *Recorder) RecordProjectView(ctx context.Context, projectID string, ev Event) {
	if projectID == "" {
		return
	}
	row := models.ProjectView{
		ProjectID: projectID,
		VisitorID: ev.VisitorID,
		UserAgent: ev.UserAgent,
		Referrer:  ev.Referrer,
	}
	r.fire(ctx, "project_view", &row)
}

func (r *Recorder) fire(ctx context.Context, kind string, row any) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.writeTimeout)
		defer cancel()

		if err := r.db.WithContext(wctx).Create(row).Error; err != nil {
			metrics.AnalyticsEvents.WithLabelValues(kind, "error").Inc()
			logging.Warn().Err(err).Str("kind", kind).Msg("analytics write failed")
			return
		}
		metrics.AnalyticsEvents.WithLabelValues(kind, "ok").Inc()
	}()
}

// Wait дожидается фоновых записей (тесты, остановка сервера).
func (r *Recorder) Wait() {
	r.wg.Wait()
}

// IsLiked: ошибка запроса трактуется как "не лайкнуто".
func (r *Recorder) IsLiked(ctx context.Context, projectID, visitorID string) bool {
	liked, err := r.isLiked(ctx, projectID, visitorID)
	if err != nil {
		logging.Warn().Err(err).Str("project_id", projectID).Msg("like lookup failed")
		return false
	}
	return liked
}

func (r *Recorder) isLiked(ctx context.Context, projectID, visitorID string) (bool, error) {
	if projectID == "" || visitorID == "" {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProjectLike{}).
		Where("project_id = ? AND visitor_id = ?", projectID, visitorID).
		Count(&count).Error
	return count > 0, err
}

// ToggleLike возвращает новое состояние. Операция не атомарна: две быстрые
// попытки одного посетителя могут дать ошибку уникальности или удаление пустоты.
func (r *Recorder) ToggleLike(ctx context.Context, projectID, visitorID string) (bool, error) {
	if projectID == "" || visitorID == "" {
		return false, fmt.Errorf("toggle like: project and visitor are required")
	}

	liked, err := r.isLiked(ctx, projectID, visitorID)
	if err != nil {
		return false, fmt.Errorf("toggle like: check: %w", err)
	}

	if liked {
		err := r.db.WithContext(ctx).
			Where("project_id = ? AND visitor_id = ?", projectID, visitorID).
			Delete(&models.ProjectLike{}).Error
		if err != nil {
			metrics.AnalyticsEvents.WithLabelValues("unlike", "error").Inc()
			return true, fmt.Errorf("toggle like: delete: %w", err)
		}
		metrics.AnalyticsEvents.WithLabelValues("unlike", "ok").Inc()
		return false, nil
	}

	like := models.ProjectLike{ProjectID: projectID, VisitorID: visitorID}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		metrics.AnalyticsEvents.WithLabelValues("like", "error").Inc()
		return false, fmt.Errorf("toggle like: insert: %w", err)
	}
	metrics.AnalyticsEvents.WithLabelValues("like", "ok").Inc()
	return true, nil
}

func (r *Recorder) LikeCount(ctx context.Context, projectID string) int64 {
	return r.count(ctx, &models.ProjectLike{}, projectID)
}

// ViewCount и LikeCount при ошибке возвращают 0.
func (r *Recorder) ViewCount(ctx context.Context, projectID string) int64 {
	return r.count(ctx, &models.ProjectView{}, projectID)
}

func (r *Recorder) count(ctx context.Context, model any, projectID string) int64 {
	var n int64
	if err := r.db.WithContext(ctx).Model(model).
		Where("project_id = ?", projectID).
		Count(&n).Error; err != nil {
		logging.Warn().Err(err).Str("project_id", projectID).Msg("analytics count failed")
		return 0
	}
	return n
}

// DeleteForProject чистит события удалённого проекта.
func DeleteForProject(tx *gorm.DB, projectID string) error {
	if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectLike{}).Error; err != nil {
		return err
	}
	return tx.Where("project_id = ?", projectID).Delete(&models.ProjectView{}).Error
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
