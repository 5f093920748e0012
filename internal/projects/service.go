// Package projects: выборки портфолио: списки, карточка по слагу, похожие проекты.
// Каждый метод отдаёт снимок на момент запроса; результаты кэшируются до инвалидации.
package projects

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"studio-site/internal/cache"
	"studio-site/internal/metrics"
	"studio-site/internal/models"
	"studio-site/internal/slug"
)

var ErrNotFound = errors.New("project not found")

const (
	// CacheEntity: все ключи кэша проектов начинаются с него.
	CacheEntity = "projects"

	DefaultFeaturedLimit = 6
	MaxFeaturedLimit     = 24
	RelatedLimit         = 3
)

type ImageResolver interface {
	URL(path string) string
	Fallback(index int) string
}

type Service struct {
	db     *gorm.DB
	cache  *cache.Cache
	images ImageResolver
}

func NewService(db *gorm.DB, c *cache.Cache, images ImageResolver) *Service {
	return &Service{db: db, cache: c, images: images}
}

type Image struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Caption  string `json:"caption,omitempty"`
	Category string `json:"category,omitempty"`
}

// View: проект в том виде, в каком его получает сайт.
type View struct {
	ID          string               `json:"id"`
	Slug        string               `json:"slug"`
	Title       string               `json:"title"`
	Address     string               `json:"address"`
	Description string               `json:"description"`
	Category    models.Category      `json:"category"`
	Status      models.ProjectStatus `json:"status"`
	Division    string               `json:"division,omitempty"`
	StartDate   *time.Time           `json:"start_date,omitempty"`
	EndDate     *time.Time           `json:"end_date,omitempty"`
	Latitude    *float64             `json:"latitude,omitempty"`
	Longitude   *float64             `json:"longitude,omitempty"`
	CoverURL    string               `json:"cover_url"`
	Fallback    bool                 `json:"fallback_image"`
	Images      []Image              `json:"images"`
	CreatedAt   time.Time            `json:"created_at"`
}

type Detail struct {
	Project       View   `json:"project"`
	CanonicalSlug string `json:"canonical_slug"`
	// Redirect: запрос пришёл не по каноническому слагу (например, по сырому id).
	Redirect bool `json:"redirect"`
}

// ToView: index задаёт позицию в списке, по ней выбирается заглушка.
func (s *Service) ToView(p models.Project, index int) View {
	v := View{
		ID:          p.ID,
		Slug:        slug.Build(p.Title, p.ID),
		Title:       p.Title,
		Address:     p.Address,
		Description: p.Description,
		Category:    p.Category,
		Status:      p.Status,
		Division:    p.Division,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		Images:      make([]Image, 0, len(p.Images)),
		CreatedAt:   p.CreatedAt,
	}
	for _, img := range p.Images {
		v.Images = append(v.Images, Image{
			ID:       img.ID,
			URL:      s.images.URL(img.Path),
			Caption:  img.Caption,
			Category: img.Category,
		})
	}
	if len(v.Images) > 0 {
		v.CoverURL = v.Images[0].URL
	} else {
		v.CoverURL = s.images.Fallback(index)
		v.Fallback = true
	}
	return v
}

func (s *Service) toViews(list []models.Project) []View {
	out := make([]View, 0, len(list))
	for i, p := range list {
		out = append(out, s.ToView(p, i))
	}
	return out
}

func withImages(db *gorm.DB) *gorm.DB {
	return db.Preload("Images", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at asc")
	})
}

// All отдаёт все проекты с картинками, новые первыми.
func (s *Service) All(ctx context.Context) ([]models.Project, error) {
	return cache.Remember(s.cache, cache.Key(CacheEntity, nil), func() ([]models.Project, error) {
		var list []models.Project
		if err := withImages(s.db.WithContext(ctx)).Order("created_at desc").Find(&list).Error; err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		return list, nil
	})
}

// ListFeatured отдаёт последние созданные проекты для карусели.
func (s *Service) ListFeatured(ctx context.Context, limit int) ([]View, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	if limit > MaxFeaturedLimit {
		limit = MaxFeaturedLimit
	}

	key := cache.Key(CacheEntity, map[string]int{"featured": limit})
	return cache.Remember(s.cache, key, func() ([]View, error) {
		var list []models.Project
		if err := withImages(s.db.WithContext(ctx)).
			Order("created_at desc").
			Limit(limit).
			Find(&list).Error; err != nil {
			return nil, fmt.Errorf("list featured: %w", err)
		}
		return s.toViews(list), nil
	})
}

// ListByCategory фильтрует без учёта регистра; пустая категория — все проекты.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]View, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return s.toViews(all), nil
	}

	filtered := make([]models.Project, 0, len(all))
	for _, p := range all {
		if strings.EqualFold(string(p.Category), category) {
			filtered = append(filtered, p)
		}
	}
	return s.toViews(filtered), nil
}

// ListByStatus отбирает проекты для карты; пустой статус возвращает все.
func (s *Service) ListByStatus(ctx context.Context, status string) ([]models.Project, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	status = strings.TrimSpace(status)
	if status == "" {
		return all, nil
	}
	out := make([]models.Project, 0, len(all))
	for _, p := range all {
		if strings.EqualFold(string(p.Status), status) {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetDetail резолвит слаг или id и грузит проект с картинками.
func (s *Service) GetDetail(ctx context.Context, slugOrID string) (*Detail, error) {
	slugOrID = strings.TrimSpace(slugOrID)
	if slugOrID == "" {
		return nil, ErrNotFound
	}

	p, err := s.Resolve(ctx, slugOrID)
	if err != nil {
		return nil, err
	}

	// ключ по id: произвольные слаги одного проекта делят одну запись
	key := cache.Key(CacheEntity, map[string]string{"detail": p.ID})
	view, err := cache.Remember(s.cache, key, func() (View, error) {
		var full models.Project
		if err := withImages(s.db.WithContext(ctx)).First(&full, "id = ?", p.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return View{}, ErrNotFound
			}
			return View{}, fmt.Errorf("load project: %w", err)
		}
		return s.ToView(full, 0), nil
	})
	if err != nil {
		return nil, err
	}

	return &Detail{
		Project:       view,
		CanonicalSlug: view.Slug,
		Redirect:      slugOrID != view.Slug,
	}, nil
}

// ListRelated подбирает проекты той же категории, кроме текущего.
func (s *Service) ListRelated(ctx context.Context, category models.Category, excludeID string, limit int) ([]View, error) {
	if limit <= 0 {
		limit = RelatedLimit
	}

	key := cache.Key(CacheEntity, map[string]any{"related": category, "exclude": excludeID, "limit": limit})
	return cache.Remember(s.cache, key, func() ([]View, error) {
		var list []models.Project
		if err := withImages(s.db.WithContext(ctx)).
			Where("LOWER(category) = LOWER(?) AND id <> ?", string(category), excludeID).
			Order("created_at desc").
			Limit(limit).
			Find(&list).Error; err != nil {
			return nil, fmt.Errorf("list related: %w", err)
		}
		return s.toViews(list), nil
	})
}

// Invalidate вызывается после любой мутации проектов или их картинок.
func (s *Service) Invalidate() {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(CacheEntity)
	metrics.CacheInvalidations.WithLabelValues(CacheEntity).Inc()
}
