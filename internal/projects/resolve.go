package projects

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"studio-site/internal/logging"
	"studio-site/internal/models"
	"studio-site/internal/slug"
)

var shortIDRe = regexp.MustCompile(`^[a-z0-9]+$`)

// Resolve превращает слаг (или сырой id старых ссылок) в проект.
//  1. точное совпадение всей строки с id;
//  2. иначе последний сегмент слага ищется как префикс id.
//
// Восемь символов суффикса не гарантируют уникальности. При нескольких
// кандидатах выигрывает тот, чей канонический слаг совпал с запросом,
// иначе самый старый проект.
func (s *Service) Resolve(ctx context.Context, slugOrID string) (*models.Project, error) {
	db := s.db.WithContext(ctx)

	var p models.Project
	err := db.First(&p, "id = ?", slugOrID).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("resolve by id: %w", err)
	}

	suffix := slug.Suffix(slugOrID)
	if suffix == "" || !shortIDRe.MatchString(suffix) {
		return nil, ErrNotFound
	}

	var candidates []models.Project
	if err := db.Where("id LIKE ?", suffix+"%").
		Order("created_at asc").
		Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("resolve by short id: %w", err)
	}

	switch len(candidates) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &candidates[0], nil
	}

	logging.Warn().
		Str("slug", slugOrID).
		Int("candidates", len(candidates)).
		Msg("ambiguous short id in project slug")

	requested := strings.ToLower(slugOrID)
	for i := range candidates {
		if slug.Build(candidates[i].Title, candidates[i].ID) == requested {
			return &candidates[i], nil
		}
	}
	return &candidates[0], nil
}
