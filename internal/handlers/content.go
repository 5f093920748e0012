package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"studio-site/internal/logging"
	"studio-site/internal/metrics"
	"studio-site/internal/models"
)

var errRowNotFound = errors.New("row not found")

// bindFailure отличает ошибку разбора тела от ошибок БД.
type bindFailure struct{ error }

func (b bindFailure) Unwrap() error { return b.error }

// указатель на модель справочной таблицы
type contentRow[T any] interface {
	*T
	Meta() *models.ContentMeta
}

// contentTable: операции одной справочной таблицы; реализуется дженериком table.
type contentTable interface {
	list(db *gorm.DB) (any, error)
	create(c *gin.Context, db *gorm.DB) (any, uint, error)
	update(c *gin.Context, db *gorm.DB, id uint) (any, error)
	remove(db *gorm.DB, id uint) error
}

type table[T any, PT contentRow[T]] struct {
	order string
}

func (t table[T, PT]) list(db *gorm.DB) (any, error) {
	rows := make([]T, 0)
	if err := db.Order(t.order).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (t table[T, PT]) create(c *gin.Context, db *gorm.DB) (any, uint, error) {
	var row T
	if err := c.ShouldBindJSON(&row); err != nil {
		return nil, 0, bindFailure{err}
	}
	meta := PT(&row).Meta()
	meta.ID = 0
	if err := db.Create(&row).Error; err != nil {
		return nil, 0, fmt.Errorf("create: %w", err)
	}
	return row, meta.ID, nil
}

func (t table[T, PT]) update(c *gin.Context, db *gorm.DB, id uint) (any, error) {
	var existing T
	if err := db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errRowNotFound
		}
		return nil, err
	}

	var row T
	if err := c.ShouldBindJSON(&row); err != nil {
		return nil, bindFailure{err}
	}
	meta := PT(&row).Meta()
	meta.ID = id
	meta.CreatedAt = PT(&existing).Meta().CreatedAt
	if err := db.Save(&row).Error; err != nil {
		return nil, fmt.Errorf("update: %w", err)
	}
	return row, nil
}

func (t table[T, PT]) remove(db *gorm.DB, id uint) error {
	res := db.Delete(PT(new(T)), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errRowNotFound
	}
	return nil
}

const bySortOrder = "sort_order asc, id asc"

// contentTables: имя таблицы в URL -> операции.
var contentTables = map[string]contentTable{
	"services":            table[models.Service, *models.Service]{order: bySortOrder},
	"team_members":        table[models.TeamMember, *models.TeamMember]{order: "is_founder desc, " + bySortOrder},
	"milestones":          table[models.Milestone, *models.Milestone]{order: "year asc, " + bySortOrder},
	"achievements":        table[models.Achievement, *models.Achievement]{order: bySortOrder},
	"core_values":         table[models.CoreValue, *models.CoreValue]{order: bySortOrder},
	"brand_partners":      table[models.BrandPartner, *models.BrandPartner]{order: bySortOrder},
	"interior_categories": table[models.InteriorCategory, *models.InteriorCategory]{order: bySortOrder},
	"materials":           table[models.Material, *models.Material]{order: "kind asc, " + bySortOrder},
	"unique_features":     table[models.UniqueFeature, *models.UniqueFeature]{order: bySortOrder},
}

// ContentTables возвращает отсортированные имена, для дашборда.
func ContentTables() []string {
	out := make([]string, 0, len(contentTables))
	for name := range contentTables {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func contentTableOf(c *gin.Context) (string, contentTable, bool) {
	name := c.Param("table")
	t, ok := contentTables[name]
	if !ok {
		jsonError(c, http.StatusNotFound, "Неизвестная таблица")
		return "", nil, false
	}
	return name, t, true
}

func rowID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		jsonError(c, http.StatusBadRequest, "Некорректный ID")
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) invalidateContent(name string) {
	if h.cache == nil {
		return
	}
	h.cache.Invalidate(name)
	metrics.CacheInvalidations.WithLabelValues(name).Inc()
}

// ListContent: публичное чтение справочника, кэшируется до первой правки.
func (h *Handler) ListContent(c *gin.Context) {
	name, _, ok := contentTableOf(c)
	if !ok {
		return
	}
	rows, err := h.loadContent(c.Request.Context(), name)
	if err != nil {
		logging.Error().Err(err).Str("table", name).Msg("list content")
		jsonError(c, http.StatusInternalServerError, "Ошибка загрузки данных")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}

func (h *Handler) CreateContent(c *gin.Context) {
	name, t, ok := contentTableOf(c)
	if !ok {
		return
	}

	row, id, err := t.create(c, h.db.WithContext(c.Request.Context()))
	if err != nil {
		h.contentError(c, name, err)
		return
	}

	h.audit(c, name, strconv.FormatUint(uint64(id), 10), "create", "Добавлена запись в "+name)
	h.invalidateContent(name)
	c.JSON(http.StatusCreated, row)
}

func (h *Handler) UpdateContent(c *gin.Context) {
	name, t, ok := contentTableOf(c)
	if !ok {
		return
	}
	id, ok := rowID(c)
	if !ok {
		return
	}

	row, err := t.update(c, h.db.WithContext(c.Request.Context()), id)
	if err != nil {
		h.contentError(c, name, err)
		return
	}

	h.audit(c, name, c.Param("id"), "update", "Изменена запись в "+name)
	h.invalidateContent(name)
	c.JSON(http.StatusOK, row)
}

func (h *Handler) DeleteContent(c *gin.Context) {
	name, t, ok := contentTableOf(c)
	if !ok {
		return
	}
	id, ok := rowID(c)
	if !ok {
		return
	}

	if err := t.remove(h.db.WithContext(c.Request.Context()), id); err != nil {
		h.contentError(c, name, err)
		return
	}

	h.audit(c, name, c.Param("id"), "delete", "Удалена запись из "+name)
	h.invalidateContent(name)
	c.Status(http.StatusNoContent)
}

// contentError различает ошибки разбора, отсутствие строки и ошибки БД.
func (h *Handler) contentError(c *gin.Context, table string, err error) {
	var bf bindFailure
	switch {
	case errors.As(err, &bf):
		bindError(c, bf.error)
	case errors.Is(err, errRowNotFound):
		jsonError(c, http.StatusNotFound, "Запись не найдена")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		jsonError(c, http.StatusConflict, "Запись с таким ключом уже существует")
	default:
		logging.Error().Err(err).Str("table", table).Msg("content write")
		jsonError(c, http.StatusInternalServerError, "Ошибка сохранения")
	}
}
