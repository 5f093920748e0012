package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category string
type ProjectStatus string

const (
	CategoryBathroom   Category = "bathroom"
	CategoryBedroom    Category = "bedroom"
	CategoryDining     Category = "dining"
	CategoryKitchen    Category = "kitchen"
	CategoryFacade     Category = "facade"
	CategoryLivingRoom Category = "living_room"
	CategoryTerrace    Category = "terrace"

	StatusCompleted ProjectStatus = "completed"
	StatusOngoing   ProjectStatus = "ongoing"
	StatusPlanned   ProjectStatus = "planned"
)

var Categories = []Category{
	CategoryBathroom,
	CategoryBedroom,
	CategoryDining,
	CategoryKitchen,
	CategoryFacade,
	CategoryLivingRoom,
	CategoryTerrace,
}

var ProjectStatuses = []ProjectStatus{StatusCompleted, StatusOngoing, StatusPlanned}

// ParseCategory принимает значение в любом регистре.
func ParseCategory(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

func ParseProjectStatus(s string) (ProjectStatus, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, st := range ProjectStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Label даёт человекочитаемое имя категории: "living_room" -> "Living Room".
func (c Category) Label() string {
	parts := strings.Split(string(c), "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

type Project struct {
	ID          string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string        `gorm:"size:255;not null" json:"title"`
	Address     string        `gorm:"size:255" json:"address"`
	Description string        `gorm:"type:text" json:"description"`
	Category    Category      `gorm:"type:varchar(50);not null;index" json:"category"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Division    string        `gorm:"size:100" json:"division"`

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Images []ProjectImage `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// HasLocation сообщает, есть ли у проекта обе координаты.
func (p Project) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}

type ProjectImage struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID string    `gorm:"type:varchar(36);not null;index" json:"project_id"`
	Path      string    `gorm:"type:text;not null" json:"path"` // путь в хранилище или абсолютный URL
	Caption   string    `gorm:"size:255" json:"caption,omitempty"`
	Category  string    `gorm:"size:50" json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *ProjectImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
