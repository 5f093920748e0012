package models

import "time"

// Справочные таблицы сайта, правятся только из админки.

// ContentMeta: общие поля справочных таблиц.
type ContentMeta struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SortOrder int       `gorm:"default:0;index" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *ContentMeta) Meta() *ContentMeta { return m }

type Service struct {
	ContentMeta
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug" binding:"required,slug"`
	Title       string `gorm:"size:255;not null" json:"title" binding:"required,min=2,max=255"`
	Summary     string `gorm:"size:512" json:"summary" binding:"max=512"`
	Description string `gorm:"type:text" json:"description"`
	Icon        Icon   `gorm:"type:varchar(32)" json:"icon"`
}

func (Service) TableName() string { return "services" }

type TeamMember struct {
	ContentMeta
	Name      string `gorm:"size:255;not null" json:"name" binding:"required,min=2,max=255"`
	Position  string `gorm:"size:255" json:"position" binding:"max=255"`
	Bio       string `gorm:"type:text" json:"bio"`
	PhotoURL  string `gorm:"type:text" json:"photo_url" binding:"omitempty,url|startswith=/"`
	IsFounder bool   `gorm:"default:false" json:"is_founder"`
}

func (TeamMember) TableName() string { return "team_members" }

type Milestone struct {
	ContentMeta
	Year        int    `gorm:"not null;index" json:"year" binding:"required,min=1900,max=2100"`
	Title       string `gorm:"size:255;not null" json:"title" binding:"required,max=255"`
	Description string `gorm:"type:text" json:"description"`
}

func (Milestone) TableName() string { return "milestones" }

type Achievement struct {
	ContentMeta
	Title       string `gorm:"size:255;not null" json:"title" binding:"required,max=255"`
	Value       string `gorm:"size:50" json:"value" binding:"max=50"` // "250+", "15 лет"
	Description string `gorm:"type:text" json:"description"`
	Icon        Icon   `gorm:"type:varchar(32)" json:"icon"`
}

func (Achievement) TableName() string { return "achievements" }

type CoreValue struct {
	ContentMeta
	Title       string `gorm:"size:255;not null" json:"title" binding:"required,max=255"`
	Description string `gorm:"type:text" json:"description"`
	Icon        Icon   `gorm:"type:varchar(32)" json:"icon"`
}

func (CoreValue) TableName() string { return "core_values" }

type BrandPartner struct {
	ContentMeta
	Name       string `gorm:"size:255;not null" json:"name" binding:"required,max=255"`
	LogoURL    string `gorm:"type:text" json:"logo_url" binding:"omitempty,url|startswith=/"`
	WebsiteURL string `gorm:"type:text" json:"website_url" binding:"omitempty,url"`
}

func (BrandPartner) TableName() string { return "brand_partners" }

type InteriorCategory struct {
	ContentMeta
	Key         Category `gorm:"column:category_key;type:varchar(50);uniqueIndex;not null" json:"key" binding:"required,category"`
	Name        string   `gorm:"size:255;not null" json:"name" binding:"required,max=255"`
	Description string   `gorm:"type:text" json:"description"`
	ImageURL    string   `gorm:"type:text" json:"image_url" binding:"omitempty,url|startswith=/"`
}

func (InteriorCategory) TableName() string { return "interior_categories" }

type Material struct {
	ContentMeta
	Name        string `gorm:"size:255;not null" json:"name" binding:"required,max=255"`
	Kind        string `gorm:"size:100;index" json:"kind" binding:"max=100"` // камень, дерево, плитка...
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"type:text" json:"image_url" binding:"omitempty,url|startswith=/"`
}

func (Material) TableName() string { return "materials" }

type UniqueFeature struct {
	ContentMeta
	Title       string `gorm:"size:255;not null" json:"title" binding:"required,max=255"`
	Description string `gorm:"type:text" json:"description"`
	Icon        Icon   `gorm:"type:varchar(32)" json:"icon"`
}

func (UniqueFeature) TableName() string { return "unique_features" }

// All перечисляет все модели для миграции.
func All() []interface{} {
	return []interface{}{
		&User{},
		&AuditLog{},
		&Project{},
		&ProjectImage{},
		&Inquiry{},
		&PageView{},
		&ProjectView{},
		&ProjectLike{},
		&Service{},
		&TeamMember{},
		&Milestone{},
		&Achievement{},
		&CoreValue{},
		&BrandPartner{},
		&InteriorCategory{},
		&Material{},
		&UniqueFeature{},
	}
}
