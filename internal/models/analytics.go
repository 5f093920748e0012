package models

import "time"

// PageView: append-only событие просмотра страницы.
type PageView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Path      string    `gorm:"size:512;not null;index" json:"path"`
	VisitorID string    `gorm:"size:64;index" json:"visitor_id"`
	UserAgent string    `gorm:"type:text" json:"user_agent"`
	Referrer  string    `gorm:"type:text" json:"referrer"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (PageView) TableName() string { return "page_views" }

type ProjectView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID string    `gorm:"type:varchar(36);not null;index" json:"project_id"`
	VisitorID string    `gorm:"size:64;index" json:"visitor_id"`
	UserAgent string    `gorm:"type:text" json:"user_agent"`
	Referrer  string    `gorm:"type:text" json:"referrer"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (ProjectView) TableName() string { return "project_views" }

// ProjectLike: не больше одной строки на пару (проект, посетитель).
type ProjectLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_project_likes_pair" json:"project_id"`
	VisitorID string    `gorm:"size:64;not null;uniqueIndex:idx_project_likes_pair" json:"visitor_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProjectLike) TableName() string { return "project_likes" }
