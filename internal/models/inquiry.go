package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InquiryStatus string

const (
	InquiryNew        InquiryStatus = "new"
	InquiryInProgress InquiryStatus = "in_progress"
	InquiryResolved   InquiryStatus = "resolved"
)

var InquiryStatuses = []InquiryStatus{InquiryNew, InquiryInProgress, InquiryResolved}

func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryNew, InquiryInProgress, InquiryResolved:
		return true
	}
	return false
}

// Inquiry: заявка с формы обратной связи.
type Inquiry struct {
	ID          string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string        `gorm:"size:255;not null" json:"name"`
	Email       string        `gorm:"size:255;not null;index" json:"email"`
	Phone       string        `gorm:"size:50" json:"phone"`
	ProjectType *Category     `gorm:"type:varchar(50)" json:"project_type,omitempty"`
	Message     string        `gorm:"type:text;not null" json:"message"`
	Status      InquiryStatus `gorm:"type:varchar(20);not null;default:'new';index" json:"status"`
	Latitude    *float64      `json:"latitude,omitempty"`
	Longitude   *float64      `json:"longitude,omitempty"`
	CreatedAt   time.Time     `gorm:"index" json:"created_at"`
}

func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Status == "" {
		i.Status = InquiryNew
	}
	return nil
}
