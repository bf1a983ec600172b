package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FAQCategory string

const (
	FAQCategoryServices  FAQCategory = "services"
	FAQCategoryTraining  FAQCategory = "training"
	FAQCategoryTechnical FAQCategory = "technical"
	FAQCategoryPricing   FAQCategory = "pricing"
)

// FAQ is a question/answer pair. Order is the manual position within the list; ties fall
// back to creation time.
type FAQ struct {
	ID             uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	Question       string      `json:"question" gorm:"type:varchar(300);not null" validate:"required,max=300"`
	Answer         string      `json:"answer" gorm:"type:text;not null" validate:"required"`
	Category       FAQCategory `json:"category" gorm:"type:varchar(20);not null" validate:"required,oneof=services training technical pricing"`
	AdditionalInfo *string     `json:"additionalInfo,omitempty" gorm:"type:text"`
	IsActive       bool        `json:"isActive" gorm:"not null;index"`
	Order          int         `json:"order" gorm:"column:display_order;not null;index:idx_faqs_ordering,priority:1" validate:"min=0"`
	CreatedAt      time.Time   `json:"createdAt" gorm:"index:idx_faqs_ordering,priority:2"`
}

func (FAQ) TableName() string {
	return "faqs"
}

func NewFAQ() *FAQ {
	return &FAQ{Category: FAQCategoryServices, IsActive: true}
}

func (f *FAQ) RecordID() uuid.UUID      { return f.ID }
func (f *FAQ) SetRecordID(id uuid.UUID) { f.ID = id }

func (f *FAQ) BeforeSave(tx *gorm.DB) error {
	ensureID(&f.ID)
	if f.Category == "" {
		f.Category = FAQCategoryServices
	}
	f.AdditionalInfo = nilIfBlank(f.AdditionalInfo)
	return Validate(f)
}
