package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactMessage is an inquiry left through the contact form. Once stored it is never
// modified by the submission path.
type ContactMessage struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Email     string    `json:"email" gorm:"type:varchar(254);not null" validate:"required,email,max=254"`
	Subject   string    `json:"subject" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Message   string    `json:"message" gorm:"type:text;not null" validate:"required,max=5000"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

func (m *ContactMessage) RecordID() uuid.UUID      { return m.ID }
func (m *ContactMessage) SetRecordID(id uuid.UUID) { m.ID = id }

func (m *ContactMessage) BeforeSave(tx *gorm.DB) error {
	ensureID(&m.ID)
	return Validate(m)
}
