package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Author is the user a blog post is attributed to.
type Author struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Username    string    `json:"username" gorm:"type:varchar(150);not null;uniqueIndex" validate:"required,max=150"`
	DisplayName string    `json:"displayName" gorm:"type:varchar(200);not null" validate:"max=200"`
	Email       string    `json:"email" gorm:"type:varchar(254);not null" validate:"omitempty,email,max=254"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (a *Author) RecordID() uuid.UUID      { return a.ID }
func (a *Author) SetRecordID(id uuid.UUID) { a.ID = id }

func (a *Author) BeforeSave(tx *gorm.DB) error {
	ensureID(&a.ID)
	return Validate(a)
}
