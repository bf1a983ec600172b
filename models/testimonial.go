package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultRating = 5

type Testimonial struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Designation string    `json:"designation" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Message     string    `json:"message" gorm:"type:text;not null" validate:"required"`
	Image       *string   `json:"image,omitempty" gorm:"type:text"`
	Rating      int       `json:"rating" gorm:"not null" validate:"min=1,max=5"`
	IsActive    bool      `json:"isActive" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewTestimonial returns a testimonial carrying the defaults a new record starts with.
func NewTestimonial() *Testimonial {
	return &Testimonial{Rating: DefaultRating, IsActive: true}
}

func (t *Testimonial) RecordID() uuid.UUID      { return t.ID }
func (t *Testimonial) SetRecordID(id uuid.UUID) { t.ID = id }

func (t *Testimonial) BeforeSave(tx *gorm.DB) error {
	ensureID(&t.ID)
	t.Image = nilIfBlank(t.Image)
	return Validate(t)
}
