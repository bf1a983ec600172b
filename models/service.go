package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is an offering in the services catalog. ProcessSteps keeps the order the
// steps are presented in.
type Service struct {
	ID           uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	Title        string        `json:"title" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Description  string        `json:"description" gorm:"type:text;not null" validate:"required"`
	Icon         string        `json:"icon" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	ProcessSteps StringList    `json:"processSteps" gorm:"not null" validate:"dive,max=300"`
	DemoProjects []DemoProject `json:"demoProjects,omitempty" gorm:"foreignKey:ServiceID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func (s *Service) RecordID() uuid.UUID      { return s.ID }
func (s *Service) SetRecordID(id uuid.UUID) { s.ID = id }

func (s *Service) BeforeSave(tx *gorm.DB) error {
	ensureID(&s.ID)
	s.ProcessSteps = NormalizeList(s.ProcessSteps)
	return Validate(s)
}

// DemoProject is a sample project shown under a service. It is removed with its service.
type DemoProject struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ServiceID   uuid.UUID  `json:"serviceId" gorm:"type:uuid;not null;index" validate:"required"`
	Title       string     `json:"title" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Description string     `json:"description" gorm:"type:text;not null" validate:"required"`
	Image       string     `json:"image" gorm:"type:text;not null" validate:"required"`
	Tags        StringList `json:"tags" gorm:"not null" validate:"dive,max=100"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (d *DemoProject) RecordID() uuid.UUID      { return d.ID }
func (d *DemoProject) SetRecordID(id uuid.UUID) { d.ID = id }

func (d *DemoProject) BeforeSave(tx *gorm.DB) error {
	ensureID(&d.ID)
	d.Tags = NormalizeList(d.Tags)
	return Validate(d)
}
