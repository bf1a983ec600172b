package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AllCategories is the portfolio filter value that disables category filtering.
const AllCategories = "all"

// Category groups portfolio projects.
type Category struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name string    `json:"name" gorm:"type:varchar(100);not null;uniqueIndex" validate:"required,max=100"`
	Slug string    `json:"slug" gorm:"type:varchar(50);not null;uniqueIndex" validate:"required,max=50,slug"`
}

func (c *Category) RecordID() uuid.UUID      { return c.ID }
func (c *Category) SetRecordID(id uuid.UUID) { c.ID = id }

func (c *Category) BeforeSave(tx *gorm.DB) error {
	ensureID(&c.ID)
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	return Validate(c)
}

// Project represents a complete portfolio project with metadata
type Project struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string     `json:"title" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Description string     `json:"description" gorm:"type:text;not null" validate:"required"`
	Image       string     `json:"image" gorm:"type:text;not null" validate:"required"`
	CategoryID  uuid.UUID  `json:"categoryId" gorm:"type:uuid;not null;index" validate:"required"`
	Category    *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE"`
	Tags        StringList `json:"tags" gorm:"not null" validate:"dive,max=100"`
	DemoURL     *string    `json:"demoUrl,omitempty" gorm:"type:text" validate:"omitempty,url"`
	GithubURL   *string    `json:"githubUrl,omitempty" gorm:"type:text" validate:"omitempty,url"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (p *Project) RecordID() uuid.UUID      { return p.ID }
func (p *Project) SetRecordID(id uuid.UUID) { p.ID = id }

func (p *Project) BeforeSave(tx *gorm.DB) error {
	ensureID(&p.ID)
	p.Tags = NormalizeList(p.Tags)
	p.DemoURL = nilIfBlank(p.DemoURL)
	p.GithubURL = nilIfBlank(p.GithubURL)
	return Validate(p)
}
