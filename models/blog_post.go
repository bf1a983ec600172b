package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogPost represents a complete blog post with metadata
type BlogPost struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string     `json:"title" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Slug        string     `json:"slug" gorm:"type:varchar(50);not null;uniqueIndex" validate:"required,max=50,slug"`
	Content     string     `json:"content" gorm:"type:text;not null" validate:"required"`
	Excerpt     string     `json:"excerpt" gorm:"type:text;not null"`
	Image       *string    `json:"image,omitempty" gorm:"type:text"`
	AuthorID    uuid.UUID  `json:"authorId" gorm:"type:uuid;not null;index" validate:"required"`
	Author      *Author    `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	Tags        StringList `json:"tags" gorm:"not null" validate:"dive,max=100"`
	Published   bool       `json:"published" gorm:"not null;index"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" gorm:"index"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (p *BlogPost) RecordID() uuid.UUID      { return p.ID }
func (p *BlogPost) SetRecordID(id uuid.UUID) { p.ID = id }

// BeforeSave fills the slug from the title and keeps published_at in step with the
// published flag: publishing stamps it once, unpublishing clears it.
func (p *BlogPost) BeforeSave(tx *gorm.DB) error {
	ensureID(&p.ID)
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	p.Image = nilIfBlank(p.Image)
	p.Tags = NormalizeList(p.Tags)

	switch {
	case p.Published && p.PublishedAt == nil:
		now := tx.NowFunc()
		p.PublishedAt = &now
	case !p.Published:
		p.PublishedAt = nil
	}
	return Validate(p)
}
