package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/suresh-yadav/portfolio-backend/models"
)

type ContactMessageRepo struct {
	db *gorm.DB
}

func NewContactMessageRepo(db *gorm.DB) *ContactMessageRepo {
	return &ContactMessageRepo{db}
}

// Add inserts a new contact message into the database
func (r *ContactMessageRepo) Add(ctx context.Context, msg *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}
