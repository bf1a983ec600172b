package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/suresh-yadav/portfolio-backend/models"
)

type FAQRepo struct {
	db *gorm.DB
}

func NewFAQRepo(db *gorm.DB) *FAQRepo {
	return &FAQRepo{db}
}

// ListActive returns the active FAQs by display order, then creation time.
func (r *FAQRepo) ListActive(ctx context.Context) ([]*models.FAQ, error) {
	faqs := []*models.FAQ{}
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&faqs).Error
	return faqs, err
}
