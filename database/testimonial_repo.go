package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/suresh-yadav/portfolio-backend/models"
)

type TestimonialRepo struct {
	db *gorm.DB
}

func NewTestimonialRepo(db *gorm.DB) *TestimonialRepo {
	return &TestimonialRepo{db}
}

// ListActive returns the active testimonials, newest first.
func (r *TestimonialRepo) ListActive(ctx context.Context) ([]*models.Testimonial, error) {
	testimonials := []*models.Testimonial{}
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Order("id DESC").
		Find(&testimonials).Error
	return testimonials, err
}

// Carousel returns the first n testimonials, or all of them when there are fewer than n.
func Carousel(testimonials []*models.Testimonial, n int) []*models.Testimonial {
	if n < 0 {
		n = 0
	}
	if len(testimonials) < n {
		n = len(testimonials)
	}
	return testimonials[:n]
}
