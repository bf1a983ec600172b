package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/suresh-yadav/portfolio-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// List returns the projects in the category with categorySlug, oldest first. An empty slug
// or models.AllCategories returns every project; an unknown slug returns none.
func (r *ProjectRepo) List(ctx context.Context, categorySlug string) ([]*models.Project, error) {
	tx := r.db.WithContext(ctx).Preload("Category")
	if categorySlug != "" && categorySlug != models.AllCategories {
		tx = tx.Joins("JOIN categories ON categories.id = projects.category_id").
			Where("categories.slug = ?", categorySlug)
	}

	projects := []*models.Project{}
	err := tx.Order("projects.created_at ASC").Order("projects.id ASC").Find(&projects).Error
	return projects, err
}
