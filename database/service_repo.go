package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/suresh-yadav/portfolio-backend/models"
)

type ServiceRepo struct {
	db *gorm.DB
}

func NewServiceRepo(db *gorm.DB) *ServiceRepo {
	return &ServiceRepo{db}
}

// FindAll returns every service in catalog order
func (r *ServiceRepo) FindAll(ctx context.Context) ([]*models.Service, error) {
	services := []*models.Service{}
	err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&services).Error
	return services, err
}

type DemoProjectRepo struct {
	db *gorm.DB
}

func NewDemoProjectRepo(db *gorm.DB) *DemoProjectRepo {
	return &DemoProjectRepo{db}
}

// FindAll returns every demo project regardless of service
func (r *DemoProjectRepo) FindAll(ctx context.Context) ([]*models.DemoProject, error) {
	demoProjects := []*models.DemoProject{}
	err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&demoProjects).Error
	return demoProjects, err
}
