package database

import (
	"context"

	"gorm.io/gorm"
)

type Database struct {
	db                 *gorm.DB
	blogPostRepo       *BlogPostRepo
	projectRepo        *ProjectRepo
	categoryRepo       *CategoryRepo
	serviceRepo        *ServiceRepo
	demoProjectRepo    *DemoProjectRepo
	testimonialRepo    *TestimonialRepo
	faqRepo            *FAQRepo
	contactMessageRepo *ContactMessageRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                 db,
		blogPostRepo:       NewBlogPostRepo(db),
		projectRepo:        NewProjectRepo(db),
		categoryRepo:       NewCategoryRepo(db),
		serviceRepo:        NewServiceRepo(db),
		demoProjectRepo:    NewDemoProjectRepo(db),
		testimonialRepo:    NewTestimonialRepo(db),
		faqRepo:            NewFAQRepo(db),
		contactMessageRepo: NewContactMessageRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) ServiceRepo() *ServiceRepo {
	return d.serviceRepo
}

func (d Database) DemoProjectRepo() *DemoProjectRepo {
	return d.demoProjectRepo
}

func (d Database) TestimonialRepo() *TestimonialRepo {
	return d.testimonialRepo
}

func (d Database) FAQRepo() *FAQRepo {
	return d.faqRepo
}

func (d Database) ContactMessageRepo() *ContactMessageRepo {
	return d.contactMessageRepo
}

// DB returns the shared handle, for the generic record repositories and fixture tooling.
func (d Database) DB() *gorm.DB {
	return d.db
}

// Ping checks that the store answers a trivial query.
func (d Database) Ping(ctx context.Context) error {
	var result int
	return d.db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error
}
