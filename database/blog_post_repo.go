package database

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/suresh-yadav/portfolio-backend/models"
)

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// ListPublished returns one page of published posts, newest first. A non-empty query keeps
// only posts whose title or content contains it, ignoring case.
func (r *BlogPostRepo) ListPublished(ctx context.Context, query, page string, pageSize int) ([]*models.BlogPost, Page, error) {
	var total int64
	if err := r.published(ctx, query).Count(&total).Error; err != nil {
		return nil, Page{}, err
	}

	p := Paginate(total, pageSize, page)
	blogPosts := []*models.BlogPost{}
	err := r.published(ctx, query).
		Preload("Author").
		Order("published_at DESC").
		Order("id DESC").
		Limit(p.Size).
		Offset(p.Offset()).
		Find(&blogPosts).Error
	return blogPosts, p, err
}

// FindPublishedBySlug returns the published post with slug, or nil when there is none.
// Unpublished posts are treated as missing.
func (r *BlogPostRepo) FindPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var blogPost models.BlogPost
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("slug = ? AND published = ?", slug, true).
		First(&blogPost).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blogPost, nil
}

func (r *BlogPostRepo) published(ctx context.Context, query string) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&models.BlogPost{}).Where("published = ?", true)
	if query = strings.TrimSpace(query); query != "" {
		pattern := containsPattern(query)
		tx = tx.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	return tx
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching values that contain s literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
