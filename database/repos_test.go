package database_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/suresh-yadav/portfolio-backend/database"
	"github.com/suresh-yadav/portfolio-backend/database/databasetest"
	"github.com/suresh-yadav/portfolio-backend/errs"
	"github.com/suresh-yadav/portfolio-backend/models"
)

var base = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func at(minutes int) *time.Time {
	t := base.Add(time.Duration(minutes) * time.Minute)
	return &t
}

func seedAuthor(t *testing.T, db *gorm.DB) *models.Author {
	author := &models.Author{Username: "suresh", DisplayName: "Suresh"}
	databasetest.Create(t, db, author)
	return author
}

func seedPost(t *testing.T, db *gorm.DB, author *models.Author, title, content string, published bool, publishedAt *time.Time) *models.BlogPost {
	post := &models.BlogPost{
		Title:       title,
		Content:     content,
		AuthorID:    author.ID,
		Published:   published,
		PublishedAt: publishedAt,
		Tags:        models.StringList{"go"},
	}
	databasetest.Create(t, db, post)
	return post
}

func titles(posts []*models.BlogPost) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}

func TestBlogPostRepoListPublished(t *testing.T) {
	db := databasetest.New(t)
	repo := database.NewBlogPostRepo(db)
	ctx := context.Background()
	author := seedAuthor(t, db)

	for i := 1; i <= 8; i++ {
		seedPost(t, db, author, fmt.Sprintf("Post %d", i), "plain body", true, at(i))
	}
	seedPost(t, db, author, "Draft about Django", "django internals", false, nil)

	t.Run("first page holds the newest posts", func(t *testing.T) {
		posts, page, err := repo.ListPublished(ctx, "", "", 6)
		require.NoError(t, err)
		assert.Equal(t, []string{"Post 8", "Post 7", "Post 6", "Post 5", "Post 4", "Post 3"}, titles(posts))
		assert.Equal(t, int64(8), page.TotalItems)
		assert.Equal(t, 2, page.TotalPages)
		assert.True(t, page.HasNext)
		require.NotNil(t, posts[0].Author)
		assert.Equal(t, "suresh", posts[0].Author.Username)
	})

	t.Run("second page", func(t *testing.T) {
		posts, page, err := repo.ListPublished(ctx, "", "2", 6)
		require.NoError(t, err)
		assert.Equal(t, []string{"Post 2", "Post 1"}, titles(posts))
		assert.False(t, page.HasNext)
	})

	t.Run("invalid and out of range pages", func(t *testing.T) {
		_, page, err := repo.ListPublished(ctx, "", "abc", 6)
		require.NoError(t, err)
		assert.Equal(t, 1, page.Number)

		posts, page, err := repo.ListPublished(ctx, "", "99", 6)
		require.NoError(t, err)
		assert.Equal(t, 2, page.Number)
		assert.Len(t, posts, 2)
	})

	t.Run("search never returns drafts", func(t *testing.T) {
		posts, page, err := repo.ListPublished(ctx, "django", "", 6)
		require.NoError(t, err)
		assert.Empty(t, posts)
		assert.Equal(t, 1, page.TotalPages)
	})
}

func TestBlogPostRepoSearch(t *testing.T) {
	db := databasetest.New(t)
	repo := database.NewBlogPostRepo(db)
	ctx := context.Background()
	author := seedAuthor(t, db)

	seedPost(t, db, author, "Learning GO", "channels", true, at(1))
	seedPost(t, db, author, "Databases", "Postgres and go drivers", true, at(2))
	seedPost(t, db, author, "Discounts", "save 100% today", true, at(3))
	seedPost(t, db, author, "Rust", "ownership", true, at(4))

	posts, _, err := repo.ListPublished(ctx, "Go", "", 6)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Learning GO", "Databases"}, titles(posts))

	posts, _, err = repo.ListPublished(ctx, "100%", "", 6)
	require.NoError(t, err)
	assert.Equal(t, []string{"Discounts"}, titles(posts))

	posts, _, err = repo.ListPublished(ctx, "%", "", 6)
	require.NoError(t, err)
	assert.Equal(t, []string{"Discounts"}, titles(posts))
}

func TestBlogPostRepoSearchFoldsUnicode(t *testing.T) {
	db := databasetest.New(t)
	repo := database.NewBlogPostRepo(db)
	ctx := context.Background()
	author := seedAuthor(t, db)

	seedPost(t, db, author, "ÉLAN Vital", "notes", true, at(1))
	seedPost(t, db, author, "Menu", "Crème BRÛLÉE recipe", true, at(2))

	posts, _, err := repo.ListPublished(ctx, "élan", "", 6)
	require.NoError(t, err)
	assert.Equal(t, []string{"ÉLAN Vital"}, titles(posts))

	posts, _, err = repo.ListPublished(ctx, "brûlée", "", 6)
	require.NoError(t, err)
	assert.Equal(t, []string{"Menu"}, titles(posts))
}

func TestBlogPostRepoTiesBreakByID(t *testing.T) {
	db := databasetest.New(t)
	repo := database.NewBlogPostRepo(db)
	author := seedAuthor(t, db)

	var ids []string
	for i := 0; i < 3; i++ {
		post := seedPost(t, db, author, fmt.Sprintf("Same time %d", i), "body", true, at(0))
		ids = append(ids, post.ID.String())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))

	posts, _, err := repo.ListPublished(context.Background(), "", "1", 6)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	for i, post := range posts {
		assert.Equal(t, ids[i], post.ID.String())
	}
}

func TestBlogPostRepoFindPublishedBySlug(t *testing.T) {
	db := databasetest.New(t)
	repo := database.NewBlogPostRepo(db)
	ctx := context.Background()
	author := seedAuthor(t, db)

	seedPost(t, db, author, "Hello World", "body", true, nil)
	seedPost(t, db, author, "Secret Draft", "body", false, nil)

	post, err := repo.FindPublishedBySlug(ctx, "hello-world")
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.NotNil(t, post.PublishedAt)
	assert.Equal(t, author.ID, post.Author.ID)

	post, err = repo.FindPublishedBySlug(ctx, "secret-draft")
	require.NoError(t, err)
	assert.Nil(t, post)

	post, err = repo.FindPublishedBySlug(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, post)
}

func TestBlogPostPublishLifecycle(t *testing.T) {
	db := databasetest.New(t)
	author := seedAuthor(t, db)
	posts := database.NewRecordRepo[models.BlogPost](db, "created_at DESC")
	ctx := context.Background()

	post := seedPost(t, db, author, "Lifecycle", "body", false, nil)
	assert.Nil(t, post.PublishedAt)

	post.Published = true
	require.NoError(t, posts.Update(ctx, post))
	stored, err := posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PublishedAt)

	stored.Published = false
	require.NoError(t, posts.Update(ctx, stored))
	stored, err = posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.PublishedAt)
}

func TestBlogPostSlugIsUnique(t *testing.T) {
	db := databasetest.New(t)
	author := seedAuthor(t, db)
	seedPost(t, db, author, "Twice", "body", true, nil)

	err := db.Create(&models.BlogPost{Title: "Twice", Content: "again", AuthorID: author.ID}).Error
	require.Error(t, err)
	assert.Equal(t, 409, errs.NewDatabaseError("create", "blog post", err).StatusCode)
}

func seedPortfolio(t *testing.T, db *gorm.DB) (web, data *models.Category) {
	web = &models.Category{Name: "Web Development"}
	data = &models.Category{Name: "Data", Slug: "data"}
	databasetest.Create(t, db, web, data)

	databasetest.Create(t, db,
		&models.Project{Title: "Shop", Description: "d", Image: "shop.png", CategoryID: web.ID, CreatedAt: *at(1)},
		&models.Project{Title: "Pipeline", Description: "d", Image: "p.png", CategoryID: data.ID, CreatedAt: *at(2)},
		&models.Project{Title: "Blog", Description: "d", Image: "b.png", CategoryID: web.ID, CreatedAt: *at(3)},
	)
	return web, data
}

func TestProjectRepoList(t *testing.T) {
	db := databasetest.New(t)
	repo := database.NewProjectRepo(db)
	ctx := context.Background()
	web, _ := seedPortfolio(t, db)
	assert.Equal(t, "web-development", web.Slug)

	projectTitles := func(projects []*models.Project) []string {
		out := []string{}
		for _, p := range projects {
			out = append(out, p.Title)
		}
		return out
	}

	all, err := repo.List(ctx, models.AllCategories)
	require.NoError(t, err)
	assert.Equal(t, []string{"Shop", "Pipeline", "Blog"}, projectTitles(all))

	empty, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, empty, 3)

	filtered, err := repo.List(ctx, "web-development")
	require.NoError(t, err)
	assert.Equal(t, []string{"Shop", "Blog"}, projectTitles(filtered))
	require.NotNil(t, filtered[0].Category)
	assert.Equal(t, "Web Development", filtered[0].Category.Name)

	unknown, err := repo.List(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, unknown)

	categories, err := database.NewCategoryRepo(db).FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Data", categories[0].Name)
}

func TestCategoryDeleteCascades(t *testing.T) {
	db := databasetest.New(t)
	ctx := context.Background()
	web, _ := seedPortfolio(t, db)

	categories := database.NewRecordRepo[models.Category](db, "name ASC")
	removed, err := categories.Delete(ctx, web.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	projects, err := database.NewProjectRepo(db).List(ctx, models.AllCategories)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Pipeline", projects[0].Title)
}

func TestServiceRepos(t *testing.T) {
	db := databasetest.New(t)
	ctx := context.Background()

	training := &models.Service{Title: "Training", Description: "d", Icon: "fa-school", ProcessSteps: models.StringList{" Assess ", "", "Teach"}, CreatedAt: *at(1)}
	consulting := &models.Service{Title: "Consulting", Description: "d", Icon: "fa-briefcase", CreatedAt: *at(2)}
	databasetest.Create(t, db, training, consulting)
	databasetest.Create(t, db,
		&models.DemoProject{ServiceID: training.ID, Title: "Workshop", Description: "d", Image: "w.png", CreatedAt: *at(3)},
		&models.DemoProject{ServiceID: consulting.ID, Title: "Audit", Description: "d", Image: "a.png", CreatedAt: *at(4)},
	)

	services, err := database.NewServiceRepo(db).FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "Training", services[0].Title)
	assert.Equal(t, models.StringList{"Assess", "Teach"}, services[0].ProcessSteps)
	assert.NotNil(t, services[1].ProcessSteps)

	demos, err := database.NewDemoProjectRepo(db).FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, demos, 2)

	removed, err := database.NewRecordRepo[models.Service](db, "").Delete(ctx, training.ID)
	require.NoError(t, err)
	require.True(t, removed)

	demos, err = database.NewDemoProjectRepo(db).FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, demos, 1)
	assert.Equal(t, "Audit", demos[0].Title)
}

func TestTestimonialRepo(t *testing.T) {
	db := databasetest.New(t)
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		testimonial := models.NewTestimonial()
		testimonial.Name = fmt.Sprintf("Client %d", i)
		testimonial.Designation = "CEO"
		testimonial.Message = "Great"
		testimonial.CreatedAt = *at(i)
		testimonial.IsActive = i != 2
		databasetest.Create(t, db, testimonial)
	}

	active, err := database.NewTestimonialRepo(db).ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, "Client 4", active[0].Name)
	assert.Equal(t, "Client 1", active[2].Name)
	assert.Equal(t, models.DefaultRating, active[0].Rating)

	assert.Len(t, database.Carousel(active, 3), 3)
	assert.Len(t, database.Carousel(active[:2], 3), 2)
	assert.Empty(t, database.Carousel(nil, 3))
}

func TestFAQRepoOrdering(t *testing.T) {
	db := databasetest.New(t)

	newFAQ := func(question string, order, minute int, active bool) *models.FAQ {
		faq := models.NewFAQ()
		faq.Question, faq.Answer = question, "answer"
		faq.Order = order
		faq.CreatedAt = *at(minute)
		faq.IsActive = active
		return faq
	}
	databasetest.Create(t, db,
		newFAQ("third", 2, 1, true),
		newFAQ("second", 1, 5, true),
		newFAQ("first", 1, 2, true),
		newFAQ("hidden", 0, 0, false),
	)

	faqs, err := database.NewFAQRepo(db).ListActive(context.Background())
	require.NoError(t, err)

	var questions []string
	for _, f := range faqs {
		questions = append(questions, f.Question)
	}
	assert.Equal(t, []string{"first", "second", "third"}, questions)
	assert.Equal(t, models.FAQCategoryServices, faqs[0].Category)
}

func TestContactMessageRepoAdd(t *testing.T) {
	db := databasetest.New(t)
	ctx := context.Background()

	msg := &models.ContactMessage{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello"}
	require.NoError(t, database.NewContactMessageRepo(db).Add(ctx, msg))
	assert.NotEqual(t, uuid.Nil, msg.ID)
	assert.False(t, msg.CreatedAt.IsZero())

	count, err := database.NewRecordRepo[models.ContactMessage](db, "").Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	err = database.NewContactMessageRepo(db).Add(ctx, &models.ContactMessage{Name: "Bad", Email: "nope", Subject: "s", Message: "m"})
	assert.Error(t, err)
}

func TestRecordRepo(t *testing.T) {
	db := databasetest.New(t)
	ctx := context.Background()
	repo := database.NewRecordRepo[models.Category](db, "name ASC")

	category := &models.Category{Name: "Mobile"}
	require.NoError(t, repo.Add(ctx, category))

	found, err := repo.FindByID(ctx, category.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "mobile", found.Slug)

	found.Name = "Mobile Apps"
	require.NoError(t, repo.Update(ctx, found))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Mobile Apps", all[0].Name)

	missing, err := repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	removed, err := repo.Delete(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = repo.Delete(ctx, category.ID)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestRecordRepoReplaceAll(t *testing.T) {
	db := databasetest.New(t)
	ctx := context.Background()
	repo := database.NewRecordRepo[models.Category](db, "name ASC")

	id := uuid.New()
	require.NoError(t, repo.ReplaceAll(ctx, []models.Category{{ID: id, Name: "Imported", Slug: "imported"}}))

	found, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, found)

	err = repo.ReplaceAll(ctx, []models.Category{{Name: "Again"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrTableNotEmpty)
}
