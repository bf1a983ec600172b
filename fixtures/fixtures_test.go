package fixtures

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/suresh-yadav/portfolio-backend/database/databasetest"
	"github.com/suresh-yadav/portfolio-backend/errs"
	"github.com/suresh-yadav/portfolio-backend/models"
)

func seed(t *testing.T, db *gorm.DB) (*models.Author, *models.BlogPost) {
	t.Helper()
	author := &models.Author{Username: "suresh"}
	publishedAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	databasetest.Create(t, db, author)
	post := &models.BlogPost{Title: "Hello", Content: "World", AuthorID: author.ID, Published: true, PublishedAt: &publishedAt}
	databasetest.Create(t, db, post)

	category := &models.Category{Name: "Web"}
	databasetest.Create(t, db, category)
	databasetest.Create(t, db,
		&models.Project{Title: "Shop", Description: "store", Image: "shop.png", CategoryID: category.ID})

	hidden := models.NewTestimonial()
	hidden.Name, hidden.Designation, hidden.Message = "Ann", "CTO", "Great"
	databasetest.Create(t, db, hidden)
	require.NoError(t, db.Model(hidden).Update("is_active", false).Error)
	return author, post
}

func count[T any](t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(new(T)).Count(&n).Error)
	return n
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := databasetest.New(t)
	author, post := seed(t, src)

	dir := t.TempDir()
	exported, err := Export(ctx, src, dir)
	require.NoError(t, err)
	require.Len(t, exported, len(models.Descriptors()))
	for _, file := range Files() {
		assert.FileExists(t, filepath.Join(dir, file))
	}

	dst := databasetest.New(t)
	imported, err := Import(ctx, dst, dir)
	require.NoError(t, err)
	assert.Equal(t, exported, imported)

	var restored models.BlogPost
	require.NoError(t, dst.Preload("Author").First(&restored, "id = ?", post.ID).Error)
	assert.Equal(t, author.ID, restored.Author.ID)
	assert.Equal(t, "hello", restored.Slug)
	require.NotNil(t, restored.PublishedAt)
	assert.True(t, post.PublishedAt.Equal(*restored.PublishedAt))

	var testimonial models.Testimonial
	require.NoError(t, dst.First(&testimonial).Error)
	assert.False(t, testimonial.IsActive)

	assert.Equal(t, int64(1), count[models.Project](t, dst))
}

func TestImportIntoNonEmptyTableWritesNothing(t *testing.T) {
	ctx := context.Background()
	src := databasetest.New(t)
	seed(t, src)
	dir := t.TempDir()
	_, err := Export(ctx, src, dir)
	require.NoError(t, err)

	dst := databasetest.New(t)
	existing := models.NewTestimonial()
	existing.Name, existing.Designation, existing.Message = "Bob", "CEO", "Fine"
	databasetest.Create(t, dst, existing)

	_, err = Import(ctx, dst, dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrTableNotEmpty)

	assert.Zero(t, count[models.Author](t, dst))
	assert.Zero(t, count[models.BlogPost](t, dst))
	assert.Equal(t, int64(1), count[models.Testimonial](t, dst))
}

func TestImportSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "faq.json"),
		[]byte(`[{"id":"7c9e6679-7425-40de-944b-e07fc1f90ae7","question":"Q?","answer":"A","category":"pricing","isActive":true,"order":1}]`), 0o644))

	db := databasetest.New(t)
	results, err := Import(context.Background(), db, dir)
	require.NoError(t, err)
	assert.Equal(t, []Result{{File: "faq.json", Records: 1}}, results)

	var faq models.FAQ
	require.NoError(t, db.First(&faq).Error)
	assert.Equal(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", faq.ID.String())
	assert.Equal(t, models.FAQCategory("pricing"), faq.Category)
}

type fakeObjects struct {
	objects map[string][]byte
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Bucket+"/"+*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestS3StorePushPull(t *testing.T) {
	ctx := context.Background()
	fake := &fakeObjects{objects: map[string][]byte{}}
	store := NewS3Store(fake, "backups", "/site/2024/")

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "blog.json"), []byte(`[]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "faq.json"), []byte(`[{"question":"Q?"}]`), 0o644))

	pushed, err := store.Push(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, []string{"blog.json", "faq.json"}, pushed)
	assert.Contains(t, fake.objects, "backups/site/2024/faq.json")

	dst := t.TempDir()
	pulled, err := store.Pull(ctx, dst)
	require.NoError(t, err)
	assert.Equal(t, []string{"blog.json", "faq.json"}, pulled)

	data, err := os.ReadFile(filepath.Join(dst, "faq.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"question":"Q?"}]`, string(data))
	assert.NoFileExists(t, filepath.Join(dst, "authors.json"))
}
