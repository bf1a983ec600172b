package models

import (
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func fixedClock(now time.Time) *gorm.DB {
	return &gorm.DB{Config: &gorm.Config{NowFunc: func() time.Time { return now }}}
}

func failingFields(t *testing.T, err error) []string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected validation errors, got %v", err)
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello World", "hello-world"},
		{"  Go: Tips & Tricks!  ", "go-tips-tricks"},
		{"already-a-slug", "already-a-slug"},
		{"---", ""},
		{"Ünïcode Title 2024", "n-code-title-2024"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}

	long := Slugify("a very long title that keeps going well past the fifty character limit of slugs")
	assert.LessOrEqual(t, len(long), 50)
	assert.NotEqual(t, '-', rune(long[len(long)-1]))
}

func TestNormalizeList(t *testing.T) {
	assert.Equal(t, StringList{"go", "sql"}, NormalizeList(StringList{" go ", "", "   ", "sql"}))

	empty := NormalizeList(nil)
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)
}

func TestBlogPostBeforeSave(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	authorID := uuid.New()

	t.Run("publishing stamps published_at once", func(t *testing.T) {
		post := &BlogPost{Title: "Hello World", Content: "body", AuthorID: authorID, Published: true}
		require.NoError(t, post.BeforeSave(fixedClock(now)))

		assert.NotEqual(t, uuid.Nil, post.ID)
		assert.Equal(t, "hello-world", post.Slug)
		require.NotNil(t, post.PublishedAt)
		assert.Equal(t, now, *post.PublishedAt)

		require.NoError(t, post.BeforeSave(fixedClock(now.Add(time.Hour))))
		assert.Equal(t, now, *post.PublishedAt)
	})

	t.Run("unpublishing clears published_at", func(t *testing.T) {
		stamped := now
		post := &BlogPost{Title: "Draft", Slug: "draft", Content: "body", AuthorID: authorID, PublishedAt: &stamped}
		require.NoError(t, post.BeforeSave(fixedClock(now)))
		assert.Nil(t, post.PublishedAt)
	})

	t.Run("rejects a malformed slug", func(t *testing.T) {
		post := &BlogPost{Title: "Bad", Slug: "not a slug", Content: "body", AuthorID: authorID}
		err := post.BeforeSave(fixedClock(now))
		assert.Contains(t, failingFields(t, err), "slug")
	})

	t.Run("requires an author", func(t *testing.T) {
		post := &BlogPost{Title: "Orphan", Content: "body"}
		err := post.BeforeSave(fixedClock(now))
		assert.Contains(t, failingFields(t, err), "authorId")
	})
}

func TestValidateContactMessage(t *testing.T) {
	valid := ContactMessage{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello"}
	require.NoError(t, Validate(&valid))

	tests := []struct {
		name  string
		edit  func(m *ContactMessage)
		field string
	}{
		{"missing name", func(m *ContactMessage) { m.Name = "" }, "name"},
		{"bad email", func(m *ContactMessage) { m.Email = "not-an-email" }, "email"},
		{"missing subject", func(m *ContactMessage) { m.Subject = "" }, "subject"},
		{"missing message", func(m *ContactMessage) { m.Message = "" }, "message"},
		{"long name", func(m *ContactMessage) { m.Name = string(make([]byte, 101)) }, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := valid
			tt.edit(&msg)
			assert.Equal(t, []string{tt.field}, failingFields(t, Validate(&msg)))
		})
	}
}

func TestTestimonialRating(t *testing.T) {
	testimonial := NewTestimonial()
	testimonial.Name, testimonial.Designation, testimonial.Message = "Grace", "CTO", "Great work"
	require.NoError(t, Validate(testimonial))
	assert.Equal(t, DefaultRating, testimonial.Rating)
	assert.True(t, testimonial.IsActive)

	for _, rating := range []int{0, 6} {
		testimonial.Rating = rating
		assert.Equal(t, []string{"rating"}, failingFields(t, Validate(testimonial)))
	}
}

func TestFAQCategory(t *testing.T) {
	faq := NewFAQ()
	faq.Question, faq.Answer = "Do you train teams?", "Yes"
	require.NoError(t, Validate(faq))

	faq.Category = "marketing"
	assert.Equal(t, []string{"category"}, failingFields(t, Validate(faq)))
}

func TestDescriptors(t *testing.T) {
	descriptors := Descriptors()
	require.Len(t, descriptors, len(AllModels()))

	files := map[string]string{}
	for _, d := range descriptors {
		files[d.Name] = d.FixtureFile
	}
	assert.Equal(t, "blog.json", files["blog-posts"])
	assert.Equal(t, "portfolio.json", files["projects"])
	assert.Equal(t, "faq.json", files["faqs"])
	assert.Equal(t, "contact.json", files["contact-messages"])

	assert.Equal(t, "faqs", FAQDescriptor.Table)
	assert.True(t, ContactMessageDescriptor.ReadOnly)

	fields := map[string]Field{}
	for _, f := range FAQDescriptor.Fields {
		fields[f.Name] = f
	}
	assert.Equal(t, FieldID, fields["id"].Type)
	assert.True(t, fields["id"].ReadOnly)
	assert.Equal(t, FieldChoice, fields["category"].Type)
	assert.Equal(t, []string{"services", "training", "technical", "pricing"}, fields["category"].Choices)
	assert.Equal(t, "display_order", fields["order"].Column)
	require.NotNil(t, fields["order"].Min)
	assert.Equal(t, 0, *fields["order"].Min)
	assert.Equal(t, 300, fields["question"].MaxLength)
	assert.True(t, fields["createdAt"].ReadOnly)

	for _, f := range ContactMessageDescriptor.WritableFields() {
		assert.NotEqual(t, "id", f.Name)
		assert.NotEqual(t, "createdAt", f.Name)
	}

	post := map[string]Field{}
	for _, f := range BlogPostDescriptor.Fields {
		post[f.Name] = f
	}
	assert.Equal(t, FieldRef, post["authorId"].Type)
	assert.Equal(t, "Author", post["authorId"].Refers)
	assert.Equal(t, FieldList, post["tags"].Type)
	assert.Equal(t, FieldLongText, post["content"].Type)
	assert.NotContains(t, post, "author")

	d, ok := DescriptorByName("testimonials")
	require.True(t, ok)
	assert.Equal(t, "testimonials.json", d.FixtureFile)
	_, ok = DescriptorByName("users")
	assert.False(t, ok)
}
