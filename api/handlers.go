package api

import (
	"time"

	"github.com/suresh-yadav/portfolio-backend/config"
	"github.com/suresh-yadav/portfolio-backend/database"
	"github.com/suresh-yadav/portfolio-backend/models"
	"github.com/suresh-yadav/portfolio-backend/services"
)

const (
	defaultContactRateLimit = 5
	defaultLoginRateLimit   = 10
	rateLimitWindow         = time.Minute
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, c map[string]string, notifier services.Notifier, startupTime time.Time) *routeHandlers {
	site := config.NewSite(c)
	contactService := services.NewContactService(db.ContactMessageRepo(), notifier, site)

	return &routeHandlers{
		blogPostHandler:    newBlogPostHandler(db.BlogPostRepo(), site.PageSize),
		projectHandler:     newProjectHandler(db.ProjectRepo(), db.CategoryRepo()),
		serviceHandler:     newServiceHandler(db.ServiceRepo(), db.DemoProjectRepo()),
		testimonialHandler: newTestimonialHandler(db.TestimonialRepo(), site.CarouselSize),
		faqHandler:         newFAQHandler(db.FAQRepo()),
		contactHandler:     newContactHandler(contactService),
		adminHandler: newAdminHandler(
			config.GetString(c, "ADMIN_PASSWORD_HASH", ""),
			config.GetString(c, "BACKEND_PASSWORD", ""),
			config.GetString(c, "JWT_SECRET", ""),
			time.Duration(config.GetInt(c, "ADMIN_TOKEN_TTL_MINUTES", 720))*time.Minute,
		),
		healthHandler:  newHealthHandler(db, startupTime),
		adminResources: initializeAdminResources(db),
		contactLimiter: newRateLimiter("contact form", config.GetInt(c, "CONTACT_RATE_LIMIT", defaultContactRateLimit), rateLimitWindow),
		loginLimiter:   newRateLimiter("admin login", config.GetInt(c, "LOGIN_RATE_LIMIT", defaultLoginRateLimit), rateLimitWindow),
	}
}

// initializeAdminResources builds one CRUD handler per record kind, in descriptor order.
func initializeAdminResources(db database.Database) []adminResource {
	g := db.DB()
	return []adminResource{
		newResourceHandler(models.AuthorDescriptor,
			database.NewRecordRepo[models.Author](g, "username"),
			func() *models.Author { return &models.Author{} }),
		newResourceHandler(models.BlogPostDescriptor,
			database.NewRecordRepo[models.BlogPost](g, "created_at DESC", "Author"),
			func() *models.BlogPost { return &models.BlogPost{} }),
		newResourceHandler(models.CategoryDescriptor,
			database.NewRecordRepo[models.Category](g, "name"),
			func() *models.Category { return &models.Category{} }),
		newResourceHandler(models.ProjectDescriptor,
			database.NewRecordRepo[models.Project](g, "created_at", "Category"),
			func() *models.Project { return &models.Project{} }),
		newResourceHandler(models.ServiceDescriptor,
			database.NewRecordRepo[models.Service](g, "created_at", "DemoProjects"),
			func() *models.Service { return &models.Service{} }),
		newResourceHandler(models.DemoProjectDescriptor,
			database.NewRecordRepo[models.DemoProject](g, "created_at"),
			func() *models.DemoProject { return &models.DemoProject{} }),
		newResourceHandler(models.TestimonialDescriptor,
			database.NewRecordRepo[models.Testimonial](g, "created_at DESC"),
			models.NewTestimonial),
		newResourceHandler(models.FAQDescriptor,
			database.NewRecordRepo[models.FAQ](g, "display_order, created_at"),
			models.NewFAQ),
		newResourceHandler(models.ContactMessageDescriptor,
			database.NewRecordRepo[models.ContactMessage](g, "created_at DESC"),
			func() *models.ContactMessage { return &models.ContactMessage{} }),
	}
}
