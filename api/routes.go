package api

import (
	"github.com/go-chi/chi/v5"
)

// setupFrontendRoutes registers the public site routes
func setupFrontendRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/blog", handlers.blogPostHandler.listBlogPosts())
		r.Get("/blog/{slug}", handlers.blogPostHandler.getBlogPost())

		r.Get("/portfolio", handlers.projectHandler.listPortfolio())
		r.Get("/services", handlers.serviceHandler.listServices())
		r.Get("/testimonials", handlers.testimonialHandler.listTestimonials())
		r.Get("/faq", handlers.faqHandler.listFAQs())

		r.Get("/contact", handlers.contactHandler.getContactForm())
		r.With(handlers.contactLimiter.limitRequests).Post("/contact", handlers.contactHandler.submitContact())
	})
}

// setupAdminRoutes registers the operator login and the authenticated CRUD surface
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.With(handlers.loginLimiter.limitRequests).Post("/login", handlers.adminHandler.login())

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/schema", handlers.adminHandler.getSchema())
			for _, resource := range handlers.adminResources {
				r.Route("/"+resource.name(), resource.routes)
			}
		})
	})
}
