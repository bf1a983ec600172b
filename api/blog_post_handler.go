package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/suresh-yadav/portfolio-backend/database"
	"github.com/suresh-yadav/portfolio-backend/errs"
	"github.com/suresh-yadav/portfolio-backend/models"
)

type blogPostHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo *database.BlogPostRepo
	pageSize     int
}

func newBlogPostHandler(blogPostRepo *database.BlogPostRepo, pageSize int) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
		pageSize:     pageSize,
	}
}

// BlogListResponse is one page of published posts
type BlogListResponse struct {
	Posts       []*models.BlogPost `json:"posts"`
	Page        database.Page      `json:"page"`
	SearchQuery string             `json:"searchQuery"`
}

// listBlogPosts returns a page of published posts, optionally filtered by a search term
// @Summary List blog posts
// @Description Published posts, newest first, filtered by q against title and content
// @Tags Blog
// @Produce json
// @Param q query string false "Search term"
// @Param page query string false "Page number"
// @Success 200 {object} BlogListResponse
// @Failure 500 {object} ErrorResponse
// @Router /blog [get]
func (h blogPostHandler) listBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		page := r.URL.Query().Get("page")

		posts, p, err := h.blogPostRepo.ListPublished(r.Context(), query, page, h.pageSize)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list blog posts", "blog post", err))
			return
		}

		h.responder.WriteJSON(w, BlogListResponse{
			Posts:       posts,
			Page:        p,
			SearchQuery: query,
		})
	}
}

// getBlogPost returns one published post by slug
// @Summary Get blog post
// @Tags Blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} ErrorResponse "Not Found - no published post with that slug"
// @Failure 500 {object} ErrorResponse
// @Router /blog/{slug} [get]
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		post, err := h.blogPostRepo.FindPublishedBySlug(r.Context(), slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFound("blog post"))
			return
		}

		h.responder.WriteJSON(w, post)
	}
}
