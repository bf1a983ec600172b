package api

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/suresh-yadav/portfolio-backend/database"
	"github.com/suresh-yadav/portfolio-backend/models"
)

type projectHandler struct {
	responder    Responder
	logger       zerolog.Logger
	projectRepo  *database.ProjectRepo
	categoryRepo *database.CategoryRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo, categoryRepo *database.CategoryRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		projectRepo:  projectRepo,
		categoryRepo: categoryRepo,
	}
}

// PortfolioResponse holds the projects in the selected category and every category
type PortfolioResponse struct {
	Projects        []*models.Project  `json:"projects"`
	Categories      []*models.Category `json:"categories"`
	CurrentCategory string             `json:"currentCategory"`
}

// listPortfolio returns projects filtered by category slug
// @Summary List portfolio projects
// @Description An unknown category yields an empty project list
// @Tags Portfolio
// @Produce json
// @Param category query string false "Category slug, or all" default(all)
// @Success 200 {object} PortfolioResponse
// @Failure 500 {object} ErrorResponse
// @Router /portfolio [get]
func (h projectHandler) listPortfolio() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := strings.TrimSpace(r.URL.Query().Get("category"))
		if category == "" {
			category = models.AllCategories
		}

		var response PortfolioResponse
		response.CurrentCategory = category

		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			projects, err := h.projectRepo.List(ctx, category)
			if err != nil {
				return wrapDatabaseError("list projects", "project", err)
			}
			response.Projects = projects
			return nil
		})
		g.Go(func() error {
			categories, err := h.categoryRepo.FindAll(ctx)
			if err != nil {
				return wrapDatabaseError("list categories", "category", err)
			}
			response.Categories = categories
			return nil
		})
		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, response)
	}
}
