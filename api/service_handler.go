package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/suresh-yadav/portfolio-backend/database"
	"github.com/suresh-yadav/portfolio-backend/models"
)

type serviceHandler struct {
	responder       Responder
	logger          zerolog.Logger
	serviceRepo     *database.ServiceRepo
	demoProjectRepo *database.DemoProjectRepo
}

func newServiceHandler(serviceRepo *database.ServiceRepo, demoProjectRepo *database.DemoProjectRepo) serviceHandler {
	logger := log.With().Str("handlerName", "serviceHandler").Logger()

	return serviceHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		serviceRepo:     serviceRepo,
		demoProjectRepo: demoProjectRepo,
	}
}

type ServicesResponse struct {
	Services     []*models.Service     `json:"services"`
	DemoProjects []*models.DemoProject `json:"demoProjects"`
}

// listServices returns every service and every demo project
// @Summary List services
// @Tags Services
// @Produce json
// @Success 200 {object} ServicesResponse
// @Failure 500 {object} ErrorResponse
// @Router /services [get]
func (h serviceHandler) listServices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var response ServicesResponse

		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			services, err := h.serviceRepo.FindAll(ctx)
			if err != nil {
				return wrapDatabaseError("list services", "service", err)
			}
			response.Services = services
			return nil
		})
		g.Go(func() error {
			demoProjects, err := h.demoProjectRepo.FindAll(ctx)
			if err != nil {
				return wrapDatabaseError("list demo projects", "demo project", err)
			}
			response.DemoProjects = demoProjects
			return nil
		})
		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, response)
	}
}
