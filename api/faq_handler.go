package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/suresh-yadav/portfolio-backend/database"
	"github.com/suresh-yadav/portfolio-backend/models"
)

type faqHandler struct {
	responder Responder
	logger    zerolog.Logger
	faqRepo   *database.FAQRepo
}

func newFAQHandler(faqRepo *database.FAQRepo) faqHandler {
	logger := log.With().Str("handlerName", "faqHandler").Logger()

	return faqHandler{
		responder: NewResponder(logger),
		logger:    logger,
		faqRepo:   faqRepo,
	}
}

// listFAQs returns the active FAQ entries in display order
// @Summary List FAQs
// @Tags FAQ
// @Produce json
// @Success 200 {object} map[string][]models.FAQ
// @Failure 500 {object} ErrorResponse
// @Router /faq [get]
func (h faqHandler) listFAQs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		faqs, err := h.faqRepo.ListActive(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list faqs", "faq", err))
			return
		}

		h.responder.WriteJSON(w, map[string][]*models.FAQ{"faqs": faqs})
	}
}
