package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/suresh-yadav/portfolio-backend/database"
	"github.com/suresh-yadav/portfolio-backend/models"
)

type testimonialHandler struct {
	responder       Responder
	logger          zerolog.Logger
	testimonialRepo *database.TestimonialRepo
	carouselSize    int
}

func newTestimonialHandler(testimonialRepo *database.TestimonialRepo, carouselSize int) testimonialHandler {
	logger := log.With().Str("handlerName", "testimonialHandler").Logger()

	return testimonialHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		testimonialRepo: testimonialRepo,
		carouselSize:    carouselSize,
	}
}

type TestimonialsResponse struct {
	Testimonials         []*models.Testimonial `json:"testimonials"`
	CarouselTestimonials []*models.Testimonial `json:"carouselTestimonials"`
}

// listTestimonials returns active testimonials, newest first, and the carousel prefix
// @Summary List testimonials
// @Tags Testimonials
// @Produce json
// @Success 200 {object} TestimonialsResponse
// @Failure 500 {object} ErrorResponse
// @Router /testimonials [get]
func (h testimonialHandler) listTestimonials() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testimonials, err := h.testimonialRepo.ListActive(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list testimonials", "testimonial", err))
			return
		}

		h.responder.WriteJSON(w, TestimonialsResponse{
			Testimonials:         testimonials,
			CarouselTestimonials: database.Carousel(testimonials, h.carouselSize),
		})
	}
}
