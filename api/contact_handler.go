package api

import (
	"errors"
	"mime"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/suresh-yadav/portfolio-backend/errs"
	"github.com/suresh-yadav/portfolio-backend/models"
	"github.com/suresh-yadav/portfolio-backend/services"
)

const (
	contactPath   = "/contact/"
	statusInvalid = "invalid"
)

type contactHandler struct {
	responder      Responder
	logger         zerolog.Logger
	contactService *services.ContactService
}

func newContactHandler(contactService *services.ContactService) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		contactService: contactService,
	}
}

// ContactFormResponse is the empty contact form plus the outcome of the previous post
type ContactFormResponse struct {
	Fields  []models.Field `json:"fields"`
	Status  string         `json:"status,omitempty"`
	Message string         `json:"message,omitempty"`
	Field   string         `json:"field,omitempty"`
}

// ContactSubmitResponse is returned to JSON clients after a submission
type ContactSubmitResponse struct {
	Status         services.SubmissionStatus `json:"status"`
	Message        string                    `json:"message"`
	ContactMessage models.ContactMessage     `json:"contactMessage"`
}

// getContactForm describes the contact form
// @Summary Contact form schema
// @Tags Contact
// @Produce json
// @Param status query string false "Outcome of the previous submission (sent, error, invalid)"
// @Success 200 {object} ContactFormResponse
// @Router /contact [get]
func (h contactHandler) getContactForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := ContactFormResponse{Fields: models.ContactMessageDescriptor.WritableFields()}

		switch status := r.URL.Query().Get("status"); status {
		case string(services.StatusNotified), string(services.StatusNotifyFailed):
			response.Status = status
			response.Message = services.SubmissionStatus(status).UserMessage()
		case statusInvalid:
			response.Status = status
			response.Field = r.URL.Query().Get("field")
			response.Message = "Please correct the highlighted field and try again."
		}

		h.responder.WriteJSON(w, response)
	}
}

// submitContact stores a contact message and notifies the operator
// @Summary Submit contact form
// @Description Accepts JSON or form-encoded bodies. Form posts are answered with a redirect back to the form.
// @Tags Contact
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param body body services.ContactSubmission true "Contact submission"
// @Success 201 {object} ContactSubmitResponse
// @Success 303 "Redirect to /contact/?status=sent|error|invalid"
// @Failure 400 {object} ErrorResponse "Bad Request - a field is missing or invalid"
// @Failure 429 {object} ErrorResponse "Too Many Requests"
// @Failure 500 {object} ErrorResponse
// @Router /contact [post]
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !isJSONRequest(r) {
			h.submitForm(w, r)
			return
		}

		var submission services.ContactSubmission
		if err := h.responder.decodeJSON(w, r, &submission); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		result, err := h.contactService.Submit(r.Context(), submission)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create contact message", "contact message", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, ContactSubmitResponse{
			Status:         result.Status,
			Message:        result.Status.UserMessage(),
			ContactMessage: result.Message,
		})
	}
}

func (h contactHandler) submitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := r.ParseMultipartForm(maxRequestBodySize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.responder.WriteError(w, errs.NewMalformedPayloadError("form", err))
		return
	}

	submission := services.ContactSubmission{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Subject: r.PostFormValue("subject"),
		Message: r.PostFormValue("message"),
	}

	query := url.Values{}
	result, err := h.contactService.Submit(r.Context(), submission)
	var apiErr *errs.ApiErr
	switch {
	case err == nil:
		query.Set("status", string(result.Status))
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest:
		query.Set("status", statusInvalid)
		query.Set("field", apiErr.Field)
	default:
		h.logger.Error().Err(err).Msg("Contact form submission failed")
		query.Set("status", string(services.StatusNotifyFailed))
	}

	http.Redirect(w, r, contactPath+"?"+query.Encode(), http.StatusSeeOther)
}

func isJSONRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}
