package api

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/suresh-yadav/portfolio-backend/errs"
	"github.com/suresh-yadav/portfolio-backend/models"
)

const defaultTokenTTL = 12 * time.Hour

type adminHandler struct {
	responder    Responder
	logger       zerolog.Logger
	passwordHash []byte
	password     string
	secret       []byte
	tokenTTL     time.Duration
	now          func() time.Time
}

func newAdminHandler(passwordHash, password, secret string, tokenTTL time.Duration) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}

	return adminHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		passwordHash: []byte(passwordHash),
		password:     password,
		secret:       []byte(secret),
		tokenTTL:     tokenTTL,
		now:          time.Now,
	}
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// login exchanges the operator password for a bearer token
// @Summary Operator login
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Operator password"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid JSON"
// @Failure 401 {object} ErrorResponse "Unauthorized - wrong password"
// @Failure 503 {object} ErrorResponse "Service Unavailable - admin login is not configured"
// @Router /admin/login [post]
func (h adminHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(h.secret) == 0 || (len(h.passwordHash) == 0 && h.password == "") {
			h.responder.WriteError(w, errs.NewServiceUnavailableError("admin login", nil))
			return
		}

		var request LoginRequest
		if err := h.responder.decodeJSON(w, r, &request); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if request.Password == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		}

		if !h.checkPassword(request.Password) {
			h.logger.Warn().Str("remoteAddr", r.RemoteAddr).Msg("Rejected operator login")
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		token, expiresAt, err := issueToken(h.secret, h.tokenTTL, h.now())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, LoginResponse{Token: token, ExpiresAt: expiresAt})
	}
}

// checkPassword prefers the bcrypt hash and falls back to the plain password.
func (h adminHandler) checkPassword(password string) bool {
	if len(h.passwordHash) > 0 {
		return bcrypt.CompareHashAndPassword(h.passwordHash, []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(h.password), []byte(password)) == 1
}

// getSchema describes every record kind the admin surface manages
// @Summary Admin schema
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]models.Descriptor
// @Failure 401 {object} ErrorResponse
// @Router /admin/schema [get]
func (h adminHandler) getSchema() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string][]models.Descriptor{"resources": models.Descriptors()})
	}
}
