package errs

import (
	"errors"
	"net/http"
)

// Operator authentication errors
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrMissingToken       = errors.New("missing access token")
	ErrExpiredToken       = errors.New("expired access token")
	ErrInvalidToken       = errors.New("invalid access token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Unauthorized is returned when admin access is not possible at all, for example
// because no signing secret is configured.
var Unauthorized = &ApiErr{StatusCode: http.StatusUnauthorized, err: ErrUnauthorized}

func authError(sentinel error, details, field string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        sentinel,
		Details:    details,
		Field:      field,
	}
}

func NewMissingTokenError() *ApiErr {
	return authError(ErrMissingToken, "Send the operator token as 'Authorization: Bearer <token>'", "authorization")
}

func NewExpiredTokenError() *ApiErr {
	return authError(ErrExpiredToken, "Log in again to get a new token", "authorization")
}

func NewInvalidTokenError() *ApiErr {
	return authError(ErrInvalidToken, "The token signature, issuer or subject is wrong", "authorization")
}

func NewInvalidCredentialsError() *ApiErr {
	return authError(ErrInvalidCredentials, "The password is incorrect", "password")
}

func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrInvalidCredentials)
}
