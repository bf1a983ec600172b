package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/suresh-yadav/portfolio-backend/config"
	"github.com/suresh-yadav/portfolio-backend/errs"
	"github.com/suresh-yadav/portfolio-backend/models"
)

// SubmissionStatus is the outcome reported back to whoever filled in the contact form.
type SubmissionStatus string

const (
	StatusNotified     SubmissionStatus = "sent"
	StatusNotifyFailed SubmissionStatus = "error"
)

// UserMessage is the text shown to the visitor for the status.
func (s SubmissionStatus) UserMessage() string {
	switch s {
	case StatusNotified:
		return "Your message has been sent successfully!"
	case StatusNotifyFailed:
		return "There was an error sending your message. Please try again."
	default:
		return ""
	}
}

// ContactSubmission is the raw form input.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (s ContactSubmission) message() models.ContactMessage {
	return models.ContactMessage{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Subject: strings.TrimSpace(s.Subject),
		Message: strings.TrimSpace(s.Message),
	}
}

type SubmissionResult struct {
	Message models.ContactMessage
	Status  SubmissionStatus
}

// ContactStore persists contact messages.
type ContactStore interface {
	Add(ctx context.Context, msg *models.ContactMessage) error
}

type ContactService struct {
	store       ContactStore
	notifier    Notifier
	mailTimeout time.Duration
	logger      zerolog.Logger
}

func NewContactService(store ContactStore, notifier Notifier, site config.Site) *ContactService {
	if notifier == nil {
		notifier = NewMultiNotifier()
	}
	mailTimeout := site.MailTimeout
	if mailTimeout <= 0 {
		mailTimeout = config.DefaultMailTimeout
	}
	return &ContactService{
		store:       store,
		notifier:    notifier,
		mailTimeout: mailTimeout,
		logger:      log.With().Str("serviceName", "contactService").Logger(),
	}
}

// Submit validates and stores the submission, then notifies the operator. An invalid
// submission stores nothing and returns a field-level *errs.ApiErr. Once the message is
// stored, a notification failure only changes the reported status.
func (s *ContactService) Submit(ctx context.Context, submission ContactSubmission) (SubmissionResult, error) {
	msg := submission.message()
	if err := models.Validate(&msg); err != nil {
		return SubmissionResult{}, errs.NewValidationError(err)
	}

	if err := s.store.Add(ctx, &msg); err != nil {
		return SubmissionResult{}, fmt.Errorf("save contact message: %w", err)
	}

	result := SubmissionResult{Message: msg, Status: StatusNotified}

	notifyCtx, cancel := context.WithTimeout(ctx, s.mailTimeout)
	defer cancel()
	if err := s.notifier.Notify(notifyCtx, msg); err != nil {
		s.logger.Warn().Err(err).Str("contactMessageId", msg.ID.String()).Msg("Contact message stored but operator was not notified")
		result.Status = StatusNotifyFailed
	}
	return result, nil
}
