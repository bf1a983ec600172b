package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/suresh-yadav/portfolio-backend/config"
	"github.com/suresh-yadav/portfolio-backend/errs"
	"github.com/suresh-yadav/portfolio-backend/models"
)

const defaultResendAPIURL = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// ResendMailer delivers plain-text mail through the Resend API.
type ResendMailer struct {
	apiKey     string
	from       string
	apiURL     string
	recipients []string
	client     *http.Client
}

// NewResendMailer requires:
//   - RESEND_API_KEY: Your Resend API key
//   - RESEND_FROM_EMAIL: The sender address (e.g., "Your Name <hello@example.com>")
//   - OPERATOR_EMAIL: The recipient, defaulting to the sender
//
// RESEND_API_URL overrides the endpoint.
func NewResendMailer(cfg map[string]string) (*ResendMailer, error) {
	site := config.NewSite(cfg)

	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	if apiKey == "" {
		return nil, errs.NewEnvironmentVariableError("RESEND_API_KEY")
	}
	if site.FromEmail == "" {
		return nil, errs.NewEnvironmentVariableError("RESEND_FROM_EMAIL")
	}
	if site.OperatorEmail == "" {
		return nil, errs.NewEnvironmentVariableError("OPERATOR_EMAIL")
	}

	return &ResendMailer{
		apiKey:     apiKey,
		from:       site.FromEmail,
		apiURL:     config.GetString(cfg, "RESEND_API_URL", defaultResendAPIURL),
		recipients: []string{site.OperatorEmail},
		client:     &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Notify mails the operator a copy of msg. Replies go to the sender of the message.
func (m *ResendMailer) Notify(ctx context.Context, msg models.ContactMessage) error {
	return m.SendEmail(ctx, ResendEmailRequest{
		Subject: ContactSubject(msg),
		Text:    ContactBody(msg),
		ReplyTo: msg.Email,
	})
}

// SendEmail fills in the sender and recipients of payload and posts it to Resend.
func (m *ResendMailer) SendEmail(ctx context.Context, payload ResendEmailRequest) error {
	payload.From = m.from
	payload.To = m.recipients

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.apiURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}
	return nil
}

// ContactSubject is the subject line of the operator notification.
func ContactSubject(msg models.ContactMessage) string {
	return "Contact Form: " + msg.Subject
}

// ContactBody is the plain-text operator notification for msg.
func ContactBody(msg models.ContactMessage) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", msg.Name, msg.Email, msg.Message)
}
