package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/suresh-yadav/portfolio-backend/config"
	"github.com/suresh-yadav/portfolio-backend/models"
)

const maxSMSLength = 160

// MessageCreator is the part of the Twilio REST API used to send texts.
type MessageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioNotifier texts the operator a one-line alert for each contact message.
type TwilioNotifier struct {
	api  MessageCreator
	from string
	to   string
}

func NewTwilioNotifier(api MessageCreator, from, to string) *TwilioNotifier {
	return &TwilioNotifier{api: api, from: from, to: to}
}

// NewTwilioNotifierFromConfig returns nil when the TWILIO_* keys or OPERATOR_PHONE are
// not all set, leaving SMS alerts disabled.
func NewTwilioNotifierFromConfig(cfg map[string]string) *TwilioNotifier {
	accountSID := config.GetString(cfg, "TWILIO_ACCOUNT_SID", "")
	authToken := config.GetString(cfg, "TWILIO_AUTH_TOKEN", "")
	from := config.GetString(cfg, "TWILIO_FROM_NUMBER", "")
	to := config.GetString(cfg, "OPERATOR_PHONE", "")
	if accountSID == "" || authToken == "" || from == "" || to == "" {
		return nil
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return NewTwilioNotifier(client.Api, from, to)
}

// Notify sends the alert. The SDK call has no context support, so it runs in its own
// goroutine and Notify returns as soon as ctx is done.
func (n *TwilioNotifier) Notify(ctx context.Context, msg models.ContactMessage) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(n.to)
	params.SetFrom(n.from)
	params.SetBody(SMSBody(msg))

	type result struct {
		sid string
		err error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := n.api.CreateMessage(params)
		if err != nil {
			done <- result{err: err}
			return
		}
		sid := ""
		if resp != nil && resp.Sid != nil {
			sid = *resp.Sid
		}
		done <- result{sid: sid}
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("twilio message: %w", ctx.Err())
	case r := <-done:
		if r.err != nil {
			return fmt.Errorf("twilio message: %w", r.err)
		}
		log.Info().Str("messageSid", r.sid).Msg("Successfully sent SMS via Twilio")
		return nil
	}
}

// SMSBody is the alert text, cut to a single SMS segment.
func SMSBody(msg models.ContactMessage) string {
	body := []rune(fmt.Sprintf("New contact message from %s <%s>: %s", msg.Name, msg.Email, msg.Subject))
	if len(body) > maxSMSLength {
		body = append(body[:maxSMSLength-3], []rune("...")...)
	}
	return string(body)
}
