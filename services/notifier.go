package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/suresh-yadav/portfolio-backend/errs"
	"github.com/suresh-yadav/portfolio-backend/models"
)

// Notifier tells the site operator about a new contact message.
type Notifier interface {
	Notify(ctx context.Context, msg models.ContactMessage) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, msg models.ContactMessage) error

func (f NotifierFunc) Notify(ctx context.Context, msg models.ContactMessage) error {
	return f(ctx, msg)
}

type channel struct {
	name     string
	notifier Notifier
}

// MultiNotifier fans a message out to every channel it holds. Delivery counts as
// successful when at least one channel accepts the message.
type MultiNotifier struct {
	channels []channel
}

func NewMultiNotifier() *MultiNotifier {
	return &MultiNotifier{}
}

// Add registers a channel under name. A nil notifier is ignored.
func (m *MultiNotifier) Add(name string, notifier Notifier) *MultiNotifier {
	if notifier != nil {
		m.channels = append(m.channels, channel{name: name, notifier: notifier})
	}
	return m
}

// Channels returns the registered channel names in order.
func (m *MultiNotifier) Channels() []string {
	names := make([]string, 0, len(m.channels))
	for _, c := range m.channels {
		names = append(names, c.name)
	}
	return names
}

// Notify tries every channel even after a failure. It returns an error wrapping
// errs.ErrNotificationFailed only when no channel delivered.
func (m *MultiNotifier) Notify(ctx context.Context, msg models.ContactMessage) error {
	if len(m.channels) == 0 {
		return fmt.Errorf("%w: no notification channel configured", errs.ErrNotificationFailed)
	}

	var failures []string
	var successes []string
	for _, c := range m.channels {
		if err := c.notifier.Notify(ctx, msg); err != nil {
			log.Error().Err(err).Str("channel", c.name).Str("contactMessageId", msg.ID.String()).Msg("Failed to notify operator")
			failures = append(failures, fmt.Sprintf("%s: %v", c.name, err))
			continue
		}
		successes = append(successes, c.name)
	}

	if len(successes) > 0 {
		log.Info().Strs("channels", successes).Str("contactMessageId", msg.ID.String()).Msg("Notified operator")
		return nil
	}
	return fmt.Errorf("%w: %s", errs.ErrNotificationFailed, strings.Join(failures, "; "))
}
