package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
	"github.com/sirupsen/logrus"
)

// ErrRejected marks a send the provider refused for good; requeueing cannot help.
var ErrRejected = errors.New("email rejected")

// Mailgun sends email through the Mailgun HTTP API.
type Mailgun struct {
	client  *mg.MailgunImpl
	From    string
	Timeout time.Duration
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{client: mg.NewMailgun(domain, apiKey), From: sender, Timeout: 10 * time.Second}
}

// Send sends one message; html is optional.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.From, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()
	_, _, err := m.client.Send(c, msg)
	return classify(err)
}

// classify wraps client errors (4xx) with ErrRejected. Auth, timeout and
// throttling responses stay retryable.
func classify(err error) error {
	var ure *mg.UnexpectedResponseError
	if !errors.As(err, &ure) {
		return err
	}
	switch code := ure.Actual; {
	case code == http.StatusUnauthorized, code == http.StatusForbidden,
		code == http.StatusRequestTimeout, code == http.StatusTooManyRequests:
		return err
	case code >= 400 && code < 500:
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
	return err
}

// LogSender only logs what would be sent; used when MAIL_SEND_ENABLED is false.
type LogSender struct {
	Logger logrus.FieldLogger
}

func (s LogSender) Send(_ context.Context, to, subject, _, _ string) error {
	s.Logger.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("email delivery disabled, message dropped")
	return nil
}
