package application

import (
	"context"
	"time"

	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
	"github.com/oksasatya/go-archive-admin/pkg/mailer"
	mailtpl "github.com/oksasatya/go-archive-admin/pkg/mailer/templates"
)

// JobPublisher queues a JSON message; *helpers.RabbitPublisher satisfies it.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// EmailNotifier queues templated emails for the email worker.
type EmailNotifier struct {
	Publisher JobPublisher
	Brand     mailtpl.Brand
	Now       func() time.Time
}

func NewEmailNotifier(pub JobPublisher, brand mailtpl.Brand) *EmailNotifier {
	return &EmailNotifier{Publisher: pub, Brand: brand, Now: utcNow}
}

func (n *EmailNotifier) AccountCreated(ctx context.Context, a *entity.Account) error {
	return n.Publisher.PublishJSON(ctx, mailer.EmailJob{
		To:       a.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(n.Brand, a.FullName(), a.Email, string(a.Role)),
	})
}

func (n *EmailNotifier) AccountDeactivated(ctx context.Context, a *entity.Account) error {
	return n.Publisher.PublishJSON(ctx, mailer.EmailJob{
		To:       a.Email,
		Template: mailtpl.AccountDeactivated,
		Data:     mailtpl.NewAccountDeactivatedData(n.Brand, a.FullName(), a.Email, mailtpl.WithTime(n.Now())),
	})
}
