package application

import (
	"context"
	"io"
	"time"

	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
	"github.com/oksasatya/go-archive-admin/pkg/helpers"
)

// Hasher hashes and verifies passwords; *helpers.PasswordHasher satisfies it.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// TokenManager issues and verifies session tokens; *helpers.JWTManager satisfies it.
type TokenManager interface {
	Issue(accountID int64, role string, now time.Time) (string, time.Time, error)
	Verify(token string, now time.Time) (*helpers.Claims, error)
}

// Notifier announces account lifecycle events. Failures never roll back the operation.
type Notifier interface {
	AccountCreated(ctx context.Context, a *entity.Account) error
	AccountDeactivated(ctx context.Context, a *entity.Account) error
}

// FileUploader stores archive files; *helpers.GCSUploader satisfies it.
type FileUploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, objectPath string) error
}

// StatsInvalidator drops cached dashboard statistics; *DashboardService satisfies it.
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

// ArchiveIndex is a full-text index over archives.
type ArchiveIndex interface {
	Index(ctx context.Context, a *entity.ArchiveWithDetails) error
	Delete(ctx context.Context, id int64) error
	// Search returns matching archive ids in relevance order.
	Search(ctx context.Context, f entity.SearchFilter) ([]int64, error)
}

type nopNotifier struct{}

func (nopNotifier) AccountCreated(context.Context, *entity.Account) error     { return nil }
func (nopNotifier) AccountDeactivated(context.Context, *entity.Account) error { return nil }

// NopNotifier drops every event.
var NopNotifier Notifier = nopNotifier{}

func invalidateStats(ctx context.Context, c StatsInvalidator) {
	if c != nil {
		c.Invalidate(ctx)
	}
}

func utcNow() time.Time { return time.Now().UTC() }
