package repository

import (
	"context"
	"time"

	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
)

// AccountRepository defines the credential store operations.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id int64) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]entity.Account, error)
	Count(ctx context.Context) (int64, error)
	// CountActiveAdmins counts active admins other than excludingID.
	// Inside WithTx the counted rows stay locked until the transaction ends.
	CountActiveAdmins(ctx context.Context, excludingID int64) (int64, error)
	UpdatePartial(ctx context.Context, id int64, patch entity.AccountPatch, now time.Time) (*entity.Account, error)
	// WithTx runs fn against a repository bound to a single transaction.
	WithTx(ctx context.Context, fn func(AccountRepository) error) error
}
