package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
	"github.com/oksasatya/go-archive-admin/internal/domain/repository"
)

const accountColumns = `id, email, password_hash, first_name, last_name, role, is_active, created_at, updated_at`

type AccountRepository struct {
	db DBTX
	// beginner is nil for repositories already bound to a transaction.
	beginner TxBeginner
}

func NewAccountRepository(db TxBeginner) *AccountRepository {
	return &AccountRepository{db: db, beginner: db}
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	a := &entity.Account{}
	var role string
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.FirstName, &a.LastName,
		&role, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Role = entity.Role(role)
	return a, nil
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, a.Email, a.PasswordHash, a.FirstName, a.LastName, string(a.Role), a.IsActive)

	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return fmt.Errorf("insert account: %w", mapErr(err))
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*entity.Account, error) {
	a, err := scanAccount(r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return a, nil
}

// GetByEmail matches the email exactly; no case folding.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	a, err := scanAccount(r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, mapErr(err)
	}
	return a, nil
}

func (r *AccountRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("account exists: %w", err)
	}
	return ok, nil
}

func (r *AccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&ok); err != nil {
		return false, fmt.Errorf("email exists: %w", err)
	}
	return ok, nil
}

func (r *AccountRepository) List(ctx context.Context) ([]entity.Account, error) {
	rows, err := r.db.Query(ctx, `SELECT `+accountColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	accounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Account, error) {
		a, err := scanAccount(row)
		if err != nil {
			return entity.Account{}, err
		}
		return *a, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan accounts: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}

// CountActiveAdmins locks every active admin row in id order before counting,
// so concurrent deactivations serialize instead of both observing a spare admin.
func (r *AccountRepository) CountActiveAdmins(ctx context.Context, excludingID int64) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `
		SELECT count(*) FROM (
			SELECT id FROM users
			WHERE role = 'admin' AND is_active = true
			ORDER BY id
			FOR UPDATE
		) AS locked
		WHERE locked.id <> $1
	`, excludingID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active admins: %w", err)
	}
	return n, nil
}

// UpdatePartial writes only the non-nil fields of patch and always bumps updated_at.
func (r *AccountRepository) UpdatePartial(ctx context.Context, id int64, patch entity.AccountPatch, now time.Time) (*entity.Account, error) {
	b := &setBuilder{}
	if patch.Email != nil {
		b.add("email", *patch.Email)
	}
	if patch.FirstName != nil {
		b.add("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		b.add("last_name", *patch.LastName)
	}
	if patch.Role != nil {
		b.add("role", string(*patch.Role))
	}
	if patch.IsActive != nil {
		b.add("is_active", *patch.IsActive)
	}
	b.add("updated_at", now)
	where := b.next(id)

	q := `UPDATE users SET ` + strings.Join(b.sets, ", ") + ` WHERE id = ` + where + ` RETURNING ` + accountColumns
	a, err := scanAccount(r.db.QueryRow(ctx, q, b.args...))
	if err != nil {
		return nil, mapErr(err)
	}
	return a, nil
}

func (r *AccountRepository) WithTx(ctx context.Context, fn func(repository.AccountRepository) error) error {
	if r.beginner == nil {
		return fn(r)
	}
	return WithTx(ctx, r.beginner, func(tx DBTX) error {
		return fn(&AccountRepository{db: tx})
	})
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
