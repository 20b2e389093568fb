package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
	"github.com/oksasatya/go-archive-admin/internal/domain/repository"
)

var accountCols = []string{"id", "email", "password_hash", "first_name", "last_name", "role", "is_active", "created_at", "updated_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return mock
}

func TestAccountRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewAccountRepository(mock)
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("a@x.io", "$2a$digest", "Ann", "Lee", "admin", true).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	a := &entity.Account{Email: "a@x.io", PasswordHash: "$2a$digest", FirstName: "Ann", LastName: "Lee", Role: entity.RoleAdmin, IsActive: true}
	require.NoError(t, repo.Create(context.Background(), a))
	assert.Equal(t, int64(7), a.ID)
	assert.Equal(t, now, a.CreatedAt)
}

func TestAccountRepository_Create_Duplicate(t *testing.T) {
	mock := newMock(t)
	repo := NewAccountRepository(mock)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("a@x.io", "h", "Ann", "Lee", "user", true).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &entity.Account{Email: "a@x.io", PasswordHash: "h", FirstName: "Ann", LastName: "Lee", Role: entity.RoleUser, IsActive: true})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestAccountRepository_GetByEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewAccountRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
		WithArgs("a@x.io").
		WillReturnRows(pgxmock.NewRows(accountCols).
			AddRow(int64(1), "a@x.io", "h", "Ann", "Lee", "admin", false, now, now))

	a, err := repo.GetByEmail(context.Background(), "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, a.Role)
	assert.False(t, a.IsActive)
	assert.Equal(t, "h", a.PasswordHash)
}

func TestAccountRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewAccountRepository(mock)

	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAccountRepository_CountActiveAdmins_LocksRows(t *testing.T) {
	mock := newMock(t)
	repo := NewAccountRepository(mock)

	mock.ExpectQuery(`(?s)SELECT count\(\*\) FROM \(.*role = 'admin' AND is_active = true.*ORDER BY id.*FOR UPDATE.*\) AS locked\s+WHERE locked.id <> \$1`).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))

	n, err := repo.CountActiveAdmins(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestAccountRepository_UpdatePartial_OnlyPresentFields(t *testing.T) {
	mock := newMock(t)
	repo := NewAccountRepository(mock)
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	email := "new@x.io"
	role := entity.RoleUser

	q := regexp.QuoteMeta(`UPDATE users SET email = $1, role = $2, updated_at = $3 WHERE id = $4 RETURNING ` + accountColumns)
	mock.ExpectQuery(q).
		WithArgs("new@x.io", "user", now, int64(5)).
		WillReturnRows(pgxmock.NewRows(accountCols).
			AddRow(int64(5), "new@x.io", "h", "Bo", "Ng", "user", true, now, now))

	a, err := repo.UpdatePartial(context.Background(), 5, entity.AccountPatch{Email: &email, Role: &role}, now)
	require.NoError(t, err)
	assert.Equal(t, "new@x.io", a.Email)
	assert.Equal(t, now, a.UpdatedAt)
}

func TestAccountRepository_UpdatePartial_EmptyPatchBumpsUpdatedAt(t *testing.T) {
	mock := newMock(t)
	repo := NewAccountRepository(mock)
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	q := regexp.QuoteMeta(`UPDATE users SET updated_at = $1 WHERE id = $2 RETURNING`)
	mock.ExpectQuery(q).
		WithArgs(now, int64(9)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.UpdatePartial(context.Background(), 9, entity.AccountPatch{}, now)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAccountRepository_WithTx_CommitAndRollback(t *testing.T) {
	mock := newMock(t)
	repo := NewAccountRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM users`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectCommit()

	err := repo.WithTx(context.Background(), func(tx repository.AccountRepository) error {
		n, err := tx.Count(context.Background())
		assert.Equal(t, int64(1), n)
		return err
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()
	err = repo.WithTx(context.Background(), func(repository.AccountRepository) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestAccountRepository_WithTx_NestedReusesTransaction(t *testing.T) {
	mock := newMock(t)
	repo := NewAccountRepository(mock)

	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := repo.WithTx(context.Background(), func(tx repository.AccountRepository) error {
		return tx.WithTx(context.Background(), func(repository.AccountRepository) error {
			calls++
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
