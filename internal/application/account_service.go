package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
	repo "github.com/oksasatya/go-archive-admin/internal/domain/repository"
	"github.com/oksasatya/go-archive-admin/pkg/helpers"
)

// AccountService manages the account lifecycle while keeping at least one
// active admin whenever any account exists.
type AccountService struct {
	Accounts repo.AccountRepository
	Hasher   Hasher
	Notifier Notifier
	// StatsCache is optional; it is told when the account count changes.
	StatsCache StatsInvalidator
	Logger     logrus.FieldLogger
	Now        func() time.Time
}

func NewAccountService(accounts repo.AccountRepository, hasher Hasher, notifier Notifier, logger logrus.FieldLogger) *AccountService {
	if notifier == nil {
		notifier = NopNotifier
	}
	return &AccountService{Accounts: accounts, Hasher: hasher, Notifier: notifier, Logger: logger, Now: utcNow}
}

type CreateAccountInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      entity.Role
}

func (s *AccountService) Create(ctx context.Context, in CreateAccountInput) (*entity.Account, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !role.Valid() {
		return nil, invalid("role must be admin or user")
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, invalid("email is required")
	}

	exists, err := s.Accounts.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, internal("check email", err)
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	digest, err := s.Hasher.Hash(in.Password)
	if errors.Is(err, helpers.ErrPasswordTooLong) {
		return nil, invalid("password must be at most 72 bytes")
	}
	if err != nil {
		return nil, internal("hash password", err)
	}

	acc := &entity.Account{
		Email:        in.Email,
		PasswordHash: digest,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		IsActive:     true,
	}
	if err := s.Accounts.Create(ctx, acc); err != nil {
		// a concurrent insert can still win the unique constraint
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, internal("create account", err)
	}
	acc.PasswordHash = ""
	invalidateStats(ctx, s.StatsCache)

	helpers.LogInfo(s.Logger, "account created", logrus.Fields{"user_id": acc.ID, "role": acc.Role})
	if err := s.Notifier.AccountCreated(ctx, acc); err != nil {
		s.Logger.WithError(err).WithField("user_id", acc.ID).Warn("account created notification failed")
	}
	return acc, nil
}

func (s *AccountService) Get(ctx context.Context, id int64) (*entity.Account, error) {
	acc, err := s.Accounts.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("get account", "account", err)
	}
	acc.PasswordHash = ""
	return acc, nil
}

func (s *AccountService) List(ctx context.Context) ([]entity.Account, error) {
	accounts, err := s.Accounts.List(ctx)
	if err != nil {
		return nil, internal("list accounts", err)
	}
	for i := range accounts {
		accounts[i].PasswordHash = ""
	}
	return accounts, nil
}

// Update applies the present fields of patch and always refreshes updated_at.
// Setting is_active=false on an admin is guarded like Deactivate; a role change is not.
func (s *AccountService) Update(ctx context.Context, id int64, patch entity.AccountPatch) (*entity.Account, error) {
	if patch.Role != nil && !patch.Role.Valid() {
		return nil, invalid("role must be admin or user")
	}
	if patch.Empty() {
		return s.touch(ctx, id)
	}

	var (
		before  *entity.Account
		updated *entity.Account
	)
	err := s.Accounts.WithTx(ctx, func(tx repo.AccountRepository) error {
		cur, err := tx.GetByID(ctx, id)
		if err != nil {
			return storeErr("get account", "account", err)
		}
		before = cur

		if patch.Email != nil && *patch.Email != cur.Email {
			taken, err := tx.ExistsByEmail(ctx, *patch.Email)
			if err != nil {
				return internal("check email", err)
			}
			if taken {
				return ErrDuplicateEmail
			}
		}

		if patch.IsActive != nil && !*patch.IsActive && cur.IsAdmin() {
			if err := s.ensureOtherAdmin(ctx, tx, id); err != nil {
				return err
			}
		}

		updated, err = tx.UpdatePartial(ctx, id, patch, s.Now())
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			return ErrDuplicateEmail
		case err != nil:
			return storeErr("update account", "account", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	updated.PasswordHash = ""

	log := s.Logger.WithField("user_id", id)
	if before.IsAdmin() && before.IsActive && !updated.IsAdmin() {
		if n, cerr := s.Accounts.CountActiveAdmins(ctx, id); cerr == nil && n == 0 {
			log.Warn("role change removed the last active admin")
		}
	}
	if before.IsActive && !updated.IsActive {
		s.notifyDeactivated(ctx, updated)
	}
	log.Info("account updated")
	return updated, nil
}

// touch refreshes updated_at only. No field changes, so there is nothing to guard.
func (s *AccountService) touch(ctx context.Context, id int64) (*entity.Account, error) {
	acc, err := s.Accounts.UpdatePartial(ctx, id, entity.AccountPatch{}, s.Now())
	if err != nil {
		return nil, storeErr("update account", "account", err)
	}
	acc.PasswordHash = ""
	s.Logger.WithField("user_id", id).Info("account updated")
	return acc, nil
}

// Deactivate soft-deletes an account. The admin count and the write share one
// transaction holding row locks on every active admin.
func (s *AccountService) Deactivate(ctx context.Context, id int64) (*entity.Account, error) {
	var out *entity.Account
	err := s.Accounts.WithTx(ctx, func(tx repo.AccountRepository) error {
		cur, err := tx.GetByID(ctx, id)
		if err != nil {
			return storeErr("get account", "account", err)
		}
		if cur.IsAdmin() {
			if err := s.ensureOtherAdmin(ctx, tx, id); err != nil {
				return err
			}
		}
		inactive := false
		out, err = tx.UpdatePartial(ctx, id, entity.AccountPatch{IsActive: &inactive}, s.Now())
		if err != nil {
			return storeErr("deactivate account", "account", err)
		}
		return nil
	})
	if err != nil {
		if CodeOf(err) == CodeLastAdmin {
			s.Logger.WithField("user_id", id).Warn("refused to deactivate last active admin")
		}
		return nil, err
	}
	out.PasswordHash = ""
	s.Logger.WithField("user_id", id).Info("account deactivated")
	s.notifyDeactivated(ctx, out)
	return out, nil
}

func (s *AccountService) ensureOtherAdmin(ctx context.Context, tx repo.AccountRepository, id int64) error {
	n, err := tx.CountActiveAdmins(ctx, id)
	if err != nil {
		return internal("count admins", err)
	}
	if n == 0 {
		return ErrLastAdmin
	}
	return nil
}

func (s *AccountService) notifyDeactivated(ctx context.Context, a *entity.Account) {
	if err := s.Notifier.AccountDeactivated(ctx, a); err != nil {
		s.Logger.WithError(err).WithField("user_id", a.ID).Warn("account deactivated notification failed")
	}
}
