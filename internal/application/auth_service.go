package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
	repo "github.com/oksasatya/go-archive-admin/internal/domain/repository"
	"github.com/oksasatya/go-archive-admin/pkg/helpers"
)

// dummyPassword is hashed once so unknown identities cost one bcrypt verification too.
const dummyPassword = "archive-admin/timing-equalizer"

type AuthService struct {
	Accounts repo.AccountRepository
	Hasher   Hasher
	Tokens   TokenManager
	Logger   logrus.FieldLogger
	Now      func() time.Time

	dummyDigest string
}

func NewAuthService(accounts repo.AccountRepository, hasher Hasher, tokens TokenManager, logger logrus.FieldLogger) *AuthService {
	s := &AuthService{
		Accounts: accounts,
		Hasher:   hasher,
		Tokens:   tokens,
		Logger:   logger,
		Now:      utcNow,
	}
	if d, err := hasher.Hash(dummyPassword); err == nil {
		s.dummyDigest = d
	}
	return s
}

// LoginResult is the outcome of a successful login. The account never carries its digest outward.
type LoginResult struct {
	Account   *entity.Account `json:"account"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Login verifies email and password and issues a session token.
// Email matching is exact. Inactive accounts are rejected before the password is checked.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	log := s.Logger.WithField("email", email)

	acc, err := s.Accounts.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		s.Hasher.Verify(password, s.dummyDigest)
		log.Info("login rejected: unknown identity")
		return nil, ErrUnknownIdentity
	}
	if err != nil {
		log.WithError(err).Error("login lookup failed")
		return nil, internal("lookup account", err)
	}

	log = log.WithField("user_id", acc.ID)
	if !acc.IsActive {
		log.Info("login rejected: account inactive")
		return nil, ErrAccountInactive
	}
	if !s.Hasher.Verify(password, acc.PasswordHash) {
		log.Info("login rejected: bad credential")
		return nil, ErrBadCredential
	}

	token, exp, err := s.Tokens.Issue(acc.ID, string(acc.Role), s.Now())
	if err != nil {
		log.WithError(err).Error("issue token failed")
		return nil, internal("issue token", err)
	}
	log.Info("login succeeded")

	out := *acc
	out.PasswordHash = ""
	return &LoginResult{Account: &out, Token: token, ExpiresAt: exp}, nil
}

// Authenticate resolves a session token to its current, active account.
// The account row is re-read on every call so deactivation takes effect immediately.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entity.Account, error) {
	claims, err := s.Tokens.Verify(token, s.Now())
	if err != nil {
		return nil, tokenErr(err)
	}
	id, err := claims.AccountID()
	if err != nil {
		return nil, ErrMalformedToken
	}
	acc, err := s.Accounts.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUnknownIdentity
	}
	if err != nil {
		return nil, internal("load account", err)
	}
	if !acc.IsActive {
		return nil, ErrAccountInactive
	}
	acc.PasswordHash = ""
	return acc, nil
}

func tokenErr(err error) error {
	switch {
	case errors.Is(err, helpers.ErrExpiredToken):
		return ErrExpiredToken
	case errors.Is(err, helpers.ErrInvalidSignature):
		return ErrInvalidSignature
	default:
		return &Error{Code: CodeMalformedToken, Message: "malformed token", Err: err}
	}
}
