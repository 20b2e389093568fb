package helpers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpiredToken     = errors.New("token expired")
	ErrEmptySecret      = errors.New("jwt secret must not be empty")
)

// tokenPrecision is the resolution of iat and exp. NumericDate claims are
// written with full fractional seconds and rounded back to it on Verify.
const tokenPrecision = time.Microsecond

func init() {
	jwt.TimePrecision = time.Nanosecond
}

// JWTManager issues and verifies HS256 session tokens.
// Tokens are stateless: rotating Secret invalidates every outstanding token.
type JWTManager struct {
	Secret []byte
	TTL    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) (*JWTManager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &JWTManager{Secret: []byte(secret), TTL: ttl}, nil
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AccountID parses the subject claim.
func (c *Claims) AccountID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad subject", ErrMalformedToken)
	}
	return id, nil
}

// Issue signs a token for the account with iat = now and exp = iat + TTL,
// both kept to the microsecond.
func (m *JWTManager) Issue(accountID int64, role string, now time.Time) (string, time.Time, error) {
	iat := now.Truncate(tokenPrecision)
	exp := iat.Add(m.TTL)
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(accountID, 10),
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return s, exp, nil
}

// Verify checks signature and expiry against now. A token is expired once now reaches exp.
func (m *JWTManager) Verify(tokenStr string, now time.Time) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return m.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(tokenPrecision),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		default:
			return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
		}
	}
	if claims.ExpiresAt == nil {
		return nil, ErrExpiredToken
	}
	// decoding goes through float64 seconds; snap back to the issued resolution
	claims.ExpiresAt.Time = claims.ExpiresAt.Time.Round(tokenPrecision)
	if claims.IssuedAt != nil {
		claims.IssuedAt.Time = claims.IssuedAt.Time.Round(tokenPrecision)
	}
	// exp is exclusive: a token is dead at exactly exp
	if !now.Before(claims.ExpiresAt.Time) {
		return nil, ErrExpiredToken
	}
	if claims.Subject == "" {
		return nil, ErrMalformedToken
	}
	return claims, nil
}
