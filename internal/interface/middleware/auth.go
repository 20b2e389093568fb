package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-archive-admin/internal/application"
	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
	"github.com/oksasatya/go-archive-admin/internal/interface/apierr"
	"github.com/oksasatya/go-archive-admin/pkg/helpers"
	"github.com/oksasatya/go-archive-admin/pkg/response"
)

const CtxAccountKey = "account"

// Authenticator resolves a session token to an active account.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.Account, error)
}

// bearerToken reads "Authorization: Bearer <jwt>", then the session cookie.
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, tok, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(tok)
		}
		return ""
	}
	if tok, err := c.Cookie(helpers.SessionCookie); err == nil {
		return tok
	}
	return ""
}

// Auth verifies the session token and loads the account behind it.
// It sets the account and userID in the Gin context on success.
func Auth(a Authenticator, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Fail(c, http.StatusUnauthorized, apierr.CodeUnauthorized, "missing access token", nil)
			return
		}
		acc, err := a.Authenticate(c.Request.Context(), token)
		if err != nil {
			apierr.Write(c, logger, err)
			return
		}
		c.Set(CtxAccountKey, acc)
		c.Set("userID", acc.ID)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated account has role.
func RequireRole(role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		acc := CurrentAccount(c)
		if acc == nil {
			response.Fail(c, http.StatusUnauthorized, apierr.CodeUnauthorized, "missing access token", nil)
			return
		}
		if acc.Role != role {
			response.Fail(c, http.StatusForbidden, string(application.CodeForbidden), "insufficient role", nil)
			return
		}
		c.Next()
	}
}

// CurrentAccount returns the account set by Auth, or nil.
func CurrentAccount(c *gin.Context) *entity.Account {
	v, ok := c.Get(CtxAccountKey)
	if !ok {
		return nil
	}
	acc, _ := v.(*entity.Account)
	return acc
}
