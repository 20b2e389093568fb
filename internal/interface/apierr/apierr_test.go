package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-archive-admin/internal/application"
	"github.com/oksasatya/go-archive-admin/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

type envelope struct {
	Message string `json:"message"`
	Error   struct {
		Code    string `json:"code"`
		Details any    `json:"details"`
	} `json:"error"`
}

func write(t *testing.T, err error) (int, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	Write(c, helpers.NewNopLogger(), err)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestWrite_CredentialFailuresAreIndistinguishable(t *testing.T) {
	s1, e1 := write(t, application.ErrUnknownIdentity)
	s2, e2 := write(t, application.ErrBadCredential)
	assert.Equal(t, http.StatusUnauthorized, s1)
	assert.Equal(t, s1, s2)
	assert.Equal(t, e1, e2)
	assert.Equal(t, CodeInvalidCredentials, e1.Error.Code)
	assert.Equal(t, "invalid email or password", e1.Message)
}

func TestWrite_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{application.ErrAccountInactive, http.StatusForbidden, "ACCOUNT_INACTIVE"},
		{application.ErrExpiredToken, http.StatusUnauthorized, "EXPIRED_TOKEN"},
		{application.ErrInvalidSignature, http.StatusUnauthorized, "INVALID_SIGNATURE"},
		{application.ErrMalformedToken, http.StatusUnauthorized, "MALFORMED_TOKEN"},
		{application.ErrLastAdmin, http.StatusConflict, "LAST_ADMIN"},
		{application.ErrDuplicateEmail, http.StatusConflict, "DUPLICATE_EMAIL"},
		{application.ErrDuplicateName, http.StatusConflict, "DUPLICATE_NAME"},
		{application.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{application.ErrValidation, http.StatusBadRequest, "VALIDATION_FAILED"},
		{application.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{application.ErrUnavailable, http.StatusServiceUnavailable, "UNAVAILABLE"},
	}
	for _, tc := range cases {
		status, env := write(t, tc.err)
		assert.Equal(t, tc.status, status, tc.code)
		assert.Equal(t, tc.code, env.Error.Code)
	}
}

func TestWrite_InternalHidesCause(t *testing.T) {
	cause := &application.Error{Code: application.CodeInternal, Message: "list accounts", Err: errors.New("pq: password authentication failed")}
	status, env := write(t, fmt.Errorf("wrapped: %w", cause))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", env.Message)
	assert.Nil(t, env.Error.Details)

	status, env = write(t, errors.New("plain"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", env.Error.Code)
}
