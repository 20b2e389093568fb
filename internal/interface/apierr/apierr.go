// Package apierr translates application errors into API error responses.
package apierr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-archive-admin/internal/application"
	"github.com/oksasatya/go-archive-admin/pkg/response"
)

const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeRateLimited        = "RATE_LIMITED"

	msgInvalidCredentials = "invalid email or password"
)

// Status maps an application error code to its HTTP status.
func Status(code application.Code) int {
	switch code {
	case application.CodeUnknownIdentity, application.CodeBadCredential,
		application.CodeMalformedToken, application.CodeExpiredToken, application.CodeInvalidSignature:
		return http.StatusUnauthorized
	case application.CodeAccountInactive, application.CodeForbidden:
		return http.StatusForbidden
	case application.CodeNotFound:
		return http.StatusNotFound
	case application.CodeDuplicateEmail, application.CodeDuplicateName, application.CodeLastAdmin:
		return http.StatusConflict
	case application.CodeValidation:
		return http.StatusBadRequest
	case application.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Write sends err as an error envelope. Unknown identity and bad credential
// share one public code so callers cannot probe which emails exist.
func Write(c *gin.Context, logger logrus.FieldLogger, err error) {
	code := application.CodeOf(err)
	status := Status(code)

	switch code {
	case application.CodeUnknownIdentity, application.CodeBadCredential:
		response.Fail(c, status, CodeInvalidCredentials, msgInvalidCredentials, nil)
		return
	case application.CodeInternal:
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			}).Error("request failed")
		}
		response.Fail(c, status, string(code), "internal server error", nil)
		return
	}

	msg := err.Error()
	var appErr *application.Error
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	response.Fail(c, status, string(code), msg, nil)
}

// Validation writes a 400 with per-field details.
func Validation(c *gin.Context, message string, details interface{}) {
	response.Fail(c, http.StatusBadRequest, string(application.CodeValidation), message, details)
}
