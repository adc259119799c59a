package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/gab-correia/w1-app/internal/domain"
)

// Error codes returned in the "code" field.
const (
	CodeDuplicateEmail     = "DuplicateEmail"
	CodeInvalidRole        = "InvalidRole"
	CodeInvalidCredentials = "InvalidCredentials"
	CodeMalformedRequest   = "MalformedRequest"
	CodeUnauthenticated    = "Unauthenticated"
	CodeNotFound           = "NotFound"
	CodeTooManyRequests    = "TooManyRequests"
	CodeTimeout            = "Timeout"
	CodeInternal           = "Internal"
)

type mapping struct {
	err    error
	status int
	code   string
	msg    string // empty means err.Error()
}

// Order matters: the first match wins.
var errorTable = []mapping{
	{domain.ErrDuplicateEmail, http.StatusBadRequest, CodeDuplicateEmail, ""},
	{domain.ErrInvalidRole, http.StatusBadRequest, CodeInvalidRole, ""},
	{domain.ErrMalformedRequest, http.StatusBadRequest, CodeMalformedRequest, ""},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials, ""},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, CodeUnauthenticated, ""},
	{domain.ErrUserNotFound, http.StatusNotFound, CodeNotFound, ""},
	{domain.ErrProfileNotFound, http.StatusNotFound, CodeNotFound, ""},
	{domain.ErrStorageUnavailable, http.StatusInternalServerError, CodeInternal, "service unavailable, try again"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, CodeTimeout, "timeout"},
	{context.Canceled, http.StatusGatewayTimeout, CodeTimeout, "timeout"},
	{domain.ErrHashing, http.StatusInternalServerError, CodeInternal, "internal error"},
	{domain.ErrTokenIssue, http.StatusInternalServerError, CodeInternal, "internal error"},
}

// FromError maps err to a status and a body that never carries internal
// detail: only the sentinel's own message is exposed.
func FromError(err error) (int, ErrorBody) {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			msg := m.msg
			if msg == "" {
				msg = m.err.Error()
			}
			return m.status, ErrorBody{Error: msg, Code: m.code}
		}
	}
	return http.StatusInternalServerError, ErrorBody{Error: "internal error", Code: CodeInternal}
}
