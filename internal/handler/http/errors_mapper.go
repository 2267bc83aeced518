package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/internal/service"
	"github.com/MKhiriev/go-shop/internal/utils"
	"github.com/MKhiriev/go-shop/models"
)

const internalServerErrorMessage = "Internal Server Error"

// errorStatusMap assigns a status to every error whose text may be shown to
// clients. An error chain carries at most one of these sentinels.
var errorStatusMap = map[error]int{
	service.ErrInvalidUserData:   http.StatusBadRequest,
	service.ErrUserAlreadyExists: http.StatusBadRequest,
	service.ErrNoOrderItems:      http.StatusBadRequest,
	service.ErrInvalidOrderData:  http.StatusBadRequest,
	ErrInvalidJSON:               http.StatusBadRequest,
	ErrInvalidSignature:          http.StatusBadRequest,
	ErrMissingSignature:          http.StatusBadRequest,

	service.ErrInvalidEmailOrPassword:  http.StatusUnauthorized,
	service.ErrNoToken:                 http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	service.ErrNotAdmin: http.StatusForbidden,

	service.ErrUserNotFound:  http.StatusNotFound,
	service.ErrOrderNotFound: http.StatusNotFound,

	ErrPayloadTooLarge: http.StatusRequestEntityTooLarge,
	ErrTooManyRequests: http.StatusTooManyRequests,
}

// statusFromError returns the status of the first known sentinel in err's
// chain together with the sentinel's text. Unknown errors yield 500 with a
// generic message.
func statusFromError(err error) (int, string) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status, target.Error()
		}
	}
	return http.StatusInternalServerError, internalServerErrorMessage
}

// errorStack renders the wrapped error chain, one error per line.
func errorStack(err error) string {
	var lines []string

	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		lines = append(lines, e.Error())

		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)

	return strings.Join(lines, "\n")
}

// writeError answers with the JSON error body. The stack is included only
// outside production.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFromError(err)

	log := logger.FromRequest(r)
	if status == http.StatusInternalServerError {
		log.Err(err).Str("uri", r.RequestURI).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	resp := models.MessageResponse{Message: message}
	if !h.production {
		resp.Stack = errorStack(err)
	}

	utils.WriteJSON(w, resp, status)
}
