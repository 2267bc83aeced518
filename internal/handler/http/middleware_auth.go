package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/internal/service"
	"github.com/MKhiriev/go-shop/internal/utils"
)

// auth enforces bearer-token authentication.
//
// A request without an "Authorization: Bearer ..." header is rejected with
// [service.ErrNoToken]. A header whose token cannot be verified (malformed,
// expired, foreign issuer or signature) is rejected with
// [service.ErrTokenIsExpiredOrInvalid]. Both answer 401.
//
// On success the caller's hex id is stored in the request context, see
// [utils.GetUserIDFromContext].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer") {
			h.writeError(w, r, service.ErrNoToken)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			h.writeError(w, r, service.ErrTokenIsExpiredOrInvalid)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		userID, err := token.GetUserID()
		if err != nil {
			h.writeError(w, r, fmt.Errorf("%w: %w", service.ErrTokenIsExpiredOrInvalid, err))
			return
		}

		l := logger.FromRequest(r).With().Str("user_id", userID.Hex()).Logger()
		ctx = l.WithContext(utils.WithUserID(ctx, userID.Hex()))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// admin must run after auth. It lets the request through only when the
// caller exists and has the admin flag; otherwise it answers 403.
func (h *Handler) admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID, _ := utils.GetUserIDFromContext(ctx)

		isAdmin, err := h.services.UserService.IsAdmin(ctx, userID)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		if !isAdmin {
			h.writeError(w, r, service.ErrNotAdmin)
			return
		}

		next.ServeHTTP(w, r)
	})
}
