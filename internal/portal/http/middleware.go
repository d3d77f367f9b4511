package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/arcadehub/portal/internal/portal/domain"
	"github.com/arcadehub/portal/internal/portal/service"
	"github.com/arcadehub/portal/pkg/httpx"
	"github.com/arcadehub/portal/pkg/slogx"
)

type ctxKey int

const ctxKeyUser ctxKey = iota

// userFrom returns the authenticated user, or nil when the request carried
// no valid session.
func userFrom(ctx context.Context) *domain.User {
	u, _ := ctx.Value(ctxKeyUser).(*domain.User)
	return u
}

// SessionAuthn resolves the session cookie into a user and stows it in the
// request context. Requests without a valid session pass through with no
// user attached; handlers decide whether that is fatal.
func SessionAuthn(sessions *service.SessionService, users *service.UserService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			sess, err := sessions.Lookup(ctx, token)
			if err != nil {
				if !errors.Is(err, service.ErrSessionNotFound) && !errors.Is(err, service.ErrSessionExpired) {
					slogx.FromContext(ctx).Error("session lookup failed", "err", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.Get(ctx, sess.UserID)
			if err != nil {
				slogx.FromContext(ctx).Warn("session user missing", "user_id", sess.UserID, "err", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, ctxKeyUser, &user)))
		})
	}
}

// requireUser is the handler-side gate: 401 when no session resolved.
func requireUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user := userFrom(r.Context())
	if user == nil {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "A valid session is required")
		return nil, false
	}
	return user, true
}
