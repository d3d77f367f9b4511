package http

import (
	"net/http"
	"time"
)

const (
	sessionCookieName = "session_token"
	pendingCookieName = "pending_2fa"
)

// Cookies centralizes how the two auth cookies are minted and cleared.
// Both are HttpOnly with SameSite=Lax so scripts cannot read them and
// cross-site POSTs do not carry them.
type Cookies struct {
	Secure     bool
	SessionTTL time.Duration
	PendingTTL time.Duration
}

func (c Cookies) setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c Cookies) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c Cookies) setPending(w http.ResponseWriter, userID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     pendingCookieName,
		Value:    userID,
		Path:     "/",
		MaxAge:   int(c.PendingTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c Cookies) clearPending(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     pendingCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func sessionToken(r *http.Request) string {
	ck, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return ck.Value
}

func pendingUserID(r *http.Request) string {
	ck, err := r.Cookie(pendingCookieName)
	if err != nil {
		return ""
	}
	return ck.Value
}
