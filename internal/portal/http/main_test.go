package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arcadehub/portal/internal/portal/service"
	"github.com/arcadehub/portal/internal/portal/store"
	"github.com/arcadehub/portal/internal/portal/store/drivers/sqlite"
	"github.com/arcadehub/portal/pkg/cryptox"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "portal-http-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

type testEnv struct {
	router *Router
	store  store.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sessions := &service.SessionService{Store: st}
	twoFactor := &service.TwoFactorService{Store: st, Issuer: "arcade-portal"}
	users := &service.UserService{Store: st, Sessions: sessions}
	auth := &service.AuthService{Store: st, Sessions: sessions, TwoFactor: twoFactor}

	router := NewRouter("test", st, logger, Cookies{
		SessionTTL: 30 * 24 * time.Hour,
		PendingTTL: 5 * time.Minute,
	})
	router.AuthService = auth
	router.UserService = users
	router.SessionService = sessions
	router.TwoFactorService = twoFactor
	router.ApplyRoutes()

	return &testEnv{router: router, store: st}
}

// do issues a request against the router, optionally with a JSON body and
// cookies, and returns the recorded response.
func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func cookieNamed(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name && ck.MaxAge >= 0 {
			return ck
		}
	}
	return nil
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

// register creates an account through the API and returns its id and
// session cookie.
func (e *testEnv) register(t *testing.T, identifier, password string) (string, *http.Cookie) {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/v1/auth/register", RegisterRequest{
		Identifier: identifier,
		Password:   password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	user := decodeJSON[UserResponse](t, rec)
	ck := cookieNamed(t, rec, sessionCookieName)
	require.NotNil(t, ck, "registration should sign the account in")
	return user.ID, ck
}
