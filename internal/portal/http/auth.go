package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/arcadehub/portal/internal/portal/domain"
	"github.com/arcadehub/portal/internal/portal/service"
	"github.com/arcadehub/portal/pkg/httpx"
	"github.com/arcadehub/portal/pkg/slogx"
)

// AuthHandler owns the login/logout surface.
type AuthHandler struct {
	AuthService *service.AuthService
	UserService *service.UserService
	Cookies     Cookies
}

// HandleRegister handles POST /v1/auth/register
//
//	@Summary		Register a new account
//	@Description	Creates an account with the default user role and signs it in.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest	true	"Account details"
//	@Success		201		{object}	UserResponse	"Created account"
//	@Failure		400		{object}	ErrorResponse	"Invalid request body"
//	@Failure		409		{object}	ErrorResponse	"Identifier already taken"
//	@Failure		500		{object}	ErrorResponse	"Internal server error"
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.Identifier == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "identifier and password are required")
		return
	}

	user, err := h.UserService.Register(ctx, req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrIdentifierTaken) {
			httpx.WriteError(w, http.StatusConflict, "identifier_taken", "That identifier is already in use")
			return
		}
		log.Error("failed to register user", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to create account")
		return
	}

	// Registration doubles as a first login
	result, err := h.AuthService.Login(ctx, req.Identifier, req.Password)
	if err == nil && result.Outcome == domain.LoginAuthenticated {
		h.Cookies.setSession(w, result.Token)
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

// HandleLogin handles POST /v1/auth/login
//
//	@Summary		Log in with identifier and password
//	@Description	Issues a session cookie, or reports that a second factor code is required.
//	@Description	Unknown identifiers and wrong passwords return the same error.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	LoginResponse	"Flow outcome"
//	@Failure		400		{object}	ErrorResponse	"Invalid request body"
//	@Failure		401		{object}	ErrorResponse	"Invalid credentials"
//	@Failure		500		{object}	ErrorResponse	"Internal server error"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	result, err := h.AuthService.Login(ctx, req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Incorrect identifier or password")
			return
		}
		log.Error("login failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Login failed")
		return
	}

	switch result.Outcome {
	case domain.LoginSecondFactorRequired:
		h.Cookies.setPending(w, result.PendingUserID)
		httpx.WriteJSON(w, http.StatusOK, LoginResponse{Outcome: string(result.Outcome)})
	default:
		h.Cookies.setSession(w, result.Token)
		httpx.WriteJSON(w, http.StatusOK, LoginResponse{Outcome: string(result.Outcome)})
	}
}

// HandleSecondFactor handles POST /v1/auth/2fa
//
//	@Summary		Complete a pending login with a TOTP code
//	@Description	Exchanges the pending cookie plus a valid authenticator code for a session cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SecondFactorRequest	true	"Authenticator code"
//	@Success		200		{object}	LoginResponse		"Authenticated"
//	@Failure		400		{object}	ErrorResponse		"Invalid request body"
//	@Failure		401		{object}	ErrorResponse		"No pending login or invalid code"
//	@Failure		500		{object}	ErrorResponse		"Internal server error"
//	@Router			/v1/auth/2fa [post].
func (h *AuthHandler) HandleSecondFactor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := pendingUserID(r)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "no_pending_login", "No login awaiting a second factor")
		return
	}

	var req SecondFactorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	result, err := h.AuthService.CompleteSecondFactor(ctx, userID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSecondFactorCode):
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_code", "Invalid authenticator code")
		case errors.Is(err, service.ErrSecondFactorNotConfigured):
			// The pending login can never complete; drop the cookie with it
			h.Cookies.clearPending(w)
			httpx.WriteError(w, http.StatusUnauthorized, "no_pending_login", "No login awaiting a second factor")
		default:
			log.Error("second factor verification failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Verification failed")
		}
		return
	}

	h.Cookies.clearPending(w)
	h.Cookies.setSession(w, result.Token)
	httpx.WriteJSON(w, http.StatusOK, LoginResponse{Outcome: string(result.Outcome)})
}

// HandleLogout handles POST /v1/auth/logout
//
//	@Summary		Log out
//	@Description	Revokes the current session and clears the cookie. Safe to call without a session.
//	@Tags			Auth
//	@Produce		json
//	@Success		204	"Logged out"
//	@Router			/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if token := sessionToken(r); token != "" {
		if err := h.AuthService.Logout(ctx, token); err != nil {
			slogx.FromContext(ctx).Error("logout failed", "err", err)
		}
	}

	h.Cookies.clearSession(w)
	h.Cookies.clearPending(w)
	w.WriteHeader(http.StatusNoContent)
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Identifier:       u.Identifier,
		Role:             string(u.Role),
		TwoFactorEnabled: u.TwoFactorEnabled(),
		CreatedAt:        u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        u.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
