package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/arcadehub/portal/internal/portal/service"
	"github.com/arcadehub/portal/internal/portal/store"
	"github.com/arcadehub/portal/pkg/httpx"
	"github.com/arcadehub/portal/pkg/slogx"
)

// TwoFactorHandler serves TOTP enrollment and removal for a user's own
// account (or an admin acting on it).
type TwoFactorHandler struct {
	TwoFactorService *service.TwoFactorService
	Guard            service.Guard
}

// HandleEnroll handles POST /v1/users/{id}/2fa/enroll
//
//	@Summary		Begin TOTP enrollment
//	@Description	Generates a secret and provisioning URI for an authenticator app.
//	@Description	The second factor stays off until the first code is confirmed. Re-calling
//	@Description	returns the same secret, so the QR stays stable across views.
//	@Tags			TwoFactor
//	@Produce		json
//	@Param			id	path		string				true	"User ID"
//	@Success		200	{object}	TOTPEnrollResponse	"Secret and provisioning URI"
//	@Failure		401	{object}	ErrorResponse		"No session"
//	@Failure		403	{object}	ErrorResponse		"Not the owner"
//	@Router			/v1/users/{id}/2fa/enroll [post].
func (h *TwoFactorHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	targetID := r.PathValue("id")

	if d := h.Guard.Check(userFrom(ctx), targetID); !d.Allowed {
		writeDenied(w, d)
		return
	}

	enrollment, err := h.TwoFactorService.BeginEnrollment(ctx, targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "No such user")
			return
		}
		slogx.FromContext(ctx).Error("failed to begin enrollment", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to begin enrollment")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, TOTPEnrollResponse{
		Secret:          enrollment.Secret,
		ProvisioningURI: enrollment.ProvisioningURI,
		Issuer:          enrollment.Issuer,
		Account:         enrollment.Account,
	})
}

// HandleConfirm handles POST /v1/users/{id}/2fa/confirm
//
//	@Summary		Confirm TOTP enrollment
//	@Description	Verifies the first authenticator code and switches the second factor on.
//	@Tags			TwoFactor
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string				true	"User ID"
//	@Param			request	body	SecondFactorRequest	true	"Authenticator code"
//	@Success		204		"Second factor enabled"
//	@Failure		400		{object}	ErrorResponse	"Invalid code or no pending enrollment"
//	@Failure		401		{object}	ErrorResponse	"No session"
//	@Failure		403		{object}	ErrorResponse	"Not the owner"
//	@Router			/v1/users/{id}/2fa/confirm [post].
func (h *TwoFactorHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	targetID := r.PathValue("id")

	if d := h.Guard.Check(userFrom(ctx), targetID); !d.Allowed {
		writeDenied(w, d)
		return
	}

	var req SecondFactorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	err := h.TwoFactorService.ConfirmEnrollment(ctx, targetID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSecondFactorCode):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_code", "Invalid authenticator code")
		case errors.Is(err, service.ErrSecondFactorNotConfigured):
			httpx.WriteError(w, http.StatusBadRequest, "not_enrolled", "No enrollment in progress")
		case errors.Is(err, service.ErrSecondFactorEnabled):
			httpx.WriteError(w, http.StatusBadRequest, "already_enabled", "Second factor is already enabled")
		default:
			slogx.FromContext(ctx).Error("failed to confirm enrollment", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to confirm enrollment")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDisable handles DELETE /v1/users/{id}/2fa
//
//	@Summary		Disable the second factor
//	@Description	Removes the TOTP secret. Also cancels a pending enrollment.
//	@Tags			TwoFactor
//	@Produce		json
//	@Param			id	path	string	true	"User ID"
//	@Success		204	"Second factor disabled"
//	@Failure		401	{object}	ErrorResponse	"No session"
//	@Failure		403	{object}	ErrorResponse	"Not the owner"
//	@Failure		404	{object}	ErrorResponse	"Unknown user"
//	@Router			/v1/users/{id}/2fa [delete].
func (h *TwoFactorHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	targetID := r.PathValue("id")

	if d := h.Guard.Check(userFrom(ctx), targetID); !d.Allowed {
		writeDenied(w, d)
		return
	}

	if err := h.TwoFactorService.Disable(ctx, targetID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "No such user")
			return
		}
		slogx.FromContext(ctx).Error("failed to disable second factor", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to disable second factor")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
