package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/arcadehub/portal/internal/portal/domain"
	"github.com/arcadehub/portal/internal/portal/service"
	"github.com/arcadehub/portal/pkg/httpx"
	"github.com/arcadehub/portal/pkg/slogx"
)

// UsersHandler serves the per-user profile surface, guarded by the
// owner-or-admin policy.
type UsersHandler struct {
	UserService *service.UserService
	Guard       service.Guard
}

// HandleGet handles GET /v1/users/{id}
//
//	@Summary		Fetch a user profile
//	@Description	Returns the profile. Only the owner or an admin may read it.
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string			true	"User ID"
//	@Success		200	{object}	UserResponse	"Profile"
//	@Failure		401	{object}	ErrorResponse	"No session"
//	@Failure		403	{object}	ErrorResponse	"Not the owner"
//	@Failure		404	{object}	ErrorResponse	"Unknown user"
//	@Router			/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	targetID := r.PathValue("id")

	if d := h.Guard.Check(userFrom(ctx), targetID); !d.Allowed {
		writeDenied(w, d)
		return
	}

	user, err := h.UserService.Get(ctx, targetID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "No such user")
			return
		}
		slogx.FromContext(ctx).Error("failed to load user", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to load user")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandlePatch handles PATCH /v1/users/{id}
//
//	@Summary		Update a user profile
//	@Description	Partial update; absent fields stay unchanged. Role changes require admin.
//	@Description	A password change revokes the user's existing sessions.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"User ID"
//	@Param			request	body		UpdateUserRequest	true	"Fields to change"
//	@Success		200		{object}	UserResponse		"Updated profile"
//	@Failure		400		{object}	ErrorResponse		"Invalid request body"
//	@Failure		401		{object}	ErrorResponse		"No session"
//	@Failure		403		{object}	ErrorResponse		"Not the owner"
//	@Failure		404		{object}	ErrorResponse		"Unknown user"
//	@Failure		409		{object}	ErrorResponse		"Identifier already taken"
//	@Router			/v1/users/{id} [patch].
func (h *UsersHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	targetID := r.PathValue("id")

	actor := userFrom(ctx)
	if d := h.Guard.Check(actor, targetID); !d.Allowed {
		writeDenied(w, d)
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	upd := service.UserUpdate{
		Identifier: req.Identifier,
		Password:   req.Password,
	}
	if req.Role != nil {
		// Only admins reassign roles; owners cannot escalate themselves
		if d := h.Guard.RequireAdmin(actor); !d.Allowed {
			writeDenied(w, d)
			return
		}
		role := domain.Role(*req.Role)
		if !role.Valid() {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Unknown role")
			return
		}
		upd.Role = &role
	}

	user, err := h.UserService.Update(ctx, targetID, upd)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteError(w, http.StatusNotFound, "not_found", "No such user")
		case errors.Is(err, service.ErrIdentifierTaken):
			httpx.WriteError(w, http.StatusConflict, "identifier_taken", "That identifier is already in use")
		default:
			log.Error("failed to update user", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to update user")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func writeDenied(w http.ResponseWriter, d service.Decision) {
	if d.Reason == service.DenyNoSession {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "A valid session is required")
		return
	}
	httpx.WriteError(w, http.StatusForbidden, "forbidden", string(d.Reason))
}
