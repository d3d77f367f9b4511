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

// AdminHandler serves the admin-only account management surface.
type AdminHandler struct {
	UserService *service.UserService
	Guard       service.Guard
}

// HandleList handles GET /v1/admin/users
//
//	@Summary		List all accounts
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	UserListResponse	"All accounts, oldest first"
//	@Failure		401	{object}	ErrorResponse		"No session"
//	@Failure		403	{object}	ErrorResponse		"Not an admin"
//	@Router			/v1/admin/users [get].
func (h *AdminHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if d := h.Guard.RequireAdmin(userFrom(ctx)); !d.Allowed {
		writeDenied(w, d)
		return
	}

	users, err := h.UserService.List(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list users", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to list users")
		return
	}

	resp := UserListResponse{Users: make([]UserResponse, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, toUserResponse(u))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleCreate handles POST /v1/admin/users
//
//	@Summary		Create an account with an explicit role
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateUserRequest	true	"Account details"
//	@Success		201		{object}	UserResponse		"Created account"
//	@Failure		400		{object}	ErrorResponse		"Invalid request body"
//	@Failure		401		{object}	ErrorResponse		"No session"
//	@Failure		403		{object}	ErrorResponse		"Not an admin"
//	@Failure		409		{object}	ErrorResponse		"Identifier already taken"
//	@Router			/v1/admin/users [post].
func (h *AdminHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if d := h.Guard.RequireAdmin(userFrom(ctx)); !d.Allowed {
		writeDenied(w, d)
		return
	}

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.Identifier == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "identifier and password are required")
		return
	}

	role := domain.RoleUser
	if req.Role != "" {
		role = domain.Role(req.Role)
		if !role.Valid() {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Unknown role")
			return
		}
	}

	user, err := h.UserService.CreateWithRole(ctx, req.Identifier, req.Password, role)
	if err != nil {
		if errors.Is(err, service.ErrIdentifierTaken) {
			httpx.WriteError(w, http.StatusConflict, "identifier_taken", "That identifier is already in use")
			return
		}
		log.Error("failed to create user", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to create account")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

// HandleDelete handles DELETE /v1/admin/users/{id}
//
//	@Summary		Delete an account
//	@Description	Removes the account and every session it holds.
//	@Tags			Admin
//	@Produce		json
//	@Param			id	path	string	true	"User ID"
//	@Success		204	"Account deleted"
//	@Failure		401	{object}	ErrorResponse	"No session"
//	@Failure		403	{object}	ErrorResponse	"Not an admin"
//	@Failure		404	{object}	ErrorResponse	"Unknown user"
//	@Router			/v1/admin/users/{id} [delete].
func (h *AdminHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	targetID := r.PathValue("id")

	if d := h.Guard.RequireAdmin(userFrom(ctx)); !d.Allowed {
		writeDenied(w, d)
		return
	}

	if err := h.UserService.Delete(ctx, targetID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "No such user")
			return
		}
		slogx.FromContext(ctx).Error("failed to delete user", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to delete account")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
