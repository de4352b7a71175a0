package users

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/campusdrive/campusdrive/internal/dispatch"
	"github.com/campusdrive/campusdrive/internal/platform/httpx"
	"github.com/campusdrive/campusdrive/internal/shared"
)

// Handler wires the account administration actions.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// Register adds the user actions to the dispatch table.
func (h *Handler) Register(d *dispatch.Dispatcher) {
	d.Handle("fetchUsers", http.MethodGet, h.list, shared.RoleAdmin, shared.RoleSuperAdmin)
	d.Alias("users", "fetchUsers")
	d.Handle("createUserByAdmin", http.MethodPost, h.createStudent, shared.RoleAdmin, shared.RoleSuperAdmin)
	d.Handle("createAdmin", http.MethodPost, h.createAdmin, shared.RoleSuperAdmin)
	d.Handle("deleteUser", http.MethodPost, h.delete, shared.RoleAdmin, shared.RoleSuperAdmin)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list users failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

type createUserRequest struct {
	Username         string      `json:"username" validate:"required,min=3,max=64"`
	Name             string      `json:"name"`
	Password         string      `json:"password" validate:"required,min=6,max=128"`
	SubscriptionTier shared.Tier `json:"subscriptionTier" validate:"omitempty,oneof=FREE PREMIUM"`
}

func (h *Handler) createStudent(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "missing or invalid user fields")
		return
	}

	actor := shared.PrincipalFromContext(r.Context())
	u, err := h.service.CreateStudent(r.Context(), actor, req.Username, req.Name, req.Password, req.SubscriptionTier)
	if err != nil {
		h.respondCreateError(w, err, "create user failed")
		return
	}
	httpx.Success(w, http.StatusCreated, u.ID)
}

type createAdminRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Name     string `json:"name"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

func (h *Handler) createAdmin(w http.ResponseWriter, r *http.Request) {
	var req createAdminRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "missing or invalid user fields")
		return
	}

	actor := shared.PrincipalFromContext(r.Context())
	u, err := h.service.CreateAdmin(r.Context(), actor, req.Username, req.Name, req.Password)
	if err != nil {
		h.respondCreateError(w, err, "create admin failed")
		return
	}
	httpx.Success(w, http.StatusCreated, u.ID)
}

type deleteUserRequest struct {
	UserIDToDelete string `json:"userIdToDelete" validate:"required"`
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	var req deleteUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.UserIDToDelete == "" {
		httpx.Error(w, http.StatusBadRequest, "user id required")
		return
	}

	actor := shared.PrincipalFromContext(r.Context())
	if err := h.service.Delete(r.Context(), actor, req.UserIDToDelete); err != nil {
		h.logger.Error("delete user failed", slog.Any("error", err), slog.String("id", req.UserIDToDelete))
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w, http.StatusOK, "")
}

func (h *Handler) respondCreateError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, ErrUsernameTaken) {
		httpx.Error(w, http.StatusConflict, ErrUsernameTaken.Error())
		return
	}
	h.logger.Error(msg, slog.Any("error", err))
	httpx.RespondError(w, err)
}
