package drives

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/campusdrive/campusdrive/internal/dispatch"
	"github.com/campusdrive/campusdrive/internal/platform/httpx"
	"github.com/campusdrive/campusdrive/internal/shared"
)

// Handler wires the drive actions.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// Register adds the drive actions to the dispatch table.
func (h *Handler) Register(d *dispatch.Dispatcher) {
	d.Handle("fetchDrives", http.MethodGet, h.list)
	d.Alias("drives", "fetchDrives")
	d.Handle("createDrive", http.MethodPost, h.create, shared.RoleAdmin, shared.RoleSuperAdmin)
	d.Handle("updateDrive", http.MethodPost, h.update, shared.RoleAdmin, shared.RoleSuperAdmin)
	d.Handle("deleteDrive", http.MethodPost, h.delete, shared.RoleAdmin, shared.RoleSuperAdmin)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	visibility := r.URL.Query().Get("visibility")
	drives, err := h.service.List(r.Context(), visibility)
	if err != nil {
		h.logger.Error("list drives failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, drives)
}

type createDriveRequest struct {
	DriveData DriveInput `json:"driveData"`
}

type updateDriveRequest struct {
	DriveData struct {
		ID string `json:"id" validate:"required"`
		DriveInput
	} `json:"driveData"`
}

type deleteDriveRequest struct {
	DriveID string `json:"driveId" validate:"required"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createDriveRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req.DriveData); err != nil {
		httpx.Error(w, http.StatusBadRequest, "missing or invalid drive fields")
		return
	}

	actor := shared.PrincipalFromContext(r.Context())
	drive, err := h.service.Create(r.Context(), actor, req.DriveData)
	if err != nil {
		h.logger.Error("create drive failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w, http.StatusCreated, drive.ID)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateDriveRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DriveData.ID == "" {
		httpx.Error(w, http.StatusBadRequest, "drive id required")
		return
	}
	if err := h.validator.Struct(req.DriveData.DriveInput); err != nil {
		httpx.Error(w, http.StatusBadRequest, "missing or invalid drive fields")
		return
	}

	actor := shared.PrincipalFromContext(r.Context())
	drive, err := h.service.Update(r.Context(), actor, req.DriveData.ID, req.DriveData.DriveInput)
	if err != nil {
		h.logger.Error("update drive failed", slog.Any("error", err), slog.String("id", req.DriveData.ID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, drive)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	var req deleteDriveRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.DriveID == "" {
		httpx.Error(w, http.StatusBadRequest, "drive id required")
		return
	}

	actor := shared.PrincipalFromContext(r.Context())
	if err := h.service.Delete(r.Context(), actor, req.DriveID); err != nil {
		h.logger.Error("delete drive failed", slog.Any("error", err), slog.String("id", req.DriveID))
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w, http.StatusOK, "")
}
