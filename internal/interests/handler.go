package interests

import (
	"log/slog"
	"net/http"

	"github.com/campusdrive/campusdrive/internal/dispatch"
	"github.com/campusdrive/campusdrive/internal/platform/httpx"
	"github.com/campusdrive/campusdrive/internal/shared"
)

// Handler wires the drive interest actions.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register adds the interest actions to the dispatch table.
func (h *Handler) Register(d *dispatch.Dispatcher) {
	d.Handle("registerInterest", http.MethodPost, h.register, shared.RoleStudent)
	d.Handle("getUserInterests", http.MethodGet, h.listForUser, shared.RoleStudent)
	d.Handle("getInterestDetailsForDrive", http.MethodGet, h.listForDrive, shared.RoleAdmin, shared.RoleSuperAdmin)
	d.Handle("getDriveInterestCounts", http.MethodGet, h.counts, shared.RoleAdmin, shared.RoleSuperAdmin)
}

type registerInterestRequest struct {
	DriveID   string `json:"driveId"`
	StudentID string `json:"studentId"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerInterestRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.DriveID == "" {
		httpx.Error(w, http.StatusBadRequest, "drive id required")
		return
	}

	actor := shared.PrincipalFromContext(r.Context())
	pass, created, err := h.service.Register(r.Context(), actor, req.DriveID, req.StudentID)
	if err != nil {
		h.logger.Error("register interest failed", slog.Any("error", err), slog.String("driveId", req.DriveID))
		httpx.RespondError(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	httpx.JSON(w, status, pass)
}

func (h *Handler) listForUser(w http.ResponseWriter, r *http.Request) {
	actor := shared.PrincipalFromContext(r.Context())
	list, err := h.service.ListForUser(r.Context(), actor)
	if err != nil {
		h.logger.Error("list user interests failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) listForDrive(w http.ResponseWriter, r *http.Request) {
	driveID := r.URL.Query().Get("driveId")
	if driveID == "" {
		httpx.Error(w, http.StatusBadRequest, "drive id required")
		return
	}
	list, err := h.service.ListForDrive(r.Context(), driveID)
	if err != nil {
		h.logger.Error("list drive interests failed", slog.Any("error", err), slog.String("driveId", driveID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Counts(r.Context())
	if err != nil {
		h.logger.Error("interest counts failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, counts)
}
