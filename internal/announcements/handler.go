package announcements

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/campusdrive/campusdrive/internal/dispatch"
	"github.com/campusdrive/campusdrive/internal/platform/httpx"
	"github.com/campusdrive/campusdrive/internal/shared"
)

// Handler wires the announcement actions.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// Register adds the announcement actions to the dispatch table.
func (h *Handler) Register(d *dispatch.Dispatcher) {
	d.Handle("fetchAnnouncements", http.MethodGet, h.list)
	d.Alias("announcements", "fetchAnnouncements")
	d.Handle("createAnnouncement", http.MethodPost, h.create, shared.RoleAdmin, shared.RoleSuperAdmin)
	d.Handle("updateAnnouncement", http.MethodPost, h.update, shared.RoleAdmin, shared.RoleSuperAdmin)
	d.Handle("deleteAnnouncement", http.MethodPost, h.delete, shared.RoleAdmin, shared.RoleSuperAdmin)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	visibility := Visibility(r.URL.Query().Get("visibility"))
	actor := shared.PrincipalFromContext(r.Context())

	// Student-only listings are off limits for anonymous callers.
	if visibility == VisibilityStudent && actor == nil {
		httpx.Error(w, http.StatusUnauthorized, "authentication required, please log in")
		return
	}

	list, err := h.service.List(r.Context(), actor, visibility)
	if err != nil {
		h.logger.Error("list announcements failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

type createAnnouncementRequest struct {
	AnnouncementData AnnouncementInput `json:"announcementData"`
}

type updateAnnouncementRequest struct {
	AnnouncementData struct {
		ID string `json:"id" validate:"required"`
		AnnouncementInput
	} `json:"announcementData"`
}

type deleteAnnouncementRequest struct {
	AnnouncementID string `json:"announcementId" validate:"required"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createAnnouncementRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req.AnnouncementData); err != nil {
		httpx.Error(w, http.StatusBadRequest, "missing or invalid announcement fields")
		return
	}

	actor := shared.PrincipalFromContext(r.Context())
	a, err := h.service.Create(r.Context(), actor, req.AnnouncementData)
	if err != nil {
		h.logger.Error("create announcement failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w, http.StatusCreated, a.ID)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateAnnouncementRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AnnouncementData.ID == "" {
		httpx.Error(w, http.StatusBadRequest, "announcement id required")
		return
	}
	if err := h.validator.Struct(req.AnnouncementData.AnnouncementInput); err != nil {
		httpx.Error(w, http.StatusBadRequest, "missing or invalid announcement fields")
		return
	}

	actor := shared.PrincipalFromContext(r.Context())
	a, err := h.service.Update(r.Context(), actor, req.AnnouncementData.ID, req.AnnouncementData.AnnouncementInput)
	if err != nil {
		h.logger.Error("update announcement failed", slog.Any("error", err), slog.String("id", req.AnnouncementData.ID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	var req deleteAnnouncementRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.AnnouncementID == "" {
		httpx.Error(w, http.StatusBadRequest, "announcement id required")
		return
	}

	actor := shared.PrincipalFromContext(r.Context())
	if err := h.service.Delete(r.Context(), actor, req.AnnouncementID); err != nil {
		h.logger.Error("delete announcement failed", slog.Any("error", err), slog.String("id", req.AnnouncementID))
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w, http.StatusOK, "")
}
