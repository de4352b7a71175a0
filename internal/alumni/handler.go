package alumni

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/campusdrive/campusdrive/internal/dispatch"
	"github.com/campusdrive/campusdrive/internal/platform/httpx"
	"github.com/campusdrive/campusdrive/internal/shared"
)

// Handler wires the alumni actions. Create and update take multipart
// form data because of the photo upload; delete is plain JSON.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
	maxUpload int64
}

// NewHandler builds a Handler instance. maxUploadBytes caps photo size.
func NewHandler(logger *slog.Logger, service *Service, maxUploadBytes int64) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New(), maxUpload: maxUploadBytes}
}

// Register adds the alumni actions to the dispatch table.
func (h *Handler) Register(d *dispatch.Dispatcher) {
	d.Handle("fetchAlumni", http.MethodGet, h.list)
	d.Alias("alumni", "fetchAlumni")
	d.Handle("createAlumni", http.MethodPost, h.create, shared.RoleAdmin, shared.RoleSuperAdmin)
	d.Handle("updateAlumni", http.MethodPost, h.update, shared.RoleAdmin, shared.RoleSuperAdmin)
	d.Handle("deleteAlumni", http.MethodPost, h.delete, shared.RoleAdmin, shared.RoleSuperAdmin)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list alumni failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) (AlumnusInput, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+64<<10)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid multipart form data")
		return AlumnusInput{}, false
	}
	input := AlumnusInput{
		Name:          r.FormValue("name"),
		CompanyName:   r.FormValue("companyName"),
		PlacementDate: r.FormValue("placementDate"),
		Package:       r.FormValue("package"),
	}
	if err := h.validator.Struct(input); err != nil {
		httpx.Error(w, http.StatusBadRequest, "missing or invalid alumni fields")
		return AlumnusInput{}, false
	}
	return input, true
}

// openPhoto validates and opens the uploaded "photo" part. A nil photo
// with ok=true means the field was simply absent.
func (h *Handler) openPhoto(w http.ResponseWriter, r *http.Request) (*Photo, multipart.File, bool) {
	file, header, err := r.FormFile("photo")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil, true
		}
		httpx.Error(w, http.StatusBadRequest, "invalid photo upload")
		return nil, nil, false
	}
	if header.Size > h.maxUpload {
		file.Close()
		httpx.Error(w, http.StatusBadRequest, fmt.Sprintf("photo exceeds the %d MB limit", h.maxUpload>>20))
		return nil, nil, false
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		file.Close()
		httpx.Error(w, http.StatusBadRequest, "photo must be an image file")
		return nil, nil, false
	}
	return &Photo{Reader: file, Size: header.Size, ContentType: contentType}, file, true
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	photo, file, ok := h.openPhoto(w, r)
	if !ok {
		return
	}
	if photo == nil {
		httpx.Error(w, http.StatusBadRequest, "photo is required")
		return
	}
	defer file.Close()

	actor := shared.PrincipalFromContext(r.Context())
	a, err := h.service.Create(r.Context(), actor, input, *photo)
	if err != nil {
		h.logger.Error("create alumnus failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w, http.StatusCreated, a.ID)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	input, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	id := r.FormValue("id")
	if id == "" {
		httpx.Error(w, http.StatusBadRequest, "alumni id required")
		return
	}
	photo, file, ok := h.openPhoto(w, r)
	if !ok {
		return
	}
	if file != nil {
		defer file.Close()
	}

	actor := shared.PrincipalFromContext(r.Context())
	a, err := h.service.Update(r.Context(), actor, id, input, photo)
	if err != nil {
		h.logger.Error("update alumnus failed", slog.Any("error", err), slog.String("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

type deleteAlumniRequest struct {
	AlumniID string `json:"alumniId" validate:"required"`
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	var req deleteAlumniRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.AlumniID == "" {
		httpx.Error(w, http.StatusBadRequest, "alumni id required")
		return
	}

	actor := shared.PrincipalFromContext(r.Context())
	if err := h.service.Delete(r.Context(), actor, req.AlumniID); err != nil {
		h.logger.Error("delete alumnus failed", slog.Any("error", err), slog.String("id", req.AlumniID))
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w, http.StatusOK, "")
}
