package identity

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/Skenwise/Loan-Management-System/internal"
	"github.com/Skenwise/Loan-Management-System/internal/transport"
	"github.com/Skenwise/Loan-Management-System/pkg/logger"
)

type ServiceAPI interface {
	Create(ctx context.Context, dto *CreateIdentityDTO) (*Identity, error)
	GetByID(ctx context.Context, id string) (*Identity, error)
	GetByUsername(ctx context.Context, username string) (*Identity, error)
	List(ctx context.Context, params ListParams) (*IdentitiesResponse, error)
	Update(ctx context.Context, id string, dto *UpdateIdentityDTO) (*Identity, error)
	ChangePassword(ctx context.Context, id string, dto *ChangePasswordDTO) error
	Delete(ctx context.Context, id string) error
	AssignRole(ctx context.Context, identityID, roleID string) (*Identity, error)
	RemoveRole(ctx context.Context, identityID string) (*Identity, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) CreateIdentity(w http.ResponseWriter, r *http.Request) {
	var dto CreateIdentityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identity, err := h.Service.Create(r.Context(), &dto)
	if err != nil {
		h.Logger.Error("CreateIdentity: service error", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, identity)
}

func (h *Handler) GetIdentity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "missing identity id")
		return
	}

	identity, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, identity)
}

func (h *Handler) GetIdentityByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		h.WriteError(w, http.StatusBadRequest, "missing username")
		return
	}

	identity, err := h.Service.GetByUsername(r.Context(), username)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, identity)
}

func (h *Handler) ListIdentities(w http.ResponseWriter, r *http.Request) {
	params := ListParams{Page: 1, PageSize: 20}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil {
			params.Page = p
		}
	}
	if sizeStr := r.URL.Query().Get("page_size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil {
			params.PageSize = s
		}
	}

	response, err := h.Service.List(r.Context(), params)
	if err != nil {
		h.Logger.Error("ListIdentities: service error", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, response)
}

func (h *Handler) UpdateIdentity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto UpdateIdentityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identity, err := h.Service.Update(r.Context(), id, &dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, identity)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto ChangePasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ChangePassword(r.Context(), id, &dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteIdentity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AssignRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto AssignRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteAppError(w, err)
		return
	}

	identity, err := h.Service.AssignRole(r.Context(), id, dto.RoleID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, identity)
}

func (h *Handler) RemoveRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	identity, err := h.Service.RemoveRole(r.Context(), id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, identity)
}

// GetCurrentIdentity handles GET /users/me: the authenticated identity
// looks itself up from the verified claims, no extra permission needed.
func (h *Handler) GetCurrentIdentity(w http.ResponseWriter, r *http.Request) {
	identityID := internal.IdentityIDFromContext(r.Context())
	if identityID == "" {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	identity, err := h.Service.GetByID(r.Context(), identityID)
	if err != nil {
		h.Logger.Error("GetCurrentIdentity: service error", "identity_id", identityID, "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, identity)
}
