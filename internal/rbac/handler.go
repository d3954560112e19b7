package rbac

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/Skenwise/Loan-Management-System/internal/transport"
)

type ServiceAPI interface {
	GetRoleByID(ctx context.Context, id string) (*Role, error)
	GetRoleByName(ctx context.Context, name string) (*Role, error)
	ListRoles(ctx context.Context) ([]*Role, error)
	GetPermissionByCode(ctx context.Context, code string) (*Permission, error)
	ListPermissions(ctx context.Context) ([]*Permission, error)
	RolesForPermission(ctx context.Context, code string) ([]*Role, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Service.ListRoles(r.Context())
	if err != nil {
		h.Logger.Error("ListRoles: service error", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, RolesResponse{Roles: roles})
}

func (h *Handler) GetRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	role, err := h.Service.GetRoleByID(r.Context(), id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, role)
}

func (h *Handler) GetRoleByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	role, err := h.Service.GetRoleByName(r.Context(), name)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, role)
}

func (h *Handler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	permissions, err := h.Service.ListPermissions(r.Context())
	if err != nil {
		h.Logger.Error("ListPermissions: service error", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, PermissionsResponse{Permissions: permissions})
}

func (h *Handler) GetPermission(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	permission, err := h.Service.GetPermissionByCode(r.Context(), code)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, permission)
}

func (h *Handler) GetRolesForPermission(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	roles, err := h.Service.RolesForPermission(r.Context(), code)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, RolesResponse{Roles: roles})
}
