package audit

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Skenwise/Loan-Management-System/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context, params ListParams) (*AuditEventsResponse, error)
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

func (h *Handler) ListAuditEvents(w http.ResponseWriter, r *http.Request) {
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
		h.Logger.Error("ListAuditEvents: service error", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, response)
}
