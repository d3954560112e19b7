package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Skenwise/Loan-Management-System/internal"
	auditDatamodel "github.com/Skenwise/Loan-Management-System/internal/core/datamodel/audit"
)

type RepositoryAPI interface {
	Create(ctx context.Context, event *auditDatamodel.AuditEvent) error
	List(ctx context.Context, offset, limit int) ([]*auditDatamodel.AuditEvent, error)
	Count(ctx context.Context) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Record persists one audit row. Callers on the event path run async off
// the bus, so a failure here is logged there and never reaches a request.
func (s *Service) Record(ctx context.Context, identityID, action, detail string) error {
	model := &auditDatamodel.AuditEvent{
		ID:         uuid.New().String(),
		IdentityID: identityID,
		Action:     action,
		Detail:     detail,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Create(ctx, model); err != nil {
		s.logger.ErrorContext(ctx, "failed to record audit event", "action", action, "error", err)
		return err
	}
	return nil
}

// List returns audit events newest first.
func (s *Service) List(ctx context.Context, params ListParams) (*AuditEventsResponse, error) {
	params.Normalize()

	models, err := s.repo.List(ctx, params.Offset(), params.PageSize)
	if err != nil {
		return nil, internal.NewInternalError("audit list failed", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, internal.NewInternalError("audit count failed", err)
	}

	events := make([]*AuditEvent, 0, len(models))
	for _, model := range models {
		events = append(events, FromDataModel(model))
	}

	return &AuditEventsResponse{
		Events:   events,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}
