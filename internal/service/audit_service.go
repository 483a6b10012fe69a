package service

import (
	"context"
	"errors"

	"leave-api/internal/repository"
)

type AuditLogResponse struct {
	ID        string `json:"id"`
	UserID    *int   `json:"user_id"`
	Email     string `json:"email"`
	Action    string `json:"action"`
	EntityID  string `json:"entity_id"`
	Details   string `json:"details"`
	CreatedAt string `json:"created_at"`
}

type AuditService interface {
	GetAuditLogs(ctx context.Context, page, limit int) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	audit repository.AuditRepository
	users repository.UserRepository
	tx    repository.TransactionManager
}

// NewAuditService creates a new AuditService instance
func NewAuditService(audit repository.AuditRepository, users repository.UserRepository, tx repository.TransactionManager) AuditService {
	return &auditService{audit: audit, users: users, tx: tx}
}

// GetAuditLogs returns a page of audit entries, newest first, with the actor's email resolved
func (s *auditService) GetAuditLogs(ctx context.Context, page, limit int) ([]AuditLogResponse, int64, error) {
	var res []AuditLogResponse
	var total int64

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		logs, count, err := s.audit.List(txCtx, page, limit)
		if err != nil {
			return err
		}
		total = count

		emails := make(map[int]string)
		res = make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			email := "System"
			if l.UserID != nil {
				cached, ok := emails[*l.UserID]
				if !ok {
					user, err := s.users.GetByIDWithRole(txCtx, *l.UserID)
					switch {
					case err == nil:
						cached = user.Email
					case errors.Is(err, repository.ErrNotFound):
						cached = "unknown"
					default:
						return err
					}
					emails[*l.UserID] = cached
				}
				email = cached
			}

			res = append(res, AuditLogResponse{
				ID:        l.ID.String(),
				UserID:    l.UserID,
				Email:     email,
				Action:    l.Action,
				EntityID:  l.EntityID,
				Details:   l.Details,
				CreatedAt: l.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return nil
	})
	if err != nil {
		return nil, 0, storeError("failed to load audit logs", err)
	}
	return res, total, nil
}
