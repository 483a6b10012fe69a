package repository

import (
	"context"

	"leave-api/internal/model"
	"leave-api/pkg/pagination"
)

type AuditRepository interface {
	Log(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error)
}

type auditRepository struct {
	d *Dispatcher
}

func NewAuditRepository(d *Dispatcher) AuditRepository {
	return &auditRepository{d: d}
}

func (r *auditRepository) Log(ctx context.Context, entry *model.AuditLog) error {
	_, err := r.d.Execute(ctx, InsertAuditLog{Entry: *entry})
	return err
}

func (r *auditRepository) List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	res, err := r.d.Execute(ctx, ListAuditLogs{})
	if err != nil {
		return nil, 0, err
	}
	return pagination.Slice(res.AuditLogs, page, limit), int64(len(res.AuditLogs)), nil
}
