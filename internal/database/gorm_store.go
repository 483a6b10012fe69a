package database

import (
	"context"
	"fmt"

	"leave-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore maps the document onto relational tables. Save upserts every row
// in one transaction; rows missing from the document are left in place.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an already migrated connection
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Load(ctx context.Context) (*model.Document, error) {
	doc := model.NewDocument()
	db := s.db.WithContext(ctx)

	if err := db.Order("user_id asc").Find(&doc.Users).Error; err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if err := db.Order("request_id asc").Find(&doc.LeaveRequests).Error; err != nil {
		return nil, fmt.Errorf("failed to load leave requests: %w", err)
	}
	if err := db.Order("created_at asc").Find(&doc.AuditLogs).Error; err != nil {
		return nil, fmt.Errorf("failed to load audit logs: %w", err)
	}

	var seqs []model.Sequence
	if err := db.Find(&seqs).Error; err != nil {
		return nil, fmt.Errorf("failed to load sequences: %w", err)
	}
	for _, seq := range seqs {
		switch seq.Name {
		case model.SequenceUsers:
			doc.Sequences.Users = seq.Value
		case model.SequenceLeaveRequests:
			doc.Sequences.LeaveRequests = seq.Value
		}
	}

	doc.Normalize()
	return doc, nil
}

func (s *GormStore) Save(ctx context.Context, doc *model.Document) error {
	upsert := clause.OnConflict{UpdateAll: true}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(doc.Users) > 0 {
			if err := tx.Clauses(upsert).Create(&doc.Users).Error; err != nil {
				return fmt.Errorf("failed to save users: %w", err)
			}
		}
		if len(doc.LeaveRequests) > 0 {
			if err := tx.Clauses(upsert).Create(&doc.LeaveRequests).Error; err != nil {
				return fmt.Errorf("failed to save leave requests: %w", err)
			}
		}
		if len(doc.AuditLogs) > 0 {
			if err := tx.Clauses(upsert).Create(&doc.AuditLogs).Error; err != nil {
				return fmt.Errorf("failed to save audit logs: %w", err)
			}
		}

		seqs := []model.Sequence{
			{Name: model.SequenceUsers, Value: doc.Sequences.Users},
			{Name: model.SequenceLeaveRequests, Value: doc.Sequences.LeaveRequests},
		}
		if err := tx.Clauses(upsert).Create(&seqs).Error; err != nil {
			return fmt.Errorf("failed to save sequences: %w", err)
		}
		return nil
	})
}
