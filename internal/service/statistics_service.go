package service

import (
	"context"

	"leave-api/internal/model"
	"leave-api/internal/repository"

	"github.com/shopspring/decimal"
)

type StatisticsService interface {
	GetStatistics(ctx context.Context) (model.LeaveStatistics, error)
}

type statisticsService struct {
	users  repository.UserRepository
	leaves repository.LeaveRepository
	tx     repository.TransactionManager
}

func NewStatisticsService(users repository.UserRepository, leaves repository.LeaveRepository, tx repository.TransactionManager) StatisticsService {
	return &statisticsService{users: users, leaves: leaves, tx: tx}
}

// GetStatistics aggregates users and leave requests from one consistent snapshot
func (s *statisticsService) GetStatistics(ctx context.Context) (model.LeaveStatistics, error) {
	stats := model.LeaveStatistics{
		ByStatus: map[string]int{
			model.LeaveStatusPending:   0,
			model.LeaveStatusApproved:  0,
			model.LeaveStatusRejected:  0,
			model.LeaveStatusCancelled: 0,
		},
		ByType:      map[string]int{},
		AverageDays: decimal.Zero,
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		_, totalUsers, err := s.users.List(txCtx, 1, 1)
		if err != nil {
			return err
		}
		stats.TotalUsers = int(totalUsers)

		leaves, err := s.leaves.ListWithRequester(txCtx)
		if err != nil {
			return err
		}
		for _, l := range leaves {
			stats.TotalRequests++
			stats.ByStatus[l.Status]++
			stats.ByType[l.TypeName]++
			stats.TotalDays += l.TotalDays
			if l.Status == model.LeaveStatusApproved {
				stats.ApprovedDays += l.TotalDays
			}
		}
		return nil
	})
	if err != nil {
		return model.LeaveStatistics{}, storeError("failed to compute statistics", err)
	}

	stats.PendingApprovals = stats.ByStatus[model.LeaveStatusPending]
	if stats.TotalRequests > 0 {
		stats.AverageDays = decimal.NewFromInt(int64(stats.TotalDays)).
			Div(decimal.NewFromInt(int64(stats.TotalRequests))).
			Round(2)
	}
	return stats, nil
}
