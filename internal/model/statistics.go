package model

import "github.com/shopspring/decimal"

// LeaveStatistics aggregates the store for the admin dashboard
type LeaveStatistics struct {
	TotalUsers       int             `json:"totalUsers"`
	TotalRequests    int             `json:"totalRequests"`
	PendingApprovals int             `json:"pendingApprovals"`
	ByStatus         map[string]int  `json:"byStatus"`
	ByType           map[string]int  `json:"byType"`
	TotalDays        int             `json:"totalDays"`
	ApprovedDays     int             `json:"approvedDays"`
	AverageDays      decimal.Decimal `json:"averageDays"` // mean total_days per request, 2 decimal places
}
