package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetStats returns the headline totals using concurrent queries
	GetStats(ctx context.Context) (*StatsResponse, error)

	// GetDistribution returns employee distribution by department and team
	GetDistribution(ctx context.Context) (*DistributionResponse, error)

	// GetOverview returns the most recent employees, business units and logs
	GetOverview(ctx context.Context) (*OverviewResponse, error)
}
