package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Window is an optional inclusive date range for a report. Zero values
// fall back to the configured trailing months.
type Window struct {
	From *time.Time
	To   *time.Time
}

type Service interface {
	ClientReport(ctx context.Context, tenantID snowflake.ID, window Window) (ClientReport, error)
	ProjectReport(ctx context.Context, tenantID snowflake.ID, window Window) (ProjectReport, error)
	PaymentReport(ctx context.Context, tenantID snowflake.ID, window Window) (PaymentReport, error)
	ExpenseReport(ctx context.Context, tenantID snowflake.ID, window Window) (ExpenseReport, error)
	GrowthReport(ctx context.Context, tenantID snowflake.ID, window Window) (GrowthReport, error)
	DashboardSummary(ctx context.Context, tenantID snowflake.ID) (DashboardSummary, error)

	ClientsChange(ctx context.Context, tenantID snowflake.ID) (Change, error)
	ProjectsChange(ctx context.Context, tenantID snowflake.ID) (Change, error)
	PaymentsChange(ctx context.Context, tenantID snowflake.ID) (Change, error)
	ExpensesChange(ctx context.Context, tenantID snowflake.ID) (Change, error)
}
