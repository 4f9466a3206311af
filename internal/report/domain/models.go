// Package domain defines the report payloads composed for the
// dashboard and reporting endpoints.
package domain

import (
	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/internal/report/aggregate"
)

// MonthlyPoint is one month of a trend line.
type MonthlyPoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// Change compares the current calendar month against the previous one.
type Change struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Change   string  `json:"change"`
}

// ClientRank is one row of a top-clients table.
type ClientRank struct {
	ClientID snowflake.ID `json:"client_id"`
	Name     string       `json:"name"`
	Revenue  float64      `json:"revenue"`
	Projects int          `json:"projects"`
}

// ClientReport summarizes the client base over the report window.
type ClientReport struct {
	TotalClients    int64                      `json:"total_clients"`
	ActiveClients   int64                      `json:"active_clients"`
	NewThisMonth    int64                      `json:"new_this_month"`
	StatusBreakdown map[string]aggregate.Group `json:"status_breakdown"`
	MonthlyTrends   []MonthlyPoint             `json:"monthly_trends"`
	TopClients      []ClientRank               `json:"top_clients"`
}

// ProjectRank is one row of a top-projects table.
type ProjectRank struct {
	ProjectID         snowflake.ID `json:"project_id"`
	Name              string       `json:"name"`
	Budget            float64      `json:"budget"`
	Paid              float64      `json:"paid"`
	CompletionPercent float64      `json:"completion_percent"`
}

// ProjectReport summarizes project delivery over the report window.
type ProjectReport struct {
	TotalProjects   int64                      `json:"total_projects"`
	ActiveProjects  int64                      `json:"active_projects"`
	Completed       int64                      `json:"completed"`
	StatusBreakdown map[string]aggregate.Group `json:"status_breakdown"`
	MonthlyTrends   []MonthlyPoint             `json:"monthly_trends"`
	TopProjects     []ProjectRank              `json:"top_projects"`
}

// PaymentReport summarizes revenue over the report window.
type PaymentReport struct {
	TotalRevenue    float64                    `json:"total_revenue"`
	PendingAmount   float64                    `json:"pending_amount"`
	PaymentCount    int64                      `json:"payment_count"`
	StatusBreakdown map[string]aggregate.Group `json:"status_breakdown"`
	MethodBreakdown map[string]aggregate.Group `json:"method_breakdown"`
	MonthlyTrends   []MonthlyPoint             `json:"monthly_trends"`
}

// ExpenseReport summarizes spending over the report window.
type ExpenseReport struct {
	TotalExpenses     float64                    `json:"total_expenses"`
	ExpenseCount      int64                      `json:"expense_count"`
	CategoryBreakdown map[string]aggregate.Group `json:"category_breakdown"`
	MonthlyTrends     []MonthlyPoint             `json:"monthly_trends"`
}

// GrowthReport compares the current period with the previous one.
type GrowthReport struct {
	Revenue      Change         `json:"revenue"`
	Clients      Change         `json:"clients"`
	Projects     Change         `json:"projects"`
	Profit       Change         `json:"profit"`
	ProfitMargin float64        `json:"profit_margin"`
	RevenueTrend []MonthlyPoint `json:"revenue_trend"`
}

// DashboardSummary backs the landing dashboard cards.
type DashboardSummary struct {
	TotalRevenue    float64 `json:"total_revenue"`
	RevenueChange   string  `json:"revenue_change"`
	PendingAmount   float64 `json:"pending_amount"`
	PendingChange   string  `json:"pending_change"`
	OverdueInvoices int64   `json:"overdue_invoices"`
	ActiveClients   int64   `json:"active_clients"`
	ActiveProjects  int64   `json:"active_projects"`
	ExpensesMonth   float64 `json:"expenses_month"`
	ExpensesChange  string  `json:"expenses_change"`
}
