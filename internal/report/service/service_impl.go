package service

import (
	"context"
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/ledgique/ledgique/internal/client/domain"
	"github.com/ledgique/ledgique/internal/clock"
	"github.com/ledgique/ledgique/internal/config"
	expensedomain "github.com/ledgique/ledgique/internal/expense/domain"
	"github.com/ledgique/ledgique/internal/observability/metrics"
	paymentdomain "github.com/ledgique/ledgique/internal/payment/domain"
	projectdomain "github.com/ledgique/ledgique/internal/project/domain"
	"github.com/ledgique/ledgique/internal/report/aggregate"
	"github.com/ledgique/ledgique/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	Repo      domain.Repository
	Reporting *config.ReportingConfigHolder
	Metrics   *metrics.Metrics
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	clock     clock.Clock
	repo      domain.Repository
	reporting *config.ReportingConfigHolder
	metrics   *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("report.service"),
		clock:     p.Clock,
		repo:      p.Repo,
		reporting: p.Reporting,
		metrics:   p.Metrics,
	}
}

// resolveWindow turns an optional caller range into a concrete
// half-open [from, to) interval plus the monthly buckets to trend
// over. Without a caller range the window is the configured trailing
// months ending at the current month.
func (s *Service) resolveWindow(window domain.Window) (time.Time, time.Time, []aggregate.MonthWindow) {
	now := s.clock.Now().UTC()
	months := aggregate.MonthlyBuckets(s.reporting.Current().TrailingMonths, now)

	from := months[0].Start
	to := months[len(months)-1].End
	if window.From != nil {
		from = window.From.UTC()
	}
	if window.To != nil {
		// Caller ranges are inclusive of the end date.
		to = window.To.UTC().AddDate(0, 0, 1)
	}
	return from, to, months
}

func (s *Service) ClientReport(ctx context.Context, tenantID snowflake.ID, window domain.Window) (domain.ClientReport, error) {
	s.metrics.RecordReportRequest(ctx, "clients")

	from, to, months := s.resolveWindow(window)

	clients, err := s.repo.Clients(ctx, s.db, tenantID)
	if err != nil {
		return domain.ClientReport{}, err
	}
	payments, err := s.repo.Payments(ctx, s.db, tenantID, from, to)
	if err != nil {
		return domain.ClientReport{}, err
	}
	projects, err := s.repo.Projects(ctx, s.db, tenantID)
	if err != nil {
		return domain.ClientReport{}, err
	}

	var active, newThisMonth int64
	current := months[len(months)-1]
	for _, c := range clients {
		if c.Status == clientdomain.ClientStatusActive {
			active++
		}
		if current.Contains(c.CreatedAt) {
			newThisMonth++
		}
	}

	trends := make([]domain.MonthlyPoint, 0, len(months))
	for _, m := range months {
		var count float64
		for _, c := range clients {
			if m.Contains(c.CreatedAt) {
				count++
			}
		}
		trends = append(trends, domain.MonthlyPoint{Month: m.Label, Value: count})
	}

	revenueByClient := make(map[snowflake.ID]float64)
	for _, p := range payments {
		if p.Status == paymentdomain.PaymentStatusCompleted {
			revenueByClient[p.ClientID] += p.Amount
		}
	}
	projectsByClient := make(map[snowflake.ID]int)
	for _, p := range projects {
		projectsByClient[p.ClientID]++
	}

	top := make([]domain.ClientRank, 0, len(clients))
	for _, c := range clients {
		top = append(top, domain.ClientRank{
			ClientID: c.ID,
			Name:     c.Name,
			Revenue:  revenueByClient[c.ID],
			Projects: projectsByClient[c.ID],
		})
	}
	sort.Slice(top, func(i, j int) bool { return top[i].Revenue > top[j].Revenue })
	if n := s.reporting.Current().TopN; len(top) > n {
		top = top[:n]
	}

	return domain.ClientReport{
		TotalClients:  int64(len(clients)),
		ActiveClients: active,
		NewThisMonth:  newThisMonth,
		StatusBreakdown: aggregate.Breakdown(clients,
			func(c clientdomain.Client) string { return string(c.Status) },
			func(clientdomain.Client) float64 { return 1 },
		),
		MonthlyTrends: trends,
		TopClients:    top,
	}, nil
}

func (s *Service) ProjectReport(ctx context.Context, tenantID snowflake.ID, window domain.Window) (domain.ProjectReport, error) {
	s.metrics.RecordReportRequest(ctx, "projects")

	from, to, months := s.resolveWindow(window)

	projects, err := s.repo.Projects(ctx, s.db, tenantID)
	if err != nil {
		return domain.ProjectReport{}, err
	}
	payments, err := s.repo.Payments(ctx, s.db, tenantID, from, to)
	if err != nil {
		return domain.ProjectReport{}, err
	}

	var active, completed int64
	for _, p := range projects {
		switch p.Status {
		case projectdomain.ProjectStatusInProgress:
			active++
		case projectdomain.ProjectStatusCompleted:
			completed++
		}
	}

	trends := make([]domain.MonthlyPoint, 0, len(months))
	for _, m := range months {
		var count float64
		for _, p := range projects {
			if p.StartDate != nil && m.Contains(*p.StartDate) {
				count++
			}
		}
		trends = append(trends, domain.MonthlyPoint{Month: m.Label, Value: count})
	}

	paidByProject := make(map[snowflake.ID]float64)
	for _, p := range payments {
		if p.ProjectID != nil && p.Status == paymentdomain.PaymentStatusCompleted {
			paidByProject[*p.ProjectID] += p.Amount
		}
	}

	top := make([]domain.ProjectRank, 0, len(projects))
	for _, p := range projects {
		var budget float64
		if p.Budget != nil {
			budget = *p.Budget
		}
		paid := paidByProject[p.ID]
		top = append(top, domain.ProjectRank{
			ProjectID:         p.ID,
			Name:              p.Name,
			Budget:            budget,
			Paid:              paid,
			CompletionPercent: aggregate.CompletionPercent(budget, paid),
		})
	}
	sort.Slice(top, func(i, j int) bool { return top[i].Budget > top[j].Budget })
	if n := s.reporting.Current().TopN; len(top) > n {
		top = top[:n]
	}

	return domain.ProjectReport{
		TotalProjects:  int64(len(projects)),
		ActiveProjects: active,
		Completed:      completed,
		StatusBreakdown: aggregate.Breakdown(projects,
			func(p projectdomain.Project) string { return string(p.Status) },
			func(projectdomain.Project) float64 { return 1 },
		),
		MonthlyTrends: trends,
		TopProjects:   top,
	}, nil
}

func (s *Service) PaymentReport(ctx context.Context, tenantID snowflake.ID, window domain.Window) (domain.PaymentReport, error) {
	s.metrics.RecordReportRequest(ctx, "payments")

	from, to, months := s.resolveWindow(window)

	payments, err := s.repo.Payments(ctx, s.db, tenantID, from, to)
	if err != nil {
		return domain.PaymentReport{}, err
	}

	amount := func(p paymentdomain.Payment) float64 { return p.Amount }
	revenue := aggregate.Sum(payments, amount, func(p paymentdomain.Payment) bool {
		return p.Status == paymentdomain.PaymentStatusCompleted
	})
	pending := aggregate.Sum(payments, amount, func(p paymentdomain.Payment) bool {
		return p.Status == paymentdomain.PaymentStatusPending
	})

	trends := make([]domain.MonthlyPoint, 0, len(months))
	for _, m := range months {
		var monthRevenue float64
		for _, p := range payments {
			if p.Status == paymentdomain.PaymentStatusCompleted && m.Contains(p.Date) {
				monthRevenue += p.Amount
			}
		}
		trends = append(trends, domain.MonthlyPoint{Month: m.Label, Value: monthRevenue})
	}

	return domain.PaymentReport{
		TotalRevenue:  revenue,
		PendingAmount: pending,
		PaymentCount:  int64(len(payments)),
		StatusBreakdown: aggregate.Breakdown(payments,
			func(p paymentdomain.Payment) string { return string(p.Status) }, amount),
		MethodBreakdown: aggregate.Breakdown(payments,
			func(p paymentdomain.Payment) string { return string(p.Method) }, amount),
		MonthlyTrends: trends,
	}, nil
}

func (s *Service) ExpenseReport(ctx context.Context, tenantID snowflake.ID, window domain.Window) (domain.ExpenseReport, error) {
	s.metrics.RecordReportRequest(ctx, "expenses")

	from, to, months := s.resolveWindow(window)

	expenses, err := s.repo.Expenses(ctx, s.db, tenantID, from, to)
	if err != nil {
		return domain.ExpenseReport{}, err
	}

	amount := func(e expensedomain.Expense) float64 { return e.Amount }

	trends := make([]domain.MonthlyPoint, 0, len(months))
	for _, m := range months {
		var monthTotal float64
		for _, e := range expenses {
			if m.Contains(e.Date) {
				monthTotal += e.Amount
			}
		}
		trends = append(trends, domain.MonthlyPoint{Month: m.Label, Value: monthTotal})
	}

	return domain.ExpenseReport{
		TotalExpenses: aggregate.Sum(expenses, amount, nil),
		ExpenseCount:  int64(len(expenses)),
		CategoryBreakdown: aggregate.Breakdown(expenses,
			func(e expensedomain.Expense) string { return string(e.Category) }, amount),
		MonthlyTrends: trends,
	}, nil
}

func (s *Service) GrowthReport(ctx context.Context, tenantID snowflake.ID, window domain.Window) (domain.GrowthReport, error) {
	s.metrics.RecordReportRequest(ctx, "growth")

	from, to, months := s.resolveWindow(window)
	span := to.Sub(from)
	prevFrom, prevTo := from.Add(-span), from

	payments, err := s.repo.Payments(ctx, s.db, tenantID, prevFrom, to)
	if err != nil {
		return domain.GrowthReport{}, err
	}
	expenses, err := s.repo.Expenses(ctx, s.db, tenantID, prevFrom, to)
	if err != nil {
		return domain.GrowthReport{}, err
	}
	clients, err := s.repo.Clients(ctx, s.db, tenantID)
	if err != nil {
		return domain.GrowthReport{}, err
	}
	projects, err := s.repo.Projects(ctx, s.db, tenantID)
	if err != nil {
		return domain.GrowthReport{}, err
	}

	revenueIn := func(start, end time.Time) float64 {
		return aggregate.Sum(payments,
			func(p paymentdomain.Payment) float64 { return p.Amount },
			func(p paymentdomain.Payment) bool {
				return p.Status == paymentdomain.PaymentStatusCompleted &&
					!p.Date.Before(start) && p.Date.Before(end)
			})
	}
	expensesIn := func(start, end time.Time) float64 {
		return aggregate.Sum(expenses,
			func(e expensedomain.Expense) float64 { return e.Amount },
			func(e expensedomain.Expense) bool {
				return !e.Date.Before(start) && e.Date.Before(end)
			})
	}
	countCreated := func(times []time.Time, start, end time.Time) float64 {
		var n float64
		for _, t := range times {
			if !t.Before(start) && t.Before(end) {
				n++
			}
		}
		return n
	}

	clientTimes := make([]time.Time, 0, len(clients))
	for _, c := range clients {
		clientTimes = append(clientTimes, c.CreatedAt)
	}
	projectTimes := make([]time.Time, 0, len(projects))
	for _, p := range projects {
		projectTimes = append(projectTimes, p.CreatedAt)
	}

	curRevenue, prevRevenue := revenueIn(from, to), revenueIn(prevFrom, prevTo)
	curExpenses, prevExpenses := expensesIn(from, to), expensesIn(prevFrom, prevTo)
	curProfit, prevProfit := curRevenue-curExpenses, prevRevenue-prevExpenses

	trend := make([]domain.MonthlyPoint, 0, len(months))
	for _, m := range months {
		trend = append(trend, domain.MonthlyPoint{Month: m.Label, Value: revenueIn(m.Start, m.End)})
	}

	return domain.GrowthReport{
		Revenue:      change(curRevenue, prevRevenue),
		Clients:      change(countCreated(clientTimes, from, to), countCreated(clientTimes, prevFrom, prevTo)),
		Projects:     change(countCreated(projectTimes, from, to), countCreated(projectTimes, prevFrom, prevTo)),
		Profit:       change(curProfit, prevProfit),
		ProfitMargin: aggregate.ProfitMargin(curRevenue, curExpenses),
		RevenueTrend: trend,
	}, nil
}

func (s *Service) DashboardSummary(ctx context.Context, tenantID snowflake.ID) (domain.DashboardSummary, error) {
	s.metrics.RecordReportRequest(ctx, "dashboard")

	now := s.clock.Now().UTC()
	months := aggregate.MonthlyBuckets(2, now)
	prev, current := months[0], months[1]

	payments, err := s.repo.Payments(ctx, s.db, tenantID, prev.Start, current.End)
	if err != nil {
		return domain.DashboardSummary{}, err
	}
	expenses, err := s.repo.Expenses(ctx, s.db, tenantID, prev.Start, current.End)
	if err != nil {
		return domain.DashboardSummary{}, err
	}
	clients, err := s.repo.Clients(ctx, s.db, tenantID)
	if err != nil {
		return domain.DashboardSummary{}, err
	}
	projects, err := s.repo.Projects(ctx, s.db, tenantID)
	if err != nil {
		return domain.DashboardSummary{}, err
	}
	overdue, err := s.repo.CountOverdueInvoices(ctx, s.db, tenantID, now)
	if err != nil {
		return domain.DashboardSummary{}, err
	}

	sumPayments := func(w aggregate.MonthWindow, status paymentdomain.PaymentStatus) float64 {
		return aggregate.Sum(payments,
			func(p paymentdomain.Payment) float64 { return p.Amount },
			func(p paymentdomain.Payment) bool { return p.Status == status && w.Contains(p.Date) })
	}
	sumExpenses := func(w aggregate.MonthWindow) float64 {
		return aggregate.Sum(expenses,
			func(e expensedomain.Expense) float64 { return e.Amount },
			func(e expensedomain.Expense) bool { return w.Contains(e.Date) })
	}

	var activeClients, activeProjects int64
	for _, c := range clients {
		if c.Status == clientdomain.ClientStatusActive {
			activeClients++
		}
	}
	for _, p := range projects {
		if p.Status == projectdomain.ProjectStatusInProgress {
			activeProjects++
		}
	}

	curRevenue := sumPayments(current, paymentdomain.PaymentStatusCompleted)
	curPending := sumPayments(current, paymentdomain.PaymentStatusPending)
	curExpenses := sumExpenses(current)

	return domain.DashboardSummary{
		TotalRevenue:    curRevenue,
		RevenueChange:   aggregate.PercentChange(curRevenue, sumPayments(prev, paymentdomain.PaymentStatusCompleted)),
		PendingAmount:   curPending,
		PendingChange:   aggregate.PercentChange(curPending, sumPayments(prev, paymentdomain.PaymentStatusPending)),
		OverdueInvoices: overdue,
		ActiveClients:   activeClients,
		ActiveProjects:  activeProjects,
		ExpensesMonth:   curExpenses,
		ExpensesChange:  aggregate.PercentChange(curExpenses, sumExpenses(prev)),
	}, nil
}

func (s *Service) ClientsChange(ctx context.Context, tenantID snowflake.ID) (domain.Change, error) {
	clients, err := s.repo.Clients(ctx, s.db, tenantID)
	if err != nil {
		return domain.Change{}, err
	}
	times := make([]time.Time, 0, len(clients))
	for _, c := range clients {
		times = append(times, c.CreatedAt)
	}
	return s.monthOverMonthCount(times), nil
}

func (s *Service) ProjectsChange(ctx context.Context, tenantID snowflake.ID) (domain.Change, error) {
	projects, err := s.repo.Projects(ctx, s.db, tenantID)
	if err != nil {
		return domain.Change{}, err
	}
	times := make([]time.Time, 0, len(projects))
	for _, p := range projects {
		times = append(times, p.CreatedAt)
	}
	return s.monthOverMonthCount(times), nil
}

func (s *Service) PaymentsChange(ctx context.Context, tenantID snowflake.ID) (domain.Change, error) {
	prev, current := s.lastTwoMonths()

	payments, err := s.repo.Payments(ctx, s.db, tenantID, prev.Start, current.End)
	if err != nil {
		return domain.Change{}, err
	}

	sum := func(w aggregate.MonthWindow) float64 {
		return aggregate.Sum(payments,
			func(p paymentdomain.Payment) float64 { return p.Amount },
			func(p paymentdomain.Payment) bool {
				return p.Status == paymentdomain.PaymentStatusCompleted && w.Contains(p.Date)
			})
	}
	return change(sum(current), sum(prev)), nil
}

func (s *Service) ExpensesChange(ctx context.Context, tenantID snowflake.ID) (domain.Change, error) {
	prev, current := s.lastTwoMonths()

	expenses, err := s.repo.Expenses(ctx, s.db, tenantID, prev.Start, current.End)
	if err != nil {
		return domain.Change{}, err
	}

	sum := func(w aggregate.MonthWindow) float64 {
		return aggregate.Sum(expenses,
			func(e expensedomain.Expense) float64 { return e.Amount },
			func(e expensedomain.Expense) bool { return w.Contains(e.Date) })
	}
	return change(sum(current), sum(prev)), nil
}

func (s *Service) lastTwoMonths() (aggregate.MonthWindow, aggregate.MonthWindow) {
	months := aggregate.MonthlyBuckets(2, s.clock.Now().UTC())
	return months[0], months[1]
}

func (s *Service) monthOverMonthCount(times []time.Time) domain.Change {
	prev, current := s.lastTwoMonths()
	var curCount, prevCount float64
	for _, t := range times {
		if current.Contains(t) {
			curCount++
		}
		if prev.Contains(t) {
			prevCount++
		}
	}
	return change(curCount, prevCount)
}

func change(current, previous float64) domain.Change {
	return domain.Change{
		Current:  current,
		Previous: previous,
		Change:   aggregate.PercentChange(current, previous),
	}
}
