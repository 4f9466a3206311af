// Package scheduler runs the background sweeps the API surface does
// not cover, currently the overdue invoice sweep.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/ledgique/ledgique/internal/clock"
	"github.com/ledgique/ledgique/internal/config"
	invoicedomain "github.com/ledgique/ledgique/internal/invoice/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	Reporting *config.ReportingConfigHolder `optional:"true"`
	Config    Config                        `optional:"true"`
}

// Scheduler periodically flips sent invoices past their due date to
// overdue. The sweep runs across all tenants.
type Scheduler struct {
	db        *gorm.DB
	log       *zap.Logger
	clock     clock.Clock
	reporting *config.ReportingConfigHolder
	cfg       Config
}

func New(p Params) (*Scheduler, error) {
	if p.DB == nil {
		return nil, errors.New("scheduler requires a database handle")
	}
	if p.Log == nil {
		return nil, errors.New("scheduler requires a logger")
	}
	if p.Clock == nil {
		return nil, errors.New("scheduler requires a clock")
	}

	return &Scheduler{
		db:        p.DB,
		log:       p.Log.Named("scheduler"),
		clock:     p.Clock,
		reporting: p.Reporting,
		cfg:       p.Config.withDefaults(),
	}, nil
}

// RunForever sweeps on a fixed interval until ctx is cancelled.
func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	s.log.Info("scheduler started", zap.Duration("interval", s.cfg.RunInterval))

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			if _, err := s.SweepOverdueInvoices(ctx); err != nil {
				s.log.Error("overdue sweep failed", zap.Error(err))
			}
		}
	}
}

// SweepOverdueInvoices marks sent invoices whose due date plus the
// configured grace period has passed. It returns the number of
// invoices it flipped.
func (s *Scheduler) SweepOverdueInvoices(ctx context.Context) (int64, error) {
	grace := config.DefaultReportingConfig().OverdueGraceDays
	if s.reporting != nil {
		grace = s.reporting.Current().OverdueGraceDays
	}

	now := s.clock.Now()
	cutoff := now.AddDate(0, 0, -grace)

	result := s.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where("status = ?", invoicedomain.InvoiceStatusSent).
		Where("due_date < ?", cutoff).
		Updates(map[string]interface{}{
			"status":     invoicedomain.InvoiceStatusOverdue,
			"updated_at": now,
		})
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected > 0 {
		s.log.Info("marked invoices overdue",
			zap.Int64("count", result.RowsAffected),
			zap.Int("grace_days", grace),
		)
	}
	return result.RowsAffected, nil
}
