package migration

import (
	"github.com/ledgique/ledgique/internal/config"
	"github.com/ledgique/ledgique/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}

		if err := RunMigrations(sqlDB, cfg.DBType); err != nil {
			return err
		}

		if cfg.DefaultTenantID != 0 {
			return seed.EnsureDefaultAccount(conn, cfg.DefaultTenantID)
		}
		return nil
	}),
)
