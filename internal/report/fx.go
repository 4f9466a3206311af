package report

import (
	"github.com/ledgique/ledgique/internal/report/repository"
	"github.com/ledgique/ledgique/internal/report/service"
	"go.uber.org/fx"
)

var Module = fx.Module("report.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
