package retainer

import (
	"github.com/ledgique/ledgique/internal/retainer/repository"
	"github.com/ledgique/ledgique/internal/retainer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("retainer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
