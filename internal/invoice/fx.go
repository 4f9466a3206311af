package invoice

import (
	"github.com/ledgique/ledgique/internal/invoice/repository"
	"github.com/ledgique/ledgique/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
