package payment

import (
	"github.com/ledgique/ledgique/internal/payment/repository"
	"github.com/ledgique/ledgique/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
