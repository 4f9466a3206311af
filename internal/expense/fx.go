package expense

import (
	"github.com/ledgique/ledgique/internal/expense/repository"
	"github.com/ledgique/ledgique/internal/expense/service"
	"go.uber.org/fx"
)

var Module = fx.Module("expense.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
