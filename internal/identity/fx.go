package identity

import (
	"github.com/ledgique/ledgique/internal/identity/repository"
	"github.com/ledgique/ledgique/internal/identity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("identity.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
