package client

import (
	"github.com/ledgique/ledgique/internal/client/repository"
	"github.com/ledgique/ledgique/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
