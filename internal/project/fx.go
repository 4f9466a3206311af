package project

import (
	"github.com/ledgique/ledgique/internal/project/repository"
	"github.com/ledgique/ledgique/internal/project/service"
	"go.uber.org/fx"
)

var Module = fx.Module("project.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
