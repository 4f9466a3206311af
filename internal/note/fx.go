package note

import (
	"github.com/ledgique/ledgique/internal/note/repository"
	"github.com/ledgique/ledgique/internal/note/service"
	"go.uber.org/fx"
)

var Module = fx.Module("note.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
