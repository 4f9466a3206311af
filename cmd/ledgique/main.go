package main

import (
	"hash/fnv"
	"os"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/internal/clock"
	"github.com/ledgique/ledgique/internal/config"
	"github.com/ledgique/ledgique/internal/migration"
	"github.com/ledgique/ledgique/internal/observability"
	"github.com/ledgique/ledgique/internal/scheduler"
	"github.com/ledgique/ledgique/internal/server"
	"github.com/ledgique/ledgique/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
		scheduler.Module,
	)
	app.Run()
}

// RegisterSnowflake derives the generator node from the hostname so
// replicas do not mint colliding IDs.
func RegisterSnowflake() (*snowflake.Node, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "ledgique"
	}

	h := fnv.New32a()
	h.Write([]byte(hostname))
	return snowflake.NewNode(int64(h.Sum32() % 1024))
}
