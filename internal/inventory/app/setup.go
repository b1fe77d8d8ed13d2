// Package app contains the application setup for the inventory.
package app

import (
	"io"
	"log/slog"

	"github.com/abgdnv/bgrs/internal/cli"
	"github.com/abgdnv/bgrs/internal/config"
	"github.com/abgdnv/bgrs/internal/inventory/audit"
	"github.com/abgdnv/bgrs/internal/inventory/persistence"
	"github.com/abgdnv/bgrs/internal/inventory/service"
	"github.com/spf13/afero"
)

type Dependencies struct {
	InventoryService service.InventoryService
	Logger           *slog.Logger
	Config           *config.Config
}

// SetupDependencies builds the inventory service on fsys.
// sessionID tags every audit line written during this run.
func SetupDependencies(cfg *config.Config, fsys afero.Fs, sessionID string, logger *slog.Logger) *Dependencies {
	var sink audit.Sink = audit.Nop
	if cfg.Audit.Enabled {
		sink = audit.NewFileSink(fsys, cfg.Audit.Path, sessionID)
	}
	gateway := persistence.NewGateway(fsys, logger)

	return &Dependencies{
		InventoryService: service.NewService(gateway, sink, nil, logger),
		Logger:           logger,
		Config:           cfg,
	}
}

// SetupMenu creates the interactive menu working on the configured inventory file.
func SetupMenu(deps *Dependencies, in io.Reader, out io.Writer) *cli.Menu {
	return cli.NewMenu(deps.InventoryService, in, out, deps.Config.Storage.Path, deps.Logger)
}
