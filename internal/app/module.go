package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/Radaos/griddle/internal/grid"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.grid.enabled") {
		closer, err := grid.New(grid.Dependency{
			Config:  a.config,
			Router:  a.router,
			Context: a.ctx,
			ID:      a.uuid,
		})
		if err != nil {
			slog.Error("failed to init module grid", "error", err)
			os.Exit(1)
		}
		if closer != nil {
			if a.closerFn == nil {
				a.closerFn = map[string]func(context.Context) error{}
			}
			a.closerFn["Grid"] = closer
		}
	}
}
