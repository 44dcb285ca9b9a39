package grid

import (
	"context"
	"fmt"
	"time"

	"github.com/Radaos/griddle/internal/grid/entity"
	"github.com/Radaos/griddle/internal/grid/event"
	"github.com/Radaos/griddle/internal/grid/inbound"
	"github.com/Radaos/griddle/internal/grid/store"
	"github.com/Radaos/griddle/internal/grid/usecase"
	"github.com/Radaos/griddle/internal/pkg/pkgconfig"
	"github.com/Radaos/griddle/internal/pkg/pkgrouter"
	"github.com/Radaos/griddle/internal/pkg/pkguid"
)

type Dependency struct {
	Config  pkgconfig.Config
	Router  *pkgrouter.Router
	Context context.Context
	ID      pkguid.StringID
}

func New(dep Dependency) (func(context.Context) error, error) {
	storage := store.NewInMemoryStore()
	bus := event.NewBus(512)
	hub := event.NewHub()
	consumer := event.NewAuditConsumer(bus, storage, hub, event.ConsumerConfig{
		Workers:     4,
		MaxRetries:  3,
		BaseBackoff: 200 * time.Millisecond,
	})
	consumer.Start()

	if dep.ID == nil {
		dep.ID = pkguid.NewUUID()
	}

	seq, err := pkguid.NewSnowflake()
	if err != nil {
		return nil, fmt.Errorf("init audit sequence: %w", err)
	}

	rule, err := defaultRule(dep.Config)
	if err != nil {
		return nil, err
	}

	uc := usecase.New(usecase.Dependency{
		Store:       storage,
		Events:      bus,
		ID:          dep.ID,
		Seq:         seq,
		DefaultRule: rule,
		RootCtx:     dep.Context,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, hub)

	return consumer.Stop, nil
}

// defaultRule reads the access rule applied to sessions opened without an
// explicit one. An empty mode means every column is editable.
func defaultRule(cfg pkgconfig.Config) (entity.AccessRule, error) {
	mode := cfg.GetString("modules.grid.default_access.mode")
	switch mode {
	case "", "all":
		return entity.AccessRule{Mode: entity.EditModeAll}, nil
	case "single_column":
		column := entity.LastColumn
		if cfg.GetString("modules.grid.default_access.column") != "" {
			column = int(cfg.GetInt("modules.grid.default_access.column"))
		}
		return entity.AccessRule{Mode: entity.EditModeSingleColumn, Column: column}, nil
	default:
		return entity.AccessRule{}, fmt.Errorf("unknown access mode %q", mode)
	}
}
