package inbound

import (
	"context"
	"net/http"

	"github.com/Radaos/griddle/internal/grid/entity"
	"github.com/Radaos/griddle/internal/grid/event"
	"github.com/Radaos/griddle/internal/grid/usecase"
	"github.com/Radaos/griddle/internal/pkg/pkgrouter"
)

type uc interface {
	Open(ctx context.Context, title string, rows [][]string, rule *entity.AccessRule) (usecase.OpenResult, error)
	Get(ctx context.Context, sessionID string) (usecase.SessionResult, error)
	EditCell(ctx context.Context, sessionID string, row, col int, value string) error
	Load(ctx context.Context, sessionID, path string) (usecase.SessionResult, error)
	Save(ctx context.Context, sessionID, path string) error
	Export(ctx context.Context, sessionID, path string) error
	Find(ctx context.Context, sessionID, query string) (usecase.FindResult, error)
	Exit(ctx context.Context, sessionID string) (usecase.ExitResult, error)
	Audit(ctx context.Context, sessionID string) ([]entity.AuditEvent, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, hub *event.Hub) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/sessions", end.Open)
	r.GET("/sessions/:id", end.Get)
	r.GET("/sessions/:id/audit", end.Audit)
	r.PUT("/sessions/:id/cells", end.EditCell)
	r.POST("/sessions/:id/load", end.Load)
	r.POST("/sessions/:id/save", end.Save)
	r.POST("/sessions/:id/export", end.Export)
	r.POST("/sessions/:id/find", end.Find)
	r.POST("/sessions/:id/exit", end.Exit)

	if hub != nil {
		// Raw handler: the websocket upgrade hijacks the connection, so it
		// cannot go through the JSON response encoder.
		r.Handle(http.MethodGet, "/sessions/:id/watch", &WatchEndpoint{uc: uc, hub: hub})
	}
}
