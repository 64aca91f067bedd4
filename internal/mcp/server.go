package mcp

import (
	"context"
	"io"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/todolist/internal/domain/activity"
	"github.com/rpggio/todolist/internal/domain/item"
)

// ItemService defines item store operations needed by MCP.
type ItemService interface {
	Create(ctx context.Context, req item.CreateRequest) (*item.ListItem, error)
	Get(ctx context.Context, title string) (*item.ListItem, error)
	Remove(ctx context.Context, title string) error
	Rename(ctx context.Context, oldTitle, newTitle string) (*item.ListItem, error)
	UpdateDescription(ctx context.Context, title, text string) (*item.ListItem, error)
	UpdateDueDate(ctx context.Context, title string, due *time.Time) (*item.ListItem, error)
	UpdateStatus(ctx context.Context, title string, status item.Status) (*item.ListItem, error)
	Update(ctx context.Context, title string, changes item.Changes) (*item.ListItem, error)
	Clear(ctx context.Context) error
	List(ctx context.Context) ([]item.ListItem, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Items    ItemService
	Activity ActivityService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "todolist",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services, cfg.Logger)

	return server
}

// ServeStdio runs server over stdin/stdout until the client disconnects or
// ctx is canceled.
func ServeStdio(ctx context.Context, server *sdkmcp.Server) error {
	return server.Run(ctx, &sdkmcp.StdioTransport{})
}

// ServeIO runs server over r and w until either side closes or ctx is canceled.
func ServeIO(ctx context.Context, server *sdkmcp.Server, r io.ReadCloser, w io.WriteCloser) error {
	return server.Run(ctx, &sdkmcp.IOTransport{Reader: r, Writer: w})
}
