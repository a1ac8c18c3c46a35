package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/intentcat/internal/domain/activity"
	"github.com/rpggio/intentcat/internal/domain/category"
	"github.com/rpggio/intentcat/internal/domain/intent"
	"github.com/rpggio/intentcat/internal/domain/recognition"
)

// RecognitionService defines matching operations needed by MCP.
type RecognitionService interface {
	Recognize(ctx context.Context, tenantID, text string, minConfidence float64) (recognition.MatchOutcome, error)
	RecognizeBatch(ctx context.Context, tenantID string, texts []string, minConfidence float64) ([]recognition.BatchEntry, error)
}

// IntentService defines intent catalog operations needed by MCP.
type IntentService interface {
	Create(ctx context.Context, tenantID string, req intent.CreateRequest) (*intent.Intent, error)
	Update(ctx context.Context, tenantID string, req intent.UpdateRequest) (*intent.Intent, error)
	SetStatus(ctx context.Context, tenantID, id string, status intent.Status) (*intent.Intent, error)
	Get(ctx context.Context, tenantID, id string) (*intent.Intent, error)
	Delete(ctx context.Context, tenantID, id string) error
	List(ctx context.Context, tenantID string, opts intent.ListIntentsOptions) ([]intent.IntentRef, error)
	Search(ctx context.Context, tenantID, query string, limit int) ([]intent.SearchResult, error)
}

// CategoryService defines category operations needed by MCP.
type CategoryService interface {
	Create(ctx context.Context, tenantID string, req category.CreateRequest) (*category.Category, error)
	List(ctx context.Context, tenantID string) ([]category.CategorySummary, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, tenantID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Recognition RecognitionService
	Intents     IntentService
	Categories  CategoryService
	Activity    ActivityService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      TenantResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	DefaultTenant string
	MinConfidence float64 // used when a call gives none
	Version       string
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.DefaultTenant == "" {
		cfg.DefaultTenant = "default"
	}
	if cfg.MinConfidence == 0 {
		cfg.MinConfidence = recognition.DefaultMinConfidence
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "intentcat",
		Version: cfg.Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio is local only, so auth never applies there.
	if cfg.TransportMode != "stdio" && cfg.AuthEnabled {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	} else {
		server.AddReceivingMiddleware(noAuthMiddleware(cfg.DefaultTenant))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services, cfg.MinConfidence, cfg.Logger)

	return server
}
