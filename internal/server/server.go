package server

import (
	"context"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/thoreinstein/autoskills/internal/logging"
	"github.com/thoreinstein/autoskills/internal/registry"
	"github.com/thoreinstein/autoskills/internal/skill"
)

// Name is the server name reported to clients.
const Name = "autoskills"

// Library is the part of the skill repository the tools use.
type Library interface {
	Dir() string
	List(ctx context.Context) ([]skill.Summary, error)
	Get(ctx context.Context, name string) (*skill.Skill, error)
	Exists(name string) bool
	Create(ctx context.Context, p skill.CreateParams) (string, error)
	Update(ctx context.Context, name string, p skill.UpdateParams) (string, error)
	Delete(ctx context.Context, name string) (bool, error)
}

// Finder searches public skills.
type Finder interface {
	Search(ctx context.Context, query string) []registry.Result
}

// Installer installs a public skill package.
type Installer interface {
	Install(ctx context.Context, pkg string) (*registry.Installation, error)
}

// Deps are the components behind the tools.
type Deps struct {
	Library   Library
	Finder    Finder
	Installer Installer
	Logger    *slog.Logger
	Version   string
}

// Handlers implements the tool handlers.
type Handlers struct {
	lib       Library
	finder    Finder
	installer Installer
	logger    *slog.Logger
}

// NewHandlers returns handlers bound to deps.
func NewHandlers(deps Deps) *Handlers {
	h := &Handlers{
		lib:       deps.Library,
		finder:    deps.Finder,
		installer: deps.Installer,
		logger:    deps.Logger,
	}
	if h.logger == nil {
		h.logger = logging.NewDiscard()
	}
	return h
}

// Tool pairs a tool definition with its handler.
type Tool struct {
	Definition mcp.Tool
	Handle     server.ToolHandlerFunc
}

// New builds an MCP server with every tool registered.
func New(deps Deps) *server.MCPServer {
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	s := server.NewMCPServer(
		Name,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	for _, t := range NewHandlers(deps).Tools() {
		s.AddTool(t.Definition, t.Handle)
	}
	return s
}

// Serve runs s over in and out until ctx is cancelled or in is closed.
func Serve(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))
	logger.InfoContext(ctx, "serving MCP over stdio", "server", Name)
	return stdio.Listen(ctx, in, out)
}
