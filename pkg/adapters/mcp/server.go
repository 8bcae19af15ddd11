// Package mcp exposes machine sessions as Model Context Protocol tools.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/presentation/history"
	"github.com/aretw0/turing/internal/presentation/table"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/generator"
	"github.com/aretw0/turing/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DefaultMaxSteps caps a single step call.
const DefaultMaxSteps = 1_000_000

// Sessions is the subset of session.Manager the tools need.
type Sessions interface {
	Create(ctx context.Context, sessionID string, rules *domain.RuleTable, opts ...turing.Option) (string, *domain.MachineSnapshot, error)
	Load(ctx context.Context, sessionID string) (*domain.MachineSnapshot, error)
	Step(ctx context.Context, sessionID string, n int) (domain.StepResult, *domain.MachineSnapshot, error)
	List(ctx context.Context) ([]string, error)
}

// MachineView is the tool-facing summary of a machine.
type MachineView struct {
	ID       string `json:"id" jsonschema_description:"Session ID to pass to step and inspect"`
	State    string `json:"state" jsonschema_description:"Current state; H means halted"`
	Position int    `json:"position" jsonschema_description:"Logical head position"`
	Steps    int    `json:"steps" jsonschema_description:"Transitions executed so far"`
	Halted   bool   `json:"halted"`
	Tape     string `json:"tape" jsonschema_description:"Materialized tape cells, lowest position first"`
	Lowest   int    `json:"lowest" jsonschema_description:"Logical position of the first tape cell"`
}

// StepView reports a bounded run.
type StepView struct {
	Requested int         `json:"requested"`
	Steps     int         `json:"steps"`
	Outcome   string      `json:"outcome" jsonschema_description:"completed, halted or stuck"`
	Error     string      `json:"error,omitempty"`
	Machine   MachineView `json:"machine"`
}

// InspectView is a machine plus its rendered rule table and history.
type InspectView struct {
	Machine MachineView `json:"machine"`
	Rules   string      `json:"rules" jsonschema_description:"Rule table grid: columns are states, rows are symbols"`
	History string      `json:"history,omitempty" jsonschema_description:"One line per tape frame, aligned by position"`
}

// CreateArgs are the create_machine arguments.
type CreateArgs struct {
	ID        string  `json:"id,omitempty"`
	Rules     string  `json:"rules,omitempty"`
	States    int     `json:"states,omitempty"`
	Seed      *uint64 `json:"seed,omitempty"`
	NoHistory bool    `json:"no_history,omitempty"`
}

// StepArgs are the step arguments.
type StepArgs struct {
	ID    string `json:"id"`
	Steps int    `json:"steps,omitempty"`
}

// InspectArgs are the inspect arguments.
type InspectArgs struct {
	ID      string `json:"id"`
	History bool   `json:"history,omitempty"`
}

// Server exposes Sessions as an MCP server.
type Server struct {
	sessions  Sessions
	mcpServer *server.MCPServer
	logger    *slog.Logger
	maxSteps  int
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMaxSteps overrides DefaultMaxSteps.
func WithMaxSteps(n int) Option {
	return func(s *Server) {
		s.maxSteps = n
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions Sessions, opts ...Option) *Server {
	s := &Server{
		sessions:  sessions,
		mcpServer: server.NewMCPServer("turing-mcp", strings.TrimSpace(turing.Version)),
		logger:    logging.NewNop(),
		maxSteps:  DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{Addr: addr, Handler: mux}
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("create_machine",
		mcp.WithDescription("Create a Turing machine session from a rule table document (YAML or JSON) or at random."),
		mcp.WithString("id", mcp.Description("Session ID (optional, generated when omitted)")),
		mcp.WithString("rules", mcp.Description("Rule table document, e.g. 'rules: [{read: 0, state: a, do: 1RH}]'")),
		mcp.WithNumber("states", mcp.Description(fmt.Sprintf("Generate a random table over this many states, Halt included, at most %d (used when rules is omitted)", generator.MaxStates))),
		mcp.WithNumber("seed", mcp.Description("Seed for the random table (optional)")),
		mcp.WithBoolean("no_history", mcp.Description("Do not keep a tape frame per write")),
		mcp.WithOutputSchema[InspectView](),
	), mcp.NewStructuredToolHandler(s.handleCreate))

	s.mcpServer.AddTool(mcp.NewTool("step",
		mcp.WithDescription("Run up to the given number of transitions. Stops early when the machine halts or hits a rule table gap."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithNumber("steps", mcp.Description(fmt.Sprintf("Maximum transitions to run (default 1, at most %d)", s.maxSteps))),
		mcp.WithOutputSchema[StepView](),
	), mcp.NewStructuredToolHandler(s.handleStep))

	s.mcpServer.AddTool(mcp.NewTool("inspect",
		mcp.WithDescription("Show a machine's head, state, tape and rule table."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithBoolean("history", mcp.Description("Include the tape history")),
		mcp.WithOutputSchema[InspectView](),
	), mcp.NewStructuredToolHandler(s.handleInspect))
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("turing://sessions", "Machine sessions",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.sessions.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list sessions: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "turing://sessions",
				MIMEType: "text/plain",
				Text:     strings.Join(ids, "\n"),
			},
		}, nil
	})
}

func (s *Server) handleCreate(ctx context.Context, _ mcp.CallToolRequest, args CreateArgs) (InspectView, error) {
	rules, err := args.table()
	if err != nil {
		return InspectView{}, err
	}

	var opts []turing.Option
	if args.NoHistory {
		opts = append(opts, turing.WithoutHistory())
	}
	id, snap, err := s.sessions.Create(ctx, args.ID, rules, opts...)
	if err != nil {
		return InspectView{}, fmt.Errorf("create failed: %w", err)
	}
	s.logger.Info("MCP: machine created", "session_id", id)
	return newInspectView(id, snap, false)
}

func (s *Server) handleStep(ctx context.Context, _ mcp.CallToolRequest, args StepArgs) (StepView, error) {
	if args.ID == "" {
		return StepView{}, errors.New("id is required")
	}
	n := args.Steps
	if n == 0 {
		n = 1
	}
	if n > s.maxSteps {
		return StepView{}, fmt.Errorf("%d steps exceeds the limit of %d", n, s.maxSteps)
	}
	res, snap, err := s.sessions.Step(ctx, args.ID, n)
	if err != nil {
		return StepView{}, fmt.Errorf("step failed: %w", err)
	}

	view := StepView{
		Requested: res.Requested,
		Steps:     res.Steps,
		Outcome:   string(res.Outcome),
		Machine:   newMachineView(args.ID, snap),
	}
	if res.Err != nil {
		view.Error = res.Err.Error()
	}
	return view, nil
}

func (s *Server) handleInspect(ctx context.Context, _ mcp.CallToolRequest, args InspectArgs) (InspectView, error) {
	if args.ID == "" {
		return InspectView{}, errors.New("id is required")
	}
	snap, err := s.sessions.Load(ctx, args.ID)
	if err != nil {
		return InspectView{}, fmt.Errorf("inspect failed: %w", err)
	}
	return newInspectView(args.ID, snap, args.History)
}

func (a CreateArgs) table() (*domain.RuleTable, error) {
	switch {
	case a.Rules != "" && a.States != 0:
		return nil, errors.New("rules and states are mutually exclusive")
	case a.Rules != "":
		doc, err := schema.Parse([]byte(a.Rules))
		if err != nil {
			return nil, err
		}
		return doc.Table()
	case a.States != 0:
		var opts []generator.Option
		if a.Seed != nil {
			opts = append(opts, generator.WithSeed(*a.Seed))
		}
		return generator.New(opts...).Rules(a.States)
	default:
		return nil, errors.New("either rules or states is required")
	}
}

func newMachineView(id string, snap *domain.MachineSnapshot) MachineView {
	var sb strings.Builder
	for _, c := range snap.Tape.Cells {
		sb.WriteString(c.String())
	}
	lo, _ := snap.Tape.Bounds()
	return MachineView{
		ID:       id,
		State:    snap.State.String(),
		Position: snap.Position,
		Steps:    snap.Steps,
		Halted:   snap.Halted(),
		Tape:     sb.String(),
		Lowest:   lo,
	}
}

func newInspectView(id string, snap *domain.MachineSnapshot, withHistory bool) (InspectView, error) {
	rules, err := domain.NewRuleTable(snap.Rules...)
	if err != nil {
		return InspectView{}, err
	}
	view := InspectView{
		Machine: newMachineView(id, snap),
		Rules:   table.Render(rules),
	}
	if withHistory {
		view.History = history.Render(snap.History)
	}
	return view, nil
}
