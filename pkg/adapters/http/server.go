// Package http exposes machine sessions over a REST API with chi.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/presentation/history"
	"github.com/aretw0/turing/internal/presentation/table"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/generator"
	"github.com/aretw0/turing/pkg/schema"
	"github.com/aretw0/turing/pkg/session"
	"github.com/go-chi/chi/v5"
)

// DefaultMaxSteps caps a single step request.
const DefaultMaxSteps = 1_000_000

// Sessions is the subset of session.Manager the server needs.
type Sessions interface {
	Create(ctx context.Context, sessionID string, rules *domain.RuleTable, opts ...turing.Option) (string, *domain.MachineSnapshot, error)
	Load(ctx context.Context, sessionID string) (*domain.MachineSnapshot, error)
	Step(ctx context.Context, sessionID string, n int) (domain.StepResult, *domain.MachineSnapshot, error)
	Delete(ctx context.Context, sessionID string) error
	List(ctx context.Context) ([]string, error)
}

var _ Sessions = (*session.Manager)(nil)

// Server handles the REST endpoints.
type Server struct {
	Sessions Sessions
	Streams  *StreamManager
	logger   *slog.Logger
	maxSteps int
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
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

// NewServer creates a Server.
func NewServer(sessions Sessions, opts ...Option) *Server {
	s := &Server{
		Sessions: sessions,
		Streams:  NewStreamManager(),
		logger:   logging.NewNop(),
		maxSteps: DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.logger
	return s
}

// NewHandler creates the HTTP handler for the session API.
func NewHandler(sessions Sessions, opts ...Option) http.Handler {
	return NewServer(sessions, opts...).Routes()
}

// Routes mounts the API on a chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.CreateSession)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/step", s.StepSession)
			r.Get("/history", s.GetHistory)
			r.Get("/rules", s.GetRules)
			r.Get("/events", s.SubscribeEvents)
		})
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rules, err := body.table()
	if err != nil {
		s.fail(w, http.StatusBadRequest, "Invalid rule table", err)
		return
	}

	var opts []turing.Option
	if body.NoHistory {
		opts = append(opts, turing.WithoutHistory())
	}
	id, snap, err := s.Sessions.Create(r.Context(), body.ID, rules, opts...)
	if err != nil {
		s.failSession(w, "Create", err)
		return
	}

	s.logger.Info("Session created", "session_id", id)
	s.write(w, http.StatusCreated, newSessionResponse(id, snap))
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "List error", err)
		return
	}
	s.write(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.Sessions.Load(r.Context(), id)
	if err != nil {
		s.failSession(w, "Load", err)
		return
	}
	s.write(w, http.StatusOK, newSessionResponse(id, snap))
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.failSession(w, "Delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StepSession handles POST /sessions/{id}/step. An empty body steps once.
func (s *Server) StepSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	body := StepRequest{Steps: 1}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.fail(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}
	if body.Steps > s.maxSteps {
		s.fail(w, http.StatusBadRequest, "Invalid step count",
			fmt.Errorf("%d exceeds the limit of %d", body.Steps, s.maxSteps))
		return
	}

	// Best effort: a concurrent step between Load and Step is folded into the diff.
	prev, _ := s.Sessions.Load(r.Context(), id)

	res, snap, err := s.Sessions.Step(r.Context(), id, body.Steps)
	if err != nil {
		s.failSession(w, "Step", err)
		return
	}

	resp := StepResponse{
		Requested: res.Requested,
		Steps:     res.Steps,
		Outcome:   res.Outcome,
		Session:   newSessionResponse(id, snap),
		Diff:      domain.Diff(prev, snap),
	}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}

	if payload, err := json.Marshal(resp); err == nil {
		s.Streams.Broadcast(id, string(payload))
	}
	s.write(w, http.StatusOK, resp)
}

// GetHistory handles GET /sessions/{id}/history.
// With ?format=text the frames are rendered aligned by origin.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.Sessions.Load(r.Context(), id)
	if err != nil {
		s.failSession(w, "Load", err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		s.writeText(w, history.Render(snap.History))
		return
	}
	s.write(w, http.StatusOK, map[string][]domain.Frame{"frames": snap.History})
}

// GetRules handles GET /sessions/{id}/rules.
// ?format=text renders the grid, ?format=mermaid the state diagram.
func (s *Server) GetRules(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.Sessions.Load(r.Context(), id)
	if err != nil {
		s.failSession(w, "Load", err)
		return
	}
	rules, err := domain.NewRuleTable(snap.Rules...)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "Corrupt rule table", err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "text":
		s.writeText(w, table.Render(rules))
	case "mermaid":
		current := snap.State
		s.writeText(w, graph.GenerateMermaid(rules, &graph.GraphOverlay{CurrentState: &current}))
	default:
		s.write(w, http.StatusOK, map[string]any{
			"rules":  rules,
			"states": rules.StateCount(),
		})
	}
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.write(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.write(w, http.StatusOK, map[string]string{
		"app":     "turing-http",
		"version": strings.TrimSpace(turing.Version),
	})
}

func (s *Server) write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}

func (s *Server) writeText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(text))
}

func (s *Server) fail(w http.ResponseWriter, status int, msg string, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error(msg, "err", err)
	} else {
		s.logger.Warn(msg, "err", err)
	}
	s.write(w, status, ErrorResponse{Error: fmt.Sprintf("%s: %v", msg, err)})
}

func (s *Server) failSession(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		s.fail(w, http.StatusNotFound, op+" error", err)
	case errors.Is(err, session.ErrSessionExists):
		s.fail(w, http.StatusConflict, op+" error", err)
	default:
		s.fail(w, http.StatusInternalServerError, op+" error", err)
	}
}

// CreateRequest is the body of POST /sessions. Exactly one of Rules or Random is required.
type CreateRequest struct {
	ID        string            `json:"id,omitempty"`
	Rules     []schema.RuleSpec `json:"rules,omitempty"`
	Random    *RandomSpec       `json:"random,omitempty"`
	NoHistory bool              `json:"no_history,omitempty"`
}

// RandomSpec asks for a generated table.
type RandomSpec struct {
	States int     `json:"states"`
	Seed   *uint64 `json:"seed,omitempty"`
}

func (c CreateRequest) table() (*domain.RuleTable, error) {
	switch {
	case c.Random != nil && len(c.Rules) > 0:
		return nil, errors.New("rules and random are mutually exclusive")
	case c.Random != nil:
		var opts []generator.Option
		if c.Random.Seed != nil {
			opts = append(opts, generator.WithSeed(*c.Random.Seed))
		}
		return generator.New(opts...).Rules(c.Random.States)
	case len(c.Rules) > 0:
		return schema.Compile(c.Rules)
	default:
		return nil, errors.New("rules or random is required")
	}
}

// StepRequest is the body of POST /sessions/{id}/step.
type StepRequest struct {
	Steps int `json:"steps"`
}

// SessionResponse describes a machine at rest.
type SessionResponse struct {
	ID       string       `json:"id"`
	State    domain.State `json:"state"`
	Position int          `json:"position"`
	Steps    int          `json:"steps"`
	Halted   bool         `json:"halted"`
	Tape     domain.Frame `json:"tape"`
	Frames   int          `json:"frames"`
}

func newSessionResponse(id string, snap *domain.MachineSnapshot) SessionResponse {
	return SessionResponse{
		ID:       id,
		State:    snap.State,
		Position: snap.Position,
		Steps:    snap.Steps,
		Halted:   snap.Halted(),
		Tape:     snap.Tape,
		Frames:   len(snap.History),
	}
}

// StepResponse reports a bounded run and the machine it left behind.
type StepResponse struct {
	Requested int             `json:"requested"`
	Steps     int             `json:"steps"`
	Outcome   domain.Outcome  `json:"outcome"`
	Error     string          `json:"error,omitempty"`
	Session   SessionResponse `json:"session"`

	// Diff is the change since the session was last read, nil when nothing changed.
	Diff *domain.MachineDiff `json:"diff,omitempty"`
}

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
