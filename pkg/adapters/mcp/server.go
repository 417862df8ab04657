package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/afterglow"
	"github.com/aretw0/afterglow/internal/logging"
	"github.com/aretw0/afterglow/pkg/domain"
	"github.com/aretw0/afterglow/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// SnapshotURI is the resource exposing the full tracker snapshot.
const SnapshotURI = "afterglow://snapshot"

// ActivenessResponse is the result of the get_activeness tool.
type ActivenessResponse struct {
	ID         string  `json:"id" jsonschema_description:"ID of the scored entity"`
	Kind       string  `json:"kind" jsonschema_description:"Either state or transition"`
	Activeness float64 `json:"activeness" jsonschema_description:"Recency score in [0, 1]; 1 is the newest history entry"`
}

// Server exposes a tracker as an MCP Server.
type Server struct {
	tracker   ports.Tracker
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(tracker ports.Tracker, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		tracker:   tracker,
		logger:    logger,
		mcpServer: server.NewMCPServer("afterglow-mcp", strings.TrimSpace(afterglow.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

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

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: get_snapshot
	s.mcpServer.AddTool(mcp.NewTool("get_snapshot",
		mcp.WithDescription("Get the execution history, running flag, active region and every activeness score."),
		mcp.WithOutputSchema[domain.Snapshot](),
	), mcp.NewStructuredToolHandler(s.handleGetSnapshot))

	// TOOL: get_activeness
	s.mcpServer.AddTool(mcp.NewTool("get_activeness",
		mcp.WithDescription("Get the recency score of one state or transition. Provide exactly one of state_id or transition_id."),
		mcp.WithString("state_id", mcp.Description("ID of the state to score")),
		mcp.WithString("transition_id", mcp.Description("ID of the transition to score")),
		mcp.WithOutputSchema[ActivenessResponse](),
	), mcp.NewStructuredToolHandler(s.handleGetActiveness))

	// TOOL: get_active_region
	s.mcpServer.AddTool(mcp.NewTool("get_active_region",
		mcp.WithDescription("Get the union bounding rectangle of the active states."),
		mcp.WithOutputSchema[domain.Rect](),
	), mcp.NewStructuredToolHandler(s.handleGetActiveRegion))

	// TOOL: apply_event
	s.mcpServer.AddTool(mcp.NewTool("apply_event",
		mcp.WithDescription("Report what the state machine did. Returns the resulting snapshot."),
		mcp.WithString("type", mcp.Required(),
			mcp.Enum(
				string(domain.EventConfiguration),
				string(domain.EventTransition),
				string(domain.EventRunning),
				string(domain.EventClear),
				string(domain.EventHistorySize),
			),
			mcp.Description("Event type"),
		),
		mcp.WithArray("states", mcp.WithStringItems(), mcp.Description("Active state IDs (configuration)")),
		mcp.WithString("transition", mcp.Description("Fired transition ID (transition)")),
		mcp.WithBoolean("running", mcp.Description("New running flag (running)")),
		mcp.WithNumber("size", mcp.Description("New history capacity (history_size)")),
		mcp.WithOutputSchema[domain.Snapshot](),
	), mcp.NewStructuredToolHandler(s.handleApplyEvent))
}

// Handler methods for structured tools

func (s *Server) handleGetSnapshot(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Snapshot, error) {
	return s.tracker.Snapshot(), nil
}

func (s *Server) handleGetActiveness(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ActivenessResponse, error) {
	stateID, _ := args["state_id"].(string)
	transitionID, _ := args["transition_id"].(string)

	switch {
	case stateID != "" && transitionID != "":
		return ActivenessResponse{}, errors.New("provide either state_id or transition_id, not both")
	case stateID != "":
		score, err := s.tracker.StateActiveness(stateID)
		if err != nil {
			return ActivenessResponse{}, err
		}
		return ActivenessResponse{ID: stateID, Kind: "state", Activeness: score}, nil
	case transitionID != "":
		score, err := s.tracker.TransitionActiveness(transitionID)
		if err != nil {
			return ActivenessResponse{}, err
		}
		return ActivenessResponse{ID: transitionID, Kind: "transition", Activeness: score}, nil
	default:
		return ActivenessResponse{}, errors.New("state_id or transition_id is required")
	}
}

func (s *Server) handleGetActiveRegion(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Rect, error) {
	return s.tracker.ActiveRegion(), nil
}

func (s *Server) handleApplyEvent(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Snapshot, error) {
	evt, err := domain.DecodeEvent(args)
	if err != nil {
		s.logger.Warn("MCP apply_event: rejected", "err", err)
		return domain.Snapshot{}, err
	}
	if err := s.tracker.Apply(ctx, evt); err != nil {
		return domain.Snapshot{}, fmt.Errorf("apply failed: %w", err)
	}
	return s.tracker.Snapshot(), nil
}

func (s *Server) registerResources() {
	// EXPOSE: afterglow://snapshot
	s.mcpServer.AddResource(mcp.NewResource(SnapshotURI, "Tracker Snapshot",
		mcp.WithMIMEType("application/json"),
	), s.readSnapshot)
}

func (s *Server) readSnapshot(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.tracker.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      SnapshotURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
