package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/afterglow"
	"github.com/aretw0/afterglow/internal/logging"
	"github.com/aretw0/afterglow/pkg/domain"
	"github.com/aretw0/afterglow/pkg/ports"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodySize bounds request bodies; events are tiny.
const maxBodySize = 64 << 10

// Controller is what the HTTP layer needs from the tracker.
type Controller interface {
	ports.Tracker
	Clear(ctx context.Context)
	SetHistorySize(n int) error
	SetIsRunning(ctx context.Context, running bool)
}

// Server exposes a tracker over HTTP.
type Server struct {
	Tracker Controller
	Streams *StreamManager

	spec     *openapi3.T
	logger   *slog.Logger
	gatherer prometheus.Gatherer
	stop     func()
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics mounts GET /metrics backed by the given gatherer.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewServer creates a server and starts forwarding tracker notifications to SSE clients.
// Call Close to stop observing the tracker.
func NewServer(tracker Controller, opts ...Option) (*Server, error) {
	spec, err := LoadSpec()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Tracker: tracker,
		spec:    spec,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	s.stop = tracker.Observe(s.Streams.Hooks())
	return s, nil
}

// Close detaches the server from the tracker.
func (s *Server) Close() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/snapshot", s.GetSnapshot)
	r.Get("/configurations", s.GetConfigurations)
	r.Get("/transitions", s.GetTransitions)
	r.Get("/region", s.GetRegion)

	r.Route("/activeness", func(r chi.Router) {
		r.Get("/", s.GetActiveness)
		r.Get("/states/{id}", s.GetStateActiveness)
		r.Get("/transitions/{id}", s.GetTransitionActiveness)
	})

	r.Get("/events", s.SubscribeEvents)
	r.Post("/events", s.PostEvent)
	r.Post("/clear", s.PostClear)
	r.Put("/history-size", s.PutHistorySize)
	r.Put("/running", s.PutRunning)

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Last-Event-ID")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Afterglow API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "afterglow-http",
		"version":     strings.TrimSpace(afterglow.Version),
		"api_version": apiVersion,
	})
}

// GetSnapshot handles the GET /snapshot request.
func (s *Server) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Tracker.Snapshot())
}

// GetConfigurations handles the GET /configurations request.
func (s *Server) GetConfigurations(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Tracker.Snapshot().Configurations)
}

// GetTransitions handles the GET /transitions request.
func (s *Server) GetTransitions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Tracker.Snapshot().Transitions)
}

// GetRegion handles the GET /region request.
func (s *Server) GetRegion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Tracker.ActiveRegion())
}

// GetActiveness handles the GET /activeness request.
func (s *Server) GetActiveness(w http.ResponseWriter, r *http.Request) {
	snap := s.Tracker.Snapshot()
	s.writeJSON(w, http.StatusOK, map[string]map[string]float64{
		"states":      snap.StateActiveness,
		"transitions": snap.TransitionActiveness,
	})
}

type activenessResponse struct {
	ID         string  `json:"id"`
	Activeness float64 `json:"activeness"`
}

// GetStateActiveness handles the GET /activeness/states/{id} request.
func (s *Server) GetStateActiveness(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	score, err := s.Tracker.StateActiveness(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, activenessResponse{ID: id, Activeness: score})
}

// GetTransitionActiveness handles the GET /activeness/transitions/{id} request.
func (s *Server) GetTransitionActiveness(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	score, err := s.Tracker.TransitionActiveness(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, activenessResponse{ID: id, Activeness: score})
}

// PostEvent handles the POST /events request.
func (s *Server) PostEvent(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r, "Event")
	if !ok {
		return
	}

	evt, err := domain.ParseEvent(body)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.Tracker.Apply(r.Context(), evt); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostClear handles the POST /clear request.
func (s *Server) PostClear(w http.ResponseWriter, r *http.Request) {
	s.Tracker.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// PutHistorySize handles the PUT /history-size request.
func (s *Server) PutHistorySize(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r, "HistorySize")
	if !ok {
		return
	}

	var req struct {
		Size int `json:"size"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.Tracker.SetHistorySize(req.Size); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PutRunning handles the PUT /running request.
func (s *Server) PutRunning(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r, "Running")
	if !ok {
		return
	}

	var req struct {
		Running bool `json:"running"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	s.Tracker.SetIsRunning(r.Context(), req.Running)
	w.WriteHeader(http.StatusNoContent)
}

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	var filter map[domain.NotificationType]bool
	if types := r.URL.Query().Get("types"); types != "" {
		filter = make(map[domain.NotificationType]bool)
		for _, t := range strings.Split(types, ",") {
			filter[domain.NotificationType(strings.TrimSpace(t))] = true
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()
	s.logger.Info("SSE: Client connected", "filter", r.URL.Query().Get("types"))

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: Client disconnected")
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			if filter != nil && !filter[n.Type] {
				continue
			}
			data, err := json.Marshal(n)
			if err != nil {
				s.logger.Error("SSE: Failed to encode notification", "err", err)
				continue
			}
			fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", n.ID, n.Type, data)
			flusher.Flush()
		}
	}
}

// -- Helpers --

func (s *Server) readBody(w http.ResponseWriter, r *http.Request, schema string) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil, false
	}
	if err := validateBody(s.spec, schema, body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		s.logger.Warn("Request rejected by schema", "schema", schema, "err", err)
		return nil, false
	}
	return body, true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrStateNotFound), errors.Is(err, domain.ErrTransitionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidEvent), errors.Is(err, domain.ErrInvalidHistorySize):
		status = http.StatusBadRequest
	default:
		s.logger.Error("Request failed", "err", err)
	}
	http.Error(w, err.Error(), status)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}
