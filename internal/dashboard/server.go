// Package dashboard serves the live hedge page and pushes rendered ticks over WebSocket.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"fx_hedge/internal/domain"
	"fx_hedge/internal/infra"
	"fx_hedge/internal/service"
	"fx_hedge/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Options wires the server to the rest of the application.
type Options struct {
	Addr        string
	CORSOrigins []string
	RequestCap  int
	Hub         *Hub
	Renderer    *Renderer
	Controller  *service.Controller
	Session     *service.Session
	Metrics     *infra.Metrics
}

// Server is the dashboard HTTP server.
type Server struct {
	router     chi.Router
	opts       Options
	hub        *Hub
	renderer   *Renderer
	controller *service.Controller
	session    *service.Session
	metrics    *infra.Metrics
	logger     *slog.Logger
}

// NewServer creates a configured server with all routes and middleware.
func NewServer(opts Options) *Server {
	if opts.Metrics == nil {
		opts.Metrics = infra.GlobalMetrics
	}
	s := &Server{
		opts:       opts,
		hub:        opts.Hub,
		renderer:   opts.Renderer,
		controller: opts.Controller,
		session:    opts.Session,
		metrics:    opts.Metrics,
		logger:     slog.Default().With("module", "dashboard"),
	}
	s.router = s.buildRouter()
	return s
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe runs the hub and HTTP server until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go s.hub.Run(hubCtx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Dashboard listening", slog.String("addr", s.opts.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down dashboard server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	origins := []string{"*"}
	if len(s.opts.CORSOrigins) > 0 {
		origins = s.opts.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/ws", s.handleWebSocket)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Get("/metrics", s.handleMetrics)
		r.Post("/credential", s.handleCredential)
		r.Put("/simulation", s.handleSimulation)
		r.Post("/manual", s.handleManual)
		r.Delete("/manual", s.handleDisableManual)
	})

	r.Handle("/*", http.FileServerFS(web.FS()))

	return r
}

// APIResponse is the envelope for every JSON reply.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// StateResponse describes the session as seen by the API.
type StateResponse struct {
	Mode             string           `json:"mode"`
	ManualRates      *domain.RatePair `json:"manual_rates,omitempty"`
	Simulation       bool             `json:"simulation"`
	CredentialStored bool             `json:"credential_stored"`
	RequestCount     int              `json:"request_count"`
	RequestCap       int              `json:"request_cap"`
	KeyedDisabled    bool             `json:"keyed_disabled"`
	Rates            domain.RatePair  `json:"rates"`
	FetchedAt        *time.Time       `json:"fetched_at,omitempty"`
	Clients          int              `json:"clients"`
	Snapshot         SnapshotPayload  `json:"snapshot"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	mode := s.session.Mode()
	cache := s.session.Cache()
	resp := StateResponse{
		Mode:             mode.Name(),
		Simulation:       s.session.Simulation(),
		CredentialStored: s.controller.CredentialStored(),
		RequestCount:     s.session.RequestCount(),
		RequestCap:       s.opts.RequestCap,
		KeyedDisabled:    s.session.KeyedDisabled(),
		Rates:            cache.Rates,
		Clients:          s.hub.ClientCount(),
		Snapshot:         s.renderer.Snapshot(),
	}
	if rates, ok := domain.ManualRates(mode); ok {
		resp.ManualRates = &rates
	}
	if cache.HasFetched {
		at := cache.FetchedAt
		resp.FetchedAt = &at
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: resp})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: s.metrics.Snapshot()})
}

type credentialRequest struct {
	Key  string `json:"key"`
	Save bool   `json:"save"`
}

func (s *Server) handleCredential(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !req.Save {
		s.controller.SetCredentialInput(req.Key)
		writeJSON(w, http.StatusOK, APIResponse{Success: true})
		return
	}

	if err := s.controller.SaveCredential(req.Key); err != nil {
		if errors.Is(err, service.ErrEmptyCredential) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("Failed to save credential", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "failed to save credential")
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true})
}

type simulationRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) handleSimulation(w http.ResponseWriter, r *http.Request) {
	var req simulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.controller.SetSimulation(req.Enabled)
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: req})
}

type manualRequest struct {
	USDAED string `json:"usdaed"`
	USDSAR string `json:"usdsar"`
}

func (s *Server) handleManual(w http.ResponseWriter, r *http.Request) {
	var req manualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pair, err := s.controller.ApplyManual(req.USDAED, req.USDSAR)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidManualInput) {
			writeError(w, http.StatusUnprocessableEntity, "Please enter a valid rate for at least one pair")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: pair})
}

func (s *Server) handleDisableManual(w http.ResponseWriter, r *http.Request) {
	s.controller.DisableManual()
	writeJSON(w, http.StatusOK, APIResponse{Success: true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to write JSON response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{Success: false, Error: msg})
}
