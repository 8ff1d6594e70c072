package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/erickbogarin/amortiza/internal/compare"
	"github.com/erickbogarin/amortiza/internal/config"
	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/erickbogarin/amortiza/internal/history"
	"github.com/erickbogarin/amortiza/internal/metrics"
	"github.com/erickbogarin/amortiza/internal/output"
	"github.com/erickbogarin/amortiza/internal/simulation"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const defaultMaxBodyBytes = 1 << 20

// Options configures the API handler
type Options struct {
	MaxBodyBytes int64
	CORSOrigins  []string
	// HistoryBackend labels history store failures in metrics
	HistoryBackend string
	Version        string
}

type handler struct {
	logger       *zap.Logger
	simulator    *simulation.Simulator
	comparer     *compare.CompareEngine
	store        history.Store
	parser       *config.InputParser
	maxBodyBytes int64
	backend      string
	version      string
	now          func() time.Time
}

// SimulationResponse is the API view of a stored simulation and its schedules
type SimulationResponse struct {
	ID        string                   `json:"id"`
	CreatedAt time.Time                `json:"created_at"`
	Result    *domain.SimulationResult `json:"result"`
}

// NewHandler builds the HTTP API around a simulator and a history store
func NewHandler(logger *zap.Logger, sim *simulation.Simulator, store history.Store, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sim == nil {
		sim = simulation.NewSimulator(nil, simulation.Options{})
	}
	if store == nil {
		store = history.NewMemoryStore()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.HistoryBackend == "" {
		opts.HistoryBackend = config.BackendMemory
	}
	if strings.TrimSpace(opts.Version) == "" {
		opts.Version = "dev"
	}

	h := &handler{
		logger:    logger,
		simulator: sim,
		comparer: compare.NewCompareEngine(simulation.NewSimulator(sim.Engine, simulation.Options{
			HonorPaymentStrategies: true,
			Concurrency:            sim.Options.Concurrency,
		})),
		store:        store,
		parser:       config.NewInputParser(),
		maxBodyBytes: opts.MaxBodyBytes,
		backend:      opts.HistoryBackend,
		version:      opts.Version,
		now:          time.Now,
	}

	r := mux.NewRouter()
	r.Use(h.instrument)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/simulations", h.createSimulation).Methods(http.MethodPost)
	api.HandleFunc("/simulations", h.listSimulations).Methods(http.MethodGet)
	api.HandleFunc("/simulations/{id}", h.getSimulation).Methods(http.MethodGet)
	api.HandleFunc("/simulations/{id}/report", h.getReport).Methods(http.MethodGet)
	api.HandleFunc("/simulations/{id}/compare", h.compareSimulation).Methods(http.MethodGet)
	api.HandleFunc("/version", h.handleVersion).Methods(http.MethodGet)

	r.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

// NewServer wraps the handler in an http.Server using the configured timeouts
func NewServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// Serve runs srv until ctx is cancelled, then shuts it down gracefully
func Serve(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return <-errCh
}

func (h *handler) createSimulation(w http.ResponseWriter, r *http.Request) {
	const op = "server.createSimulation"

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodyBytes), op)
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), op)
		return
	}

	req, err := h.parser.Parse(body)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	result, err := h.simulator.Run(r.Context(), *req)
	if err != nil {
		h.respondError(w, statusFor(err), err.Error(), op)
		return
	}

	record := domain.NewSimulationRecord(history.NewID(), h.now().UTC(), result)
	record.HonorPaymentStrategies = h.simulator.Options.HonorPaymentStrategies
	if err := h.store.Save(r.Context(), record); err != nil {
		metrics.HistoryErrors.WithLabelValues(h.backend, "save").Inc()
		h.respondError(w, http.StatusInternalServerError, "failed to store simulation", op)
		h.logger.Error("history save failed", zap.String("op", op), zap.Error(err))
		return
	}

	h.logger.Info("simulation created",
		zap.String("id", record.ID),
		zap.String("system", string(req.System)),
		zap.Int("months_saved", result.SummaryWithExtras.MonthsSaved),
	)
	w.Header().Set("Location", "/api/simulations/"+record.ID)
	h.writeJSON(w, http.StatusCreated, SimulationResponse{ID: record.ID, CreatedAt: record.CreatedAt, Result: result})
}

func (h *handler) listSimulations(w http.ResponseWriter, r *http.Request) {
	const op = "server.listSimulations"

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", raw), op)
			return
		}
		limit = n
	}

	records, err := h.store.List(r.Context(), limit)
	if err != nil {
		metrics.HistoryErrors.WithLabelValues(h.backend, "list").Inc()
		h.logger.Error("history list failed", zap.String("op", op), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to list simulations", op)
		return
	}
	h.writeJSON(w, http.StatusOK, records)
}

func (h *handler) getSimulation(w http.ResponseWriter, r *http.Request) {
	const op = "server.getSimulation"

	record, result, ok := h.replay(w, r, op)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, SimulationResponse{ID: record.ID, CreatedAt: record.CreatedAt, Result: result})
}

// getReport renders a stored simulation with one of the output formatters,
// selected by the format query parameter.
func (h *handler) getReport(w http.ResponseWriter, r *http.Request) {
	const op = "server.getReport"

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format), op)
		return
	}

	record, result, ok := h.replay(w, r, op)
	if !ok {
		return
	}

	data, err := formatter.Format([]output.Simulation{{Name: record.ID, Result: result}})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render report: %v", err), op)
		return
	}
	w.Header().Set("Content-Type", contentType(formatter.Name()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write report", zap.String("op", op), zap.Error(err))
	}
}

// compareSimulation runs a stored request against the templates named in
// the with query parameter, or the default ones.
func (h *handler) compareSimulation(w http.ResponseWriter, r *http.Request) {
	const op = "server.compareSimulation"

	record, ok := h.load(w, r, op)
	if !ok {
		return
	}

	var templates []string
	for _, t := range strings.Split(r.URL.Query().Get("with"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			templates = append(templates, t)
		}
	}

	compSet, err := h.comparer.Compare(r.Context(), record.Request, compare.CompareOptions{
		BaseScenarioName: record.ID,
		Templates:        templates,
	})
	if errors.Is(err, compare.ErrUnknownTemplate) {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	if err != nil {
		h.respondError(w, statusFor(err), err.Error(), op)
		return
	}
	h.writeJSON(w, http.StatusOK, compSet)
}

// load fetches a stored record, answering 404 or 500 itself on failure
func (h *handler) load(w http.ResponseWriter, r *http.Request, op string) (*domain.SimulationRecord, bool) {
	id := mux.Vars(r)["id"]

	record, err := h.store.Get(r.Context(), id)
	if errors.Is(err, history.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, fmt.Sprintf("simulation %s not found", id), op)
		return nil, false
	}
	if err != nil {
		metrics.HistoryErrors.WithLabelValues(h.backend, "get").Inc()
		h.logger.Error("history get failed", zap.String("op", op), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to load simulation", op)
		return nil, false
	}
	return record, true
}

// replay loads a record and regenerates its schedules from the stored request,
// under the strategy option the record was saved with
func (h *handler) replay(w http.ResponseWriter, r *http.Request, op string) (*domain.SimulationRecord, *domain.SimulationResult, bool) {
	record, ok := h.load(w, r, op)
	if !ok {
		return nil, nil, false
	}

	result, err := h.simulatorFor(record).Run(r.Context(), record.Request)
	if err != nil {
		h.respondError(w, statusFor(err), err.Error(), op)
		return nil, nil, false
	}
	return record, result, true
}

func (h *handler) simulatorFor(record *domain.SimulationRecord) *simulation.Simulator {
	if record.HonorPaymentStrategies == h.simulator.Options.HonorPaymentStrategies {
		return h.simulator
	}
	opts := h.simulator.Options
	opts.HonorPaymentStrategies = record.HonorPaymentStrategies
	return simulation.NewSimulator(h.simulator.Engine, opts)
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

// statusFor maps simulation errors: guard failures are the caller's fault
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case config.IsValidationError(err):
		return http.StatusBadRequest
	default:
		if isGuardError(err) {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	}
}

func contentType(format string) string {
	switch format {
	case "json":
		return "application/json"
	case "yaml":
		return "application/yaml"
	case "csv", "schedule-csv":
		return "text/csv; charset=utf-8"
	case "html":
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Warn("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
