package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/yildizm/instastory/internal/config"
	"github.com/yildizm/instastory/internal/emoji"
	"github.com/yildizm/instastory/internal/fetch"
	"github.com/yildizm/instastory/internal/logger"
	"github.com/yildizm/instastory/internal/monitor"
	"github.com/yildizm/instastory/internal/payload"
)

const shutdownTimeout = 10 * time.Second

var (
	serveAddr string
	serveFile string
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an analytics export for the viewer",
		Long: `Serve a precomputed analytics export over HTTP at GET /api/stats.

The export is re-read on every request, so regenerating the file is enough to
publish new figures. Point the viewer at the server with --endpoint.

Examples:
  instastory serve
  instastory serve --file stats.json --addr :9000`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config: localhost:8000)")
	cmd.Flags().StringVarP(&serveFile, "file", "f", "", "analytics export to serve (default from config: stats.json)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr = serveAddr
	}
	if cmd.Flags().Changed("file") {
		cfg.Server.PayloadFile = serveFile
	}

	log := newLogger(cfg, "serve", cmd.ErrOrStderr())
	source, err := fetch.NewFileSource(config.ExpandPath(cfg.Server.PayloadFile), log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newRouter(source, monitor.New(), log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "%s Serving %s at http://%s/api/stats\n", emoji.GetEmoji("zap"), source.Path(), cfg.Server.Addr)
	return serve(ctx, srv, log)
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully
func serve(ctx context.Context, srv *http.Server, log *logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}
	return nil
}

// newRouter registers the export, health and metrics routes
func newRouter(source fetch.Source, metrics *monitor.Collector, log *logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if log.IsVerbose() {
		r.Use(middleware.Logger)
	}

	h := &statsHandler{source: source, metrics: metrics, log: log}
	r.Get("/api/stats", h.Stats)
	r.Get("/metrics", h.Metrics)
	r.Get("/healthz", healthHandler)
	return r
}

type statsHandler struct {
	source  fetch.Source
	metrics *monitor.Collector
	log     *logger.Logger
}

// Stats handles GET /api/stats. Failures are reported in the document's
// error field so the viewer can show them.
func (h *statsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var p *payload.Payload
	err := h.metrics.TrackOperationWithError(monitor.OperationServeStats, func() error {
		var err error
		p, err = h.source.Fetch(r.Context())
		return err
	})
	if err != nil {
		h.log.WarnWithFields("export unavailable", []logger.Field{
			logger.F("request_id", middleware.GetReqID(r.Context())),
			logger.Error(err),
		})
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": fetch.Message(err)})
		return
	}

	h.log.DebugWithFields("export served", []logger.Field{
		logger.F("request_id", middleware.GetReqID(r.Context())),
		logger.Count(len(p.TopChatted)),
	})
	writeJSON(w, http.StatusOK, p)
}

// Metrics handles GET /metrics
func (h *statsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.metrics.GetSnapshot())
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	// The status line is already out, a failed body write has no one to report to
	_ = json.NewEncoder(w).Encode(data)
}
