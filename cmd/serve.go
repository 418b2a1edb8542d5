package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scop-vc/enrich-cli/internal/model"
)

var servePort int

// enricher is the slice of the orchestrator the HTTP layer needs.
type enricher interface {
	Enrich(ctx context.Context, domain, listSource string) (*model.EnrichmentResult, error)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook server for enrichment requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		orch, err := initOrchestrator(ctx)
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(orch),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(context.Background())
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func newRouter(e enricher) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// /webhook is a legacy alias for /enrich.
	r.Post("/enrich", handleEnrich(e))
	r.Post("/webhook", handleEnrich(e))

	return r
}

func handleEnrich(e enricher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Domain     string `json:"domain"`
			ListSource string `json:"list_source"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if req.Domain == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "domain is required"})
			return
		}
		if req.ListSource == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "list_source is required"})
			return
		}

		result, err := e.Enrich(r.Context(), req.Domain, req.ListSource)
		if err != nil {
			zap.L().Error("serve: enrichment aborted", zap.String("domain", req.Domain), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "enrichment aborted"})
			return
		}

		// Rejected and failed are business outcomes, not transport errors.
		w.Header().Set("X-Request-ID", result.RequestID)
		writeJSON(w, http.StatusOK, result)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
