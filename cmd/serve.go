package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/lead-enricher/internal/enrich"
	"github.com/sells-group/lead-enricher/internal/leads"
	"github.com/sells-group/lead-enricher/internal/model"
	"github.com/sells-group/lead-enricher/internal/store"
)

var (
	servePort    int
	serveOffline bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for enrichment and batch processing",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		orch, err := newOrchestrator(st, serveOffline)
		if err != nil {
			return err
		}
		processor, err := newProcessor(true, cfg.Batch.Concurrency)
		if err != nil {
			return err
		}

		router := newRouter(serverEnv{
			store:        st,
			orchestrator: orch,
			processor:    processor,
			baseCtx:      ctx,
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(ctx)
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
	serveCmd.Flags().BoolVar(&serveOffline, "offline", false, "use the stub researcher, no network calls")
	rootCmd.AddCommand(serveCmd)
}

// serverEnv bundles the collaborators the HTTP handlers need. baseCtx scopes
// background enrichments to the server lifetime rather than the request.
type serverEnv struct {
	store        store.Store
	orchestrator *enrich.Orchestrator
	processor    *leads.Processor
	baseCtx      context.Context
}

func newRouter(env serverEnv) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/enrich", env.handleEnrich)
	r.Get("/runs", env.handleListRuns)
	r.Post("/leads/process", env.handleProcessLeads)

	return r
}

// handleEnrich accepts an enrichment request and runs it asynchronously.
func (env serverEnv) handleEnrich(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email  string                  `json:"email"`
		Fields []model.EnrichmentField `json:"fields"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}
	if len(req.Fields) == 0 {
		req.Fields = defaultFields()
	}
	for _, f := range req.Fields {
		if !model.ValidCategory(f.Category) {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("unknown field category %q", f.Category),
			})
			return
		}
	}

	// Validate the email now so the caller gets a synchronous 400; the
	// research itself runs in the background.
	if _, err := model.ExtractDomain(req.Email); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	go func() {
		result, err := env.orchestrator.Enrich(env.baseCtx, req.Email, req.Fields)
		if err != nil {
			zap.L().Error("async enrichment failed", zap.String("email", req.Email), zap.Error(err))
			return
		}
		zap.L().Info("async enrichment complete",
			zap.String("email", req.Email),
			zap.Float64("overall_confidence", result.OverallConfidence),
		)
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{
		"status": "accepted",
		"email":  req.Email,
	})
}

// handleListRuns returns run history, newest first.
func (env serverEnv) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	runs, err := env.store.ListRuns(r.Context(), store.RunFilter{
		Status: model.RunStatus(r.URL.Query().Get("status")),
		Domain: r.URL.Query().Get("domain"),
		Limit:  limit,
	})
	if err != nil {
		zap.L().Error("list runs failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list runs"})
		return
	}
	if runs == nil {
		runs = []model.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

// handleProcessLeads runs the batch pipeline synchronously over posted rows.
func (env serverEnv) handleProcessLeads(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Source  string             `json:"source"`
		Records []model.LeadRecord `json:"records"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Records) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "records are required"})
		return
	}

	result := env.processor.Process(r.Context(), req.Records)

	source := req.Source
	if source == "" {
		source = "api"
	}
	if _, err := env.store.SaveBatchRun(r.Context(), source, result); err != nil {
		zap.L().Warn("failed to save batch run", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
