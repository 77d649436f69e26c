// Command phyloflow-server provides a REST API for pairwise alignment and
// tree building.
//
// Usage:
//
//	phyloflow-server [flags]
//
// Flags:
//
//	--config     YAML configuration file
//	--host       Host to bind to (default: localhost)
//	--port       Port to listen on (default: 8080)
//	--log-level  debug, info, warn or error (default: info)
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/aria-lang/phyloflow/api/handlers"
	"github.com/aria-lang/phyloflow/api/middleware"
	"github.com/aria-lang/phyloflow/internal/config"
	"github.com/aria-lang/phyloflow/internal/logging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:          "phyloflow-server",
	Short:        "REST API for pairwise alignment and tree building",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper(), cfgFile)
		if err != nil {
			return err
		}

		logger, closeLog, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		defer closeLog()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, logger)
	},
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "YAML configuration file")
	rootCmd.Flags().String("host", "localhost", "Host to bind to")
	rootCmd.Flags().Int("port", 8080, "Port to listen on")
	rootCmd.Flags().String("log-level", "info", "Log level")

	_ = viper.BindPFlag("server.host", rootCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", rootCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("log.level", rootCmd.Flags().Lookup("log-level"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRouter(cfg *config.Config, logger *zap.Logger) (http.Handler, error) {
	h, err := handlers.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Recoverer)
	if cfg.Server.WriteTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.Server.WriteTimeout))
	}

	r.Get("/health", handlers.HealthHandler)
	r.Route("/api", h.Routes)
	r.Get("/", homeHandler)

	return r, nil
}

// serve runs the server until ctx is cancelled, then drains in-flight
// requests for at most the configured shutdown timeout.
func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	router, err := newRouter(cfg, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", "http://"+server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("could not listen on %s: %w", server.Addr, err)
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("server is shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	server.SetKeepAlivesEnabled(false)
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("could not gracefully shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func homeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write([]byte(homePage))
}

const homePage = `<!DOCTYPE html>
<html>
<head>
    <title>phyloflow API</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 800px; margin: 2rem auto; padding: 0 1rem; }
        h1 { color: #2563eb; }
        pre { background: #f3f4f6; padding: 1rem; border-radius: 0.5rem; overflow-x: auto; }
        .endpoint { margin: 1rem 0; padding: 1rem; border: 1px solid #e5e7eb; border-radius: 0.5rem; }
        .method { display: inline-block; padding: 0.25rem 0.5rem; background: #10b981; color: white; border-radius: 0.25rem; font-size: 0.875rem; }
    </style>
</head>
<body>
    <h1>phyloflow API</h1>
    <p>Pairwise alignment with affine gaps, UPGMA and neighbor-joining trees, Newick tools.</p>

    <h2>Endpoints</h2>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/alignment/global</code>
        <p>Every co-optimal global alignment (Needleman-Wunsch, affine gaps).</p>
        <pre>{"sequence1": "GTCGACGCA", "sequence2": "GATTACA", "max_alignments": 10}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/alignment/local</code>
        <p>Every co-optimal local alignment (Smith-Waterman, affine gaps).</p>
        <pre>{"sequence1": "ACACACTA", "sequence2": "AGCACACA"}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/tree/upgma</code>
        <p>UPGMA tree of a distance matrix, as Newick. <code>/api/tree/nj</code> joins neighbors instead.</p>
        <pre>{"labels": ["a", "b", "c"], "matrix": [[0, 2, 4], [2, 0, 4], [4, 4, 0]]}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/tree/sequences</code>
        <p>Tree straight from sequences via alignment or k-mer distances.</p>
        <pre>{"sequences": [{"id": "s1", "sequence": "ACGT"}, {"id": "s2", "sequence": "ACGA"}], "method": "nj"}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/newick/equal</code>
        <p>Structural tree equality, child order ignored.</p>
        <pre>{"a": "(a:1,b:2):0", "b": "(b:2,a:1):0", "strict": true}</pre>
    </div>
</body>
</html>`
