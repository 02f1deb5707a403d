package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/brand-intel-agent/internal/config"
	"github.com/BerylCAtieno/brand-intel-agent/internal/handler"
	"github.com/BerylCAtieno/brand-intel-agent/internal/llm"
	"github.com/BerylCAtieno/brand-intel-agent/internal/logger"
	"github.com/BerylCAtieno/brand-intel-agent/internal/metrics"
	"github.com/BerylCAtieno/brand-intel-agent/internal/profiler"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "brand-intel-agent",
	Short: "Generate brand snapshots and sales starter kits",
	Long: `brand-intel-agent serves a small web UI and a JSON endpoint that turn a
brand name or URL into a brand snapshot and a B2B sales starter kit using a
language model.`,
	SilenceUsage: true,
	RunE:         runServer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func init() {
	rootCmd.Flags().String("port", "", "HTTP listen port (env PORT, default 8080)")
	rootCmd.Flags().String("provider", "", "LLM provider: openai or gemini (env LLM_PROVIDER)")
	rootCmd.Flags().String("model", "", "model used for JSON generation (env LLM_MODEL)")
	rootCmd.Flags().String("log-level", "", "debug, info, warn or error (env LOG_LEVEL)")
	rootCmd.Flags().Bool("search", true, "try web-search augmented snapshots first (env SEARCH_ENABLED)")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	client, err := llm.New(ctx, llm.Config{
		Provider:    cfg.LLM.Provider,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		SearchModel: cfg.LLM.SearchModel,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}, log, m)
	if err != nil {
		log.Error("failed to create LLM client", zap.Error(err))
		return err
	}
	defer client.Close()

	var search llm.SearchClient
	if cfg.Search.Enabled {
		if sc, ok := client.(llm.SearchClient); ok {
			search = sc
		} else {
			log.Warn("web search is not supported by this provider, snapshots use plain generation",
				zap.String("provider", cfg.LLM.Provider))
		}
	}

	generator := profiler.NewGenerator(client, search, log, m)
	brandHandler := handler.NewBrandHandler(generator, log, cfg.Generation.Timeout)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	routerCfg := handler.RouterConfig{}
	if m != nil {
		routerCfg.MetricsHandler = m.Handler()
	}
	router := handler.NewRouter(brandHandler, log, routerCfg)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Two sequential model calls must fit inside one response.
		WriteTimeout: cfg.Generation.Timeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("brand intel agent starting",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Env),
			zap.String("provider", cfg.LLM.Provider),
			zap.String("model", client.Model()),
			zap.Bool("search_enabled", generator.SearchEnabled()),
			zap.Bool("metrics_enabled", m != nil))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error("http server error", zap.Error(err))
		return err
	case <-quit:
	}

	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown error", zap.Error(err))
		return err
	}

	log.Info("shutdown complete")
	return nil
}
