package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/labeling"
	"github.com/jonathan/resume-matcher/internal/server"
	"github.com/jonathan/resume-matcher/internal/server/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: "Start an HTTP server exposing keyword, ATS, analysis, insights and example import endpoints. " +
		"Without a working embedding provider only the ATS endpoints are useful.",
	RunE: runServe,
}

var (
	serveAddr   string
	serveEnrich bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (default from config)")
	serveCmd.Flags().BoolVar(&serveEnrich, "enrich", false, "Configure the LLM so requests may ask for enrichment")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, release, err := buildServices(ctx, serviceNeeds{Store: true, LLM: serveEnrich})
	if err != nil {
		appLogger.Warn("semantic and learning endpoints disabled", zap.Error(err))
		svc, release, err = buildServices(ctx, serviceNeeds{})
		if err != nil {
			return err
		}
	}
	defer release()

	deps := server.Dependencies{Analysis: svc.Analysis, Logger: appLogger}
	if svc.Store != nil {
		deps.Labeler = labeling.NewLabeler(svc.Embedder, svc.Store, appLogger).
			WithConcurrency(appConfig.LabelConcurrency)
	}

	addr := serveAddr
	if addr == "" {
		addr = appConfig.Addr
	}
	srv := server.New(server.Config{
		Addr:      addr,
		RateLimit: ratelimit.NewConfig(appConfig.RateLimitRPS, appConfig.RateLimitBurst),
	}, deps)

	return srv.Start(ctx)
}
