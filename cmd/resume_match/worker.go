package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/worker"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Score resumes queued on RabbitMQ",
	Long: "Consume analysis jobs from RabbitMQ, download each resume from S3-compatible storage, " +
		"analyze it and publish the report to the results exchange.",
	RunE: runWorker,
}

var (
	workerCount    int
	workerSemantic bool
	workerEnrich   bool
)

func init() {
	workerCmd.Flags().IntVar(&workerCount, "workers", 0, "Number of consumers (default from config)")
	workerCmd.Flags().BoolVar(&workerSemantic, "semantic", true, "Compute semantic similarity")
	workerCmd.Flags().BoolVar(&workerEnrich, "enrich", false, "Configure the LLM so jobs may ask for enrichment")
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, _ []string) error {
	if appConfig.RabbitMQURL == "" {
		return fmt.Errorf("RABBITMQ_URL is required")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := worker.NewS3Store(ctx, worker.S3Options{
		Endpoint:     appConfig.S3.Endpoint,
		Region:       appConfig.S3.Region,
		Bucket:       appConfig.S3.Bucket,
		AccessKey:    appConfig.S3.AccessKey,
		SecretKey:    appConfig.S3.SecretKey,
		UsePathStyle: appConfig.S3.UsePathStyle,
	})
	if err != nil {
		return err
	}

	svc, release, err := buildServices(ctx, serviceNeeds{Embedder: workerSemantic, LLM: workerEnrich})
	if err != nil {
		return err
	}
	defer release()

	count := workerCount
	if count == 0 {
		count = appConfig.WorkerCount
	}
	appLogger.Info("starting worker pool", zap.Int("workers", count), zap.String("bucket", appConfig.S3.Bucket))

	pool := worker.NewPool(worker.Options{
		URL:     appConfig.RabbitMQURL,
		Workers: count,
	}, worker.NewProcessor(store, svc.Analysis, appLogger), appLogger)
	return pool.Run(ctx)
}
