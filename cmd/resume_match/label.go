package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/labeling"
	"github.com/jonathan/resume-matcher/internal/observability"
)

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Import labeled examples into the example store",
	Long: "Read a JSON file of past applications with their outcome, compute content patterns and " +
		"job description embeddings, and store them for insights.",
	RunE: runLabel,
}

var (
	labelFile        string
	labelConcurrency int
	labelJSON        bool
)

func init() {
	labelCmd.Flags().StringVarP(&labelFile, "file", "f", "", "Path to examples JSON file (required)")
	labelCmd.Flags().IntVar(&labelConcurrency, "concurrency", 0, "Examples labeled at once (default from config)")
	labelCmd.Flags().BoolVar(&labelJSON, "json", false, "Print the batch result as JSON")

	_ = labelCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(labelCmd)
}

func runLabel(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(labelFile)
	if err != nil {
		return fmt.Errorf("failed to read examples file: %w", err)
	}
	examples, err := labeling.DecodeImport(data)
	if err != nil {
		return err
	}

	svc, release, err := buildServices(cmd.Context(), serviceNeeds{Store: true})
	if err != nil {
		return err
	}
	defer release()

	concurrency := labelConcurrency
	if concurrency == 0 {
		concurrency = appConfig.LabelConcurrency
	}
	labeler := labeling.NewLabeler(svc.Embedder, svc.Store, appLogger).WithConcurrency(concurrency)

	result, err := labeler.LabelBatch(cmd.Context(), examples)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if labelJSON {
		return writeJSON(out, result)
	}
	observability.NewPrinter(out).PrintBatchResult(result)
	if result.Failed > 0 {
		return fmt.Errorf("%d examples failed", result.Failed)
	}
	return nil
}
