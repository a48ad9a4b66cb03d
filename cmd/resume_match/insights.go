package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/analysis"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/observability"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Compare a resume with labeled examples for similar jobs",
	Long: "Retrieve labeled examples similar to a job description, learn which content patterns separate " +
		"interviews from rejections and suggest changes to the resume.",
	RunE: runInsights,
}

var (
	insightsResume        string
	insightsJob           jobSource
	insightsIndustry      string
	insightsRoleLevel     string
	insightsLimit         int
	insightsMinSimilarity float64
	insightsSummarize     bool
	insightsJSON          bool
)

func init() {
	insightsCmd.Flags().StringVarP(&insightsResume, "resume", "r", "", "Path to resume file; without it only patterns are reported")
	insightsCmd.Flags().StringVarP(&insightsJob.File, "job", "j", "", "Path to job description text file")
	insightsCmd.Flags().StringVarP(&insightsJob.URL, "job-url", "u", "", "URL of the job posting")
	insightsCmd.Flags().StringVar(&insightsIndustry, "industry", "", "Only use examples from this industry")
	insightsCmd.Flags().StringVar(&insightsRoleLevel, "role-level", "", "Only use examples at this role level")
	insightsCmd.Flags().IntVar(&insightsLimit, "limit", 0, "Maximum similar examples (default from config)")
	insightsCmd.Flags().Float64Var(&insightsMinSimilarity, "min-similarity", 0, "Minimum cosine similarity (default from config)")
	insightsCmd.Flags().BoolVar(&insightsSummarize, "summarize", false, "Add an LLM coaching summary")
	insightsCmd.Flags().BoolVar(&insightsJSON, "json", false, "Print the full report as JSON")

	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, _ []string) error {
	var resumeText string
	if insightsResume != "" {
		doc, err := ingestion.ReadResume(insightsResume)
		if err != nil {
			return fmt.Errorf("failed to read resume: %w", err)
		}
		resumeText = doc.Text
	}
	jd, err := insightsJob.load(cmd.Context())
	if err != nil {
		return err
	}

	svc, release, err := buildServices(cmd.Context(), serviceNeeds{Store: true, LLM: insightsSummarize})
	if err != nil {
		return err
	}
	defer release()

	limit := insightsLimit
	if limit == 0 {
		limit = appConfig.SimilarityLimit
	}
	minSimilarity := insightsMinSimilarity
	if !cmd.Flags().Changed("min-similarity") {
		minSimilarity = appConfig.MinSimilarity
	}

	report, err := svc.Analysis.LearningReport(cmd.Context(), analysis.InsightsRequest{
		ResumeText:     resumeText,
		JobDescription: jd,
		Industry:       insightsIndustry,
		RoleLevel:      insightsRoleLevel,
		Limit:          limit,
		MinSimilarity:  minSimilarity,
		Summarize:      insightsSummarize,
	})
	if err != nil {
		return err
	}

	if insightsJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintLearningReport(report)
	return nil
}
