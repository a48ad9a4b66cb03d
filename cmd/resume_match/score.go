package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/analysis"
	"github.com/jonathan/resume-matcher/internal/ats"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/observability"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against a job description",
	Long: "Score a resume (txt, pdf or docx) against a job description. The ATS score is always computed; " +
		"--semantic adds embedding similarity per section and --enrich adds recruiter-style comments from an LLM.",
	RunE: runScore,
}

var (
	scoreResume   string
	scoreJob      jobSource
	scoreJobType  string
	scoreSemantic bool
	scoreEnrich   bool
	scoreJSON     bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreResume, "resume", "r", "", "Path to resume file (required)")
	scoreCmd.Flags().StringVarP(&scoreJob.File, "job", "j", "", "Path to job description text file")
	scoreCmd.Flags().StringVarP(&scoreJob.URL, "job-url", "u", "", "URL of the job posting")
	scoreCmd.Flags().StringVar(&scoreJobType, "job-type", "", "Override job type detection (tech, senior, entry, general)")
	scoreCmd.Flags().BoolVar(&scoreSemantic, "semantic", false, "Compute semantic similarity with the embedding provider")
	scoreCmd.Flags().BoolVar(&scoreEnrich, "enrich", false, "Add LLM comments to the feedback")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the full report as JSON")

	_ = scoreCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	jobType := ats.JobType(scoreJobType)
	if jobType != "" && !jobType.Valid() {
		return fmt.Errorf("invalid --job-type %q", scoreJobType)
	}

	doc, err := ingestion.ReadResume(scoreResume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	jd, err := scoreJob.load(cmd.Context())
	if err != nil {
		return err
	}

	svc, release, err := buildServices(cmd.Context(), serviceNeeds{Embedder: scoreSemantic, LLM: scoreEnrich})
	if err != nil {
		return err
	}
	defer release()

	report, err := svc.Analysis.Analyze(cmd.Context(), analysis.AnalyzeRequest{
		ResumeText:     doc.Text,
		JobDescription: jd,
		PageCount:      doc.PageCount,
		JobType:        jobType,
		Enrich:         scoreEnrich,
	})
	if err != nil {
		return err
	}

	if scoreJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintReport(report)
	return nil
}
