package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/ats"
	"github.com/jonathan/resume-matcher/internal/keywords"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Extract ranked keywords from a job description",
	RunE:  runKeywords,
}

var (
	keywordsJob  jobSource
	keywordsJSON bool
)

func init() {
	keywordsCmd.Flags().StringVarP(&keywordsJob.File, "job", "j", "", "Path to job description text file")
	keywordsCmd.Flags().StringVarP(&keywordsJob.URL, "job-url", "u", "", "URL of the job posting")
	keywordsCmd.Flags().BoolVar(&keywordsJSON, "json", false, "Print JSON")

	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, _ []string) error {
	jd, err := keywordsJob.load(cmd.Context())
	if err != nil {
		return err
	}

	kws := keywords.ExtractKeywords(jd)
	jobType := ats.DetectJobType(jd)

	out := cmd.OutOrStdout()
	if keywordsJSON {
		return writeJSON(out, map[string]any{"keywords": kws, "job_type": jobType})
	}
	fmt.Fprintf(out, "Job type: %s\n", jobType)
	fmt.Fprintf(out, "Keywords (%d): %s\n", len(kws), strings.Join(kws, ", "))
	return nil
}
