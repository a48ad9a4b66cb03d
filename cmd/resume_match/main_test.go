package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/ats"
)

// TestMain loads .env if available
func TestMain(m *testing.M) {
	_ = godotenv.Load()
	os.Exit(m.Run())
}

const testResume = `Jane Doe
jane@example.com | (555) 123-4567

Summary
Backend engineer focused on Go services and Kafka pipelines.

Experience
- Built Go services handling 2M payments per day
- Led migration of Kafka consumers to a shared platform library

Education
BSc Computer Science, State University

Skills
Go, Kafka, PostgreSQL, Docker`

const testJD = "Backend engineer to build Go services on Kafka and PostgreSQL. Kubernetes experience is a plus."

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "examples.db"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestKeywordsCommand(t *testing.T) {
	jd := writeFile(t, "jd.txt", testJD)

	out, err := execute(t, "keywords", "--job", jd, "--json")
	require.NoError(t, err)

	var resp struct {
		Keywords []string    `json:"keywords"`
		JobType  ats.JobType `json:"job_type"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Contains(t, resp.Keywords, "kafka")
	assert.True(t, resp.JobType.Valid())
}

func TestKeywordsCommand_RequiresSource(t *testing.T) {
	keywordsJob = jobSource{}
	_, err := execute(t, "keywords", "--job", "")
	assert.ErrorContains(t, err, "--job or --job-url")
}

func TestScoreCommand_ATSOnly(t *testing.T) {
	resume := writeFile(t, "resume.txt", testResume)
	jd := writeFile(t, "jd.txt", testJD)

	out, err := execute(t, "score", "--resume", resume, "--job", jd, "--job-type", "tech",
		"--semantic=false", "--enrich=false", "--json=false")
	require.NoError(t, err)

	assert.Contains(t, out, "ATS SCORE")
	assert.Contains(t, out, "Job type:    tech")
	assert.NotContains(t, out, "SEMANTIC MATCH")
}

func TestScoreCommand_InvalidJobType(t *testing.T) {
	resume := writeFile(t, "resume.txt", testResume)
	jd := writeFile(t, "jd.txt", testJD)

	_, err := execute(t, "score", "--resume", resume, "--job", jd, "--job-type", "astronaut")
	assert.ErrorContains(t, err, "invalid --job-type")
}

func TestMigrateCommand_RequiresDatabase(t *testing.T) {
	_, err := execute(t, "migrate")
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestJobSource_Validate(t *testing.T) {
	assert.Error(t, jobSource{}.validate())
	assert.Error(t, jobSource{File: "a.txt", URL: "https://example.com"}.validate())
	assert.NoError(t, jobSource{File: "a.txt"}.validate())
	assert.NoError(t, jobSource{URL: "https://example.com"}.validate())
}

func TestCleanupRunsInReverse(t *testing.T) {
	var order []int
	var c cleanup
	c.add(func() { order = append(order, 1) })
	c.add(func() { order = append(order, 2) })
	c.run()
	assert.Equal(t, []int{2, 1}, order)
}
