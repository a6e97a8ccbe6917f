//go:build integration

package integration

import (
	"os"
	"strings"
	"testing"
	"time"
)

// TestWorkflow_CorpusLifecycle walks the full corpus journey: create, inspect,
// ingest a document, wait for the job, search, and delete.
func TestWorkflow_CorpusLifecycle(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	if config.ProjectID == "" {
		t.Skip("K2_INTEGRATION_PROJECT not set, skipping corpus lifecycle test")
	}

	runner := NewCommandRunner(config, t)
	corpusName := GenerateTestName("workflow-corpus")

	defer runner.CleanupCorpus(corpusName)

	// 1. Create corpus
	stdout, stderr, err := runner.Run("corpora", "create", corpusName,
		"--project", config.ProjectID,
		"--description", "Integration test corpus")
	if err != nil {
		t.Fatalf("Failed to create corpus: %v\nStderr: %s", err, stderr)
	}

	if !strings.Contains(stdout, corpusName) {
		t.Errorf("Create output missing corpus name: %s", stdout)
	}

	// 2. Get corpus with JSON output
	stdout, stderr, err = runner.Run("corpora", "get", corpusName, "--output", "json")
	if err != nil {
		t.Fatalf("Failed to get corpus: %v\nStderr: %s", err, stderr)
	}

	AssertJSONOutput(t, stdout)

	// 3. Check status
	stdout, stderr, err = runner.Run("corpora", "status", corpusName)
	if err != nil {
		t.Fatalf("Failed to get corpus status: %v\nStderr: %s", err, stderr)
	}

	// 4. Upload a document and wait for ingestion
	file, err := os.CreateTemp("", "k2-integration-*.md")
	if err != nil {
		t.Fatalf("Failed to create temp document: %v", err)
	}

	defer func() { _ = os.Remove(file.Name()) }()

	if _, err := file.WriteString("# Onboarding\n\nWelcome to the team.\n"); err != nil {
		t.Fatalf("Failed to write temp document: %v", err)
	}

	_ = file.Close()

	stdout, stderr, err = runner.Run("documents", "upload", corpusName,
		"--file", file.Name(),
		"--source-uri", "integration/onboarding.md",
		"--wait")
	if err != nil {
		t.Fatalf("Failed to upload document: %v\nStderr: %s", err, stderr)
	}

	// 5. Wait for retrieval readiness before searching
	WaitForCondition(t, func() bool {
		out, _, err := runner.Run("corpora", "status", corpusName, "--output", "json")

		return err == nil && strings.Contains(out, `"retrieval_ready": true`)
	}, 2*time.Minute, "corpus never became retrieval ready")

	// 6. Search the corpus
	stdout, stderr, err = runner.Run("search", corpusName, "welcome", "--top-k", "3")
	if err != nil {
		t.Fatalf("Search failed: %v\nStderr: %s", err, stderr)
	}

	// 7. List documents
	stdout, stderr, err = runner.Run("documents", "list", corpusName, "--output", "json")
	if err != nil {
		t.Fatalf("Failed to list documents: %v\nStderr: %s", err, stderr)
	}

	AssertJSONOutput(t, stdout)

	if !strings.Contains(stdout, "integration/onboarding.md") {
		t.Errorf("Document list missing uploaded document: %s", stdout)
	}
}

// TestWorkflow_OutputFormats verifies that table, JSON, and YAML rendering all
// work against a live endpoint.
func TestWorkflow_OutputFormats(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	stdout, stderr, err := runner.Run("corpora", "list")
	if err != nil {
		t.Fatalf("Table output failed: %v\nStderr: %s", err, stderr)
	}

	stdout, stderr, err = runner.Run("corpora", "list", "--output", "json")
	if err != nil {
		t.Fatalf("JSON output failed: %v\nStderr: %s", err, stderr)
	}

	AssertJSONOutput(t, stdout)

	stdout, stderr, err = runner.Run("corpora", "list", "--output", "yaml")
	if err != nil {
		t.Fatalf("YAML output failed: %v\nStderr: %s", err, stderr)
	}

	AssertYAMLOutput(t, stdout)
}

// TestWorkflow_Identity verifies whoami and usage reporting.
func TestWorkflow_Identity(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	stdout, stderr, err := runner.Run("whoami", "--output", "json")
	if err != nil {
		t.Fatalf("whoami failed: %v\nStderr: %s", err, stderr)
	}

	AssertJSONOutput(t, stdout)

	if !strings.Contains(stdout, "org_id") {
		t.Errorf("whoami output missing org_id: %s", stdout)
	}

	stdout, stderr, err = runner.Run("usage", "summary", "--range", "7d")
	if err != nil {
		t.Fatalf("usage summary failed: %v\nStderr: %s", err, stderr)
	}
}
