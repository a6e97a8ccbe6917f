//go:build integration

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	APIEndpoint string
	APIKey      string
	OrgID       string
	ProjectID   string
	K2Path      string
	Verbose     bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIEndpoint: os.Getenv("K2_INTEGRATION_ENDPOINT"),
		APIKey:      os.Getenv("K2_INTEGRATION_API_KEY"),
		OrgID:       os.Getenv("K2_INTEGRATION_ORG"),
		ProjectID:   os.Getenv("K2_INTEGRATION_PROJECT"),
		K2Path:      getK2Path(),
		Verbose:     os.Getenv("K2_VERBOSE") == "true",
	}
}

// getK2Path determines the path to the k2 binary
func getK2Path() string {
	if path := os.Getenv("K2_BINARY_PATH"); path != "" {
		return path
	}

	// Try common locations
	candidates := []string{
		"../../k2",
		"./k2",
		"../k2",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "k2" // Fallback to PATH
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	if config.APIEndpoint == "" {
		t.Skip("K2_INTEGRATION_ENDPOINT not set, skipping integration test")
	}

	if config.APIKey == "" {
		t.Skip("K2_INTEGRATION_API_KEY not set, skipping integration test")
	}

	if _, err := os.Stat(config.K2Path); os.IsNotExist(err) {
		t.Skipf("k2 binary not found at %s, skipping integration test", config.K2Path)
	}
}

// CommandRunner provides utilities for running k2 commands
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a k2 command and returns output. The endpoint and API key are
// always passed explicitly so the test never depends on a local config file.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	full := append([]string{
		"--api", runner.config.APIEndpoint,
		"--api-key", runner.config.APIKey,
	}, args...)

	if runner.config.OrgID != "" {
		full = append([]string{"--org", runner.config.OrgID}, full...)
	}

	cmd := exec.Command(runner.config.K2Path, full...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.K2Path, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// RunWithInput executes a k2 command with stdin input
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	full := append([]string{
		"--api", runner.config.APIEndpoint,
		"--api-key", runner.config.APIKey,
	}, args...)

	cmd := exec.Command(runner.config.K2Path, full...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)

	if runner.config.Verbose {
		runner.t.Logf("Running with input: %s %s", runner.config.K2Path, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}

// CleanupCorpus attempts to delete a test corpus
func (runner *CommandRunner) CleanupCorpus(nameOrID string) {
	stdout, stderr, err := runner.Run("corpora", "delete", nameOrID, "--force", "--yes")
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for corpus %s: %s\nStderr: %s", nameOrID, stdout, stderr)
	}
}

// WaitForCondition waits for a condition to be met with timeout
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	timeoutChan := time.After(timeout)

	for {
		select {
		case <-ticker.C:
			if condition() {
				return
			}
		case <-timeoutChan:
			t.Fatalf("Timeout waiting for condition: %s", message)
		}
	}
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	// Basic JSON validation
	output = strings.TrimSpace(output)
	if !strings.HasPrefix(output, "{") && !strings.HasPrefix(output, "[") {
		t.Errorf("Output does not appear to be JSON: %s", output)
	}
}

// AssertYAMLOutput verifies command output is valid YAML
func AssertYAMLOutput(t *testing.T, output string) {
	// Basic YAML validation
	output = strings.TrimSpace(output)
	if strings.Contains(output, "---") || strings.Contains(output, ":") {
		return // Looks like YAML
	}
	t.Errorf("Output does not appear to be YAML: %s", output)
}
