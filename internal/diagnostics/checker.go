// Package diagnostics runs startup checks for the advisory integration and
// local configuration storage.
package diagnostics

import (
	"fmt"
	"os"
	"strings"
	"time"

	"tl9000-audit/internal/domain"
)

// APIKeyEnv names the environment variable carrying the Gemini credential.
const APIKeyEnv = "GEMINI_API_KEY"

// Checker validates advisory credentials and required filesystem paths.
type Checker struct {
	configDir  string
	getenv     func(string) string
	mkdirAll   func(string, os.FileMode) error
	createTemp func(string, string) (*os.File, error)
	remove     func(string) error
}

// NewChecker builds a checker using real OS dependencies.
func NewChecker(configDir string) *Checker {
	return &Checker{
		configDir:  configDir,
		getenv:     os.Getenv,
		mkdirAll:   os.MkdirAll,
		createTemp: os.CreateTemp,
		remove:     os.Remove,
	}
}

// Run executes all startup checks and returns a combined report.
func (c *Checker) Run(settings domain.Settings) domain.DiagnosticReport {
	items := []domain.DiagnosticItem{
		c.checkAPIKey(),
		c.checkModel(settings.Model),
		c.checkConfigDir(),
	}

	hasFailures := false
	for _, item := range items {
		if item.Status == domain.DiagnosticStatusFail {
			hasFailures = true
			break
		}
	}

	return domain.DiagnosticReport{
		GeneratedAt: time.Now().UTC(),
		HasFailures: hasFailures,
		Items:       items,
	}
}

// checkAPIKey verifies the advisory credential is supplied by the environment.
func (c *Checker) checkAPIKey() domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   "api_key",
		Name: "Gemini API key",
	}

	if strings.TrimSpace(c.getenv(APIKeyEnv)) == "" {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("%s is not set.", APIKeyEnv)
		item.Hint = "Export the key before launch; without it, AI guidance requests will show the fallback text."
		return item
	}

	item.Status = domain.DiagnosticStatusPass
	item.Message = fmt.Sprintf("%s is set.", APIKeyEnv)
	return item
}

// checkModel validates the configured generative model name.
func (c *Checker) checkModel(model string) domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   "model",
		Name: "Advisory model",
	}

	if strings.TrimSpace(model) == "" {
		item.Status = domain.DiagnosticStatusFail
		item.Message = "Advisory model name is empty."
		item.Hint = "Set a Gemini model name in settings."
		return item
	}

	item.Status = domain.DiagnosticStatusPass
	item.Message = fmt.Sprintf("Using model %s", model)
	return item
}

// checkConfigDir validates settings directory existence and write access.
func (c *Checker) checkConfigDir() domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   "config_dir",
		Name: "Configuration directory",
	}

	if strings.TrimSpace(c.configDir) == "" {
		item.Status = domain.DiagnosticStatusFail
		item.Message = "Configuration directory is empty."
		item.Hint = "Settings cannot be persisted without a configuration directory."
		return item
	}

	if err := c.mkdirAll(c.configDir, 0o755); err != nil {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("Cannot create configuration directory: %s", c.configDir)
		item.Hint = "Adjust filesystem permissions for the home directory."
		return item
	}

	tmpFile, err := c.createTemp(c.configDir, ".write-check-*")
	if err != nil {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("Configuration directory is not writable: %s", c.configDir)
		item.Hint = "Settings changes will not survive restarts until this is fixed."
		return item
	}

	tmpPath := tmpFile.Name()
	_ = tmpFile.Close()
	_ = c.remove(tmpPath)

	item.Status = domain.DiagnosticStatusPass
	item.Message = fmt.Sprintf("Writable directory: %s", c.configDir)
	return item
}

// NewCheckerForTests creates checker with injectable dependencies.
func NewCheckerForTests(
	configDir string,
	getenv func(string) string,
	mkdirAll func(string, os.FileMode) error,
	createTemp func(string, string) (*os.File, error),
	remove func(string) error,
) *Checker {
	return &Checker{
		configDir:  configDir,
		getenv:     getenv,
		mkdirAll:   mkdirAll,
		createTemp: createTemp,
		remove:     remove,
	}
}
