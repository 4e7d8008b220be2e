package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/skrive/pkg/tmpl"
)

// PromptTemplateData defines available fields for the completion prompt template.
type PromptTemplateData struct {
	Text  string // Document text submitted for review
	Model string // Configured model name
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// template syntax, endpoint URLs, and file accessibility. The configPath argument
// specifies the config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateCompletion(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Completion.Mode == ModeLive && c.Completion.Credential() == "" {
		item := "api_key"
		if c.Completion.APIKeyEnv != "" {
			item = c.Completion.APIKeyEnv
		}
		warnings = append(warnings, ValidationWarning{
			Category: "Completion",
			Item:     item,
			Message:  "live mode without a credential; requests are sent unauthenticated",
		})
	}

	if c.Completion.Mode == ModeMock {
		warnings = append(warnings, ValidationWarning{
			Category: "Completion",
			Message:  "mock mode returns built-in suggestions and ignores the submitted text",
		})
	}

	return warnings
}

// validateFileAccess checks config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// validateCompletion checks the endpoint URL and prompt template.
func (c *Config) validateCompletion() error {
	var errs criterio.FieldErrorsBuilder

	if c.Completion.Mode == ModeLive {
		if err := validateEndpoint(c.Completion.Endpoint); err != nil {
			errs = errs.Append("completion.endpoint", err)
		}
	}

	data := PromptTemplateData{Text: "Vi mener at dette er viktig.", Model: c.Completion.Model}
	if _, err := tmpl.Render(c.Completion.PromptTemplate, data); err != nil {
		errs = errs.Append("completion.prompt_template", fmt.Errorf("template error: %w", err))
	}

	return errs.ToError()
}

func validateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", endpoint)
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
