package config

import (
	"fmt"

	"github.com/WolffM/vibecheck/internal/cli/output"
)

// Validate checks the settings that are not owned by pkg/lint.
func (c *Config) Validate() error {
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		return err
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max_file_size must be positive, got %d", c.MaxFileSize)
	}
	if c.StatePath == "" && !c.NoHistory {
		return fmt.Errorf("state_path is required unless history is disabled")
	}
	return nil
}
