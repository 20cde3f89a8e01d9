package lint

import (
	"errors"
	"fmt"
)

// ErrRegistryFrozen is returned by Register after the registry was snapshotted.
var ErrRegistryFrozen = errors.New("rule registry is frozen")

// ErrIncomplete marks analysis that stopped early because of cancellation or
// a timeout. It wraps the context error.
var ErrIncomplete = errors.New("analysis incomplete")

// DuplicateRuleError is returned when a rule name is registered twice.
type DuplicateRuleError struct {
	Name string
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("duplicate rule %q", e.Name)
}

// ConfigError reports malformed lint configuration.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid lint config: %s: %v", e.Reason, e.Err)
	}
	return "invalid lint config: " + e.Reason
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// incomplete wraps a context error so that both errors.Is(err, ErrIncomplete)
// and errors.Is(err, context.Canceled) hold.
func incomplete(cause error) error {
	return fmt.Errorf("%w: %w", ErrIncomplete, cause)
}
