package rules

// Import all rule subpackages to register them with the global registry.
// This file triggers all init() functions in the rule packages.
import (
	_ "github.com/WolffM/vibecheck/pkg/lint/rules/complexity"
	_ "github.com/WolffM/vibecheck/pkg/lint/rules/correctness"
	_ "github.com/WolffM/vibecheck/pkg/lint/rules/nursery"
	_ "github.com/WolffM/vibecheck/pkg/lint/rules/pedantic"
	_ "github.com/WolffM/vibecheck/pkg/lint/rules/perf"
	_ "github.com/WolffM/vibecheck/pkg/lint/rules/style"
)
