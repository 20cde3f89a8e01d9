package lint

import (
	"sort"
	"sync"

	"github.com/WolffM/vibecheck/pkg/core"
)

// defaultRegistry holds the rules registered from init() functions.
var defaultRegistry = NewRegistry()

// Registry collects rule definitions during startup. Once Snapshot is called
// the registry is frozen and further registrations fail.
type Registry struct {
	mu     sync.Mutex
	rules  []RuleDef
	names  map[string]struct{}
	frozen *RuleSet
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// Register adds a rule. It fails with *DuplicateRuleError when the name is
// taken and with ErrRegistryFrozen after Snapshot.
func (r *Registry) Register(rule RuleDef) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen != nil {
		return ErrRegistryFrozen
	}
	if err := rule.validate(); err != nil {
		return err
	}
	if _, ok := r.names[rule.Name]; ok {
		return &DuplicateRuleError{Name: rule.Name}
	}
	r.names[rule.Name] = struct{}{}
	r.rules = append(r.rules, rule)
	return nil
}

// MustRegister is like Register but panics on error.
// Call it from init() functions in rule packages.
func (r *Registry) MustRegister(rule RuleDef) {
	if err := r.Register(rule); err != nil {
		panic(err)
	}
}

// Snapshot freezes the registry and returns its rules as an immutable set.
// Repeated calls return the same set.
func (r *Registry) Snapshot() *RuleSet {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen == nil {
		r.frozen = newRuleSet(r.rules)
	}
	return r.frozen
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rules)
}

// Register adds a rule to the default registry.
func Register(rule RuleDef) error {
	return defaultRegistry.Register(rule)
}

// MustRegister adds a rule to the default registry and panics on error.
func MustRegister(rule RuleDef) {
	defaultRegistry.MustRegister(rule)
}

// DefaultRules freezes the default registry and returns its rule set.
func DefaultRules() *RuleSet {
	return defaultRegistry.Snapshot()
}

// RuleSet is an immutable, ordered collection of rules with a node-kind
// index. It is safe for concurrent use without locking.
type RuleSet struct {
	rules  []RuleDef
	byName map[string]int
	byKind map[string][]int
}

func newRuleSet(rules []RuleDef) *RuleSet {
	s := &RuleSet{
		rules:  make([]RuleDef, len(rules)),
		byName: make(map[string]int, len(rules)),
		byKind: make(map[string][]int),
	}
	copy(s.rules, rules)
	for i, rule := range s.rules {
		s.byName[rule.Name] = i
		seen := make(map[string]bool, len(rule.Kinds))
		for _, kind := range rule.Kinds {
			if seen[kind] {
				continue
			}
			seen[kind] = true
			s.byKind[kind] = append(s.byKind[kind], i)
		}
	}
	return s
}

// Len returns the number of rules in the set.
func (s *RuleSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// All returns the rules in registration order.
func (s *RuleSet) All() []RuleDef {
	if s == nil {
		return nil
	}
	out := make([]RuleDef, len(s.rules))
	copy(out, s.rules)
	return out
}

// Lookup returns a rule by name.
func (s *RuleSet) Lookup(name string) (RuleDef, bool) {
	if s == nil {
		return RuleDef{}, false
	}
	i, ok := s.byName[name]
	if !ok {
		return RuleDef{}, false
	}
	return s.rules[i], true
}

// ForKind returns the rules evaluated on nodes of the given kind, in
// registration order.
func (s *RuleSet) ForKind(kind string) []RuleDef {
	if s == nil {
		return nil
	}
	idx := s.byKind[kind]
	out := make([]RuleDef, len(idx))
	for i, j := range idx {
		out[i] = s.rules[j]
	}
	return out
}

// forKind is the allocation-free variant used by the matcher.
func (s *RuleSet) forKind(kind string) []int {
	return s.byKind[kind]
}

// ByGroup returns the rules of a group in registration order.
func (s *RuleSet) ByGroup(group string) []RuleDef {
	var out []RuleDef
	for _, rule := range s.All() {
		if rule.Group == group {
			out = append(out, rule)
		}
	}
	return out
}

// Groups returns the sorted distinct group names.
func (s *RuleSet) Groups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, rule := range s.All() {
		if !seen[rule.Group] {
			seen[rule.Group] = true
			groups = append(groups, rule.Group)
		}
	}
	sort.Strings(groups)
	return groups
}

// HasGroup reports whether any rule belongs to group.
func (s *RuleSet) HasGroup(group string) bool {
	for _, rule := range s.All() {
		if rule.Group == group {
			return true
		}
	}
	return false
}

// Enabled returns the subset of rules that cfg does not disable, keeping
// registration order.
func (s *RuleSet) Enabled(cfg *Config) *RuleSet {
	if s == nil {
		return newRuleSet(nil)
	}
	var rules []RuleDef
	for _, rule := range s.rules {
		if cfg.IsEnabled(rule) {
			rules = append(rules, rule)
		}
	}
	return newRuleSet(rules)
}

// Infos returns rule metadata in registration order.
func (s *RuleSet) Infos() []core.RuleInfo {
	rules := s.All()
	infos := make([]core.RuleInfo, len(rules))
	for i, rule := range rules {
		infos[i] = rule.Info()
	}
	return infos
}
