// Package rules selects integration configurations by matching a rule set
// against request criteria. The rule set is declarative and deployed as
// configuration; the engine itself holds no other state.
package rules

import (
	"context"
	"errors"
	"fmt"

	"github.com/corepay/gateway/internal/domain"
)

// Criteria keys the engine understands.
const (
	CriteriaAction  = "action"
	CriteriaCompany = "company"
)

var (
	// ErrBadRule is returned when the rule definitions themselves are
	// malformed or inconsistent. This is a configuration-integrity
	// failure, not a lookup miss.
	ErrBadRule = errors.New("integration rule set is invalid")

	// ErrNoRuleMatched is returned when the criteria are well-formed but
	// no rule matches them.
	ErrNoRuleMatched = errors.New("no integration rule matched")
)

// Engine matches criteria against a rule set and returns the selected
// integration configuration.
type Engine interface {
	// Match evaluates the rule set against the criteria and, if present,
	// the resolved method company. Returns ErrBadRule when the rule set is
	// malformed and ErrNoRuleMatched when nothing matches.
	Match(ctx context.Context, criteria map[string]string, mc *domain.MethodCompany) (*domain.IntegrationConfig, error)
}

// Rule is one declarative selection rule. Empty match fields are wildcards;
// the first rule whose non-empty fields all match wins.
type Rule struct {
	Name     string            `mapstructure:"name"     json:"name"`
	Action   string            `mapstructure:"action"   json:"action"`
	Company  string            `mapstructure:"company"  json:"company,omitempty"`
	Method   string            `mapstructure:"method"   json:"method,omitempty"`
	Provider string            `mapstructure:"provider" json:"provider,omitempty"`
	Terminal string            `mapstructure:"terminal" json:"terminal"`
	Params   map[string]string `mapstructure:"params"   json:"params,omitempty"`
}

// RuleEngine is the declarative Engine implementation.
type RuleEngine struct {
	rules []Rule
}

// NewRuleEngine creates an engine over the given rule set. The set is not
// validated here; Match reports ErrBadRule so that a bad deploy surfaces on
// the resolution path where it is logged with full criteria context.
func NewRuleEngine(rules []Rule) *RuleEngine {
	return &RuleEngine{rules: rules}
}

var _ Engine = (*RuleEngine)(nil)

// Match implements Engine.
func (e *RuleEngine) Match(ctx context.Context, criteria map[string]string, mc *domain.MethodCompany) (*domain.IntegrationConfig, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}

	action := criteria[CriteriaAction]
	if action == "" {
		return nil, fmt.Errorf("%w: criteria missing %q", ErrBadRule, CriteriaAction)
	}
	company := criteria[CriteriaCompany]

	for _, rule := range e.rules {
		if rule.Action != action {
			continue
		}
		if rule.Company != "" && rule.Company != company {
			continue
		}
		if rule.Method != "" && (mc == nil || rule.Method != mc.MethodAlias) {
			continue
		}
		if rule.Provider != "" && (mc == nil || rule.Provider != mc.ProviderAlias) {
			continue
		}

		return e.configFor(rule, company, mc), nil
	}

	return nil, ErrNoRuleMatched
}

func (e *RuleEngine) configFor(rule Rule, company string, mc *domain.MethodCompany) *domain.IntegrationConfig {
	cfg := &domain.IntegrationConfig{
		Name:          rule.Name,
		Action:        rule.Action,
		CompanyAlias:  company,
		ProviderAlias: rule.Provider,
		Terminal:      rule.Terminal,
		Params:        rule.Params,
	}
	if cfg.ProviderAlias == "" && mc != nil {
		cfg.ProviderAlias = mc.ProviderAlias
	}
	return cfg
}

// validate checks rule-set integrity: every rule needs a unique name, an
// action and a terminal identifier.
func (e *RuleEngine) validate() error {
	if len(e.rules) == 0 {
		return fmt.Errorf("%w: empty rule set", ErrBadRule)
	}

	seen := make(map[string]struct{}, len(e.rules))
	for i, rule := range e.rules {
		if rule.Name == "" {
			return fmt.Errorf("%w: rule %d has no name", ErrBadRule, i)
		}
		if _, dup := seen[rule.Name]; dup {
			return fmt.Errorf("%w: duplicate rule name %q", ErrBadRule, rule.Name)
		}
		seen[rule.Name] = struct{}{}

		if rule.Action == "" {
			return fmt.Errorf("%w: rule %q has no action", ErrBadRule, rule.Name)
		}
		if rule.Terminal == "" {
			return fmt.Errorf("%w: rule %q has no terminal", ErrBadRule, rule.Name)
		}
	}

	return nil
}
