package rules

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadRules reads a rule-set definition file (YAML, top-level `rules` key).
// Structural integrity of individual rules is checked at match time, not
// here, so a bad deploy is reported on the resolution path.
func LoadRules(path string) ([]Rule, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}

	var doc struct {
		Rules []Rule `mapstructure:"rules"`
	}
	if err := v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rules file %s: %w", path, err)
	}

	return doc.Rules, nil
}
