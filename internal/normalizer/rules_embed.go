package normalizer

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/rules.yaml
var rulesYAML []byte

// RulesConfig holds the rewrite tables and keyword lists loaded from YAML.
type RulesConfig struct {
	CanonicalCenter      string            `yaml:"canonical_center"`
	AdminAbbreviations   map[string]string `yaml:"admin_abbreviations"`
	StreetAbbreviations  map[string]string `yaml:"street_abbreviations"`
	HealthCenterVariants []string          `yaml:"health_center_variants"`
	NeighborhoodKeywords []string          `yaml:"neighborhood_keywords"`
	DistrictKeywords     []string          `yaml:"district_keywords"`
}

// LoadRulesConfig decodes the embedded rules file.
func LoadRulesConfig() (*RulesConfig, error) {
	return ParseRulesConfig(rulesYAML)
}

// ParseRulesConfig decodes a rules document. canonical_center is required.
func ParseRulesConfig(data []byte) (*RulesConfig, error) {
	config := &RulesConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("decode normalization rules: %w", err)
	}
	if config.CanonicalCenter == "" {
		return nil, fmt.Errorf("decode normalization rules: canonical_center is empty")
	}
	return config, nil
}
