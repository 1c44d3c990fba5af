// Package config loads the transaction categorization rule set. Rules
// are data, not code, so categories can be extended without touching
// the aggregation logic.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules is the top-level categories.yaml configuration.
type Rules struct {
	Categories []CategoryRule `yaml:"categories"`
}

// CategoryRule assigns a category to transactions whose purpose or
// counterparty contains one of the keywords. Rules are evaluated in
// file order; the first match wins.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Load reads a rules file from disk.
func Load(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	return &rules, nil
}

// Save writes a rule set to a YAML file.
func Save(path string, rules *Rules) error {
	data, err := yaml.Marshal(rules)
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}

// Default returns a starter rule set for a new project.
func Default() *Rules {
	return &Rules{
		Categories: []CategoryRule{
			{Name: "Налоги и взносы", Keywords: []string{"налог", "ндфл", "страховые взносы", "усн", "фнс"}},
			{Name: "Зарплата", Keywords: []string{"заработная плата", "зарплата", "аванс сотруднику"}},
			{Name: "Аренда", Keywords: []string{"аренда", "арендная плата"}},
			{Name: "Банковские услуги", Keywords: []string{"комиссия", "банковское обслуживание", "рко"}},
			{Name: "Поставщики", Keywords: []string{"оплата по счету", "поставка", "товар"}},
			{Name: "Выручка", Keywords: []string{"оплата за услуги", "по договору", "выручка"}},
		},
	}
}
