package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/plateful/backend/internal/app/domain/menu"
)

// LoadMenuFromPath reads the menu catalogue from a YAML file.
func LoadMenuFromPath(path string) ([]menu.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu file: %w", err)
	}

	var doc struct {
		Items []menu.Item `yaml:"items"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse menu file: %w", err)
	}
	if len(doc.Items) == 0 {
		return nil, fmt.Errorf("menu file %s contains no items", path)
	}
	return doc.Items, nil
}

// LoadMenuOrDefault reads the catalogue, falling back to the built-in menu
// when the file is absent or unparsable.
func LoadMenuOrDefault(path string) []menu.Item {
	items, err := LoadMenuFromPath(path)
	if err != nil {
		return DefaultMenu()
	}
	return items
}

// DefaultMenu returns the built-in pizza catalogue.
func DefaultMenu() []menu.Item {
	return []menu.Item{
		{ID: 1, Name: "Margherita", Price: 9.99},
		{ID: 2, Name: "Pepperoni", Price: 11.99},
		{ID: 3, Name: "Quattro Formaggi", Price: 12.49},
		{ID: 4, Name: "Hawaiian", Price: 10.99},
		{ID: 5, Name: "Veggie Supreme", Price: 10.49},
		{ID: 6, Name: "Garlic Bread", Price: 4.5},
		{ID: 7, Name: "Tiramisu", Price: 5.99},
		{ID: 8, Name: "Soda", Price: 1.99},
	}
}
