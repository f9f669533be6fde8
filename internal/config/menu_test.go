package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMenuFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	content := `items:
  - id: 1
    name: Margherita
    price: 9.99
  - id: 2
    name: Pepperoni
    price: 11.99
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	items, err := LoadMenuFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != 1 || items[0].Name != "Margherita" || items[0].Price != 9.99 {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
}

func TestLoadMenuOrDefaultFallsBack(t *testing.T) {
	items := LoadMenuOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if len(items) == 0 {
		t.Fatal("fallback catalogue must not be empty")
	}
	if items[0].Name != DefaultMenu()[0].Name {
		t.Fatalf("fallback differs from the built-in catalogue: %+v", items[0])
	}
}
