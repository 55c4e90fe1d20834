package arena

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfigMergesOverDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"maxFighters": 12, "animalType": "panther"}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cfg.MaxFighters != 12 || cfg.AnimalType != "panther" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	def := DefaultConfig()
	if cfg.ArenaSize != def.ArenaSize || cfg.Difficulty != def.Difficulty {
		t.Fatalf("absent keys must keep defaults: %+v", cfg)
	}
}

func TestParseConfigRejectsSchemaViolations(t *testing.T) {
	cases := []string{
		`{"maxFighters": 0}`,
		`{"maxFighters": 1.5}`,
		`{"arenaSize": 5}`,
		`{"difficulty": "nightmare"}`,
		`{"unknownKey": true}`,
		`not json`,
	}
	for _, raw := range cases {
		if _, err := ParseConfig([]byte(raw)); err == nil {
			t.Fatalf("expected %s to be rejected", raw)
		}
	}
}

func TestUnknownAnimalTypePassesValidation(t *testing.T) {
	// Animal names are an open set at the schema level; unknown values fall
	// back to the default profile when the battle spawns.
	cfg, err := ParseConfig([]byte(`{"animalType": "wolpertinger"}`))
	if err != nil {
		t.Fatalf("unknown animal type must validate: %v", err)
	}
	if p := ProfileFor(cfg.AnimalType); p.Type != defaultAnimalType {
		t.Fatalf("expected fallback profile, got %s", p.Type)
	}
}

func TestLoadConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"difficulty": "hard"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Difficulty != "hard" {
		t.Fatalf("expected hard, got %s", cfg.Difficulty)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("missing file must error")
	}
}
