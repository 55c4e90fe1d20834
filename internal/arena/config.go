package arena

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Config is the session configuration loaded before the setup phase.
type Config struct {
	// MaxFighters caps how many fighters can be placed during setup.
	MaxFighters int `json:"maxFighters"`
	// AnimalType selects the opponent from the catalog. Unknown values fall
	// back to the default profile rather than failing the session.
	AnimalType string `json:"animalType"`
	// ArenaSize is the side length of the square arena floor.
	ArenaSize float64 `json:"arenaSize"`
	// Difficulty scales the animal's health and attack power.
	Difficulty string `json:"difficulty"`
}

// DefaultConfig is the session used when no config file is given.
func DefaultConfig() Config {
	return Config{
		MaxFighters: 30,
		AnimalType:  defaultAnimalType,
		ArenaSize:   120,
		Difficulty:  "normal",
	}
}

const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "battle session configuration",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "maxFighters": {
      "type": "integer",
      "minimum": 1,
      "maximum": 200
    },
    "animalType": {
      "type": "string"
    },
    "arenaSize": {
      "type": "number",
      "minimum": 20,
      "maximum": 1000
    },
    "difficulty": {
      "type": "string",
      "enum": ["easy", "normal", "hard"]
    }
  }
}`

var compiledConfigSchema = jsonschema.MustCompileString("config.schema.json", configSchema)

// LoadConfig reads and validates a JSON config file. Absent keys keep their
// defaults; schema violations are errors. An unknown animalType passes the
// schema and is resolved to the default profile at spawn time.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(raw)
}

// ParseConfig validates raw JSON against the schema and merges it over the
// defaults.
func ParseConfig(raw []byte) (Config, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := compiledConfigSchema.Validate(doc); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
