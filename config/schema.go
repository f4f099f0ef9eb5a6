package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// configSchema constrains the config document's structure. Cross-field rules
// (redis address required for redis storage) live in Config.check.
const configSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "backend": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "base_url": {"type": "string", "minLength": 1},
        "timeout_seconds": {"type": "integer", "minimum": 1}
      }
    },
    "tracking": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "poll_interval_seconds": {"type": "integer", "minimum": 1},
        "default_seconds_per_video": {"type": "integer", "minimum": 1}
      }
    },
    "profiles": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "storage": {"type": "string", "enum": ["memory", "file", "redis"]},
        "path": {"type": "string"},
        "redis_addr": {"type": "string"},
        "redis_key": {"type": "string"}
      }
    },
    "logging": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "level": {"type": "string", "enum": ["debug", "info", "warn", "error"]}
      }
    }
  }
}`

// validateConfigSchema checks raw YAML against the config schema, collecting
// every violation into one error.
func validateConfigSchema(yamlData []byte) error {
	var doc any
	if err := yaml.Unmarshal(yamlData, &doc); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to convert to JSON: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewBytesLoader(jsonData),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var messages []string
	for _, e := range result.Errors() {
		messages = append(messages, fmt.Sprintf("  - %s: %s", e.Field(), e.Description()))
	}
	return fmt.Errorf("configuration does not match schema:\n%s", strings.Join(messages, "\n"))
}
