package profile

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// profileListSchema validates the shape of an imported profile list before
// decoding. Config bodies are left open — their fields are advisory and
// type-checked during the tagged decode — but ids, names and the stage type
// tag must be present and well-formed.
const profileListSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "stages"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "name": {"type": "string", "minLength": 1},
      "description": {"type": "string"},
      "isBuiltIn": {"type": "boolean"},
      "createdAt": {"type": "string"},
      "stages": {
        "type": "array",
        "minItems": 1,
        "maxItems": 4,
        "items": {
          "type": "object",
          "required": ["type", "order", "config"],
          "properties": {
            "type": {"enum": ["predict", "transfer", "reason"]},
            "order": {"type": "integer", "minimum": 1},
            "config": {"type": "object"}
          }
        }
      }
    }
  }
}`

var compiledSchema = gojsonschema.NewStringLoader(profileListSchema)

// validateProfileList checks a serialized profile list against the schema.
func validateProfileList(data []byte) error {
	result, err := gojsonschema.Validate(compiledSchema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
