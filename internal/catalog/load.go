package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// datasetSchema describes the shape of a challenge dataset document.
const datasetSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["challenges"],
  "additionalProperties": false,
  "properties": {
    "challenges": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "level", "number", "title", "description", "criteria"],
        "additionalProperties": false,
        "properties": {
          "id":          {"type": "string", "minLength": 1},
          "level":       {"type": "integer", "minimum": 1},
          "number":      {"type": "integer", "minimum": 1},
          "title":       {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "criteria":    {"type": "array", "minItems": 1, "items": {"type": "string"}},
          "hint":        {"type": "string"},
          "example":     {"type": "string"},
          "tags":        {"type": "array", "uniqueItems": true, "items": {"type": "string"}}
        }
      }
    }
  }
}`

const schemaURL = "schema://promptquest/challenges.json"

var validate = validator.New()

type dataset struct {
	Challenges []Challenge `yaml:"challenges"`
}

// Load parses a YAML challenge dataset, checks it against the dataset
// schema, and builds a catalog from it.
func Load(data []byte) (*Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if err := checkShape(doc); err != nil {
		return nil, err
	}

	var ds dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return New(ds.Challenges)
}

// checkShape validates the generic YAML document against datasetSchema.
// The schema library works on JSON values, so the document goes through a
// JSON round trip first.
func checkShape(doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("dataset is not JSON-compatible: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("dataset is not JSON-compatible: %w", err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("dataset schema: %w", err)
	}
	return nil
}

func compiledSchema() (*jsonschema.Schema, error) {
	def, err := jsonschema.UnmarshalJSON(strings.NewReader(datasetSchema))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, def); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	sch, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return sch, nil
}

// validateChallenges runs the field rules on every record and checks for
// duplicate ids. Returns a combined error describing all problems found.
func validateChallenges(challenges []Challenge) error {
	if len(challenges) == 0 {
		return fmt.Errorf("invalid catalog: no challenges")
	}

	var errs []string
	seen := make(map[string]bool, len(challenges))
	for i, ch := range challenges {
		if err := validate.Struct(ch); err != nil {
			errs = append(errs, fmt.Sprintf("challenge %d (%q): %v", i, ch.ID, err))
		}
		if ch.ID != "" && seen[ch.ID] {
			errs = append(errs, fmt.Sprintf("duplicate challenge ID: %q", ch.ID))
		}
		seen[ch.ID] = true
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid catalog:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
