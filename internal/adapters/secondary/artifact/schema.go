package artifact

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const formatMarker = "tree-ensemble"

const ensembleSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["format", "kind", "feature_names", "trees"],
  "properties": {
    "format": {"const": "tree-ensemble"},
    "kind": {"enum": ["random_forest", "gradient_boosting"]},
    "feature_names": {
      "type": "array",
      "minItems": 1,
      "uniqueItems": true,
      "items": {"type": "string", "minLength": 1}
    },
    "base_score": {"type": "number"},
    "trees": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["nodes"],
        "properties": {
          "nodes": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["left", "right"],
              "properties": {
                "feature": {"type": "integer", "minimum": 0},
                "threshold": {"type": "number"},
                "left": {"type": "integer", "minimum": -1},
                "right": {"type": "integer", "minimum": -1},
                "value": {"type": "number"}
              }
            }
          }
        }
      }
    }
  }
}`

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("ensemble.json", strings.NewReader(ensembleSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile("ensemble.json")
}
