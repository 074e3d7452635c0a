package api

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const searchRequestSchemaURL = "search-request.json"

const searchRequestSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["location"],
  "properties": {
    "location": {"type": "string", "minLength": 1, "maxLength": 200},
    "minBeds":  {"$ref": "#/$defs/optNumber"},
    "maxBeds":  {"$ref": "#/$defs/optNumber"},
    "minBaths": {"$ref": "#/$defs/optNumber"},
    "maxBaths": {"$ref": "#/$defs/optNumber"},
    "minSqft":  {"$ref": "#/$defs/optNumber"},
    "maxSqft":  {"$ref": "#/$defs/optNumber"},
    "minPrice": {"$ref": "#/$defs/optNumber"},
    "maxPrice": {"$ref": "#/$defs/optNumber"},
    "myBeds":   {"$ref": "#/$defs/optNumber"},
    "myBaths":  {"$ref": "#/$defs/optNumber"},
    "mySqft":   {"$ref": "#/$defs/optNumber"},
    "myZip":    {"type": ["string", "null"], "pattern": "^(\\d{5})?$"}
  },
  "$defs": {
    "optNumber": {
      "type": ["number", "string", "null"],
      "minimum": 0,
      "pattern": "^\\s*(\\d+(\\.\\d+)?)?\\s*$"
    }
  }
}`

// compileSearchSchema compiles the request schema once at handler construction.
func compileSearchSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(searchRequestSchemaURL, strings.NewReader(searchRequestSchema)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile(searchRequestSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile search request schema: %w", err)
	}
	return schema, nil
}
