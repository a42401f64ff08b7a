package summary

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

// compiled at init so a broken embedded schema fails fast.
var schema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("summary-schema.json", bytes.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("summary: add schema resource: %v", err))
	}
	s, err := compiler.Compile("summary-schema.json")
	if err != nil {
		panic(fmt.Sprintf("summary: compile schema: %v", err))
	}
	return s
}

// ValidateJSON checks raw summary JSON against the embedded schema
// without decoding it into a Summary.
func ValidateJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("summary: invalid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("summary: schema violation: %w", err)
	}
	return nil
}

// Parse validates raw summary JSON against the schema and decodes it.
// Schema violations are returned before any decoding error can occur, so
// a parsed Summary is always structurally sound.
func Parse(data []byte) (*Summary, error) {
	if err := ValidateJSON(data); err != nil {
		return nil, err
	}
	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("summary: decode: %w", err)
	}
	if s.Meta.Parties == nil {
		s.Meta.Parties = []string{}
	}
	return &s, nil
}
