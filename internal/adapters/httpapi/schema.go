package httpapi

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed action.schema.json
var actionSchemaJSON []byte

// ActionValidator checks action request bodies before they are decoded
type ActionValidator struct {
	schema *jsonschema.Schema
}

// NewActionValidator compiles the embedded action schema
func NewActionValidator() (*ActionValidator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("action.schema.json", bytes.NewReader(actionSchemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to load action schema: %w", err)
	}
	schema, err := compiler.Compile("action.schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile action schema: %w", err)
	}
	return &ActionValidator{schema: schema}, nil
}

// Validate returns the action type of a valid body
func (v *ActionValidator) Validate(body []byte) (string, error) {
	var doc interface{}
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return "", err
	}
	return doc.(map[string]interface{})["type"].(string), nil
}
