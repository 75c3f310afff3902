// Package providerconf loads optional provider routing overrides from a
// schema-validated JSON file.
package providerconf

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed providers.schema.json
var providersSchemaJSON string

// Override adjusts routing policy for one named provider. Nil fields keep
// the built-in default.
type Override struct {
	Name     string `json:"name"`
	Priority *int   `json:"priority,omitempty"`
	Enabled  *bool  `json:"enabled,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

// File is the parsed providers.json document.
type File struct {
	Providers []Override `json:"providers"`
}

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

// Load reads and validates a providers.json file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read providers file: %w", err)
	}
	file, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("providers file %s: %w", path, err)
	}
	return file, nil
}

// Parse validates a providers document against the embedded schema.
func Parse(raw []byte) (*File, error) {
	value, err := decodeStrictJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("decode providers JSON: %w", err)
	}

	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	normalized, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("normalize providers JSON: %w", err)
	}

	var file File
	if err := json.Unmarshal(normalized, &file); err != nil {
		return nil, fmt.Errorf("unmarshal providers: %w", err)
	}

	if err := validateSemantics(&file); err != nil {
		return nil, err
	}
	return &file, nil
}

// ByName indexes the overrides for registry construction.
func (f *File) ByName() map[string]Override {
	if f == nil {
		return nil
	}
	out := make(map[string]Override, len(f.Providers))
	for _, override := range f.Providers {
		out[override.Name] = override
	}
	return out
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true

		if err := compiler.AddResource("providers.schema.json", strings.NewReader(providersSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}

		schema, err := compiler.Compile("providers.schema.json")
		if err != nil {
			compiledSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}
		compiledSchema = schema
	})

	if compiledSchemaErr != nil {
		return nil, compiledSchemaErr
	}
	if compiledSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return compiledSchema, nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("document is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("document contains trailing content")
	}
	return value, nil
}

func validateSemantics(file *File) error {
	if file == nil {
		return fmt.Errorf("document is nil")
	}

	seen := make(map[string]struct{}, len(file.Providers))
	for i, override := range file.Providers {
		if _, exists := seen[override.Name]; exists {
			return fmt.Errorf("providers[%d]: duplicate provider %q", i, override.Name)
		}
		seen[override.Name] = struct{}{}

		if endpoint := strings.TrimSpace(override.Endpoint); endpoint != "" {
			if _, err := url.ParseRequestURI(endpoint); err != nil {
				return fmt.Errorf("providers[%d]: endpoint is not a valid URI: %w", i, err)
			}
		}
	}
	return nil
}
