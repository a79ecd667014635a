// Package content loads authored assessment documents from disk, checks them
// against a JSON Schema and registers them with the store.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/scalednative/assessment-engine/internal/assessment"
)

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(assessmentSchema), &doc); err != nil {
			schemaErr = fmt.Errorf("parse assessment schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://assessment.json"
		if err := c.AddResource(url, doc); err != nil {
			schemaErr = fmt.Errorf("add assessment schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(url)
	})
	return schema, schemaErr
}

// Parse decodes one assessment document, schema-checking the raw JSON before
// the semantic validation in Config.Validate.
func Parse(raw []byte) (assessment.Config, error) {
	sch, err := compiledSchema()
	if err != nil {
		return assessment.Config{}, err
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return assessment.Config{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return assessment.Config{}, fmt.Errorf("schema validation failed: %w", err)
	}
	var cfg assessment.Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return assessment.Config{}, err
	}
	if err := (&cfg).Validate(); err != nil {
		return assessment.Config{}, err
	}
	return cfg, nil
}

// LoadFile parses a single authored document.
func LoadFile(path string) (assessment.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return assessment.Config{}, err
	}
	cfg, err := Parse(raw)
	if err != nil {
		return assessment.Config{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// LoadDir parses every .json document in dir (non-recursive).
func LoadDir(dir string) ([]assessment.Config, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []assessment.Config
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		cfg, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	return out, nil
}

// Register loads a directory of documents into the store.
func Register(ctx context.Context, dir string, store assessment.Store) (int, error) {
	cfgs, err := LoadDir(dir)
	if err != nil {
		return 0, err
	}
	for _, cfg := range cfgs {
		if err := store.PutAssessment(ctx, cfg); err != nil {
			return 0, fmt.Errorf("register %s: %w", cfg.ID, err)
		}
	}
	return len(cfgs), nil
}
