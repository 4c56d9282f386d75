package classifier

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed artifact.schema.json
var artifactSchema []byte

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

type artifact struct {
	Name     string          `json:"name"`
	Version  string          `json:"version"`
	Kind     Kind            `json:"kind"`
	Features []string        `json:"features"`
	Classes  []string        `json:"classes"`
	Logistic *logisticParams `json:"logistic,omitempty"`
	Trees    []treeParams    `json:"trees,omitempty"`
}

func (a *artifact) info() ModelInfo {
	return ModelInfo{
		Name:     a.Name,
		Version:  a.Version,
		Kind:     a.Kind,
		Features: a.Features,
		Classes:  a.Classes,
	}
}

// LoadFile reads, validates and decodes the artifact at path.
func LoadFile(path string) (Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("failed to read classifier artifact %s: %w", path, err)
	}

	c, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	switch m := c.(type) {
	case *logisticModel:
		m.info.Source = path
	case *treeEnsemble:
		m.info.Source = path
	}
	return c, nil
}

// Load decodes an in-memory artifact.
func Load(data []byte) (Classifier, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}

	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}

	switch a.Kind {
	case KindLogisticRegression:
		return newLogisticModel(a.info(), a.Logistic)
	case KindTreeEnsemble:
		return newTreeEnsemble(a.info(), a.Trees)
	default:
		return nil, fmt.Errorf("%w: unsupported kind %q", ErrInvalidArtifact, a.Kind)
	}
}

func schema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(artifactSchema))
	})
	return compiledSchema, schemaErr
}

func validateDocument(data []byte) error {
	s, err := schema()
	if err != nil {
		return fmt.Errorf("failed to compile artifact schema: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidArtifact, strings.Join(msgs, "; "))
	}
	return nil
}
