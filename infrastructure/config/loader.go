// Package config loads definition documents and builds automata from them.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/automata/domain/config"
)

// Loader loads definition documents from files.
type Loader struct {
	// ExpandEnv enables environment variable expansion.
	ExpandEnv bool
	// StrictEnv fails if referenced env vars are missing.
	StrictEnv bool
	// Validate enables configuration validation.
	Validate bool
}

// NewLoader creates a new configuration loader with default settings.
func NewLoader() *Loader {
	return &Loader{
		ExpandEnv: true,
		StrictEnv: false,
		Validate:  true,
	}
}

// LoaderOption configures the loader.
type LoaderOption func(*Loader)

// WithEnvExpansion enables or disables environment variable expansion.
func WithEnvExpansion(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.ExpandEnv = enabled
	}
}

// WithStrictEnv enables strict environment variable checking.
func WithStrictEnv(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.StrictEnv = enabled
	}
}

// WithValidation enables or disables document validation.
func WithValidation(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.Validate = enabled
	}
}

// NewLoaderWithOptions creates a loader with the specified options.
func NewLoaderWithOptions(opts ...LoaderOption) *Loader {
	l := NewLoader()
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile loads a document from a file path. The format follows the
// extension: .yaml, .yml or .json.
func (l *Loader) LoadFile(path string) (*config.Document, error) {
	// Check if file exists
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to access definition file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", config.ErrInvalidFormat, path)
	}

	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open definition file: %w", err)
	}
	defer f.Close()

	return l.Load(f, format)
}

// FormatOf returns the document format implied by a file extension.
func FormatOf(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", config.ErrUnsupportedFormat, ext)
	}
}

// Format represents a definition file format.
type Format string

const (
	// FormatYAML is the YAML format.
	FormatYAML Format = "yaml"
	// FormatJSON is the JSON format.
	FormatJSON Format = "json"
)

// Load loads a document from a reader.
func (l *Loader) Load(r io.Reader, format Format) (*config.Document, error) {
	// Read all content
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}

	cfg := config.DefaultDocument()
	if err := l.decode(data, format, cfg); err != nil {
		return nil, err
	}

	if l.Validate {
		if errs := config.NewValidator().Validate(cfg); errs.HasErrors() {
			return nil, fmt.Errorf("%w: %w", config.ErrValidationFailed, errs)
		}
	}

	return cfg, nil
}

// decode fills cfg from data, expanding environment variables in string
// values when enabled.
func (l *Loader) decode(data []byte, format Format, cfg *config.Document) error {
	switch format {
	case FormatYAML:
		if !l.ExpandEnv {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return fmt.Errorf("%w: %v", config.ErrInvalidFormat, err)
			}
			return nil
		}
		root, err := expandYAML(data, l.StrictEnv)
		if err != nil {
			return err
		}
		// An empty document leaves the defaults in place.
		if root.Kind == 0 {
			return nil
		}
		if err := root.Decode(cfg); err != nil {
			return fmt.Errorf("%w: %v", config.ErrInvalidFormat, err)
		}
		return nil
	case FormatJSON:
		if l.ExpandEnv {
			expanded, err := expandJSON(data, l.StrictEnv)
			if err != nil {
				return err
			}
			data = expanded
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("%w: %v", config.ErrInvalidFormat, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", config.ErrUnsupportedFormat, format)
	}
}

// LoadString loads a document from a string.
func (l *Loader) LoadString(content string, format Format) (*config.Document, error) {
	return l.Load(strings.NewReader(content), format)
}

// LoadBytes loads a document from bytes.
func (l *Loader) LoadBytes(data []byte, format Format) (*config.Document, error) {
	return l.Load(bytes.NewReader(data), format)
}
