package config

import (
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/automata/domain/automaton"
	domainconfig "github.com/felixgeelhaar/automata/domain/config"
)

// JSONSchema represents the subset of JSON Schema used by definition documents.
type JSONSchema struct {
	Schema               string                 `json:"$schema,omitempty"`
	ID                   string                 `json:"$id,omitempty"`
	Title                string                 `json:"title,omitempty"`
	Description          string                 `json:"description,omitempty"`
	Type                 string                 `json:"type,omitempty"`
	Properties           map[string]*JSONSchema `json:"properties,omitempty"`
	Required             []string               `json:"required,omitempty"`
	Items                *JSONSchema            `json:"items,omitempty"`
	AdditionalProperties *JSONSchema            `json:"additionalProperties,omitempty"`
	Enum                 []string               `json:"enum,omitempty"`
	Default              any                    `json:"default,omitempty"`
	MinLength            *int                   `json:"minLength,omitempty"`
	Pattern              string                 `json:"pattern,omitempty"`
}

// GenerateSchema generates a JSON Schema for the definition document.
func GenerateSchema() *JSONSchema {
	return &JSONSchema{
		Schema:      "https://json-schema.org/draft/2020-12/schema",
		ID:          "https://github.com/felixgeelhaar/automata/definition.schema.json",
		Title:       "Automata Definition",
		Description: "Finite automata, words and languages for the automata workbench",
		Type:        "object",
		Required:    []string{"version"},
		Properties: map[string]*JSONSchema{
			"version": {
				Type:        "string",
				Description: "The document schema version",
				Enum:        []string{domainconfig.CurrentVersion},
				Default:     domainconfig.CurrentVersion,
			},
			"description": {
				Type:        "string",
				Description: "Describes the document's purpose",
			},
			"automata": {
				Type:        "array",
				Description: "Automata to build",
				Items:       generateAutomatonSchema(),
			},
			"words": {
				Type:        "object",
				Description: "Named words; each rune is a symbol unless separator is set",
				AdditionalProperties: &JSONSchema{
					Type: "string",
				},
			},
			"languages": {
				Type:        "object",
				Description: "Named finite languages",
				AdditionalProperties: &JSONSchema{
					Type:  "array",
					Items: &JSONSchema{Type: "string"},
				},
			},
			"separator": {
				Type:        "string",
				Description: "Splits words into multi-character symbols",
			},
			"telemetry": generateTelemetrySchema(),
		},
	}
}

func generateAutomatonSchema() *JSONSchema {
	kinds := make([]string, 0, 3)
	for _, k := range automaton.AllKinds() {
		kinds = append(kinds, string(k))
	}

	return &JSONSchema{
		Type:        "object",
		Description: "A finite automaton given by its transition table",
		Required:    []string{"name", "kind", "alphabet", "states", "initial"},
		Properties: map[string]*JSONSchema{
			"name": {
				Type:        "string",
				Description: "Registry name",
				Pattern:     `^\S+$`,
			},
			"kind": {
				Type:        "string",
				Description: "Operating mode",
				Enum:        kinds,
			},
			"description": {
				Type: "string",
			},
			"alphabet": {
				Type:        "array",
				Description: "Input symbols; the empty-transition symbol is reserved",
				Items: &JSONSchema{
					Type:      "string",
					MinLength: intPtr(1),
				},
			},
			"states": {
				Type:        "array",
				Description: "State names",
				Items: &JSONSchema{
					Type:      "string",
					MinLength: intPtr(1),
				},
			},
			"initial": {
				Type:        "string",
				Description: "Start state",
			},
			"accepting": {
				Type:        "array",
				Description: "Final states",
				Items:       &JSONSchema{Type: "string"},
			},
			"transitions": {
				Type:        "array",
				Description: "Edges of the transition table",
				Items:       generateTransitionSchema(),
			},
		},
	}
}

func generateTransitionSchema() *JSONSchema {
	return &JSONSchema{
		Type:     "object",
		Required: []string{"from", "symbol", "to"},
		Properties: map[string]*JSONSchema{
			"from": {
				Type:        "string",
				Description: "Source state",
			},
			"symbol": {
				Type:        "string",
				Description: "Input symbol, or " + string(automaton.Epsilon) + " for an empty transition",
			},
			"to": {
				Type:        "string",
				Description: "Destination state",
			},
		},
	}
}

func generateTelemetrySchema() *JSONSchema {
	return &JSONSchema{
		Type:        "object",
		Description: "Observability settings",
		Properties: map[string]*JSONSchema{
			"tracing": {
				Type:        "string",
				Description: "Span exporter",
				Enum:        []string{domainconfig.TracingNone, domainconfig.TracingStdout, domainconfig.TracingOTLP},
				Default:     domainconfig.TracingNone,
			},
			"endpoint": {
				Type:        "string",
				Description: "OTLP collector endpoint",
				Default:     "localhost:4317",
			},
			"service_name": {
				Type:        "string",
				Description: "Reported service name",
			},
		},
	}
}

func intPtr(i int) *int {
	return &i
}

// SchemaJSON returns the JSON Schema as a JSON string.
func SchemaJSON() (string, error) {
	schema := GenerateSchema()
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %w", domainconfig.ErrSchemaGenerationFailed, err)
	}
	return string(data), nil
}
