package config

import (
	"encoding/json"
	"testing"
)

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema()

	if schema.Schema != "https://json-schema.org/draft/2020-12/schema" {
		t.Errorf("Schema = %s, want draft/2020-12", schema.Schema)
	}
	if schema.Type != "object" {
		t.Errorf("Type = %s, want object", schema.Type)
	}
	if len(schema.Required) != 1 || schema.Required[0] != "version" {
		t.Errorf("Required = %v, want [version]", schema.Required)
	}

	expectedProps := []string{"version", "description", "automata", "words", "languages", "separator", "telemetry"}
	for _, prop := range expectedProps {
		if _, ok := schema.Properties[prop]; !ok {
			t.Errorf("missing property: %s", prop)
		}
	}
}

func TestGenerateSchema_Automaton(t *testing.T) {
	item := GenerateSchema().Properties["automata"].Items
	if item == nil {
		t.Fatal("automata.items is nil")
	}

	kind := item.Properties["kind"]
	if len(kind.Enum) != 3 {
		t.Errorf("kind.Enum = %v, want 3 kinds", kind.Enum)
	}

	transition := item.Properties["transitions"].Items
	for _, field := range []string{"from", "symbol", "to"} {
		if _, ok := transition.Properties[field]; !ok {
			t.Errorf("transition missing property: %s", field)
		}
	}
	if len(transition.Required) != 3 {
		t.Errorf("transition.Required = %v", transition.Required)
	}
}

func TestSchemaJSON(t *testing.T) {
	out, err := SchemaJSON()
	if err != nil {
		t.Fatalf("SchemaJSON() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("SchemaJSON() is not valid JSON: %v", err)
	}
	if decoded["title"] != "Automata Definition" {
		t.Errorf("title = %v", decoded["title"])
	}
}
