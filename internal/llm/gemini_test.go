package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"statements": map[string]any{
				"type":     "array",
				"minItems": 2,
				"maxItems": float64(5),
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text":   map[string]any{"type": "string", "description": "the claim"},
						"answer": map[string]any{"type": "boolean"},
					},
					"required": []string{"text", "answer"},
				},
			},
			"difficulty": map[string]any{"type": "string", "enum": []any{"easy", "hard"}},
		},
		"required": []any{"statements"},
	}

	schema := geminiSchema(def)

	if schema.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT, got %s", schema.Type)
	}
	if len(schema.Required) != 1 || schema.Required[0] != "statements" {
		t.Fatalf("required = %v", schema.Required)
	}

	stmts := schema.Properties["statements"]
	if stmts.Type != genai.TypeArray {
		t.Fatalf("expected ARRAY, got %s", stmts.Type)
	}
	if stmts.MinItems == nil || *stmts.MinItems != 2 {
		t.Fatalf("minItems = %v", stmts.MinItems)
	}
	if stmts.MaxItems == nil || *stmts.MaxItems != 5 {
		t.Fatalf("maxItems = %v", stmts.MaxItems)
	}

	item := stmts.Items
	if item.Properties["answer"].Type != genai.TypeBoolean {
		t.Fatalf("expected BOOLEAN, got %s", item.Properties["answer"].Type)
	}
	if item.Properties["text"].Description != "the claim" {
		t.Fatalf("description = %q", item.Properties["text"].Description)
	}
	if len(item.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %v", item.Required)
	}
	if len(schema.Properties["difficulty"].Enum) != 2 {
		t.Fatalf("enum = %v", schema.Properties["difficulty"].Enum)
	}
}

func TestGeminiSchema_UnknownTypeFallsBackToString(t *testing.T) {
	if got := geminiSchema(map[string]any{"type": "null"}).Type; got != genai.TypeString {
		t.Fatalf("got %s", got)
	}
}
