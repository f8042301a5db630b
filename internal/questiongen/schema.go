package questiongen

import "github.com/abhisek/geoquiz/internal/llm"

// SetSchema is the response format for a generated true/false set.
var SetSchema = &llm.Schema{
	Name:        "true-false-set",
	Description: "A titled list of geography statements, each either true or false",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "A short human-readable title for the set",
			},
			"statements": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text": map[string]any{
							"type":        "string",
							"description": "A single declarative sentence that is unambiguously true or false",
						},
						"answer": map[string]any{
							"type":        "boolean",
							"description": "Whether the statement is true",
						},
					},
					"required":             []any{"text", "answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "statements"},
		"additionalProperties": false,
	},
}

// setOutput is the decoded model response before validation.
type setOutput struct {
	Title      string `json:"title"`
	Statements []struct {
		Text   string `json:"text"`
		Answer bool   `json:"answer"`
	} `json:"statements"`
}
