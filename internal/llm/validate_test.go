package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"text":"Cairo is in Egypt.","answer":true}`, false},
		{"missing answer", `{"text":"Cairo is in Egypt."}`, true},
		{"wrong type", `{"text":"Cairo is in Egypt.","answer":"yes"}`, true},
		{"empty text", `{"text":"","answer":false}`, true},
		{"extra field", `{"text":"Cairo is in Egypt.","answer":true,"why":"x"}`, true},
		{"not json", `Cairo is in Egypt.`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(statementSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}
			var invalid *ErrInvalidResponse
			if !errors.As(err, &invalid) {
				t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
			}
			if string(invalid.Content) != tt.raw {
				t.Fatalf("content not preserved: %s", invalid.Content)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestCompileSchema_Cached(t *testing.T) {
	s := statementSchema()
	first, err := compileSchema(s)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	second, err := compileSchema(s)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if first != second {
		t.Fatal("expected cached schema to be reused")
	}
}

func TestCompileSchema_Invalid(t *testing.T) {
	bad := &Schema{Name: "broken-test", Definition: map[string]any{"type": 42}}
	err := validateResponse(bad, json.RawMessage(`{}`))
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}
