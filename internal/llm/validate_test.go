package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func verdictSchema() *Schema {
	return &Schema{
		Name:        "answer-verdict",
		Description: "Whether a free-text answer matches the expected answer",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"correct":    map[string]any{"type": "boolean"},
				"confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
				"reasoning":  map[string]any{"type": "string"},
			},
			"required":             []any{"correct", "confidence", "reasoning"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"correct":true,"confidence":0.9,"reasoning":"same"}`, false},
		{"missing required", `{"correct":true}`, true},
		{"wrong type", `{"correct":"yes","confidence":0.9,"reasoning":"x"}`, true},
		{"out of range", `{"correct":true,"confidence":1.5,"reasoning":"x"}`, true},
		{"extra property", `{"correct":true,"confidence":0.5,"reasoning":"x","extra":1}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(verdictSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got: %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_CompiledOncePerName(t *testing.T) {
	s := verdictSchema()
	s.Name = "answer-verdict-cache-test"
	if err := validateResponse(s, json.RawMessage(`{"correct":true,"confidence":1,"reasoning":"r"}`)); err != nil {
		t.Fatal(err)
	}
	if _, ok := compiled.Load(s.Name); !ok {
		t.Fatal("expected compiled schema to be cached")
	}
}
