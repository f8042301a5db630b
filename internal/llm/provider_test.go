package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statementSchema() *Schema {
	return &Schema{
		Name:        "statement-test",
		Description: "A single true/false statement",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text":   map[string]any{"type": "string", "minLength": 1},
				"answer": map[string]any{"type": "boolean"},
			},
			"required":             []any{"text", "answer"},
			"additionalProperties": false,
		},
	}
}

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), UserRequest("", "first", nil, 100))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(resp1.Content))
	assert.Equal(t, 10, resp1.Usage.InputTokens)
	assert.Equal(t, StopEnd, resp1.StopReason)
	assert.Equal(t, "mock", resp1.Model)

	resp2, err := mock.Generate(context.Background(), UserRequest("", "second", nil, 100))
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":2}`, string(resp2.Content))
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})

	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail), "got %T", err)
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})

	_, _ = mock.Generate(context.Background(), UserRequest("sys", "hello", nil, 10))

	require.Equal(t, 1, mock.CallCount())
	assert.Equal(t, "sys", mock.Calls[0].System)
	require.Len(t, mock.Calls[0].Messages, 1)
	assert.Equal(t, RoleUser, mock.Calls[0].Messages[0].Role)
	assert.Equal(t, "hello", mock.Calls[0].Messages[0].Content)
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})

	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	assert.True(t, errors.As(err, &rl))
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(
		MockJSON(map[string]any{"text": "Lima is in Peru.", "answer": true}),
		MockJSON(map[string]any{"text": "Lima is in Peru."}),
	)
	req := UserRequest("", "one statement", statementSchema(), 100)

	_, err := mock.Generate(context.Background(), req)
	require.NoError(t, err)

	_, err = mock.Generate(context.Background(), req)
	var invalid *ErrInvalidResponse
	assert.True(t, errors.As(err, &invalid), "got %v", err)
}

func TestMockProvider_AddResponse(t *testing.T) {
	mock := NewMockProvider()
	mock.AddResponse(MockResponse{Content: json.RawMessage(`{"late":true}`)})

	resp, err := mock.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"late":true}`, string(resp.Content))
}

func TestResponseDecode(t *testing.T) {
	resp := &Response{Content: json.RawMessage(`{"text":"Oslo is in Norway.","answer":true}`)}

	var got struct {
		Text   string `json:"text"`
		Answer bool   `json:"answer"`
	}
	require.NoError(t, resp.Decode(&got))
	assert.Equal(t, "Oslo is in Norway.", got.Text)
	assert.True(t, got.Answer)

	bad := &Response{Content: json.RawMessage(`not json`)}
	var invalid *ErrInvalidResponse
	assert.True(t, errors.As(bad.Decode(&got), &invalid))
}

func TestFinish_TruncatedOutput(t *testing.T) {
	_, err := finish(Request{Schema: statementSchema()}, json.RawMessage(`{"text":"Par`), Usage{}, "m", StopMaxTokens)

	var maxTok *ErrMaxTokensExceeded
	assert.True(t, errors.As(err, &maxTok), "got %v", err)
}

func TestPurposeFrom(t *testing.T) {
	assert.Equal(t, "unknown", PurposeFrom(context.Background()))
	assert.Equal(t, "question-set-gen", PurposeFrom(WithPurpose(context.Background(), "question-set-gen")))
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limit", &ErrRateLimit{}, true},
		{"unavailable", &ErrProviderUnavailable{}, true},
		{"invalid response", &ErrInvalidResponse{Err: errors.New("bad")}, true},
		{"max tokens", &ErrMaxTokensExceeded{}, false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, false},
		{"other", errors.New("network"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestClassify(t *testing.T) {
	cause := errors.New("boom")

	var rl *ErrRateLimit
	assert.True(t, errors.As(classify(429, cause), &rl))

	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(classify(503, cause), &unavail))
	assert.True(t, errors.As(classify(400, cause), &unavail))
	assert.ErrorIs(t, classify(503, cause), cause)
}
