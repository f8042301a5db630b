package questiongen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/geoquiz/internal/llm"
	"github.com/abhisek/geoquiz/internal/questionbank"
)

type statement struct {
	Text   string `json:"text"`
	Answer bool   `json:"answer"`
}

func setResponse(title string, stmts ...statement) llm.MockResponse {
	if stmts == nil {
		stmts = []statement{}
	}
	return llm.MockJSON(map[string]any{"title": title, "statements": stmts})
}

func riverStatements() []statement {
	return []statement{
		{"The Nile flows into the Mediterranean Sea.", true},
		{"The Amazon flows into the Pacific Ocean.", false},
		{"The Danube passes through Budapest.", true},
		{"The Thames flows through Paris.", false},
	}
}

func TestGenerate_HappyPath(t *testing.T) {
	mock := llm.NewMockProvider(setResponse("World rivers", riverStatements()...))
	gen := New(mock, DefaultConfig())

	set, err := gen.Generate(context.Background(), Input{Topic: "  World Rivers ", Count: 4})
	require.NoError(t, err)

	assert.Equal(t, "world-rivers", set.Name)
	assert.Equal(t, "World rivers", set.Description)
	assert.Equal(t, questionbank.SourceLLM, set.Source)
	assert.False(t, set.CreatedAt.IsZero())
	require.Len(t, set.Questions, 4)
	assert.Equal(t, "The Nile flows into the Mediterranean Sea.", set.Questions[0].Text)
	assert.True(t, set.Questions[0].Answer)
	assert.False(t, set.Questions[1].Answer)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, SetSchema, req.Schema)
	assert.Equal(t, systemPrompt, req.System)
	assert.Contains(t, req.Messages[0].Content, "Topic: World Rivers")
	assert.Contains(t, req.Messages[0].Content, "Number of statements: 4")
}

func TestGenerate_ExplicitName(t *testing.T) {
	mock := llm.NewMockProvider(setResponse("", riverStatements()...))
	gen := New(mock, DefaultConfig())

	set, err := gen.Generate(context.Background(), Input{Topic: "rivers", Count: 4, Name: "my-rivers"})
	require.NoError(t, err)
	assert.Equal(t, "my-rivers", set.Name)
	assert.Equal(t, "rivers", set.Description)
}

func TestGenerate_InputValidation(t *testing.T) {
	gen := New(llm.NewMockProvider(), DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{Topic: "   ", Count: 4})
	assert.ErrorIs(t, err, ErrEmptyTopic)

	_, err = gen.Generate(context.Background(), Input{Topic: "deserts", Count: 0})
	assert.ErrorContains(t, err, "count must be between")

	_, err = gen.Generate(context.Background(), Input{Topic: "deserts", Count: MaxCount + 1})
	assert.ErrorContains(t, err, "count must be between")
}

func TestGenerate_RetriesWithFeedback(t *testing.T) {
	mock := llm.NewMockProvider(
		setResponse("Rivers", riverStatements()[:3]...),
		setResponse("Rivers", riverStatements()...),
	)
	gen := New(mock, DefaultConfig())

	set, err := gen.Generate(context.Background(), Input{Topic: "rivers", Count: 4})
	require.NoError(t, err)
	assert.Len(t, set.Questions, 4)

	require.Equal(t, 2, mock.CallCount())
	assert.NotContains(t, mock.Calls[0].Messages[0].Content, "rejected")
	assert.Contains(t, mock.Calls[1].Messages[0].Content, "expected 4 statements, got 3")
}

func TestGenerate_GivesUpAfterMaxAttempts(t *testing.T) {
	allTrue := []statement{
		{"Lima is the capital of Peru.", true},
		{"Oslo is the capital of Norway.", true},
		{"Rome is the capital of Italy.", true},
		{"Cairo is the capital of Egypt.", true},
	}
	mock := llm.NewMockProvider(setResponse("Capitals", allTrue...), setResponse("Capitals", allTrue...))
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{Topic: "capitals", Count: 4})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, "balance", verr.Validator)
	assert.Equal(t, 2, mock.CallCount())
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{Topic: "rivers", Count: 4})

	var unavail *llm.ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail))
	assert.Equal(t, 1, mock.CallCount())
}

func TestGenerate_SchemaViolation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{"statements": []statement{}}))
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{Topic: "rivers", Count: 1})

	var invalid *llm.ErrInvalidResponse
	assert.True(t, errors.As(err, &invalid), "got %v", err)
}

func TestGenerate_AvoidListInPrompt(t *testing.T) {
	mock := llm.NewMockProvider(setResponse("Rivers", riverStatements()...))
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{
		Topic: "rivers",
		Count: 4,
		Avoid: []string{"The Volga is in Russia."},
	})
	require.NoError(t, err)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "1. The Volga is in Russia.")
}

func TestGenerate_RejectsAvoidedStatement(t *testing.T) {
	mock := llm.NewMockProvider(setResponse("Rivers", riverStatements()...))
	cfg := DefaultConfig()
	cfg.MaxAttempts = 1
	gen := New(mock, cfg)

	_, err := gen.Generate(context.Background(), Input{
		Topic: "rivers",
		Count: 4,
		Avoid: []string{"the danube passes   through budapest."},
	})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "duplicate", verr.Validator)
}

func TestGenerate_UsesPurpose(t *testing.T) {
	var purpose string
	p := purposeRecorder{inner: llm.NewMockProvider(setResponse("Rivers", riverStatements()...)), got: &purpose}
	gen := New(p, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{Topic: "rivers", Count: 4})
	require.NoError(t, err)
	assert.Equal(t, Purpose, purpose)
}

type purposeRecorder struct {
	inner llm.Provider
	got   *string
}

func (p purposeRecorder) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	*p.got = llm.PurposeFrom(ctx)
	return p.inner.Generate(ctx, req)
}

func (p purposeRecorder) ModelID() string { return p.inner.ModelID() }

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"World Rivers", "world-rivers"},
		{"  Capitals of Europe!! ", "capitals-of-europe"},
		{"K2 & Everest", "k2-everest"},
		{"日本", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.in), "slugify(%q)", tt.in)
	}
}

func TestBuildAvoid(t *testing.T) {
	assert.Equal(t, "None", buildAvoid(nil, 5))

	var many []string
	for i := range 10 {
		many = append(many, fmt.Sprintf("Statement %d.", i))
	}
	out := buildAvoid(many, 3)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1. Statement 7.", lines[0])
	assert.Equal(t, "3. Statement 9.", lines[2])
}
