package questiongen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/geoquiz/internal/llm"
	"github.com/abhisek/geoquiz/internal/questionbank"
	"github.com/abhisek/geoquiz/internal/quiz"
)

// Purpose is the event-log label for generation requests.
const Purpose = "question-set-gen"

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	now      func() time.Time
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &LLMGenerator{provider: provider, config: cfg, now: time.Now}
}

// Generate asks the model for input.Count statements about input.Topic.
// A retryable validation failure triggers another attempt with the
// rejection reason added to the prompt, up to Config.MaxAttempts.
func (g *LLMGenerator) Generate(ctx context.Context, input Input) (*questionbank.Set, error) {
	input.Topic = strings.TrimSpace(input.Topic)
	if input.Topic == "" {
		return nil, ErrEmptyTopic
	}
	if input.Count < MinCount || input.Count > MaxCount {
		return nil, fmt.Errorf("count must be between %d and %d, got %d", MinCount, MaxCount, input.Count)
	}

	ctx = llm.WithPurpose(ctx, Purpose)

	var (
		feedback string
		lastErr  error
	)
	for range g.config.MaxAttempts {
		set, err := g.attempt(ctx, input, feedback)
		if err == nil {
			return set, nil
		}
		lastErr = err

		var verr *ValidationError
		if !errors.As(err, &verr) || !verr.Retryable {
			return nil, err
		}
		feedback = verr.Message
	}
	return nil, lastErr
}

func (g *LLMGenerator) attempt(ctx context.Context, input Input, feedback string) (*questionbank.Set, error) {
	req := llm.UserRequest(systemPrompt, buildUserMessage(input, g.config, feedback), SetSchema, g.config.MaxTokens)
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var out setOutput
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	set := &questionbank.Set{
		Name:        input.Name,
		Description: strings.TrimSpace(out.Title),
		Source:      questionbank.SourceLLM,
		CreatedAt:   g.now().UTC(),
	}
	if set.Name == "" {
		set.Name = slugify(input.Topic)
	}
	if set.Name == "" {
		set.Name = "generated"
	}
	if set.Description == "" {
		set.Description = input.Topic
	}
	for _, s := range out.Statements {
		set.Questions = append(set.Questions, quiz.Question{
			Text:   strings.TrimSpace(s.Text),
			Answer: s.Answer,
		})
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(set, input); verr != nil {
			return nil, verr
		}
	}
	if err := questionbank.Validate(set); err != nil {
		return nil, fmt.Errorf("generated set: %w", err)
	}

	return set, nil
}
