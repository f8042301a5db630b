package questiongen

import (
	"fmt"

	"github.com/abhisek/geoquiz/internal/questionbank"
)

// Validator checks a generated set. Implementations are stateless.
type Validator interface {
	// Name is a short identifier used in error messages.
	Name() string

	// Validate returns nil when the set passes.
	Validate(set *questionbank.Set, input Input) *ValidationError
}

// ValidationError describes why a generated set was rejected.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool // whether regenerating is likely to fix it
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// Statement length limits, in bytes.
const (
	minStatementLen = 8
	maxStatementLen = 200
)

// StructuralValidator checks the statement count and statement lengths.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(set *questionbank.Set, input Input) *ValidationError {
	if n := len(set.Questions); n != input.Count {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d statements, got %d", input.Count, n),
			Retryable: true,
		}
	}
	for i, q := range set.Questions {
		switch {
		case len(q.Text) < minStatementLen:
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("statement %d is too short", i+1),
				Retryable: true,
			}
		case len(q.Text) > maxStatementLen:
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("statement %d exceeds %d characters", i+1, maxStatementLen),
				Retryable: true,
			}
		}
	}
	return nil
}

// DuplicateValidator rejects repeated statements within the set and
// statements that appear in Input.Avoid.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(set *questionbank.Set, input Input) *ValidationError {
	avoid := make(map[string]bool, len(input.Avoid))
	for _, s := range input.Avoid {
		avoid[questionbank.NormalizeStatement(s)] = true
	}

	seen := make(map[string]int, len(set.Questions))
	for i, q := range set.Questions {
		key := questionbank.NormalizeStatement(q.Text)
		if avoid[key] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("statement %d repeats an existing question: %q", i+1, q.Text),
				Retryable: true,
			}
		}
		if j, ok := seen[key]; ok {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("statements %d and %d are the same", j+1, i+1),
				Retryable: true,
			}
		}
		seen[key] = i
	}
	return nil
}

// balanceThreshold is the set size from which both answers must appear.
const balanceThreshold = 4

// BalanceValidator requires at least one true and one false statement in
// sets of balanceThreshold or more.
type BalanceValidator struct{}

func (v *BalanceValidator) Name() string { return "balance" }

func (v *BalanceValidator) Validate(set *questionbank.Set, _ Input) *ValidationError {
	if len(set.Questions) < balanceThreshold {
		return nil
	}
	trues, falses := set.Counts()
	if trues == 0 || falses == 0 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("set has %d true and %d false statements; include both", trues, falses),
			Retryable: true,
		}
	}
	return nil
}
