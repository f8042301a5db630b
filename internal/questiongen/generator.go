// Package questiongen builds new true/false question sets with an LLM.
package questiongen

import (
	"context"
	"errors"

	"github.com/abhisek/geoquiz/internal/questionbank"
)

// Count limits for a generated set.
const (
	MinCount = 1
	MaxCount = 30
)

// ErrEmptyTopic is returned when Input.Topic is blank.
var ErrEmptyTopic = errors.New("topic is required")

// Input describes the set to generate.
type Input struct {
	// Topic is a free-form subject, e.g. "rivers of Africa".
	Topic string

	// Count is the number of statements wanted, MinCount to MaxCount.
	Count int

	// Name overrides the set name. Defaults to a slug of Topic.
	Name string

	// Avoid lists statements the model must not repeat, typically the
	// contents of sets the player already has.
	Avoid []string
}

// Generator produces validated question sets.
type Generator interface {
	// Generate returns a set with Source questionbank.SourceLLM. Every
	// configured validator has passed on the returned set.
	Generate(ctx context.Context, input Input) (*questionbank.Set, error)
}
