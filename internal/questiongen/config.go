package questiongen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated set. The first failure
	// stops the chain.
	Validators []Validator

	// MaxAttempts bounds how often a set is regenerated after a retryable
	// validation failure. Provider-level retries are separate.
	MaxAttempts int

	MaxTokens   int
	Temperature float64

	// MaxAvoid caps how many Input.Avoid statements go into the prompt.
	MaxAvoid int
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DuplicateValidator{},
			&BalanceValidator{},
		},
		MaxAttempts: 2,
		MaxTokens:   2048,
		Temperature: 0.7,
		MaxAvoid:    40,
	}
}
