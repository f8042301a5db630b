package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/geoquiz/internal/app"
	"github.com/abhisek/geoquiz/internal/llm"
	"github.com/abhisek/geoquiz/internal/questionbank"
	"github.com/abhisek/geoquiz/internal/questiongen"
	"github.com/abhisek/geoquiz/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI. A
// non-nil set is opened straight away.
func runApp(cmd *cobra.Command, set *questionbank.Set) error {
	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	opts := app.Options{
		Sets: st.SetRepo(),
		Play: set,
	}
	if gen, err := newGenerator(cmd.Context(), st.EventRepo()); err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Question generation will be unavailable.")
	} else {
		opts.Generator = gen
	}

	return app.Run(opts)
}

// newGenerator builds a question generator from the environment, logging
// requests to events.
func newGenerator(ctx context.Context, events store.EventRepo) (questiongen.Generator, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	provider, err := llm.NewProviderFromEnv(ctx, events)
	if err != nil {
		return nil, err
	}
	return questiongen.New(provider, questiongen.DefaultConfig()), nil
}
