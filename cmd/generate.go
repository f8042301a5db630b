package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/geoquiz/internal/questiongen"
	"github.com/abhisek/geoquiz/internal/questionbank"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new question set with the configured LLM",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		count, _ := cmd.Flags().GetInt("count")
		name, _ := cmd.Flags().GetString("name")
		save, _ := cmd.Flags().GetBool("save")
		outPath, _ := cmd.Flags().GetString("out")

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		gen, err := newGenerator(cmd.Context(), st.EventRepo())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		ctx := cmd.Context()
		avoid, err := questiongen.CollectAvoid(ctx, st.SetRepo())
		if err != nil {
			fmt.Fprintln(os.Stderr, "warning: could not read existing sets:", err)
		}

		set, err := gen.Generate(ctx, questiongen.Input{
			Topic: topic,
			Count: count,
			Name:  name,
			Avoid: avoid,
		})
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}

		out := cmd.OutOrStdout()
		trueCount, falseCount := set.Counts()
		fmt.Fprintf(out, "Generated %q: %d statements (%d true, %d false)\n",
			set.Name, len(set.Questions), trueCount, falseCount)
		for i, q := range set.Questions {
			mark := "F"
			if q.Answer {
				mark = "T"
			}
			fmt.Fprintf(out, "%3d. [%s] %s\n", i+1, mark, q.Text)
		}

		if save {
			if err := questiongen.SaveUnique(ctx, st.SetRepo(), set); err != nil {
				return fmt.Errorf("save set: %w", err)
			}
			fmt.Fprintf(out, "Saved as %q. Play it with: geoquiz play --set %s\n", set.Name, set.Name)
		}
		if outPath != "" {
			if err := questionbank.WriteFile(outPath, set); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %s.\n", outPath)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().String("topic", "", "Subject of the statements, e.g. \"rivers of Africa\"")
	generateCmd.Flags().Int("count", 10, fmt.Sprintf("Number of statements (%d-%d)", questiongen.MinCount, questiongen.MaxCount))
	generateCmd.Flags().String("name", "", "Set name (defaults to a slug of the topic)")
	generateCmd.Flags().Bool("save", false, "Save the set to the database")
	generateCmd.Flags().String("out", "", "Also write the set to a YAML or JSON file")
	generateCmd.MarkFlagRequired("topic")
}
