package cmd

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/abhisek/geoquiz/internal/plain"
	"github.com/abhisek/geoquiz/internal/questionbank"
	"github.com/abhisek/geoquiz/internal/store"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a question set",
	Long: `Play a question set. Without flags the built-in geography set is used.
--set picks a stored set by name and --file loads a YAML or JSON file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := resolvePlaySet(cmd)
		if err != nil {
			return err
		}
		if shuffle, _ := cmd.Flags().GetBool("shuffle"); shuffle {
			set = questionbank.Shuffle(set, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
		}

		if usePlain, _ := cmd.Flags().GetBool("plain"); usePlain {
			_, err := plain.New(os.Stdin, os.Stdout).Play(set)
			return err
		}
		return runApp(cmd, set)
	},
}

func init() {
	playCmd.Flags().String("set", "", "Name of a stored question set")
	playCmd.Flags().String("file", "", "Path to a YAML or JSON question set file")
	playCmd.Flags().Bool("shuffle", false, "Shuffle the question order")
	playCmd.Flags().Bool("plain", false, "Use a line-by-line prompt instead of the full-screen UI")
	playCmd.MarkFlagsMutuallyExclusive("set", "file")
}

// resolvePlaySet picks the set named by --file or --set, falling back to
// the built-in set.
func resolvePlaySet(cmd *cobra.Command) (*questionbank.Set, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		return questionbank.LoadFile(path)
	}

	name, _ := cmd.Flags().GetString("set")
	if name == "" {
		return questionbank.Default(), nil
	}
	return resolveNamedSet(cmd, name)
}

// resolveNamedSet returns the stored set called name, or the built-in set
// when name is the built-in name and no stored set shadows it.
func resolveNamedSet(cmd *cobra.Command, name string) (*questionbank.Set, error) {
	st, err := openStore(cmd)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	set, err := st.SetRepo().Get(cmd.Context(), name)
	if errors.Is(err, store.ErrSetNotFound) && name == questionbank.DefaultSetName {
		return questionbank.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load set %q: %w", name, err)
	}
	return set, nil
}
