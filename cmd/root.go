package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/abhisek/geoquiz/internal/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const defaultEnvFile = ".env"

var rootCmd = &cobra.Command{
	Use:   "geoquiz",
	Short: "True/false geography quiz for the terminal",
	Long:  "GeoQuiz asks true/false geography statements one at a time, scores your answers and can generate new question sets with an LLM.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnvFile(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides GEOQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("env-file", defaultEnvFile, "File with GEOQUIZ_* settings such as API keys")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(setsCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then GEOQUIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}

// loadEnvFile adds the variables from --env-file to the environment without
// overriding ones already set. A missing default file is fine; a missing
// file given explicitly is an error.
func loadEnvFile(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("env-file")
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("env-file") {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}
