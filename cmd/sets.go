package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/geoquiz/internal/questionbank"
	"github.com/spf13/cobra"
)

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "Manage question sets",
}

var setsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in and stored question sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		infos, err := st.SetRepo().List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list sets: %w", err)
		}

		out := cmd.OutOrStdout()
		builtin := questionbank.Default()
		fmt.Fprintf(out, "%-24s  %-8s  %9s  %s\n", "Name", "Source", "Questions", "Created")
		fmt.Fprintln(out, strings.Repeat("─", 64))
		fmt.Fprintf(out, "%-24s  %-8s  %9d  %s\n", builtin.Name, builtin.Source, len(builtin.Questions), "-")
		for _, info := range infos {
			fmt.Fprintf(out, "%-24s  %-8s  %9d  %s\n",
				info.Name, info.Source, info.QuestionCount,
				info.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var setsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print the statements of a set with their answers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := resolveNamedSet(cmd, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", set.Name, set.Source)
		if set.Description != "" {
			fmt.Fprintln(out, set.Description)
		}
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for i, q := range set.Questions {
			mark := "F"
			if q.Answer {
				mark = "T"
			}
			fmt.Fprintf(out, "%3d. [%s] %s\n", i+1, mark, q.Text)
		}
		return nil
	},
}

var setsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a YAML or JSON question set file into the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := questionbank.LoadFile(args[0])
		if err != nil {
			return err
		}
		if name, _ := cmd.Flags().GetString("name"); name != "" {
			set.Name = name
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.SetRepo().Save(cmd.Context(), set); err != nil {
			return fmt.Errorf("save set: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %q with %d questions.\n", set.Name, len(set.Questions))
		return nil
	},
}

var setsExportCmd = &cobra.Command{
	Use:   "export <name> <file>",
	Short: "Write a set to a YAML or JSON file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := resolveNamedSet(cmd, args[0])
		if err != nil {
			return err
		}
		if err := questionbank.WriteFile(args[1], set); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %q to %s.\n", set.Name, args[1])
		return nil
	},
}

var setsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.SetRepo().Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete set %q: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q.\n", args[0])
		return nil
	},
}

func init() {
	setsImportCmd.Flags().String("name", "", "Store the set under this name instead of the one in the file")

	setsCmd.AddCommand(setsListCmd)
	setsCmd.AddCommand(setsShowCmd)
	setsCmd.AddCommand(setsImportCmd)
	setsCmd.AddCommand(setsExportCmd)
	setsCmd.AddCommand(setsDeleteCmd)
}
