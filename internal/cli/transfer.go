package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write every table to <dir>/<table>.jsonl",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string) error {
			b, err := a.attachBackend(cmd)
			if err != nil {
				return err
			}
			defer b.Detach()

			m, err := b.Export(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), m)
			}
			total := 0
			for _, n := range m.Rows {
				total += n
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d rows from %d tables to %s (export %s)\n",
				total, len(m.Rows), args[0], m.ID)
			return nil
		}),
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Load <dir>/<table>.jsonl files into an empty store",
		Long: "Load the files written by export. The store must be empty. Rows that are\n" +
			"malformed, invalid, repeat a key or reference a missing row are skipped and\n" +
			"counted.",
		Args: cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string) error {
			b, err := a.attachBackend(cmd)
			if err != nil {
				return err
			}
			defer b.Detach()

			sum, err := b.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), sum)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TABLE\tIMPORTED\tSKIPPED")
			for _, name := range types.StandardTableNames {
				t := sum.Tables[name]
				fmt.Fprintf(w, "%s\t%d\t%d\n", name, t.Imported, t.Skipped)
			}
			return w.Flush()
		}),
	}
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the reference playing positions when none exist",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, _ []string) error {
			b, err := a.attachBackend(cmd)
			if err != nil {
				return err
			}
			defer b.Detach()

			n, err := b.SeedReference(cmd.Context())
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]int{"inserted": n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d positions\n", n)
			return nil
		}),
	}
}
