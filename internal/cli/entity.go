package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

const keyHelp = "Keys are numeric ids, or <gameID>:<playerID> for player_statistics."

func newTablesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the table names in dependency order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), types.StandardTableNames)
			}
			for _, name := range types.StandardTableNames {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <table> <key>",
		Short: "Print one entity as JSON",
		Long:  "Print one entity as JSON. " + keyHelp,
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string) error {
			table, detach, err := a.openTable(cmd, args[0])
			if err != nil {
				return err
			}
			defer detach()

			entity, err := table.Get(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), entity)
		}),
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <table> [column=value ...]",
		Short: "List entities matching column filters",
		Long: "List entities in key order. Each column=value argument filters by equality;\n" +
			"limit=N and offset=N page the result. Text output prints one JSON object per\n" +
			"line, --json prints a JSON array.",
		Example: "  ledger list players team_id=3 is_injured=false\n  ledger list games limit=10 offset=20",
		Args:    cobra.MinimumNArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string) error {
			filter, err := parseFilter(args[1:])
			if err != nil {
				return err
			}
			table, detach, err := a.openTable(cmd, args[0])
			if err != nil {
				return err
			}
			defer detach()

			entities, err := table.Fetch(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), entities)
			}
			for _, e := range entities {
				line, err := json.Marshal(e)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(line))
			}
			return nil
		}),
	}
}

func newCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create <table> <json|->",
		Short: "Create an entity and print its key",
		Long: "Create an entity from a JSON object given as an argument or on stdin (-).\n" +
			"Surrogate ids are assigned by the store; any id in the JSON is ignored.",
		Example: `  ledger create countries '{"name":"England"}'`,
		Args:    cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string) error {
			return a.store(cmd, args[0], "", args[1], "created")
		}),
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <table> <key> <json|->",
		Short: "Replace the fields of an existing entity",
		Long:  "Replace the non-key fields of an entity from a JSON object. " + keyHelp,
		Args:  cobra.ExactArgs(3),
		RunE: run(func(cmd *cobra.Command, args []string) error {
			return a.store(cmd, args[0], args[1], args[2], "updated")
		}),
	}
}

// store writes one entity through Table.Set and reports its key.
func (a *app) store(cmd *cobra.Command, tableName, key, dataArg, verb string) error {
	data, err := readData(cmd, dataArg)
	if err != nil {
		return err
	}
	table, detach, err := a.openTable(cmd, tableName)
	if err != nil {
		return err
	}
	defer detach()

	stored, err := table.Set(cmd.Context(), key, data)
	if err != nil {
		return err
	}
	return a.report(cmd, verb, tableName, stored)
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <table> <key>",
		Short: "Delete an entity",
		Long: "Delete an entity. Dependents are removed or block the delete according\n" +
			"to the relationship and the configured delete_policy. " + keyHelp,
		Args: cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string) error {
			table, detach, err := a.openTable(cmd, args[0])
			if err != nil {
				return err
			}
			defer detach()

			if err := table.Delete(cmd.Context(), args[1]); err != nil {
				return err
			}
			return a.report(cmd, "deleted", args[0], args[1])
		}),
	}
}

func (a *app) report(cmd *cobra.Command, verb, table, key string) error {
	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), map[string]string{
			"action": verb,
			"table":  table,
			"key":    key,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", verb, table, key)
	return nil
}
