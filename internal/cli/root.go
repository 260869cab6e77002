// Package cli implements the ledger command-line interface.
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/footballbetting/internal/logging"
	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	dsn       string
	logLevel  string
	jsonMode  bool
}

// app carries the state shared by the subcommands of one invocation.
type app struct {
	flags     rootFlags
	configDir string
	config    types.Config
	logger    *slog.Logger
}

// NewRootCmd creates the top-level "ledger" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: logging.Discard()}
	root := &cobra.Command{
		Use:   "ledger",
		Short: "Football betting ledger",
		Long: "Ledger stores countries, towns, teams, players, games, player statistics,\n" +
			"users and bets in a sqlite or postgres database.",
		Version: Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory for the sqlite database (default: platform data dir)")
	pf.StringVar(&a.flags.backend, "backend", "", "storage backend: sqlite or postgres")
	pf.StringVar(&a.flags.dsn, "dsn", "", "database connection string")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newTablesCmd(a),
		newGetCmd(a),
		newListCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newSeedCmd(a),
	)
	return root
}

// Execute runs the root command, prints any error and returns the process
// exit code.
func Execute() int {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
	}
	return ExitCode(err)
}

// errUsage marks malformed command arguments.
var errUsage = errors.New("usage")

// userErrors are the failures caused by input rather than the environment.
var userErrors = []error{
	errUsage,
	types.ErrValidation,
	types.ErrReference,
	types.ErrReferentialIntegrity,
	types.ErrNotFound,
	types.ErrDuplicateKey,
	types.ErrTableNotFound,
	types.ErrInvalidKey,
	types.ErrInvalidData,
	types.ErrInvalidFilter,
	types.ErrStoreNotEmpty,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
	types.ErrDeletePolicy,
	types.ErrDSNRequired,
}

func isUserError(err error) bool {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// systemError marks a failure of the environment: I/O, the database
// connection, or anything else the user cannot fix by changing arguments.
type systemError struct{ err error }

func (e *systemError) Error() string { return e.err.Error() }
func (e *systemError) Unwrap() error { return e.err }

// run adapts a command body so that unexpected errors exit with
// exitSysError. Argument validation done by cobra never reaches it.
func run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err == nil || isUserError(err) {
			return err
		}
		return &systemError{err: err}
	}
}

// ExitCode maps an error returned by the root command to a process exit
// code.
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var sys *systemError
	if errors.As(err, &sys) {
		return exitSysError
	}
	return exitUserError
}
