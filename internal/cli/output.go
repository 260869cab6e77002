package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/footballbetting/pkg/store"
	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

// validTableNamesStr is a comma-separated list of valid table names for
// error output.
var validTableNamesStr = strings.Join(types.StandardTableNames, ", ")

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// attachBackend creates a backend for the resolved configuration and
// attaches it. The caller must defer Detach.
func (a *app) attachBackend(cmd *cobra.Command) (*store.Backend, error) {
	b := store.NewBackend(a.logger)
	if err := b.Attach(cmd.Context(), a.config); err != nil {
		return nil, fmt.Errorf("attach ledger: %w", err)
	}
	return b, nil
}

// openTable attaches the backend and looks up a table. The returned detach
// function must be called when done.
func (a *app) openTable(cmd *cobra.Command, name string) (types.Table, func(), error) {
	b, err := a.attachBackend(cmd)
	if err != nil {
		return nil, nil, err
	}
	table, err := b.GetTable(name)
	if err != nil {
		b.Detach()
		return nil, nil, fmt.Errorf("%w (valid: %s)", err, validTableNamesStr)
	}
	return table, func() { b.Detach() }, nil
}

// readData returns the entity JSON given on the command line, or read from
// stdin when arg is "-".
func readData(cmd *cobra.Command, arg string) (json.RawMessage, error) {
	if arg != "-" {
		return json.RawMessage(arg), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return json.RawMessage(data), nil
}

// parseFilter turns key=value arguments into a filter. Values are decoded
// as JSON when possible (numbers, booleans, quoted strings) and taken
// verbatim otherwise.
func parseFilter(args []string) (types.Filter, error) {
	if len(args) == 0 {
		return nil, nil
	}
	filter := make(types.Filter, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q is not key=value", types.ErrInvalidFilter, arg)
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		filter[key] = value
	}
	return filter, nil
}
