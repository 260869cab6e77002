package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/footballbetting/internal/paths"
	"github.com/mesh-intelligence/footballbetting/pkg/store"
	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend      string `yaml:"backend"`
	DataDir      string `yaml:"data_dir,omitempty"`
	DeletePolicy string `yaml:"delete_policy"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize ledger storage",
		Long:  "Create the configuration directory and config.yaml, then create the database schema.",
		Args:  cobra.NoArgs,
		RunE:  run(a.runInit),
	}
}

func (a *app) runInit(cmd *cobra.Command, _ []string) error {
	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	path := paths.ConfigFile(a.configDir)
	if err := writeConfigIfMissing(path, a.config); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	b := store.NewBackend(a.logger)
	if err := b.Attach(cmd.Context(), a.config); err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	if err := b.Detach(); err != nil {
		return fmt.Errorf("finalize storage: %w", err)
	}

	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), map[string]string{
			"config":  path,
			"backend": a.config.Backend,
			"target":  a.config.Target(),
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Ledger initialized (%s at %s)\n", a.config.Backend, a.config.Target())
	return nil
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. An existing file is left untouched. The DSN is never written since
// it may carry credentials.
func writeConfigIfMissing(path string, cfg types.Config) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	data, err := yaml.Marshal(&configFile{
		Backend:      cfg.Backend,
		DataDir:      cfg.DataDir,
		DeletePolicy: cfg.EffectiveDeletePolicy(),
	})
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
