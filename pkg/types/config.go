package types

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds backend selection and parameters for Ledger.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend" env:"BACKEND"`
	DataDir string `json:"data_dir" yaml:"data_dir" env:"DATA_DIR"`

	// DSN is the connection string. When empty, the sqlite backend opens
	// DefaultDatabaseFile inside DataDir.
	DSN string `json:"dsn" yaml:"dsn" env:"DSN"`

	// DeletePolicy is the action applied to relationships that are not
	// fixed as restrict (Town.Country, Player.Team, Bet.Game, ...).
	DeletePolicy string `json:"delete_policy" yaml:"delete_policy" env:"DELETE_POLICY"`
}

// Supported backend names.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Delete policies for non-restrict relationships.
const (
	DeleteCascade  = "cascade"
	DeleteRestrict = "restrict"
)

// DefaultDatabaseFile is the sqlite file created in DataDir when no DSN is
// configured.
const DefaultDatabaseFile = "ledger.db"

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "LEDGER_"

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrDeletePolicy   = errors.New("unknown delete policy")
	ErrDSNRequired    = errors.New("dsn is required for this backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite:   true,
	BackendPostgres: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	switch c.DeletePolicy {
	case "", DeleteCascade, DeleteRestrict:
	default:
		return ErrDeletePolicy
	}
	if c.Backend == BackendPostgres && c.DSN == "" {
		return ErrDSNRequired
	}
	return nil
}

// EffectiveDeletePolicy returns DeletePolicy, defaulting to cascade.
func (c Config) EffectiveDeletePolicy() string {
	if c.DeletePolicy == "" {
		return DeleteCascade
	}
	return c.DeletePolicy
}

// Target returns the connection target: DSN when set, otherwise the default
// database file inside DataDir ("." when DataDir is empty).
func (c Config) Target() string {
	if c.DSN != "" {
		return c.DSN
	}
	dir := c.DataDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, DefaultDatabaseFile)
}

// ApplyEnv overlays LEDGER_* environment variables onto c. Unset variables
// leave the existing values untouched.
func ApplyEnv(c *Config) error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
