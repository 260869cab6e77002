// Package store implements the ledger storage backend: a Backend that owns
// the database connection, typed repositories generated from the
// declarative schema, referential action resolution on delete, JSONL export
// and import, and reference data seeding. SQLite (modernc.org/sqlite) and
// PostgreSQL (github.com/lib/pq) are supported.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/mesh-intelligence/footballbetting/internal/schema"
	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

// Backend implements types.Ledger over a SQL database.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	dialect  dialect
	policy   schema.Policy

	schema *schema.Schema
	logger *slog.Logger
	tables map[string]types.Table

	countries        *Repository[types.Country, int64]
	towns            *Repository[types.Town, int64]
	colors           *Repository[types.Color, int64]
	teams            *Repository[types.Team, int64]
	positions        *Repository[types.Position, int64]
	players          *Repository[types.Player, int64]
	games            *Repository[types.Game, int64]
	playerStatistics *Repository[types.PlayerStatistic, types.PlayerStatisticKey]
	users            *Repository[types.User, int64]
	bets             *Repository[types.Bet, int64]
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for lifecycle and delete resolution
// messages. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBackend creates a detached backend. Call Attach before use.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		schema: schema.Ledger,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.countries = newRepository(b, countryBinding)
	b.towns = newRepository(b, townBinding)
	b.colors = newRepository(b, colorBinding)
	b.teams = newRepository(b, teamBinding)
	b.positions = newRepository(b, positionBinding)
	b.players = newRepository(b, playerBinding)
	b.games = newRepository(b, gameBinding)
	b.playerStatistics = newRepository(b, playerStatisticBinding)
	b.users = newRepository(b, userBinding)
	b.bets = newRepository(b, betBinding)

	b.tables = map[string]types.Table{
		types.TableCountries:        table[types.Country, int64]{b.countries},
		types.TableTowns:            table[types.Town, int64]{b.towns},
		types.TableColors:           table[types.Color, int64]{b.colors},
		types.TableTeams:            table[types.Team, int64]{b.teams},
		types.TablePositions:        table[types.Position, int64]{b.positions},
		types.TablePlayers:          table[types.Player, int64]{b.players},
		types.TableGames:            table[types.Game, int64]{b.games},
		types.TablePlayerStatistics: table[types.PlayerStatistic, types.PlayerStatisticKey]{b.playerStatistics},
		types.TableUsers:            table[types.User, int64]{b.users},
		types.TableBets:             table[types.Bet, int64]{b.bets},
	}
	return b
}

// Attach validates config, opens the store and creates the schema if it
// does not exist yet. For sqlite without a DSN the data directory is
// created on demand.
func (b *Backend) Attach(ctx context.Context, config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	policy, err := schema.PolicyFor(config.DeletePolicy)
	if err != nil {
		return err
	}
	d, err := dialectFor(config.Backend)
	if err != nil {
		return err
	}

	if config.Backend == types.BackendSQLite && config.DSN == "" {
		dir := config.DataDir
		if dir == "" {
			dir = "."
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
	}

	db, err := d.open(config)
	if err != nil {
		return fmt.Errorf("opening %s: %w", d.name(), err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("connecting to %s: %w", d.name(), err)
	}
	if err := createSchema(ctx, db, d, b.schema); err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.dialect = d
	b.policy = policy
	b.config = config
	b.attached = true

	b.logger.Info("ledger attached",
		slog.String("backend", d.name()),
		slog.String("delete_policy", config.EffectiveDeletePolicy()),
	)
	return nil
}

func createSchema(ctx context.Context, db *sql.DB, d dialect, s *schema.Schema) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	for _, stmt := range s.DDL(d) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Detach closes the database. It is idempotent; afterwards every
// operation returns ErrLedgerDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	db := b.db
	b.db = nil
	if err := db.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", b.dialect.name(), err)
	}
	b.logger.Info("ledger detached", slog.String("backend", b.dialect.name()))
	return nil
}

// GetTable returns the untyped accessor for a standard table.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrLedgerDetached
	}
	t, ok := b.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrTableNotFound, name)
	}
	return t, nil
}

// Config returns the configuration of the current attachment.
func (b *Backend) Config() types.Config {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config
}

// acquire returns a connection for reads. The caller must call release
// once the query has been issued.
func (b *Backend) acquire() (conn, func(), error) {
	b.mu.RLock()
	if !b.attached {
		b.mu.RUnlock()
		return conn{}, nil, types.ErrLedgerDetached
	}
	return conn{q: b.db, d: b.dialect}, b.mu.RUnlock, nil
}

// withTx runs fn in one transaction, rolling back when fn fails.
func (b *Backend) withTx(ctx context.Context, fn func(c conn) error) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrLedgerDetached
	}
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(conn{q: tx, d: b.dialect}); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Typed repositories.

func (b *Backend) Countries() *Repository[types.Country, int64] { return b.countries }
func (b *Backend) Towns() *Repository[types.Town, int64] { return b.towns }
func (b *Backend) Colors() *Repository[types.Color, int64] { return b.colors }
func (b *Backend) Teams() *Repository[types.Team, int64] { return b.teams }
func (b *Backend) Positions() *Repository[types.Position, int64] { return b.positions }
func (b *Backend) Players() *Repository[types.Player, int64] { return b.players }
func (b *Backend) Games() *Repository[types.Game, int64] { return b.games }
func (b *Backend) Users() *Repository[types.User, int64] { return b.users }
func (b *Backend) Bets() *Repository[types.Bet, int64] { return b.bets }
func (b *Backend) PlayerStatistics() *Repository[types.PlayerStatistic, types.PlayerStatisticKey] {
	return b.playerStatistics
}

var _ types.Ledger = (*Backend)(nil)
