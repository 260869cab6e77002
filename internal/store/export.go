package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/footballbetting/internal/schema"
	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

// ManifestFile is written next to the table files by Export.
const ManifestFile = "manifest.json"

// Manifest describes one export.
type Manifest struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Backend   string         `json:"backend"`
	Rows      map[string]int `json:"rows"`
}

// TableImport counts the outcome of importing one table file.
type TableImport struct {
	Imported int `json:"imported"`
	// Skipped counts malformed lines and rows that failed validation,
	// did not resolve their references or repeated a key.
	Skipped int `json:"skipped"`
}

// ImportSummary reports the outcome of Import per table.
type ImportSummary struct {
	Tables map[string]TableImport `json:"tables"`
}

func jsonlPath(dir, table string) string {
	return filepath.Join(dir, table+".jsonl")
}

// Export writes every table to <dir>/<table>.jsonl, one JSON object per row
// keyed by column name, and a manifest. All tables are read in one
// transaction.
func (b *Backend) Export(ctx context.Context, dir string) (Manifest, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Manifest{}, fmt.Errorf("creating export dir: %w", err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return Manifest{}, fmt.Errorf("generating export id: %w", err)
	}
	m := Manifest{
		ID:        id.String(),
		CreatedAt: time.Now().UTC(),
		Rows:      make(map[string]int),
	}

	err = b.withTx(ctx, func(c conn) error {
		m.Backend = c.d.name()
		for _, t := range b.schema.Tables() {
			records, err := exportTable(ctx, c, t)
			if err != nil {
				return err
			}
			if err := writeJSONL(jsonlPath(dir, t.Name), records); err != nil {
				return err
			}
			m.Rows[t.Name] = len(records)
		}
		return nil
	})
	if err != nil {
		return Manifest{}, err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return Manifest{}, fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), append(data, '\n'), 0o644); err != nil {
		return Manifest{}, fmt.Errorf("writing manifest: %w", err)
	}
	b.logger.Info("ledger exported", slog.String("id", m.ID), slog.String("dir", dir))
	return m, nil
}

func exportTable(ctx context.Context, c conn, t *schema.Table) ([]json.RawMessage, error) {
	q, args, err := selectQuery(t, c.d, nil)
	if err != nil {
		return nil, err
	}
	rows, err := c.query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("exporting %s: %w", t.Name, err)
	}
	defer rows.Close()

	var out []json.RawMessage
	for rows.Next() {
		rec, err := scanRecord(t, rows)
		if err != nil {
			return nil, fmt.Errorf("exporting %s: %w", t.Name, err)
		}
		obj := make(map[string]any, len(rec))
		for k, v := range rec {
			obj[k] = encodeValue(v)
		}
		line, err := json.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("encoding %s row: %w", t.Name, err)
		}
		out = append(out, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exporting %s: %w", t.Name, err)
	}
	return out, nil
}

// Import loads <dir>/<table>.jsonl files into an empty store, in dependency
// order and inside one transaction. Missing files are treated as empty
// tables. Rows keep their exported keys; rows that fail validation, do not
// resolve a reference or repeat a key are skipped and counted.
func (b *Backend) Import(ctx context.Context, dir string) (ImportSummary, error) {
	sum := ImportSummary{Tables: make(map[string]TableImport)}

	err := b.withTx(ctx, func(c conn) error {
		for _, t := range b.schema.Tables() {
			found, err := exists(ctx, c, t.Name, "1 = 1")
			if err != nil {
				return err
			}
			if found {
				return fmt.Errorf("%w: %s has rows", types.ErrStoreNotEmpty, t.Name)
			}
		}
		for _, t := range b.schema.Tables() {
			res, err := importTable(ctx, c, t, jsonlPath(dir, t.Name))
			if err != nil {
				return err
			}
			if err := c.d.afterImport(ctx, c, t); err != nil {
				return err
			}
			sum.Tables[t.Name] = res
		}
		return nil
	})
	if err != nil {
		return ImportSummary{}, err
	}
	for name, res := range sum.Tables {
		b.logger.Info("table imported",
			slog.String("table", name),
			slog.Int("imported", res.Imported),
			slog.Int("skipped", res.Skipped),
		)
	}
	return sum, nil
}

func importTable(ctx context.Context, c conn, t *schema.Table, path string) (TableImport, error) {
	var res TableImport
	lines, malformed, err := readJSONL(path)
	if errors.Is(err, os.ErrNotExist) {
		return res, nil
	}
	if err != nil {
		return res, err
	}
	res.Skipped = malformed

	names := t.ColumnNames()
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.Name, strings.Join(names, ", "), placeholders(len(names)))

	for _, line := range lines {
		rec, ok := decodeRecord(t, line)
		if !ok || schema.Validate(t, rec) != nil {
			res.Skipped++
			continue
		}
		if err := checkReferences(ctx, c, t, rec); err != nil {
			var refErr *types.ReferenceError
			if errors.As(err, &refErr) {
				res.Skipped++
				continue
			}
			return res, err
		}
		keyArgs := make([]any, len(t.Key))
		for i, k := range t.Key {
			keyArgs[i] = rec[k]
		}
		dup, err := exists(ctx, c, t.Name, keyWhere(t), keyArgs...)
		if err != nil {
			return res, err
		}
		if dup {
			res.Skipped++
			continue
		}
		args := make([]any, len(names))
		for i, n := range names {
			args[i] = encodeValue(rec[n])
		}
		if _, err := c.exec(ctx, insert, args...); err != nil {
			return res, translate(c.d, t, "", err)
		}
		res.Imported++
	}
	return res, nil
}

// decodeRecord converts one JSONL object into a Record. Every key column
// must be present and positive.
func decodeRecord(t *schema.Table, line json.RawMessage) (schema.Record, bool) {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return nil, false
	}
	rec := make(schema.Record, len(t.Columns))
	for _, col := range t.Columns {
		v, present := obj[col.Name]
		if !present || v == nil {
			if t.IsKey(col.Name) {
				return nil, false
			}
			continue
		}
		val, err := coerce(col, v)
		if err != nil {
			return nil, false
		}
		rec[col.Name] = val
	}
	for _, k := range t.Key {
		if n, _ := rec[k].(int64); n <= 0 {
			return nil, false
		}
	}
	return rec, true
}
