package store

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/footballbetting/internal/schema"
	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

// Decimals and timestamps are stored as canonical text so that both engines
// round-trip them exactly.
const timeLayout = time.RFC3339Nano

// encodeValue converts a record value into a driver argument.
func encodeValue(v any) any {
	switch x := v.(type) {
	case decimal.Decimal:
		return x.String()
	case time.Time:
		return x.UTC().Format(timeLayout)
	}
	return v
}

// scanTargets returns one scan destination per column of t.
func scanTargets(t *schema.Table) []any {
	dest := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		switch c.Kind {
		case schema.KindKey, schema.KindRef, schema.KindInt:
			dest[i] = new(int64)
		case schema.KindBool:
			dest[i] = new(bool)
		default:
			dest[i] = new(string)
		}
	}
	return dest
}

// scanRecord reads one row selected with t.ColumnNames() into a Record.
func scanRecord(t *schema.Table, row interface{ Scan(...any) error }) (schema.Record, error) {
	dest := scanTargets(t)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	rec := make(schema.Record, len(t.Columns))
	for i, c := range t.Columns {
		switch c.Kind {
		case schema.KindKey, schema.KindRef, schema.KindInt:
			rec[c.Name] = *dest[i].(*int64)
		case schema.KindBool:
			rec[c.Name] = *dest[i].(*bool)
		case schema.KindText:
			rec[c.Name] = *dest[i].(*string)
		case schema.KindDecimal:
			d, err := decimal.NewFromString(*dest[i].(*string))
			if err != nil {
				return nil, fmt.Errorf("parsing %s.%s: %w", t.Name, c.Name, err)
			}
			rec[c.Name] = d
		case schema.KindTime:
			ts, err := time.Parse(timeLayout, *dest[i].(*string))
			if err != nil {
				return nil, fmt.Errorf("parsing %s.%s: %w", t.Name, c.Name, err)
			}
			rec[c.Name] = ts.UTC()
		}
	}
	return rec, nil
}

// coerce converts a loosely typed value (filter argument, decoded JSON) into
// the record type of column c.
func coerce(c schema.Column, v any) (any, error) {
	switch c.Kind {
	case schema.KindKey, schema.KindRef, schema.KindInt:
		n, ok := toInt64(v)
		if !ok {
			return nil, fmt.Errorf("%s: expected integer, got %T", c.Name, v)
		}
		return n, nil
	case schema.KindBool:
		switch x := v.(type) {
		case bool:
			return x, nil
		case string:
			b, err := strconv.ParseBool(x)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", c.Name, err)
			}
			return b, nil
		}
	case schema.KindText:
		switch x := v.(type) {
		case string:
			return x, nil
		case types.Prediction:
			return string(x), nil
		}
	case schema.KindDecimal:
		switch x := v.(type) {
		case decimal.Decimal:
			return x, nil
		case string:
			return decimal.NewFromString(x)
		case json.Number:
			return decimal.NewFromString(x.String())
		case float64:
			return decimal.NewFromFloat(x), nil
		case int:
			return decimal.NewFromInt(int64(x)), nil
		case int64:
			return decimal.NewFromInt(x), nil
		}
	case schema.KindTime:
		switch x := v.(type) {
		case time.Time:
			return x.UTC(), nil
		case string:
			ts, err := time.Parse(timeLayout, x)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", c.Name, err)
			}
			return ts.UTC(), nil
		}
	}
	return nil, fmt.Errorf("%s: unsupported value type %T", c.Name, v)
}

// toInt64 accepts the integer shapes produced by Go callers, encoding/json
// and the CLI.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	return 0, false
}

func recInt64(r schema.Record, name string) int64 {
	v, _ := r[name].(int64)
	return v
}

func recInt(r schema.Record, name string) int {
	return int(recInt64(r, name))
}

func recString(r schema.Record, name string) string {
	v, _ := r[name].(string)
	return v
}

func recBool(r schema.Record, name string) bool {
	v, _ := r[name].(bool)
	return v
}

func recDecimal(r schema.Record, name string) decimal.Decimal {
	v, _ := r[name].(decimal.Decimal)
	return v
}

func recTime(r schema.Record, name string) time.Time {
	v, _ := r[name].(time.Time)
	return v
}
