package schema

import (
	"fmt"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

// Record holds column values keyed by column name. Values use the Go type of
// the column kind: int64 for keys, references and integers, bool, string,
// decimal.Decimal and time.Time.
type Record map[string]any

// Validate checks r against the column constraints of t. Store-assigned keys
// are skipped. The first violation is returned as a *types.ValidationError
// naming the entity field.
func Validate(t *Table, r Record) error {
	for _, c := range t.Columns {
		if c.Kind == KindKey {
			continue
		}
		if reason := check(c, r[c.Name]); reason != "" {
			return &types.ValidationError{Entity: t.Name, Field: c.Field, Reason: reason}
		}
	}
	return nil
}

func check(c Column, v any) string {
	if v == nil {
		if c.Required {
			return "is required"
		}
		return ""
	}
	switch c.Kind {
	case KindRef:
		n, ok := v.(int64)
		if !ok {
			return typeReason(v)
		}
		if n == 0 && c.Required {
			return "is required"
		}
		if n < 0 {
			return "must be a positive key"
		}
	case KindInt:
		n, ok := v.(int64)
		if !ok {
			return typeReason(v)
		}
		if c.Check == CheckNonNegative && n < 0 {
			return "must not be negative"
		}
		if c.Check == CheckPositive && n <= 0 {
			return "must be positive"
		}
	case KindBool:
		if _, ok := v.(bool); !ok {
			return typeReason(v)
		}
	case KindText:
		s, ok := v.(string)
		if !ok {
			return typeReason(v)
		}
		return checkText(c, s)
	case KindDecimal:
		d, ok := v.(decimal.Decimal)
		if !ok {
			return typeReason(v)
		}
		if c.Check == CheckPositive && !d.IsPositive() {
			return "must be positive"
		}
		if c.Check == CheckNonNegative && d.IsNegative() {
			return "must not be negative"
		}
	case KindTime:
		ts, ok := v.(time.Time)
		if !ok {
			return typeReason(v)
		}
		if ts.IsZero() && c.Required {
			return "is required"
		}
	}
	return ""
}

func checkText(c Column, s string) string {
	if s == "" {
		if c.Required {
			return "is required"
		}
		return ""
	}
	if c.ASCII && !isASCII(s) {
		return "must contain only ASCII characters"
	}
	if !utf8.ValidString(s) {
		return "must be valid UTF-8"
	}
	if c.MaxLen > 0 && utf8.RuneCountInString(s) > c.MaxLen {
		return fmt.Sprintf("exceeds maximum length of %d", c.MaxLen)
	}
	if len(c.Enum) > 0 && !slices.Contains(c.Enum, s) {
		return fmt.Sprintf("must be one of %v", c.Enum)
	}
	return ""
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func typeReason(v any) string {
	return fmt.Sprintf("unexpected value type %T", v)
}
