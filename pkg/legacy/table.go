package legacy

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Table is a fully read legacy table. A table that does not exist has no
// columns.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// Exists reports whether the table was found.
func (t Table) Exists() bool {
	return len(t.Columns) > 0
}

// Require returns ErrSchemaMismatch unless the table has every column.
func (t Table) Require(columns ...string) error {
	if !t.Exists() {
		return schemaMismatch(t.Name, "")
	}
	for _, c := range columns {
		if !slices.Contains(t.Columns, c) {
			return schemaMismatch(t.Name, c)
		}
	}
	return nil
}

// Row is one record keyed by column name. Values are whatever the driver
// returned: nil, int64, float64, bool, string, []byte or time.Time.
type Row map[string]any

// Has reports whether the column is present and not null.
func (r Row) Has(column string) bool {
	v, ok := r[column]
	return ok && v != nil
}

// String returns the column as text, "" when null.
func (r Row) String(column string) string {
	switch v := r[column].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return ""
	}
}

// Int64 returns the column as an integer, or def when null or garbled.
func (r Row) Int64(column string, def int64) int64 {
	switch v := r[column].(type) {
	case int64:
		return v
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return def
		}
		return int64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string, []byte:
		s := strings.TrimSpace(r.String(column))
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if d, ok := parseDecimal(s); ok {
			return d.IntPart()
		}
	}
	return def
}

// Decimal returns the column as an exact decimal, zero when null or garbled.
// Text accepts a comma as the decimal separator.
func (r Row) Decimal(column string) decimal.Decimal {
	switch v := r[column].(type) {
	case int64:
		return decimal.NewFromInt(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(v)
	case string, []byte:
		if d, ok := parseDecimal(r.String(column)); ok {
			return d
		}
	}
	return decimal.Zero
}

// Bool returns the column as a flag. Numbers are true when non-zero.
func (r Row) Bool(column string, def bool) bool {
	switch v := r[column].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string, []byte:
		return parseBool(r.String(column), def)
	}
	return def
}

// Millis returns an epoch-millisecond column as time, the zero time when
// null, zero or garbled.
func (r Row) Millis(column string) time.Time {
	if t, ok := r[column].(time.Time); ok {
		return t
	}
	ms := r.Int64(column, 0)
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return decimal.Zero, false
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func parseBool(s string, def bool) bool {
	s = strings.TrimSpace(s)
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n != 0
	}
	return def
}
