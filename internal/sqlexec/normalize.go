package sqlexec

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// normalizeRows zips column descriptors with raw driver values into Row maps,
// coercing every scalar into something encoding/json can represent.
func normalizeRows(fields []pgconn.FieldDescription, raw [][]any) []Row {
	rows := make([]Row, 0, len(raw))
	for _, values := range raw {
		row := make(Row, len(fields))
		for i, fd := range fields {
			row[fd.Name] = coerceValue(values[i])
		}
		rows = append(rows, row)
	}
	return rows
}

func coerceValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case bool, int64, float64, string:
		return x
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint32:
		return int64(x)
	case float32:
		return float64(x)
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case pgtype.Numeric:
		return numericToFloat(x)
	case [16]byte:
		// uuid wire format
		return fmt.Sprintf("%x-%x-%x-%x-%x", x[0:4], x[4:6], x[6:8], x[8:10], x[10:16])
	default:
		return fmt.Sprint(x)
	}
}

// numericToFloat renders an exact decimal as a JSON number, trimming
// insignificant zeros (12.50 marshals as 12.5). NaN and infinities have no
// JSON representation and normalize to nil.
func numericToFloat(n pgtype.Numeric) any {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite || n.Int == nil {
		return nil
	}
	return decimal.NewFromBigInt(n.Int, n.Exp).InexactFloat64()
}
