package sqlexec

import (
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceNumericDropsTrailingZeros(t *testing.T) {
	n := pgtype.Numeric{Int: big.NewInt(1250), Exp: -2, Valid: true}

	got := coerceValue(n)
	require.IsType(t, float64(0), got)
	assert.Equal(t, 12.5, got)

	out, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, "12.5", string(out))
}

func TestCoerceNumericSpecialValues(t *testing.T) {
	assert.Nil(t, coerceValue(pgtype.Numeric{NaN: true, Valid: true}))
	assert.Nil(t, coerceValue(pgtype.Numeric{InfinityModifier: pgtype.Infinity, Valid: true}))
	assert.Nil(t, coerceValue(pgtype.Numeric{Valid: false}))
}

func TestCoerceScalars(t *testing.T) {
	assert.Nil(t, coerceValue(nil))
	assert.Equal(t, int64(7), coerceValue(int32(7)))
	assert.Equal(t, int64(7), coerceValue(int16(7)))
	assert.Equal(t, float64(float32(1.5)), coerceValue(float32(1.5)))
	assert.Equal(t, "bytes", coerceValue([]byte("bytes")))
	assert.Equal(t, true, coerceValue(true))
	assert.Equal(t, "texto", coerceValue("texto"))

	ts := time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-09T14:30:00Z", coerceValue(ts))

	uuid := [16]byte{0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0, 0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0}
	assert.Equal(t, "12345678-9abc-def0-1234-56789abcdef0", coerceValue(uuid))
}

func TestNormalizeRowsZipsColumns(t *testing.T) {
	fields := []pgconn.FieldDescription{{Name: "nm_beneficiario"}, {Name: "vl_mensalidade"}}
	raw := [][]any{
		{"Maria Souza", pgtype.Numeric{Int: big.NewInt(48990), Exp: -2, Valid: true}},
		{"João Lima", nil},
	}

	rows := normalizeRows(fields, raw)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{"nm_beneficiario": "Maria Souza", "vl_mensalidade": 489.9}, rows[0])
	assert.Equal(t, Row{"nm_beneficiario": "João Lima", "vl_mensalidade": nil}, rows[1])
}

func TestNormalizeRowsEmptyResultSet(t *testing.T) {
	fields := []pgconn.FieldDescription{{Name: "um"}}

	rows := normalizeRows(fields, nil)
	require.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestResultPayload(t *testing.T) {
	withRows := &Result{Rows: []Row{{"contagem": int64(42)}}}
	assert.True(t, withRows.HasRows())
	out, err := json.Marshal(withRows.Payload())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"contagem": 42}]`, string(out))

	empty := &Result{Rows: []Row{}}
	assert.True(t, empty.HasRows())
	out, err = json.Marshal(empty.Payload())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))

	affected := &Result{Message: "3 linhas afetadas."}
	assert.False(t, affected.HasRows())
	out, err = json.Marshal(affected.Payload())
	require.NoError(t, err)
	assert.JSONEq(t, `{"message": "3 linhas afetadas."}`, string(out))
}

func TestExecutionErrorUnwraps(t *testing.T) {
	cause := assert.AnError
	err := &ExecutionError{SQL: "SELECT 1", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.ErrorContains(t, err, "execute sql")
}
