package sqlexec

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

// Executor runs model-generated SQL against the operational Postgres
// database. Each statement gets a fresh connection, so a failed statement
// never poisons a shared session.
type Executor struct {
	dsn    string
	logger *logrus.Logger
}

func NewExecutor(dsn string, logger *logrus.Logger) *Executor {
	if logger == nil {
		logger = logrus.New()
	}
	return &Executor{dsn: dsn, logger: logger}
}

// Execute sanitizes rawSQL and runs it as a single statement. Results come
// back normalized; connection and statement failures come back as
// *ExecutionError.
func (e *Executor) Execute(ctx context.Context, rawSQL string) (*Result, error) {
	stmt := Sanitize(rawSQL)
	if stmt == "" {
		return nil, &ExecutionError{SQL: stmt, Err: fmt.Errorf("empty statement")}
	}

	conn, err := pgx.Connect(ctx, e.dsn)
	if err != nil {
		return nil, &ExecutionError{SQL: stmt, Err: err}
	}
	defer func() { _ = conn.Close(ctx) }()

	rows, err := conn.Query(ctx, stmt)
	if err != nil {
		return nil, &ExecutionError{SQL: stmt, Err: err}
	}

	var raw [][]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			rows.Close()
			return nil, &ExecutionError{SQL: stmt, Err: err}
		}
		raw = append(raw, values)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, &ExecutionError{SQL: stmt, Err: err}
	}

	// No column descriptors means the statement returned no result set;
	// report the affected row count instead.
	fields := rows.FieldDescriptions()
	if len(fields) == 0 {
		affected := rows.CommandTag().RowsAffected()
		e.logger.WithField("rows_affected", affected).Debug("statement returned no result set")
		return &Result{Message: fmt.Sprintf("%d linhas afetadas.", affected)}, nil
	}

	normalized := normalizeRows(fields, raw)
	e.logger.WithFields(logrus.Fields{
		"columns": len(fields),
		"rows":    len(normalized),
	}).Debug("query executed")
	return &Result{Rows: normalized}, nil
}
