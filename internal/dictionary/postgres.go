package dictionary

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/opsdata/opschat/internal/constants"
)

// PostgresStore reads the dictionary tables directly from a Postgres
// database, for deployments that host the dictionary next to the data.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgresStore opens and pings a dictionary database.
func OpenPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("dictionary dsn is required")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open dictionary db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping dictionary db: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// NewPostgresStore wraps an existing handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Tables(ctx context.Context) ([]TableRecord, error) {
	query := fmt.Sprintf(`
SELECT nm_tabela, COALESCE(ds_tabela, '')
FROM %s`, constants.DictTables)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list dictionary tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]TableRecord, 0)
	for rows.Next() {
		var rec TableRecord
		if err := rows.Scan(&rec.Name, &rec.Description); err != nil {
			return nil, fmt.Errorf("scan table row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate table rows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Attributes(ctx context.Context) ([]AttributeRecord, error) {
	query := fmt.Sprintf(`
SELECT nm_tabela, nm_atributo, COALESCE(ds_tipo_dado, ''), COALESCE(cd_dominio, ''), COALESCE(ds_atributo, '')
FROM %s`, constants.DictAttributes)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list dictionary attributes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]AttributeRecord, 0)
	for rows.Next() {
		var rec AttributeRecord
		if err := rows.Scan(&rec.TableName, &rec.Name, &rec.DataType, &rec.DomainCode, &rec.Description); err != nil {
			return nil, fmt.Errorf("scan attribute row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attribute rows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Constraints(ctx context.Context) ([]ConstraintRecord, error) {
	query := fmt.Sprintf(`
SELECT COALESCE(ds_tipo_constraint, ''), nm_tabela, nm_atributo, COALESCE(nm_tabela_referenciada, ''), COALESCE(nm_atributo_referenciado, '')
FROM %s`, constants.DictConstraints)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list dictionary constraints: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]ConstraintRecord, 0)
	for rows.Next() {
		var rec ConstraintRecord
		if err := rows.Scan(&rec.Kind, &rec.TableName, &rec.AttributeName, &rec.ReferencedTable, &rec.ReferencedAttr); err != nil {
			return nil, fmt.Errorf("scan constraint row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate constraint rows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Domains(ctx context.Context) ([]DomainRecord, error) {
	query := fmt.Sprintf(`
SELECT cd_dominio, COALESCE(ds_dominio, '')
FROM %s`, constants.DictDomains)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list dictionary domains: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]DomainRecord, 0)
	for rows.Next() {
		var rec DomainRecord
		if err := rows.Scan(&rec.Code, &rec.Value); err != nil {
			return nil, fmt.Errorf("scan domain row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate domain rows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Concepts(ctx context.Context) ([]ConceptRecord, error) {
	query := fmt.Sprintf(`
SELECT nm_conceito, COALESCE(ds_conceito, '')
FROM %s`, constants.DictConcepts)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list dictionary concepts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]ConceptRecord, 0)
	for rows.Next() {
		var rec ConceptRecord
		if err := rows.Scan(&rec.Name, &rec.Description); err != nil {
			return nil, fmt.Errorf("scan concept row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate concept rows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) SQLExamples(ctx context.Context) ([]SQLExampleRecord, error) {
	query := fmt.Sprintf(`
SELECT COALESCE(ds_metrica, ''), COALESCE(ds_sql, '')
FROM %s`, constants.DictSQLExamples)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list dictionary sql examples: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]SQLExampleRecord, 0)
	for rows.Next() {
		var rec SQLExampleRecord
		if err := rows.Scan(&rec.Question, &rec.SQL); err != nil {
			return nil, fmt.Errorf("scan sql example row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sql example rows: %w", err)
	}
	return out, nil
}
