package dictionary

import "context"

// TableRecord describes one table of the operational database.
type TableRecord struct {
	Name        string `json:"nm_tabela"`
	Description string `json:"ds_tabela"`
}

// AttributeRecord describes one column, optionally bound to a value domain.
type AttributeRecord struct {
	TableName   string `json:"nm_tabela"`
	Name        string `json:"nm_atributo"`
	DataType    string `json:"ds_tipo_dado"`
	DomainCode  string `json:"cd_dominio"`
	Description string `json:"ds_atributo"`
}

// ConstraintRecord describes a key constraint between tables.
type ConstraintRecord struct {
	Kind            string `json:"ds_tipo_constraint"`
	TableName       string `json:"nm_tabela"`
	AttributeName   string `json:"nm_atributo"`
	ReferencedTable string `json:"nm_tabela_referenciada"`
	ReferencedAttr  string `json:"nm_atributo_referenciado"`
}

// DomainRecord is one allowed value of a coded attribute domain.
type DomainRecord struct {
	Code  string `json:"cd_dominio"`
	Value string `json:"ds_dominio"`
}

// ConceptRecord is a business term the model should understand.
type ConceptRecord struct {
	Name        string `json:"nm_conceito"`
	Description string `json:"ds_conceito"`
}

// SQLExampleRecord pairs a natural-language request with a vetted query.
type SQLExampleRecord struct {
	Question string `json:"ds_metrica"`
	SQL      string `json:"ds_sql"`
}

// Store defines the interface for reading the data dictionary
type Store interface {
	// Tables retrieves every table definition
	Tables(ctx context.Context) ([]TableRecord, error)

	// Attributes retrieves every column definition
	Attributes(ctx context.Context) ([]AttributeRecord, error)

	// Constraints retrieves key constraints between tables
	Constraints(ctx context.Context) ([]ConstraintRecord, error)

	// Domains retrieves the allowed values of coded attributes
	Domains(ctx context.Context) ([]DomainRecord, error)

	// Concepts retrieves business term definitions
	Concepts(ctx context.Context) ([]ConceptRecord, error)

	// SQLExamples retrieves curated question/query pairs
	SQLExamples(ctx context.Context) ([]SQLExampleRecord, error)
}
