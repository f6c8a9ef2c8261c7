package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/opsdata/opschat/internal/dictionary"
)

// Table is one table of the operational database.
type Table struct {
	Name        string
	Description string
}

// Attribute is one column, optionally bound to a value domain.
type Attribute struct {
	TableName   string
	Name        string
	DataType    string
	DomainCode  string
	Description string
}

// Relationship links two tables through a key constraint.
type Relationship struct {
	Kind          string
	FromTable     string
	FromAttribute string
	ToTable       string
	ToAttribute   string
}

// Concept is a business term the model should understand.
type Concept struct {
	Name        string
	Description string
}

// SQLExample pairs a natural-language request with a vetted query.
type SQLExample struct {
	Question string
	SQL      string
}

// Catalog is an immutable snapshot of the data dictionary plus its prompt
// rendering. Build a new one instead of mutating; Text never changes after
// construction.
type Catalog struct {
	Tables        []Table
	Attributes    []Attribute
	Domains       map[string][]string
	Relationships []Relationship
	Concepts      []Concept
	SQLExamples   []SQLExample

	text string
}

// Text returns the markdown schema description embedded into prompts.
func (c *Catalog) Text() string {
	return c.text
}

// Loader fetches the dictionary once and memoizes the snapshot until
// Invalidate is called.
type Loader struct {
	store  dictionary.Store
	logger *logrus.Logger

	mu     sync.Mutex
	cached *Catalog
}

func NewLoader(store dictionary.Store, logger *logrus.Logger) *Loader {
	if logger == nil {
		logger = logrus.New()
	}
	return &Loader{store: store, logger: logger}
}

// Load returns the cached snapshot, fetching and rendering it on first use.
// A failed fetch leaves nothing cached, so the next call retries.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cached != nil {
		return l.cached, nil
	}

	cat, err := l.build(ctx)
	if err != nil {
		return nil, err
	}
	l.cached = cat

	l.logger.WithFields(logrus.Fields{
		"tables":     len(cat.Tables),
		"attributes": len(cat.Attributes),
		"concepts":   len(cat.Concepts),
		"examples":   len(cat.SQLExamples),
	}).Info("schema catalog loaded")
	return cat, nil
}

// Invalidate drops the cached snapshot so the next Load refetches the
// dictionary.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cached = nil
}

func (l *Loader) build(ctx context.Context) (*Catalog, error) {
	tables, err := l.store.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch dictionary tables: %w", err)
	}
	attributes, err := l.store.Attributes(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch dictionary attributes: %w", err)
	}
	constraints, err := l.store.Constraints(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch dictionary constraints: %w", err)
	}
	domains, err := l.store.Domains(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch dictionary domains: %w", err)
	}
	concepts, err := l.store.Concepts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch dictionary concepts: %w", err)
	}
	examples, err := l.store.SQLExamples(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch dictionary sql examples: %w", err)
	}

	cat := &Catalog{
		Tables:        make([]Table, 0, len(tables)),
		Attributes:    make([]Attribute, 0, len(attributes)),
		Domains:       make(map[string][]string),
		Relationships: make([]Relationship, 0, len(constraints)),
		Concepts:      make([]Concept, 0, len(concepts)),
		SQLExamples:   make([]SQLExample, 0, len(examples)),
	}

	for _, t := range tables {
		cat.Tables = append(cat.Tables, Table{Name: t.Name, Description: t.Description})
	}
	for _, a := range attributes {
		cat.Attributes = append(cat.Attributes, Attribute{
			TableName:   a.TableName,
			Name:        a.Name,
			DataType:    a.DataType,
			DomainCode:  a.DomainCode,
			Description: a.Description,
		})
	}
	for _, c := range constraints {
		cat.Relationships = append(cat.Relationships, Relationship{
			Kind:          c.Kind,
			FromTable:     c.TableName,
			FromAttribute: c.AttributeName,
			ToTable:       c.ReferencedTable,
			ToAttribute:   c.ReferencedAttr,
		})
	}
	// Domain values keep their dictionary order within each code.
	for _, d := range domains {
		cat.Domains[d.Code] = append(cat.Domains[d.Code], d.Value)
	}
	for _, c := range concepts {
		cat.Concepts = append(cat.Concepts, Concept{Name: c.Name, Description: c.Description})
	}
	for _, e := range examples {
		cat.SQLExamples = append(cat.SQLExamples, SQLExample{Question: e.Question, SQL: e.SQL})
	}

	cat.text = Render(cat)
	return cat, nil
}
