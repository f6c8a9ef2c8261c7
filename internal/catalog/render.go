package catalog

import (
	"fmt"
	"strings"

	"github.com/opsdata/opschat/internal/constants"
)

// Render produces the markdown schema description embedded into every
// prompt. Output order follows dictionary order, so the same catalog always
// renders to the same bytes.
func Render(c *Catalog) string {
	var b strings.Builder

	b.WriteString("## Estrutura do Banco de Dados\n\n")
	b.WriteString("### Tabelas e Descrições\n")
	for _, t := range c.Tables {
		fmt.Fprintf(&b, "- **%s**: %s\n", t.Name, t.Description)
	}

	b.WriteString("\n### Atributos das Tabelas\n")
	for _, table := range attributeTables(c.Attributes) {
		fmt.Fprintf(&b, "#### %s\n", table)
		for _, a := range c.Attributes {
			if a.TableName != table {
				continue
			}
			fmt.Fprintf(&b, "- **%s** (%s): %s\n", a.Name, a.DataType, a.Description)
			if a.DomainCode == "" {
				continue
			}
			if values := c.Domains[a.DomainCode]; len(values) > 0 {
				quoted := make([]string, len(values))
				for i, v := range values {
					quoted[i] = "'" + v + "'"
				}
				fmt.Fprintf(&b, "  (Valores possíveis: %s)\n", strings.Join(quoted, ", "))
			}
		}
	}

	b.WriteString("\n### Relacionamentos entre Tabelas\n")
	for _, r := range c.Relationships {
		if r.Kind != constants.ConstraintForeignKey {
			continue
		}
		fmt.Fprintf(&b, "- `%s.%s` referencia `%s.%s`\n", r.FromTable, r.FromAttribute, r.ToTable, r.ToAttribute)
	}

	b.WriteString("\n## Conceitos de Negócio\n")
	for _, con := range c.Concepts {
		fmt.Fprintf(&b, "- **%s**: %s\n", con.Name, con.Description)
	}

	b.WriteString("\n## Exemplos de Consultas\n")
	for _, ex := range c.SQLExamples {
		fmt.Fprintf(&b, "- Pergunta: %s\n  SQL: %s\n", ex.Question, ex.SQL)
	}

	return b.String()
}

// attributeTables lists table names in order of first appearance.
func attributeTables(attrs []Attribute) []string {
	seen := make(map[string]bool, len(attrs))
	order := make([]string, 0, len(attrs))
	for _, a := range attrs {
		if seen[a.TableName] {
			continue
		}
		seen[a.TableName] = true
		order = append(order, a.TableName)
	}
	return order
}
