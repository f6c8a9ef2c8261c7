package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog() *Catalog {
	return &Catalog{
		Tables: []Table{
			{Name: "beneficiario", Description: "Pessoas vinculadas a um plano de saúde"},
			{Name: "conta", Description: "Contas médicas enviadas pelos prestadores"},
		},
		Attributes: []Attribute{
			{TableName: "beneficiario", Name: "id_beneficiario", DataType: "integer", Description: "Identificador"},
			{TableName: "beneficiario", Name: "status", DataType: "varchar", DomainCode: "DM_STATUS", Description: "Situação do beneficiário"},
			{TableName: "conta", Name: "id_beneficiario", DataType: "integer", Description: "Beneficiário da conta"},
		},
		Domains: map[string][]string{
			"DM_STATUS": {"ATIVO", "INATIVO"},
		},
		Relationships: []Relationship{
			{Kind: "Foreign Key", FromTable: "conta", FromAttribute: "id_beneficiario", ToTable: "beneficiario", ToAttribute: "id_beneficiario"},
			{Kind: "Primary Key", FromTable: "beneficiario", FromAttribute: "id_beneficiario"},
		},
		Concepts: []Concept{
			{Name: "Sinistralidade", Description: "Razão entre despesas e receitas"},
		},
		SQLExamples: []SQLExample{
			{Question: "Quantos beneficiários ativos?", SQL: "SELECT COUNT(*) FROM beneficiario WHERE status = 'ATIVO';"},
		},
	}
}

func TestRenderStructure(t *testing.T) {
	text := Render(sampleCatalog())

	assert.Contains(t, text, "## Estrutura do Banco de Dados")
	assert.Contains(t, text, "- **beneficiario**: Pessoas vinculadas a um plano de saúde")
	assert.Contains(t, text, "#### beneficiario")
	assert.Contains(t, text, "- **status** (varchar): Situação do beneficiário")
	assert.Contains(t, text, "  (Valores possíveis: 'ATIVO', 'INATIVO')")
	assert.Contains(t, text, "- `conta.id_beneficiario` referencia `beneficiario.id_beneficiario`")
	assert.Contains(t, text, "- **Sinistralidade**: Razão entre despesas e receitas")
	assert.Contains(t, text, "- Pergunta: Quantos beneficiários ativos?\n  SQL: SELECT COUNT(*) FROM beneficiario WHERE status = 'ATIVO';")

	// Sections appear in the canonical order.
	sections := []string{
		"### Tabelas e Descrições",
		"### Atributos das Tabelas",
		"### Relacionamentos entre Tabelas",
		"## Conceitos de Negócio",
		"## Exemplos de Consultas",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(text, s)
		require.Greater(t, idx, last, "section %q out of order", s)
		last = idx
	}
}

func TestRenderSkipsNonForeignKeys(t *testing.T) {
	text := Render(sampleCatalog())
	assert.NotContains(t, text, "Primary Key")
	assert.Equal(t, 1, strings.Count(text, "referencia"))
}

func TestRenderSkipsUnknownDomainCodes(t *testing.T) {
	cat := sampleCatalog()
	cat.Attributes = append(cat.Attributes, Attribute{
		TableName: "conta", Name: "tipo", DataType: "varchar", DomainCode: "DM_MISSING", Description: "Tipo da conta",
	})

	text := Render(cat)
	assert.Contains(t, text, "- **tipo** (varchar): Tipo da conta")
	assert.Equal(t, 1, strings.Count(text, "Valores possíveis"))
}

func TestRenderDeterministic(t *testing.T) {
	cat := sampleCatalog()
	first := Render(cat)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Render(cat))
	}
}

func TestRenderGroupsAttributesByFirstAppearance(t *testing.T) {
	cat := &Catalog{
		Attributes: []Attribute{
			{TableName: "conta", Name: "vl_conta", DataType: "numeric", Description: "Valor"},
			{TableName: "beneficiario", Name: "status", DataType: "varchar", Description: "Situação"},
			{TableName: "conta", Name: "dt_envio", DataType: "date", Description: "Data de envio"},
		},
		Domains: map[string][]string{},
	}

	text := Render(cat)
	contaIdx := strings.Index(text, "#### conta")
	benIdx := strings.Index(text, "#### beneficiario")
	require.NotEqual(t, -1, contaIdx)
	require.NotEqual(t, -1, benIdx)
	assert.Less(t, contaIdx, benIdx)

	// Both conta attributes render under the single conta heading.
	assert.Equal(t, 1, strings.Count(text, "#### conta"))
	block := text[contaIdx:benIdx]
	assert.Contains(t, block, "vl_conta")
	assert.Contains(t, block, "dt_envio")
}
