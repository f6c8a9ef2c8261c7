package dictionary

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresStore(db), mock
}

func TestPostgresTables(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`
SELECT nm_tabela, COALESCE(ds_tabela, '')
FROM omni_dic_tabela`)).
		WillReturnRows(sqlmock.NewRows([]string{"nm_tabela", "ds_tabela"}).
			AddRow("beneficiario", "Pessoas vinculadas a um plano de saúde").
			AddRow("conta", "Contas médicas enviadas pelos prestadores"))

	tables, err := store.Tables(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "beneficiario", tables[0].Name)
	assert.Equal(t, "Contas médicas enviadas pelos prestadores", tables[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAttributesNullDomain(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM omni_dic_atributo")).
		WillReturnRows(sqlmock.NewRows([]string{"nm_tabela", "nm_atributo", "ds_tipo_dado", "cd_dominio", "ds_atributo"}).
			AddRow("beneficiario", "status", "varchar", "DM_STATUS", "Situação do beneficiário").
			AddRow("beneficiario", "nm_beneficiario", "varchar", "", "Nome completo"))

	attrs, err := store.Attributes(context.Background())
	require.NoError(t, err)
	require.Len(t, attrs, 2)
	assert.Equal(t, "DM_STATUS", attrs[0].DomainCode)
	assert.Empty(t, attrs[1].DomainCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresConstraints(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM omni_dic_constraint")).
		WillReturnRows(sqlmock.NewRows([]string{"ds_tipo_constraint", "nm_tabela", "nm_atributo", "nm_tabela_referenciada", "nm_atributo_referenciado"}).
			AddRow("Foreign Key", "conta", "id_beneficiario", "beneficiario", "id_beneficiario"))

	cons, err := store.Constraints(context.Background())
	require.NoError(t, err)
	require.Len(t, cons, 1)
	assert.Equal(t, "Foreign Key", cons[0].Kind)
	assert.Equal(t, "beneficiario", cons[0].ReferencedTable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresQueryError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM omni_dic_conceito")).
		WillReturnError(assert.AnError)

	_, err := store.Concepts(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "list dictionary concepts")
	assert.NoError(t, mock.ExpectationsWereMet())
}
