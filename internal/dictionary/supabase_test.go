package dictionary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupabaseTables(t *testing.T) {
	var gotPath, gotSelect, gotAPIKey, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSelect = r.URL.Query().Get("select")
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"nm_tabela": "beneficiario", "ds_tabela": "Pessoas vinculadas a um plano"},
			{"nm_tabela": "prestador", "ds_tabela": "Prestadores de serviço de saúde"}
		]`))
	}))
	defer srv.Close()

	store := NewSupabaseStore(srv.URL, "anon-key")
	tables, err := store.Tables(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/rest/v1/omni_dic_tabela", gotPath)
	assert.Equal(t, "nm_tabela,ds_tabela", gotSelect)
	assert.Equal(t, "anon-key", gotAPIKey)
	assert.Equal(t, "Bearer anon-key", gotAuth)
	require.Len(t, tables, 2)
	assert.Equal(t, "prestador", tables[1].Name)
}

func TestSupabaseAttributesNullDomain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/omni_dic_atributo", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"nm_tabela": "beneficiario", "nm_atributo": "status", "ds_tipo_dado": "varchar", "cd_dominio": "DM_STATUS", "ds_atributo": "Situação"},
			{"nm_tabela": "beneficiario", "nm_atributo": "nm_beneficiario", "ds_tipo_dado": "varchar", "cd_dominio": null, "ds_atributo": "Nome"}
		]`))
	}))
	defer srv.Close()

	store := NewSupabaseStore(srv.URL, "anon-key")
	attrs, err := store.Attributes(context.Background())
	require.NoError(t, err)

	require.Len(t, attrs, 2)
	assert.Equal(t, "DM_STATUS", attrs[0].DomainCode)
	assert.Empty(t, attrs[1].DomainCode)
}

func TestSupabaseHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid API key"}`))
	}))
	defer srv.Close()

	store := NewSupabaseStore(srv.URL, "bad-key")
	_, err := store.Domains(context.Background())
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Contains(t, err.Error(), "supabase http 401")
}

func TestSupabaseTrimsBaseURL(t *testing.T) {
	store := NewSupabaseStore("  https://proj.supabase.co/  ", " key ")
	assert.Equal(t, "https://proj.supabase.co", store.BaseURL)
	assert.Equal(t, "key", store.APIKey)
}
