package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/opsdata/opschat/internal/constants"
)

// SupabaseStore reads the dictionary through the Supabase PostgREST API.
type SupabaseStore struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewSupabaseStore(baseURL, apiKey string) *SupabaseStore {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return &SupabaseStore{
		BaseURL: baseURL,
		APIKey:  strings.TrimSpace(apiKey),
		HTTP: &http.Client{
			Timeout: 12 * time.Second,
		},
	}
}

type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	b := strings.TrimSpace(string(e.Body))
	if b == "" {
		return fmt.Sprintf("supabase http %d", e.StatusCode)
	}
	return fmt.Sprintf("supabase http %d: %s", e.StatusCode, b)
}

func (s *SupabaseStore) Tables(ctx context.Context) ([]TableRecord, error) {
	var out []TableRecord
	if err := s.get(ctx, constants.DictTables, "nm_tabela,ds_tabela", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SupabaseStore) Attributes(ctx context.Context) ([]AttributeRecord, error) {
	var out []AttributeRecord
	if err := s.get(ctx, constants.DictAttributes, "nm_tabela,nm_atributo,ds_tipo_dado,cd_dominio,ds_atributo", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SupabaseStore) Constraints(ctx context.Context) ([]ConstraintRecord, error) {
	var out []ConstraintRecord
	if err := s.get(ctx, constants.DictConstraints, "ds_tipo_constraint,nm_tabela,nm_atributo,nm_tabela_referenciada,nm_atributo_referenciado", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SupabaseStore) Domains(ctx context.Context) ([]DomainRecord, error) {
	var out []DomainRecord
	if err := s.get(ctx, constants.DictDomains, "cd_dominio,ds_dominio", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SupabaseStore) Concepts(ctx context.Context) ([]ConceptRecord, error) {
	var out []ConceptRecord
	if err := s.get(ctx, constants.DictConcepts, "nm_conceito,ds_conceito", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SupabaseStore) SQLExamples(ctx context.Context) ([]SQLExampleRecord, error) {
	var out []SQLExampleRecord
	if err := s.get(ctx, constants.DictSQLExamples, "ds_metrica,ds_sql", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// get fetches the selected columns of one dictionary table and decodes the
// PostgREST JSON array into out.
func (s *SupabaseStore) get(ctx context.Context, table, sel string, out any) error {
	q := url.Values{}
	q.Set("select", sel)

	u := s.BaseURL + "/rest/v1/" + table + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("apikey", s.APIKey)
	req.Header.Set("Authorization", "Bearer "+s.APIKey)

	res, err := s.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &HTTPError{StatusCode: res.StatusCode, Body: body}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", table, err)
	}
	return nil
}
