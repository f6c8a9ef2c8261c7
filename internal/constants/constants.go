package constants

// Dictionary tables holding the operator's data-dictionary metadata.
const (
	DictTables      = "omni_dic_tabela"
	DictAttributes  = "omni_dic_atributo"
	DictConstraints = "omni_dic_constraint"
	DictDomains     = "omni_dic_dominio"
	DictConcepts    = "omni_dic_conceito"
	DictSQLExamples = "omni_dic_sql_exemplo"
)

// Constraint kinds as stored in the dictionary. Only foreign keys make it
// into the rendered schema relationships.
const (
	ConstraintForeignKey = "Foreign Key"
	ConstraintPrimaryKey = "Primary Key"
)

// LLM providers
const (
	ProviderGoogleAI = "googleai"
	ProviderOpenAI   = "openai"
)

// Default models per provider
const (
	DefaultGeminiModel     = "gemini-1.5-flash-latest"
	DefaultOpenRouterModel = "openai/gpt-4.1-mini"
)

// OpenRouterBaseURL is the OpenAI-compatible endpoint used by the openai
// provider.
const OpenRouterBaseURL = "https://openrouter.ai/api/v1"

// Sampling settings per pipeline stage. Query synthesis runs near
// deterministic; answer synthesis gets room to phrase.
const (
	QueryTemperature  = 0.1
	AnswerTemperature = 0.5
)

// Token ceilings per pipeline stage.
const (
	QueryMaxTokens  = 512
	AnswerMaxTokens = 1024
)
