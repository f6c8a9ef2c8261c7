package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"

	"github.com/opsdata/opschat/internal/catalog"
	"github.com/opsdata/opschat/internal/constants"
	"github.com/opsdata/opschat/internal/sqlexec"
)

// AgentDeps holds the collaborators an Agent needs.
type AgentDeps struct {
	Model    llms.Model
	Loader   *catalog.Loader
	Executor *sqlexec.Executor
	Logger   *logrus.Logger
}

// Agent provides NL→SQL over the operational database using an LLM and the
// schema catalog.
type Agent struct {
	llm    llms.Model
	loader *catalog.Loader
	exec   *sqlexec.Executor
	logger *logrus.Logger
}

func NewAgent(deps AgentDeps) (*Agent, error) {
	if deps.Model == nil {
		return nil, fmt.Errorf("llm model is required")
	}
	if deps.Loader == nil {
		return nil, fmt.Errorf("catalog loader is required")
	}
	if deps.Executor == nil {
		return nil, fmt.Errorf("sql executor is required")
	}
	if deps.Logger == nil {
		deps.Logger = logrus.New()
	}
	return &Agent{
		llm:    deps.Model,
		loader: deps.Loader,
		exec:   deps.Executor,
		logger: deps.Logger,
	}, nil
}

// GenerateSQL asks the model to translate the question into one SQL query
// bounded by the rendered schema. The response comes back untouched; callers
// sanitize before executing or displaying it.
func (a *Agent) GenerateSQL(ctx context.Context, question string) (string, error) {
	cat, err := a.loader.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load schema catalog: %w", err)
	}

	prompt := fmt.Sprintf(sqlPromptTemplate, cat.Text(), question)
	resp, err := llms.GenerateFromSinglePrompt(
		ctx,
		a.llm,
		prompt,
		llms.WithTemperature(constants.QueryTemperature),
		llms.WithMaxTokens(constants.QueryMaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("LLM SQL generation failed: %w", err)
	}

	a.logger.WithField("sql", sqlexec.Sanitize(resp)).Debug("generated SQL from question")
	return resp, nil
}

// Execute runs model output against the operational database.
func (a *Agent) Execute(ctx context.Context, rawSQL string) (*sqlexec.Result, error) {
	return a.exec.Execute(ctx, rawSQL)
}

// ComposeAnswer asks the model to phrase the execution result as a final
// answer for the user, without surfacing table or column names.
func (a *Agent) ComposeAnswer(ctx context.Context, question string, data *sqlexec.Result) (string, error) {
	cat, err := a.loader.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load schema catalog: %w", err)
	}

	payload, err := json.MarshalIndent(data.Payload(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result data: %w", err)
	}

	prompt := fmt.Sprintf(answerPromptTemplate, question, cat.Text(), string(payload))
	resp, err := llms.GenerateFromSinglePrompt(
		ctx,
		a.llm,
		prompt,
		llms.WithTemperature(constants.AnswerTemperature),
		llms.WithMaxTokens(constants.AnswerMaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("LLM answer synthesis failed: %w", err)
	}

	return strings.TrimSpace(resp), nil
}

// AskResult is the structured result of an Ask call.
type AskResult struct {
	SQL    string
	Data   *sqlexec.Result
	Answer string
}

// Ask takes a natural language question, generates SQL, executes it, and
// phrases the result. One-shot counterpart of a session turn.
func (a *Agent) Ask(ctx context.Context, question string) (*AskResult, error) {
	rawSQL, err := a.GenerateSQL(ctx, question)
	if err != nil {
		return nil, err
	}

	data, err := a.Execute(ctx, rawSQL)
	if err != nil {
		return nil, err
	}

	answer, err := a.ComposeAnswer(ctx, question, data)
	if err != nil {
		return nil, err
	}

	return &AskResult{
		SQL:    sqlexec.Sanitize(rawSQL),
		Data:   data,
		Answer: answer,
	}, nil
}
