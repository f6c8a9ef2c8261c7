package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/opsdata/opschat/internal/sqlexec"
)

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of the conversation transcript.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Pipeline is the per-turn contract a session drives: synthesize SQL,
// execute it, compose the final answer.
type Pipeline interface {
	GenerateSQL(ctx context.Context, question string) (string, error)
	Execute(ctx context.Context, rawSQL string) (*sqlexec.Result, error)
	ComposeAnswer(ctx context.Context, question string, data *sqlexec.Result) (string, error)
}

// State tracks where a turn is in the pipeline.
type State int

const (
	StateIdle State = iota
	StateAwaitingSQL
	StateAwaitingExecution
	StateAwaitingAnswer
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingSQL:
		return "awaiting_sql"
	case StateAwaitingExecution:
		return "awaiting_execution"
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Session owns one conversation transcript. A mutex serializes turns, so
// concurrent callers of the same session queue up instead of interleaving.
type Session struct {
	id       string
	pipeline Pipeline
	logger   *logrus.Logger

	mu      sync.Mutex
	state   State
	history []Turn
}

func NewSession(id string, pipeline Pipeline, logger *logrus.Logger) *Session {
	if logger == nil {
		logger = logrus.New()
	}
	return &Session{
		id:       id,
		pipeline: pipeline,
		logger:   logger,
		state:    StateIdle,
	}
}

func (s *Session) ID() string {
	return s.id
}

// History returns a copy of the transcript so far.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.history))
	copy(out, s.history)
	return out
}

// State returns the current pipeline state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// TurnResult is the outcome of one question. Reply is always populated, even
// when the turn failed; Err then carries the failure and SQL whatever query
// had been synthesized by that point.
type TurnResult struct {
	Reply Turn
	SQL   string
	Err   error
}

// ProcessTurn runs one question through the pipeline. Whatever happens, the
// question and exactly one assistant turn land in the history, so the
// transcript never dangles on a failure.
func (s *Session) ProcessTurn(ctx context.Context, question string) (res TurnResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, Turn{Role: RoleUser, Content: question})

	defer func() {
		if r := recover(); r != nil {
			s.logger.WithField("panic", r).Error("turn aborted by panic")
			res = s.errorTurn(fmt.Errorf("%v", r), "")
		}
		// Errored sticks until the next question so callers can see how the
		// last turn ended.
		if s.state != StateErrored {
			s.state = StateIdle
		}
	}()

	s.state = StateAwaitingSQL
	rawSQL, err := s.pipeline.GenerateSQL(ctx, question)
	if err != nil {
		return s.errorTurn(err, "")
	}
	displaySQL := sqlexec.Sanitize(rawSQL)
	s.logger.WithFields(logrus.Fields{"session": s.id, "sql": displaySQL}).Debug("query synthesized")

	s.state = StateAwaitingExecution
	data, err := s.pipeline.Execute(ctx, rawSQL)
	if err != nil {
		var execErr *sqlexec.ExecutionError
		if errors.As(err, &execErr) {
			s.logger.WithError(execErr.Err).Warn("query execution failed, aborting turn before answer synthesis")
			return s.executionFailureTurn(execErr, displaySQL)
		}
		return s.errorTurn(err, displaySQL)
	}

	s.state = StateAwaitingAnswer
	answer, err := s.pipeline.ComposeAnswer(ctx, question, data)
	if err != nil {
		return s.errorTurn(err, displaySQL)
	}

	reply := Turn{Role: RoleAssistant, Content: answer}
	s.history = append(s.history, reply)
	return TurnResult{Reply: reply, SQL: displaySQL}
}

// executionFailureTurn records a database failure as the assistant turn.
func (s *Session) executionFailureTurn(execErr *sqlexec.ExecutionError, sql string) TurnResult {
	s.state = StateErrored
	reply := Turn{Role: RoleAssistant, Content: fmt.Sprintf("Erro ao executar a consulta SQL: %v", execErr.Err)}
	s.history = append(s.history, reply)
	return TurnResult{Reply: reply, SQL: sql, Err: execErr}
}

// errorTurn records any other failure as the assistant turn.
func (s *Session) errorTurn(err error, sql string) TurnResult {
	s.state = StateErrored
	reply := Turn{Role: RoleAssistant, Content: fmt.Sprintf("Ocorreu um erro: %v", err)}
	s.history = append(s.history, reply)
	return TurnResult{Reply: reply, SQL: sql, Err: err}
}
