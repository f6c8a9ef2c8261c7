package server

import "github.com/opsdata/opschat/internal/chat"

// ErrorResponse represents a standardized error response format
type ErrorResponse struct {
	Error   string `json:"error"`             // Human-readable error message
	Code    int    `json:"code"`              // HTTP status code
	Details any    `json:"details,omitempty"` // Additional error details (dev mode only)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	OK bool `json:"ok"` // Service health status
}

// ChatRequest represents one conversational question
type ChatRequest struct {
	SessionID string `json:"session_id"` // Existing session, or empty to start one
	Question  string `json:"question"`   // Natural language question
}

// ChatResponse represents the assistant turn produced for a question
type ChatResponse struct {
	SessionID string `json:"session_id"`    // Session the turn was appended to
	Reply     string `json:"reply"`         // Assistant turn content
	SQL       string `json:"sql,omitempty"` // Sanitized SQL behind the reply, when one was synthesized
	TookMs    int64  `json:"took_ms"`       // Turn processing time in milliseconds
}

// HistoryResponse represents a session transcript
type HistoryResponse struct {
	SessionID string      `json:"session_id"`
	Items     []chat.Turn `json:"items"`
}

// AskRequest represents a sessionless one-shot question
type AskRequest struct {
	Question string `json:"question"` // Natural language question
}

// AskResponse represents the response to a one-shot question
type AskResponse struct {
	SQL    string `json:"sql"`     // Generated SQL query
	Answer string `json:"answer"`  // Natural language answer
	TookMs int64  `json:"took_ms"` // Execution time in milliseconds
}

// SchemaResponse carries the rendered schema description
type SchemaResponse struct {
	Schema string `json:"schema"` // Markdown schema text embedded into prompts
}
