package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/opsdata/opschat/internal/ai"
	"github.com/opsdata/opschat/internal/catalog"
	"github.com/opsdata/opschat/internal/chat"
)

// turnTimeout bounds one full pipeline pass: two model calls plus the query.
const turnTimeout = 120 * time.Second

// Asker runs a sessionless question through the full pipeline.
type Asker interface {
	Ask(ctx context.Context, question string) (*ai.AskResult, error)
}

// Handlers contains all dependencies for API endpoint handlers
type Handlers struct {
	Sessions *chat.Registry  // Live conversation sessions
	AI       Asker           // One-shot question pipeline
	Catalog  *catalog.Loader // Schema catalog loader
	DevMode  bool            // Enable detailed error responses in development
	Logger   *logrus.Logger  // Structured logger
}

// err returns a standardized JSON error response
// In dev mode, includes additional error details for debugging
func (h *Handlers) err(c echo.Context, code int, msg string, details any) error {
	resp := ErrorResponse{Error: msg, Code: code}
	if h.DevMode && details != nil {
		resp.Details = details
	}
	return c.JSON(code, resp)
}

// withTimeout creates a context with timeout, defaulting to 10 seconds if duration <= 0
func (h *Handlers) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = 10 * time.Second
	}
	return context.WithTimeout(ctx, d)
}

// Health returns a simple health check endpoint
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{OK: true})
}

// Chat appends one question to a session and returns the assistant turn.
// Failed turns still return 200: the error notice is the reply.
func (h *Handlers) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid json", nil)
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		return h.err(c, http.StatusBadRequest, "question is required", map[string]any{"question": "required"})
	}

	var sess *chat.Session
	if req.SessionID == "" {
		s, err := h.Sessions.Create()
		if err != nil {
			return h.err(c, http.StatusInternalServerError, "failed to create session", nil)
		}
		sess = s
	} else {
		s, err := h.Sessions.Get(req.SessionID)
		if err != nil {
			if errors.Is(err, chat.ErrSessionNotFound) {
				return h.err(c, http.StatusNotFound, "session not found", nil)
			}
			return h.err(c, http.StatusInternalServerError, "failed to load session", nil)
		}
		sess = s
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), turnTimeout)
	defer cancel()

	start := time.Now()
	res := sess.ProcessTurn(ctx, req.Question)
	if res.Err != nil {
		h.Logger.WithError(res.Err).WithField("session", sess.ID()).Warn("chat turn failed")
	}

	return c.JSON(http.StatusOK, ChatResponse{
		SessionID: sess.ID(),
		Reply:     res.Reply.Content,
		SQL:       res.SQL,
		TookMs:    time.Since(start).Milliseconds(),
	})
}

// History returns the full transcript of a session.
func (h *Handlers) History(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return h.err(c, http.StatusBadRequest, "invalid session id", nil)
	}

	sess, err := h.Sessions.Get(id)
	if err != nil {
		return h.err(c, http.StatusNotFound, "session not found", nil)
	}

	return c.JSON(http.StatusOK, HistoryResponse{SessionID: sess.ID(), Items: sess.History()})
}

// Ask processes one sessionless natural language question
// Returns SQL query and answer with execution time
func (h *Handlers) Ask(c echo.Context) error {
	if h.AI == nil {
		return h.err(c, http.StatusBadRequest, "ai is not configured", nil)
	}

	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid json", nil)
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		return h.err(c, http.StatusBadRequest, "question is required", map[string]any{"question": "required"})
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), turnTimeout)
	defer cancel()

	start := time.Now()
	res, err := h.AI.Ask(ctx, req.Question)
	if err != nil {
		return h.err(c, http.StatusInternalServerError, "ask failed", map[string]any{"err": err.Error()})
	}

	return c.JSON(http.StatusOK, AskResponse{SQL: res.SQL, Answer: res.Answer, TookMs: time.Since(start).Milliseconds()})
}

// Schema returns the rendered schema description used in prompts.
func (h *Handlers) Schema(c echo.Context) error {
	ctx, cancel := h.withTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	cat, err := h.Catalog.Load(ctx)
	if err != nil {
		return h.err(c, http.StatusServiceUnavailable, "schema catalog unavailable", map[string]any{"err": err.Error()})
	}
	return c.JSON(http.StatusOK, SchemaResponse{Schema: cat.Text()})
}

// SchemaRefresh drops the cached catalog and reloads it from the dictionary.
func (h *Handlers) SchemaRefresh(c echo.Context) error {
	ctx, cancel := h.withTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	h.Catalog.Invalidate()
	cat, err := h.Catalog.Load(ctx)
	if err != nil {
		return h.err(c, http.StatusServiceUnavailable, "schema catalog unavailable", map[string]any{"err": err.Error()})
	}

	h.Logger.Info("schema catalog refreshed")
	return c.JSON(http.StatusOK, SchemaResponse{Schema: cat.Text()})
}
