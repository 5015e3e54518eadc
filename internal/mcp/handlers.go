package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/newshub/baitscan/internal/config"
	"github.com/newshub/baitscan/internal/errors"
	"github.com/newshub/baitscan/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{db: db, cfg: cfg}
}

// AnalyzeRequest represents the arguments for clickbait_analyze.
type AnalyzeRequest struct {
	Title  string  `json:"title"`
	Save   bool    `json:"save,omitempty"`
	Source *string `json:"source,omitempty"`
	Link   *string `json:"link,omitempty"`
}

// TagRequest represents the arguments for clickbait_tag.
type TagRequest struct {
	Titles    []string `json:"titles"`
	WithScore bool     `json:"with_score,omitempty"`
}

// FetchRequest represents the arguments for clickbait_fetch.
type FetchRequest struct {
	ID             string `json:"id"`
	IncludeDeleted bool   `json:"include_deleted,omitempty"`
}

// ListRequest represents the arguments for clickbait_list.
type ListRequest struct {
	Category       *string `json:"category,omitempty"`
	ClickbaitOnly  bool    `json:"clickbait_only,omitempty"`
	Query          *string `json:"query,omitempty"`
	Limit          int     `json:"limit,omitempty"`
	Offset         int     `json:"offset,omitempty"`
	IncludeDeleted bool    `json:"include_deleted,omitempty"`
}

// DeleteRequest represents the arguments for clickbait_delete.
type DeleteRequest struct {
	ID string `json:"id"`
}

// PurgeRequest represents the arguments for clickbait_purge.
type PurgeRequest struct {
	OlderThanDays *int `json:"older_than_days,omitempty"`
}

// HandleAnalyze handles the clickbait_analyze tool.
func (h *Handlers) HandleAnalyze(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AnalyzeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Analyze(ctx, h.db, h.cfg, ops.AnalyzeInput{
		Title:  input.Title,
		Save:   input.Save,
		Source: input.Source,
		Link:   input.Link,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleTag handles the clickbait_tag tool.
func (h *Handlers) HandleTag(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TagRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Tag(ctx, h.cfg, ops.TagInput{
		Titles:    input.Titles,
		WithScore: input.WithScore,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleFetch handles the clickbait_fetch tool.
func (h *Handlers) HandleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FetchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Fetch(ctx, h.db, ops.FetchInput{
		ID:             input.ID,
		IncludeDeleted: input.IncludeDeleted,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the clickbait_list tool.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(ctx, h.db, ops.ListInput{
		Category:       input.Category,
		ClickbaitOnly:  input.ClickbaitOnly,
		Query:          input.Query,
		Limit:          input.Limit,
		Offset:         input.Offset,
		IncludeDeleted: input.IncludeDeleted,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleStats handles the clickbait_stats tool.
func (h *Handlers) HandleStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Stats(ctx, h.db)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the clickbait_delete tool.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Delete(ctx, h.db, ops.DeleteInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePurge handles the clickbait_purge tool.
func (h *Handlers) HandlePurge(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PurgeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Purge(ctx, h.db, ops.PurgeInput{OlderThanDays: input.OlderThanDays})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// errorResult creates an MCP error result with IsError set so clients see the failure.
// Wrapped BaitErrors keep their code; the message carries the wrapper context.
// INTERNAL errors never expose details.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var bErr *errors.BaitError
	if stderrors.As(err, &bErr) {
		message := bErr.Message
		if err != error(bErr) {
			message = err.Error()
		}
		errorObj := map[string]any{
			"code":    bErr.Code,
			"message": message,
			"status":  bErr.Status,
		}
		if bErr.Code == errors.ErrInternal {
			errorObj["message"] = "an internal error occurred"
		} else if bErr.Details != nil {
			errorObj["details"] = bErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    errors.ErrInternal,
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
