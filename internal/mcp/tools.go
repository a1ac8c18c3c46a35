package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/intentcat/internal/domain/activity"
	"github.com/rpggio/intentcat/internal/domain/category"
	"github.com/rpggio/intentcat/internal/domain/intent"
)

// toolFunc is a tool body bound to the caller's tenant.
type toolFunc[In any] func(ctx context.Context, tenantID string, in In) (any, error)

func addTool[In any](server *sdkmcp.Server, logger *slog.Logger, name, description string, fn toolFunc[In]) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: name, Description: description},
		func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
			out, err := fn(ctx, getTenantID(ctx), in)
			if err != nil {
				apiErr := MapError(err)
				if apiErr.Code == "INTERNAL" && logger != nil {
					logger.Error("tool failed", "tool", name, "tenant_id", getTenantID(ctx), "error", err)
				}
				return jsonResult(apiErr, true)
			}
			return jsonResult(out, false)
		})
}

func jsonResult(v any, isError bool) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("encode tool result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
		IsError: isError,
	}, nil, nil
}

func registerTools(server *sdkmcp.Server, svc Services, minConfidence float64, logger *slog.Logger) {
	threshold := func(requested float64) float64 {
		if requested == 0 {
			return minConfidence
		}
		return requested
	}

	// Recognition
	addTool(server, logger, "recognize",
		"Score one utterance against every active intent. Returns matched intents (confidence >= min_confidence, at most 5) and near-miss candidates (at most 10), best first.",
		func(ctx context.Context, tenantID string, p RecognizeParams) (any, error) {
			return svc.Recognition.Recognize(ctx, tenantID, p.Text, threshold(p.MinConfidence))
		})
	addTool(server, logger, "recognize_batch",
		"Recognize up to 100 utterances in one call. Results keep input order; blank inputs are skipped and a failed entry carries an error message.",
		func(ctx context.Context, tenantID string, p RecognizeBatchParams) (any, error) {
			entries, err := svc.Recognition.RecognizeBatch(ctx, tenantID, p.Texts, threshold(p.MinConfidence))
			if err != nil {
				return nil, err
			}
			return RecognizeBatchResponse{Results: entries}, nil
		})

	// Intents
	addTool(server, logger, "create_intent",
		"Add an intent to the catalog",
		func(ctx context.Context, tenantID string, p CreateIntentParams) (any, error) {
			return svc.Intents.Create(ctx, tenantID, intent.CreateRequest{
				CategoryID:  p.CategoryID,
				Name:        p.Name,
				Description: p.Description,
				Keywords:    p.Keywords,
				Kind:        p.Kind,
				Status:      p.Status,
				Response:    p.Response,
			})
		})
	addTool(server, logger, "update_intent",
		"Change the name, description, keywords, category or response of an intent. Omitted fields are kept.",
		func(ctx context.Context, tenantID string, p UpdateIntentParams) (any, error) {
			return svc.Intents.Update(ctx, tenantID, intent.UpdateRequest{
				ID:          p.ID,
				CategoryID:  p.CategoryID,
				Name:        p.Name,
				Description: p.Description,
				Keywords:    p.Keywords,
				Response:    p.Response,
			})
		})
	addTool(server, logger, "set_intent_status",
		"Move an intent between active, inactive, draft and testing. Only active intents are recognized.",
		func(ctx context.Context, tenantID string, p SetIntentStatusParams) (any, error) {
			return svc.Intents.SetStatus(ctx, tenantID, p.ID, p.Status)
		})
	addTool(server, logger, "get_intent",
		"Get an intent with its keywords and usage statistics",
		func(ctx context.Context, tenantID string, p IntentIDParams) (any, error) {
			return svc.Intents.Get(ctx, tenantID, p.ID)
		})
	addTool(server, logger, "list_intents",
		"List intents, optionally filtered by kind, status and category",
		func(ctx context.Context, tenantID string, p ListIntentsParams) (any, error) {
			opts := intent.ListIntentsOptions{
				CategoryID: p.CategoryID,
				Limit:      p.Limit,
				Offset:     p.Offset,
			}
			if p.Kind != "" {
				opts.Kind = &p.Kind
			}
			if p.Status != "" {
				opts.Status = &p.Status
			}
			refs, err := svc.Intents.List(ctx, tenantID, opts)
			if err != nil {
				return nil, err
			}
			if refs == nil {
				refs = []intent.IntentRef{}
			}
			return ListIntentsResponse{Intents: refs}, nil
		})
	addTool(server, logger, "search_intents",
		"Fuzzy-search intent names for catalog browsing. This does not score or record usage.",
		func(ctx context.Context, tenantID string, p SearchIntentsParams) (any, error) {
			results, err := svc.Intents.Search(ctx, tenantID, p.Query, p.Limit)
			if err != nil {
				return nil, err
			}
			return SearchIntentsResponse{Results: results}, nil
		})
	addTool(server, logger, "delete_intent",
		"Remove an intent from the catalog",
		func(ctx context.Context, tenantID string, p IntentIDParams) (any, error) {
			if err := svc.Intents.Delete(ctx, tenantID, p.ID); err != nil {
				return nil, err
			}
			return DeleteIntentResponse{ID: p.ID, Deleted: true}, nil
		})

	// Categories
	addTool(server, logger, "create_category",
		"Create a category to group intents",
		func(ctx context.Context, tenantID string, p CreateCategoryParams) (any, error) {
			return svc.Categories.Create(ctx, tenantID, category.CreateRequest{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
			})
		})
	addTool(server, logger, "list_categories",
		"List categories with intent counts",
		func(ctx context.Context, tenantID string, _ ListCategoriesParams) (any, error) {
			summaries, err := svc.Categories.List(ctx, tenantID)
			if err != nil {
				return nil, err
			}
			if summaries == nil {
				summaries = []category.CategorySummary{}
			}
			return ListCategoriesResponse{Categories: summaries}, nil
		})

	// Activity
	addTool(server, logger, "get_recent_activity",
		"Get recent catalog changes, newest first",
		func(ctx context.Context, tenantID string, p GetRecentActivityParams) (any, error) {
			opts := activity.ListActivityOptions{Limit: p.Limit}
			if p.IntentID != "" {
				opts.IntentID = &p.IntentID
			}
			if p.CategoryID != "" {
				opts.CategoryID = &p.CategoryID
			}
			if p.Type != "" {
				opts.ActivityType = &p.Type
			}
			entries, err := svc.Activity.GetRecentActivity(ctx, tenantID, opts)
			if err != nil {
				return nil, err
			}
			if entries == nil {
				entries = []activity.ActivityEntry{}
			}
			return RecentActivityResponse{Entries: entries}, nil
		})
}
