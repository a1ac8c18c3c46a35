package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `intentcat maps free-form user utterances to intents from a per-tenant catalog.

Concepts:
- Intent: a request pattern with a name, optional description, keywords and a kind (core = functional, non_core = conversational).
- Only intents with status "active" take part in recognition.
- Confidence: 0..1, rounded to two decimals. 0.95 is reserved for an exact name match.
- Matched: confidence >= min_confidence (default 0.6), at most 5, best first.
- Candidates: 0.30 < confidence < min_confidence, at most 10, best first.

Workflow:
1) recognize(text) for one utterance, recognize_batch(texts) for up to 100.
2) The top matched intent has its usage_count bumped; candidates never do.
3) Maintain the catalog with create_intent / update_intent / set_intent_status / delete_intent.
4) Browse with list_intents, search_intents (fuzzy name search), list_categories, get_recent_activity.

Docs:
- intentcat://docs/index
- intentcat://docs/scoring
- intentcat://docs/catalog
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "intentcat://docs/index",
		Name:        "docs_index",
		Title:       "intentcat docs index",
		Description: "Entry point: what the server does and which doc to read next.",
		Content: `# intentcat

Read **scoring** before tuning keywords or thresholds.
Read **catalog** before bulk-editing intents.

## Tools

| Tool | Purpose |
|------|---------|
| recognize | score one utterance |
| recognize_batch | score up to 100 utterances, order kept |
| create_intent / update_intent / delete_intent | edit the catalog |
| set_intent_status | move an intent in or out of recognition |
| get_intent / list_intents / search_intents | browse |
| create_category / list_categories | grouping |
| get_recent_activity | audit trail of catalog edits |

## Known limits

- Matching is lexical. Synonyms only help through keywords.
- Scores are not calibrated probabilities.
`,
	},
	{
		URI:         "intentcat://docs/scoring",
		Name:        "docs_scoring",
		Title:       "How confidence is computed",
		Description: "The rule ladder behind every confidence value.",
		Content: `# Scoring

Text and intent name are compared after Unicode NFC normalization, trimming and lowercasing.
Each rule proposes a value; the highest wins.

1. Exact name match: **0.95** (ceiling)
2. Text contains name, or name contains text: **0.80**
3. Text contains description, or description contains text: **0.70**
4. Keywords: with h of n keywords found in the text, min(0.90, 0.40 + 0.50 * h/n)
5. Only when the best so far is below 0.50: edit-distance similarity s of text and name;
   if s > 0.60 the rule proposes 0.60 * s

The result is rounded to two decimals.

## Tuning tips

- Keep names short; longer names rarely contain the whole utterance.
- Many keywords dilute the fraction. Three to five distinctive ones work best.
- Lower min_confidence to see more matched results; candidates fill the gap down to 0.30.
`,
	},
	{
		URI:         "intentcat://docs/catalog",
		Name:        "docs_catalog",
		Title:       "Catalog maintenance",
		Description: "Kinds, statuses, categories and usage statistics.",
		Content: `# Catalog

- kind: core (device or app function) or non_core (chit-chat with a canned response)
- status: active, inactive, draft, testing. New intents default to active.
- keywords are stored lowercased with duplicates removed.
- usage_count and last_used_at change only when an intent is the top match of a recognition.
- Categories are flat. Deleting an intent keeps its activity history.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
