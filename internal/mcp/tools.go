package mcp

import "github.com/mark3labs/mcp-go/mcp"

var analyzeToolDef = mcp.NewTool("clickbait_analyze",
	mcp.WithDescription("Score an Indonesian news headline for clickbait. Returns a 0-100 score, a category (safe, warning, suspicious, danger) and every signal that fired. Set save=true to keep the result in history."),
	mcp.WithString("title",
		mcp.Required(),
		mcp.Description("Headline to analyze"),
	),
	mcp.WithBoolean("save",
		mcp.Description("Persist the analysis to history (default false)"),
	),
	mcp.WithString("source",
		mcp.Description("Publisher or feed name, stored with save=true"),
	),
	mcp.WithString("link",
		mcp.Description("Article URL, stored with save=true"),
	),
)

var tagToolDef = mcp.NewTool("clickbait_tag",
	mcp.WithDescription("Flag a batch of headlines with the quick phrase check. Output order matches input order. Set with_score=true to also return the full score per headline."),
	mcp.WithArray("titles",
		mcp.Required(),
		mcp.Description("Headlines to tag"),
		mcp.Items(map[string]any{"type": "string"}),
	),
	mcp.WithBoolean("with_score",
		mcp.Description("Also run the full analyzer on each headline (default false)"),
	),
)

var fetchToolDef = mcp.NewTool("clickbait_fetch",
	mcp.WithDescription("Fetch a stored analysis by ID, including its triggers."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Analysis ID"),
	),
	mcp.WithBoolean("include_deleted",
		mcp.Description("Also return soft-deleted analyses (default false)"),
	),
)

var listToolDef = mcp.NewTool("clickbait_list",
	mcp.WithDescription("List stored analyses, newest first, with optional filters and pagination."),
	mcp.WithString("category",
		mcp.Description("Only this category"),
		mcp.Enum("safe", "warning", "suspicious", "danger"),
	),
	mcp.WithBoolean("clickbait_only",
		mcp.Description("Only analyses scored 30 or above"),
	),
	mcp.WithString("query",
		mcp.Description("Case-insensitive substring of the title"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Page size (default 20, max 100)"),
	),
	mcp.WithNumber("offset",
		mcp.Description("Items to skip (default 0)"),
	),
	mcp.WithBoolean("include_deleted",
		mcp.Description("Include soft-deleted analyses (default false)"),
	),
)

var statsToolDef = mcp.NewTool("clickbait_stats",
	mcp.WithDescription("Summarize stored analyses: totals, clickbait rate, average score and per-category counts."),
)

var deleteToolDef = mcp.NewTool("clickbait_delete",
	mcp.WithDescription("Soft-delete a stored analysis. Use clickbait_purge to remove it permanently."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Analysis ID"),
	),
)

var purgeToolDef = mcp.NewTool("clickbait_purge",
	mcp.WithDescription("Permanently delete soft-deleted analyses."),
	mcp.WithNumber("older_than_days",
		mcp.Description("Only purge analyses deleted more than N days ago"),
	),
)
