package interpreter

import (
	"net/url"
	"strings"

	"report-agent/internal/domain/entity"

	"github.com/ysmood/gson"
)

// parseIntent turns a model reply into an IntentOutcome. Models wrap JSON
// in prose or code fences often enough that the slice between the first
// '{' and the last '}' is retried before giving up.
func parseIntent(task, reply string) entity.IntentOutcome {
	fallback := entity.IntentOutcome{
		Intent: entity.Intent{
			Subject: strings.TrimSpace(task),
			Kind:    entity.OutputSummary,
		},
		Fallback: true,
		RawReply: reply,
	}

	raw := salvageJSON(reply)
	if raw == "" {
		return fallback
	}

	obj, ok := gson.NewFrom(raw).Val().(map[string]interface{})
	if !ok {
		return fallback
	}

	intent := entity.Intent{Kind: entity.OutputSummary}
	if s, ok := obj["subject"].(string); ok {
		intent.Subject = strings.TrimSpace(s)
	}
	if s, ok := obj["website_url"].(string); ok {
		intent.WebsiteURL = validURL(s)
	}
	if n, ok := obj["count"].(float64); ok && n > 0 {
		intent.Count = int(n)
	}
	if s, ok := obj["output_kind"].(string); ok {
		intent.Kind = normalizeKind(s)
	}

	if intent.Subject == "" {
		return fallback
	}

	return entity.IntentOutcome{Intent: intent, RawReply: reply}
}

func salvageJSON(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return trimmed
	}
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end <= start {
		return ""
	}
	return trimmed[start : end+1]
}

func normalizeKind(s string) entity.OutputKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "list":
		return entity.OutputList
	case "numeric-series", "numeric series", "series":
		return entity.OutputNumericSeries
	default:
		return entity.OutputSummary
	}
}

func validURL(s string) string {
	s = strings.TrimSpace(s)
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	return s
}
