package interpreter

import (
	"testing"

	"report-agent/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestParseIntent_CleanJSON(t *testing.T) {
	reply := `{"subject":"cryptocurrency prices","website_url":"https://example.com/prices","count":5,"output_kind":"numeric-series"}`

	outcome := parseIntent("Get the latest cryptocurrency prices", reply)

	assert.False(t, outcome.Fallback)
	assert.Equal(t, "cryptocurrency prices", outcome.Intent.Subject)
	assert.Equal(t, "https://example.com/prices", outcome.Intent.WebsiteURL)
	assert.Equal(t, 5, outcome.Intent.Count)
	assert.Equal(t, entity.OutputNumericSeries, outcome.Intent.Kind)
}

func TestParseIntent_JSONWrappedInProse(t *testing.T) {
	reply := "Sure, here is the JSON you asked for:\n```json\n" +
		`{"subject":"AI headlines","output_kind":"list","count":5}` +
		"\n```\nLet me know if you need anything else."

	outcome := parseIntent("Find the top 5 AI related headlines", reply)

	assert.False(t, outcome.Fallback)
	assert.Equal(t, "AI headlines", outcome.Intent.Subject)
	assert.Equal(t, entity.OutputList, outcome.Intent.Kind)
	assert.Equal(t, 5, outcome.Intent.Count)
}

func TestParseIntent_GarbageFallsBack(t *testing.T) {
	outcome := parseIntent("Find yana caves info", "I cannot answer that.")

	assert.True(t, outcome.Fallback)
	assert.Equal(t, "Find yana caves info", outcome.Intent.Subject)
	assert.Equal(t, entity.OutputSummary, outcome.Intent.Kind)
	assert.Equal(t, "I cannot answer that.", outcome.RawReply)
}

func TestParseIntent_EmptySubjectFallsBack(t *testing.T) {
	outcome := parseIntent("some task", `{"subject":"  ","output_kind":"list"}`)

	assert.True(t, outcome.Fallback)
	assert.Equal(t, "some task", outcome.Intent.Subject)
}

func TestParseIntent_UnknownKindDefaultsToSummary(t *testing.T) {
	outcome := parseIntent("task", `{"subject":"x","output_kind":"table"}`)

	assert.False(t, outcome.Fallback)
	assert.Equal(t, entity.OutputSummary, outcome.Intent.Kind)
}

func TestParseIntent_RejectsBadURL(t *testing.T) {
	outcome := parseIntent("task", `{"subject":"x","website_url":"not a url"}`)

	assert.False(t, outcome.Fallback)
	assert.Equal(t, "", outcome.Intent.WebsiteURL)
}

func TestParseIntent_InvalidJSONBetweenBraces(t *testing.T) {
	outcome := parseIntent("task", "prefix {subject: broken} suffix")

	assert.True(t, outcome.Fallback)
}

func TestNormalizeKind(t *testing.T) {
	assert.Equal(t, entity.OutputList, normalizeKind(" List "))
	assert.Equal(t, entity.OutputNumericSeries, normalizeKind("numeric series"))
	assert.Equal(t, entity.OutputSummary, normalizeKind(""))
}
