package scrape

import (
	"strings"

	"report-agent/internal/application/port/output"
	"report-agent/internal/domain/entity"

	"github.com/PuerkitoBio/goquery"
	"github.com/dyatlov/go-opengraph/opengraph"
)

var _ output.ExtractorPort = (*Extractor)(nil)

const (
	candidateSelector = "h1, h2, h3, h4, li, p"
	minItemChars      = 4
)

type Extractor struct {
	logger output.LoggerPort
}

func NewExtractor(logger output.LoggerPort) *Extractor {
	return &Extractor{logger: logger}
}

// Extract selects heading/list/paragraph text relevant to the intent
// subject, in document order, plus any table-shaped numeric series and
// referenced image URLs. Empty results are valid.
func (e *Extractor) Extract(htmlBody, baseURL string, intent entity.Intent) entity.ExtractedData {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cleanHTML(htmlBody)))
	if err != nil {
		e.logger.Warn("HTML parse failed", "error", err)
		return entity.ExtractedData{}
	}

	og := opengraph.NewOpenGraph()
	_ = og.ProcessHTML(strings.NewReader(htmlBody))

	data := entity.ExtractedData{
		Title:  pageTitle(og, doc),
		Images: imageURLs(og, doc, baseURL),
	}

	items := collectItems(doc, subjectKeywords(intent.Subject))
	if intent.Count > 0 && len(items) > intent.Count {
		items = items[:intent.Count]
	}
	data.Items = capAtItemBoundary(items, entity.MaxTextChars)

	data.Series = seriesFromTables(doc)
	if data.Series.Empty() && intent.Kind == entity.OutputNumericSeries {
		data.Series = seriesFromItems(data.Items)
	}

	e.logger.Info("Extraction finished",
		"items", len(data.Items),
		"seriesPoints", len(data.Series.Points),
		"images", len(data.Images))

	return data
}

// collectItems keeps candidate nodes whose text shares at least one keyword
// with the subject, in document order. With no usable keywords every
// candidate is kept.
func collectItems(doc *goquery.Document, keywords []string) []string {
	var items []string
	seen := make(map[string]bool)

	doc.Find(candidateSelector).Each(func(_ int, s *goquery.Selection) {
		text := normalizeSpace(s.Text())
		if len(text) < minItemChars || seen[text] {
			return
		}
		if len(keywords) > 0 && relevanceScore(text, keywords) == 0 {
			return
		}
		seen[text] = true
		items = append(items, text)
	})

	return items
}

// capAtItemBoundary drops whole trailing items once the running total
// exceeds maxChars; items are never cut mid-text.
func capAtItemBoundary(items []string, maxChars int) []string {
	total := 0
	for i, item := range items {
		total += len(item)
		if i > 0 {
			total++ // separator
		}
		if total > maxChars {
			return items[:i]
		}
	}
	return items
}

func relevanceScore(text string, keywords []string) int {
	lower := strings.ToLower(text)
	score := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			score++
		}
	}
	return score
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "from": true, "with": true,
	"that": true, "this": true, "are": true, "was": true, "were": true,
	"top": true, "latest": true, "get": true, "find": true, "what": true,
	"who": true, "how": true, "list": true, "show": true, "about": true,
}

func subjectKeywords(subject string) []string {
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(subject)) {
		word = strings.Trim(word, ".,;:!?'\"()")
		if len(word) < 3 || stopwords[word] {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}

func pageTitle(og *opengraph.OpenGraph, doc *goquery.Document) string {
	if og != nil && og.Title != "" {
		return normalizeSpace(og.Title)
	}
	return normalizeSpace(doc.Find("title").First().Text())
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
