package output

import "report-agent/internal/domain/entity"

// ExtractorPort pulls intent-relevant text, numeric series and image URLs
// out of page HTML. An empty result is valid, not an error.
type ExtractorPort interface {
	Extract(htmlBody, baseURL string, intent entity.Intent) entity.ExtractedData
}
