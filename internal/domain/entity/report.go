package entity

import "time"

// MaxReportImages caps embedded images per report. The chart, when present,
// takes the first slot.
const MaxReportImages = 3

type Report struct {
	Task      string
	RunID     string
	Generated time.Time
	Data      ExtractedData
	Chart     *ChartArtifact
}
