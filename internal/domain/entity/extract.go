package entity

// MaxTextChars caps the total extracted text per run. Excess items are
// dropped whole, never cut mid-item.
const MaxTextChars = 10000

type SeriesPoint struct {
	Label string
	Value float64
}

// Series is a label-to-numeric mapping suitable for charting.
type Series struct {
	Points      []SeriesPoint
	TimeOrdered bool
}

func (s Series) Empty() bool {
	return len(s.Points) == 0
}

// ExtractedData holds what the extractor pulled out of one page.
type ExtractedData struct {
	Title  string
	Items  []string
	Series Series
	Images []string
}

func (d ExtractedData) Empty() bool {
	return len(d.Items) == 0 && d.Series.Empty()
}
