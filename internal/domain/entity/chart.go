package entity

type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartPie  ChartKind = "pie"
	ChartLine ChartKind = "line"
)

// ChartArtifact is a rendered chart image held in memory until the report
// is assembled.
type ChartArtifact struct {
	Kind ChartKind
	PNG  []byte
}

const maxPieSlices = 6

// ChooseChartKind picks the chart for a series by fixed rule: time-ordered
// data becomes a line, a small set of proportions becomes a pie, everything
// else a bar. Prices or counts over categories are not proportions, so they
// chart as bars.
func ChooseChartKind(s Series) ChartKind {
	if s.TimeOrdered {
		return ChartLine
	}
	if len(s.Points) <= maxPieSlices && looksProportional(s.Points) {
		return ChartPie
	}
	return ChartBar
}

// looksProportional reports whether the values read as shares of a whole:
// all positive and summing to roughly 1 or roughly 100.
func looksProportional(points []SeriesPoint) bool {
	if len(points) == 0 {
		return false
	}
	sum := 0.0
	for _, p := range points {
		if p.Value <= 0 {
			return false
		}
		sum += p.Value
	}
	return (sum >= 0.97 && sum <= 1.03) || (sum >= 97 && sum <= 103)
}
