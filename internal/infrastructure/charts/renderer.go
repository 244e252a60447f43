package charts

import (
	"bytes"
	"fmt"

	"report-agent/internal/application/port/output"
	"report-agent/internal/domain/entity"

	chart "github.com/wcharczuk/go-chart/v2"
)

var _ output.ChartRendererPort = (*Renderer)(nil)

const (
	imageWidth  = 640
	imageHeight = 400
	maxLabelLen = 18
)

type Renderer struct {
	logger output.LoggerPort
}

func NewRenderer(logger output.LoggerPort) *Renderer {
	return &Renderer{logger: logger}
}

func (r *Renderer) Render(series entity.Series, kind entity.ChartKind) (*entity.ChartArtifact, error) {
	if series.Empty() {
		return nil, nil
	}

	var buf bytes.Buffer
	var err error

	switch kind {
	case entity.ChartPie:
		err = renderPie(series, &buf)
	case entity.ChartLine:
		err = renderLine(series, &buf)
	default:
		kind = entity.ChartBar
		err = renderBar(series, &buf)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s chart: %w", kind, err)
	}

	r.logger.Debug("Chart rendered", "kind", string(kind), "points", len(series.Points), "bytes", buf.Len())

	return &entity.ChartArtifact{Kind: kind, PNG: buf.Bytes()}, nil
}

func renderBar(series entity.Series, buf *bytes.Buffer) error {
	bars := make([]chart.Value, 0, len(series.Points))
	for _, p := range series.Points {
		bars = append(bars, chart.Value{Value: p.Value, Label: clipLabel(p.Label)})
	}

	graph := chart.BarChart{
		Width:    imageWidth,
		Height:   imageHeight,
		BarWidth: 40,
		Bars:     bars,
	}
	return graph.Render(chart.PNG, buf)
}

func renderPie(series entity.Series, buf *bytes.Buffer) error {
	values := make([]chart.Value, 0, len(series.Points))
	for _, p := range series.Points {
		values = append(values, chart.Value{Value: p.Value, Label: clipLabel(p.Label)})
	}

	graph := chart.PieChart{
		Width:  imageWidth,
		Height: imageHeight,
		Values: values,
	}
	return graph.Render(chart.PNG, buf)
}

func renderLine(series entity.Series, buf *bytes.Buffer) error {
	xs := make([]float64, 0, len(series.Points))
	ys := make([]float64, 0, len(series.Points))
	for i, p := range series.Points {
		xs = append(xs, float64(i))
		ys = append(ys, p.Value)
	}

	graph := chart.Chart{
		Width:  imageWidth,
		Height: imageHeight,
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: xs, YValues: ys},
		},
	}
	return graph.Render(chart.PNG, buf)
}

func clipLabel(label string) string {
	if len(label) <= maxLabelLen {
		return label
	}
	return label[:maxLabelLen-3] + "..."
}
