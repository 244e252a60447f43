package scrape

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"report-agent/internal/domain/entity"

	"github.com/PuerkitoBio/goquery"
)

// seriesFromTables scans tables for rows whose first cell is a label and
// second cell parses as a number. The first table producing at least two
// points wins.
func seriesFromTables(doc *goquery.Document) entity.Series {
	var series entity.Series

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		var points []entity.SeriesPoint

		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td, th")
			if cells.Length() < 2 {
				return
			}
			label := normalizeSpace(cells.Eq(0).Text())
			value, ok := parseNumeric(cells.Eq(1).Text())
			if label == "" || !ok {
				return
			}
			points = append(points, entity.SeriesPoint{Label: label, Value: value})
		})

		if len(points) >= 2 {
			series = entity.Series{Points: points, TimeOrdered: looksTimeOrdered(points)}
			return false
		}
		return true
	})

	return series
}

var itemValuePattern = regexp.MustCompile(`^(.+?)[:\s]\s*\$?([0-9][0-9,]*(?:\.[0-9]+)?)%?$`)

// seriesFromItems recognizes "Label: 123.4"-shaped items as a numeric
// series when the page had no usable table.
func seriesFromItems(items []string) entity.Series {
	var points []entity.SeriesPoint
	for _, item := range items {
		m := itemValuePattern.FindStringSubmatch(item)
		if m == nil {
			continue
		}
		value, ok := parseNumeric(m[2])
		if !ok {
			continue
		}
		label := strings.TrimRight(strings.TrimSpace(m[1]), ":-")
		if label == "" {
			continue
		}
		points = append(points, entity.SeriesPoint{Label: label, Value: value})
	}

	if len(points) < 2 {
		return entity.Series{}
	}
	return entity.Series{Points: points, TimeOrdered: looksTimeOrdered(points)}
}

func parseNumeric(s string) (float64, bool) {
	s = normalizeSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

var yearPattern = regexp.MustCompile(`^(19|20)\d{2}$`)

var timeLabelLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"Jan 2006",
	"January 2006",
	"Jan 2, 2006",
	"January",
	"Jan",
}

func looksTimeOrdered(points []entity.SeriesPoint) bool {
	if len(points) < 2 {
		return false
	}
	for _, p := range points {
		if !looksLikeTimeLabel(p.Label) {
			return false
		}
	}
	return true
}

func looksLikeTimeLabel(label string) bool {
	label = strings.TrimSpace(label)
	if yearPattern.MatchString(label) {
		return true
	}
	for _, layout := range timeLabelLayouts {
		if _, err := time.Parse(layout, label); err == nil {
			return true
		}
	}
	return false
}
