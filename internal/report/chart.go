package report

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"sanhuu/internal/core"
)

// RenderBucketChart renders a bucketed income/expense series as a PNG bar
// chart. Each bucket contributes a stacked pair: net income above zero would
// hide the expense side, so the bars carry income and expense as separate
// values with the bucket key as label.
func RenderBucketChart(title string, points []BucketPoint, w io.Writer) error {
	if len(points) == 0 {
		return fmt.Errorf("render chart: empty series")
	}

	var bars []chart.Value
	for _, p := range points {
		bars = append(bars, chart.Value{
			Label: p.Key,
			Value: float64(p.Income),
			Style: chart.Style{FillColor: drawing.ColorFromHex("10b981")},
		})
		bars = append(bars, chart.Value{
			Label: "",
			Value: float64(p.Expense),
			Style: chart.Style{FillColor: drawing.ColorFromHex("ef4444")},
		})
	}

	barChart := chart.BarChart{
		Title: title,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:    900,
		Height:   400,
		BarWidth: 30,
		Bars:     bars,
	}
	barChart.YAxis.ValueFormatter = func(v interface{}) string {
		if f, ok := v.(float64); ok {
			return core.FormatMoney(int64(f))
		}
		return ""
	}

	if err := barChart.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
