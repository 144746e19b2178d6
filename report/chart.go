package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	tpd "github.com/gofhir/tpd"
)

// Series colors matching the reference chart.
var categoryColors = map[string]string{
	tpd.CategoryCultures: "#1f4e79",
	tpd.CategoryOther:    "#5b9bd5",
}

// chartStack groups all series into one stacked bar per bucket.
const chartStack = "pending"

// WriteChart renders the day-bucket distribution as a standalone HTML
// stacked-bar chart. Buckets appear on the x axis in fixed display order
// with one stacked series per category.
func WriteChart(path string, result *tpd.Result) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Results after Discharge",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Days post-discharge",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Volume",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:  opts.Bool(true),
			Right: "2%",
			Top:   "5%",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Tests Pending at Discharge",
			Width:     "900px",
			Height:    "500px",
		}),
	)

	bar.SetXAxis(tpd.BucketLabels())
	for _, cat := range result.Categories {
		data := make([]opts.BarData, 0, len(tpd.Buckets()))
		for _, bucket := range tpd.Buckets() {
			data = append(data, opts.BarData{Value: result.CategoryCount(bucket, cat)})
		}

		seriesOpts := []charts.SeriesOpts{
			charts.WithBarChartOpts(opts.BarChart{Stack: chartStack}),
		}
		if color, ok := categoryColors[cat]; ok {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: color}))
		}
		bar.AddSeries(cat, data, seriesOpts...)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
