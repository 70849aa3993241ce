// chart_renderer.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/mozillazg/go-unidecode"
	uuid "github.com/satori/go.uuid"

	"github.com/HatsuSumi/Racehorse-Memorial/domain/models"
)

// barPanelKinds get a bar chart; every other panel kind renders as a
// pie. Matches the site's split between ordered numeric domains and
// share-of-total categories.
var barPanelKinds = []string{PanelMonthOfDeath, PanelAgeDistribution}

func isBarPanel(kind string) bool {
	for _, k := range barPanelKinds {
		if k == kind {
			return true
		}
	}
	return false
}

func newChartID() string {
	return strings.ReplaceAll(uuid.NewV4().String(), "-", "")
}

// NewPanelBar builds a bar chart from an aggregated panel.
func NewPanelBar(year int, result models.PanelResult) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    result.Title,
			Subtitle: fmt.Sprintf("%d年", year),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: newChartID(),
			Width:   "900px",
			Height:  "500px",
		}),
	)

	data := make([]opts.BarData, 0, len(result.Counts))
	for _, count := range result.Counts {
		data = append(data, opts.BarData{Value: count})
	}
	bar.SetXAxis(result.Categories).AddSeries("数量", data)
	return bar
}

// NewPanelPie builds a pie chart from an aggregated panel.
func NewPanelPie(year int, result models.PanelResult) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    result.Title,
			Subtitle: fmt.Sprintf("%d年", year),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: newChartID(),
			Width:   "900px",
			Height:  "500px",
		}),
	)

	data := make([]opts.PieData, 0, len(result.Counts))
	for i, count := range result.Counts {
		data = append(data, opts.PieData{Name: result.Categories[i], Value: count})
	}
	pie.AddSeries("数量", data)
	return pie
}

// RenderYearCharts writes one HTML page per year holding every
// configured panel chart, in panel order.
func RenderYearCharts(year int, panels []models.Panel, results map[string]models.PanelResult, outDir string) (string, error) {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("%d年逝世赛马数据", year)

	for _, panel := range panels {
		result, ok := results[panel.Name]
		if !ok {
			return "", fmt.Errorf("no aggregation result for panel %q", panel.Name)
		}
		if isBarPanel(panel.Kind) {
			page.AddCharts(NewPanelBar(year, result))
		} else {
			page.AddCharts(NewPanelPie(year, result))
		}
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(outDir, fmt.Sprintf("%d_%s.html", year, slugify("统计图表")))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return "", fmt.Errorf("render charts for year %d: %v", year, err)
	}
	return path, nil
}

var slugCleanPattern = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// slugify transliterates a Chinese title to an ASCII file-name slug.
func slugify(title string) string {
	slug := unidecode.Unidecode(title)
	slug = slugCleanPattern.ReplaceAllString(slug, "_")
	slug = strings.Trim(slug, "_")
	return strings.ToLower(slug)
}
