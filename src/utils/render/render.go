package render

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Series is an ordered list of labelled values.
type Series struct {
	Labels []string
	Values []float64
}

func NewBarGraph(title string, subtitle string, data Series) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}))

	items := make([]opts.BarData, 0, len(data.Values))
	for _, v := range data.Values {
		items = append(items, opts.BarData{Value: v})
	}
	bar.SetXAxis(data.Labels).AddSeries("Transactions", items)
	return bar
}

func NewPieGraph(title string, subtitle string, data Series) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}))

	items := make([]opts.PieData, 0, len(data.Values))
	for i, v := range data.Values {
		items = append(items, opts.PieData{Name: data.Labels[i], Value: v})
	}
	pie.AddSeries("Categories", items)
	return pie
}

// RenderPage writes a standalone HTML page holding every chart.
func RenderPage(w io.Writer, pageTitle string, graphs ...components.Charter) error {
	page := components.NewPage()
	page.PageTitle = pageTitle
	page.AddCharts(graphs...)
	return page.Render(w)
}
