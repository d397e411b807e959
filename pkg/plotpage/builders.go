package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Bar is one labelled bar with an optional color and tooltip name.
type Bar struct {
	Label string
	Value int
	Color string
	// Group names the category the bar belongs to, shown in the tooltip.
	Group string
}

// PieSlice is one labelled slice of a pie chart.
type PieSlice struct {
	Name  string
	Value int
	Color string
}

// BuildBarChart builds a single-series bar chart whose bars keep their own
// colors. A nil cOpts uses the light theme.
func BuildBarChart(cOpts *ChartOpts, style Style, bars []Bar, xName, yName string) *charts.Bar {
	if cOpts == nil {
		cOpts = NewChartOpts(ThemeLight)
	}

	labels := make([]string, len(bars))
	data := make([]opts.BarData, len(bars))

	for i, b := range bars {
		labels[i] = b.Label
		data[i] = opts.BarData{Name: b.Label, Value: b.Value}

		if b.Color != "" {
			data[i].ItemStyle = &opts.ItemStyle{Color: b.Color}
		}

		if b.Group != "" {
			data[i].Tooltip = &opts.Tooltip{Show: opts.Bool(true), Formatter: types.FuncStr(b.Group + " {b}: {c}")}
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(style.Width, style.Height)),
		charts.WithTooltipOpts(cOpts.Tooltip("item")),
		charts.WithGridOpts(cOpts.Grid()),
		charts.WithXAxisOpts(cOpts.CategoryXAxis(xName, barLabelRotate)),
		charts.WithYAxisOpts(cOpts.YAxis(yName)),
	)

	bar.SetXAxis(labels)
	bar.AddSeries(yName, data)

	return bar
}

// BuildPieChart builds a pie chart. Slices without a color take the theme
// palette in order.
func BuildPieChart(cOpts *ChartOpts, style Style, name string, slices []PieSlice) *charts.Pie {
	if cOpts == nil {
		cOpts = NewChartOpts(ThemeLight)
	}

	data := make([]opts.PieData, len(slices))

	for i, s := range slices {
		color := s.Color
		if color == "" {
			color = cOpts.Color(i)
		}

		data[i] = opts.PieData{
			Name:      s.Name,
			Value:     s.Value,
			ItemStyle: &opts.ItemStyle{Color: color},
		}
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(style.Width, style.Height)),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item", Formatter: "{b}: {c} ({d}%)"}),
		charts.WithLegendOpts(cOpts.Legend()),
	)

	pie.AddSeries(name, data,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Color:     cOpts.TextColor(),
			Formatter: "{b}\n{d}%",
		}),
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"35%", "65%"}}),
	)

	return pie
}

const barLabelRotate = 30
