package metapage

import (
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/event"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/locmeta/pkg/loc"
	"github.com/Sumatoshi-tech/locmeta/pkg/locstats"
	"github.com/Sumatoshi-tech/locmeta/pkg/plotpage"
	"github.com/Sumatoshi-tech/locmeta/pkg/timeline"
)

const (
	seriesCommits  = "Commits"
	seriesSelected = "Selected"

	hourSplits = 8

	valueDateLayout = "2006-01-02 15:04 -07:00"
)

// Scatter values are [x millis, hour, id, author, lines, date, url].
const tooltipJS = `function (p) {
  var v = p.value;
  return '<b>' + v[2].substring(0, 7) + '</b><br>' + v[5] + '<br>' + v[3] + '<br>' + v[4] + ' lines edited';
}`

const clickJS = `function (p) {
  if (p.value && p.value[6]) { window.open(p.value[6], '_blank', 'noopener'); }
}`

const brushJS = `function (params) {
  var n = 0;
  (params.batch[0].selected || []).forEach(function (s) { n += s.dataIndex.length; });
  var el = document.getElementById('` + SelectionCountID + `');
  if (el) {
    el.textContent = n === 0 ? 'No commits selected' : (n === 1 ? '1 commit selected' : n + ' commits selected');
  }
}`

func scatterChart(st timeline.State, cOpts *plotpage.ChartOpts, style plotpage.Style) *charts.Scatter {
	chart := st.Chart()
	sel := st.Selection()

	var plain, selected []opts.ScatterData

	for _, dot := range chart.Dots(st.Visible()) {
		d := scatterPoint(dot)
		if timeline.IsSelected(dot.Commit, sel, chart) {
			selected = append(selected, d)
		} else {
			plain = append(plain, d)
		}
	}

	lo, hi := chart.X.Start, chart.X.End

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(style.Width, style.Height)),
		charts.WithTooltipOpts(cOpts.FuncTooltip(tooltipJS)),
		charts.WithGridOpts(cOpts.Grid()),
		charts.WithXAxisOpts(cOpts.TimeXAxis("Date", millis(lo), millis(hi))),
		charts.WithYAxisOpts(cOpts.BoundedYAxis("Hour", 0, timeline.HoursPerDay, hourSplits)),
		charts.WithLegendOpts(cOpts.Legend()),
		charts.WithToolboxOpts(cOpts.BrushToolbox()),
		charts.WithBrush(cOpts.Brush()),
		charts.WithEventListeners(
			event.Listener{EventName: "brushselected", Handler: opts.FuncOpts(brushJS)},
			event.Listener{EventName: "click", Handler: opts.FuncOpts(clickJS)},
		),
	)

	scatter.AddSeries(seriesCommits, plain,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: cOpts.Color(0), Opacity: opts.Float(dotOpacity)}))

	if sel.Active() {
		scatter.AddSeries(seriesSelected, selected,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: cOpts.Color(1)}))
	}

	return scatter
}

const dotOpacity = 0.7

func scatterPoint(dot timeline.Dot) opts.ScatterData {
	c := dot.Commit

	return opts.ScatterData{
		Name: c.ID,
		Value: []any{
			millis(c.Datetime),
			math.Round(c.HourFrac*100) / 100,
			c.ID,
			c.Author,
			c.TotalLines,
			c.Datetime.Format(valueDateLayout),
			c.URL,
		},
		SymbolSize: max(1, int(math.Round(2*dot.R))),
	}
}

func filesSection(rows []loc.Row, top int, cOpts *plotpage.ChartOpts, colors typeColors,
	style plotpage.Style,
) plotpage.Section {
	files := locstats.FileLines(rows)
	subtitle := strconv.Itoa(len(files)) + " files"

	if len(files) > top {
		subtitle += ", top " + strconv.Itoa(top) + " shown"
		files = files[:top]
	}

	bars := make([]plotpage.Bar, len(files))
	for i, f := range files {
		bars[i] = plotpage.Bar{Label: f.File, Value: f.Lines, Color: colors.of(f.Type), Group: f.Type}
	}

	return plotpage.Section{
		ID:       "files",
		Title:    "Lines per file",
		Subtitle: subtitle,
		Chart:    plotpage.WrapChart(plotpage.BuildBarChart(cOpts, style, bars, "File", "Lines")),
	}
}

func languagesSection(rows []loc.Row, cOpts *plotpage.ChartOpts, colors typeColors,
	style plotpage.Style,
) plotpage.Section {
	langs := locstats.Languages(rows)
	slices := make([]plotpage.PieSlice, len(langs))
	table := plotpage.NewTable("Type", "Lines", "Share")

	for i, l := range langs {
		slices[i] = plotpage.PieSlice{Name: l.Type, Value: l.Lines, Color: colors.of(l.Type)}
		table.AddRow(l.Type, strconv.Itoa(l.Lines), l.Percent)
	}

	return plotpage.Section{
		ID:    "languages",
		Title: "Languages",
		Chart: plotpage.Components{
			plotpage.WrapChart(plotpage.BuildPieChart(cOpts, style, "Languages", slices)),
			table,
		},
	}
}

// typeColors gives each type tag a palette color by first appearance in the
// whole dataset, so colors hold across filters.
type typeColors struct {
	cOpts   *plotpage.ChartOpts
	ordinal map[string]int
}

func newTypeColors(cOpts *plotpage.ChartOpts, rows []loc.Row) typeColors {
	tc := typeColors{cOpts: cOpts, ordinal: make(map[string]int)}

	for _, r := range rows {
		if _, ok := tc.ordinal[r.Type]; !ok {
			tc.ordinal[r.Type] = len(tc.ordinal)
		}
	}

	return tc
}

func (tc typeColors) of(typ string) string {
	i, ok := tc.ordinal[typ]
	if !ok {
		i = len(tc.ordinal)
	}

	return tc.cOpts.Color(i)
}
