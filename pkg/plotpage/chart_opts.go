package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ChartOpts provides themed chart options based on the current theme.
type ChartOpts struct {
	theme ThemeConfig
}

// NewChartOpts creates a new ChartOpts with the given theme.
func NewChartOpts(theme Theme) *ChartOpts {
	return &ChartOpts{theme: GetThemeConfig(theme)}
}

// Init returns initialization options with themed background.
func (c *ChartOpts) Init(width, height string) opts.Initialization {
	return opts.Initialization{
		Width:           width,
		Height:          height,
		BackgroundColor: c.theme.ChartBackground,
	}
}

// Title returns title options with themed text colors.
func (c *ChartOpts) Title(title, subtitle string) opts.Title {
	return opts.Title{
		Title:         title,
		Subtitle:      subtitle,
		Left:          "center",
		TitleStyle:    &opts.TextStyle{Color: c.theme.ChartText},
		SubtitleStyle: &opts.TextStyle{Color: c.theme.ChartTextMuted},
	}
}

// Legend returns a scrolling legend with themed text color.
func (c *ChartOpts) Legend() opts.Legend {
	return opts.Legend{
		Show:      opts.Bool(true),
		Type:      "scroll",
		Bottom:    "0",
		Left:      "center",
		TextStyle: &opts.TextStyle{Color: c.theme.ChartTextMuted},
	}
}

// CategoryXAxis returns a category x-axis.
func (c *ChartOpts) CategoryXAxis(name string, rotate float64) opts.XAxis {
	return opts.XAxis{
		Name: name,
		Type: "category",
		AxisLabel: &opts.AxisLabel{
			Color:    c.theme.ChartTextMuted,
			Rotate:   rotate,
			Interval: "0",
		},
		AxisLine: &opts.AxisLine{LineStyle: &opts.LineStyle{Color: c.theme.ChartAxis}},
	}
}

// TimeXAxis returns a time x-axis bounded to [minMillis, maxMillis].
func (c *ChartOpts) TimeXAxis(name string, minMillis, maxMillis int64) opts.XAxis {
	return opts.XAxis{
		Name:      name,
		Type:      "time",
		Min:       minMillis,
		Max:       maxMillis,
		AxisLabel: &opts.AxisLabel{Color: c.theme.ChartTextMuted},
		AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: c.theme.ChartAxis}},
	}
}

// YAxis returns a value y-axis with themed colors.
func (c *ChartOpts) YAxis(name string) opts.YAxis {
	return opts.YAxis{
		Name:      name,
		AxisLabel: &opts.AxisLabel{Color: c.theme.ChartTextMuted},
		AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: c.theme.ChartAxis}},
		SplitLine: &opts.SplitLine{
			Show:      opts.Bool(true),
			LineStyle: &opts.LineStyle{Color: c.theme.ChartGrid},
		},
	}
}

// BoundedYAxis returns a value y-axis clamped to [lo, hi].
func (c *ChartOpts) BoundedYAxis(name string, lo, hi float64, splits int) opts.YAxis {
	axis := c.YAxis(name)
	axis.Type = "value"
	axis.Min = lo
	axis.Max = hi
	axis.SplitNumber = splits

	return axis
}

// Grid returns grid options with standard margins.
func (c *ChartOpts) Grid() opts.Grid {
	return opts.Grid{
		Top:          "12%",
		Bottom:       "12%",
		Left:         "4%",
		Right:        "4%",
		ContainLabel: opts.Bool(true),
	}
}

// Tooltip returns tooltip options with the given trigger.
func (c *ChartOpts) Tooltip(trigger string) opts.Tooltip {
	return opts.Tooltip{Show: opts.Bool(true), Trigger: trigger}
}

// FuncTooltip returns an item tooltip rendered by a JavaScript formatter.
func (c *ChartOpts) FuncTooltip(formatter string) opts.Tooltip {
	return opts.Tooltip{
		Show:      opts.Bool(true),
		Trigger:   "item",
		Formatter: opts.FuncOpts(formatter),
	}
}

// BrushToolbox returns a toolbox exposing rectangular brush selection.
func (c *ChartOpts) BrushToolbox() opts.Toolbox {
	return opts.Toolbox{
		Show: opts.Bool(true),
		Feature: &opts.ToolBoxFeature{
			Brush: &opts.ToolBoxFeatureBrush{Type: []string{"rect", "clear"}},
			SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
				Show:  opts.Bool(true),
				Title: "Save",
			},
		},
	}
}

// Brush returns brush options dimming items outside the selection.
func (c *ChartOpts) Brush() opts.Brush {
	return opts.Brush{
		XAxisIndex: "all",
		OutOfBrush: &opts.BrushOutOfBrush{ColorAlpha: outOfBrushAlpha},
	}
}

// Color returns the palette color for index i, cycling.
func (c *ChartOpts) Color(i int) string {
	return c.theme.Palette[i%len(c.theme.Palette)]
}

// Palette returns the theme's category palette.
func (c *ChartOpts) Palette() opts.Colors {
	return append(opts.Colors(nil), c.theme.Palette...)
}

// TextColor returns the primary chart text color.
func (c *ChartOpts) TextColor() string {
	return c.theme.ChartText
}

const outOfBrushAlpha = 0.15
