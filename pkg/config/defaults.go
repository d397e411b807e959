package config

import "time"

// Input defaults.
const (
	DefaultLocCSV      = "meta/loc.csv"
	DefaultProjects    = "lib/projects.json"
	DefaultDataTimeout = 30 * time.Second
)

// Filter and stats defaults.
const (
	DefaultSliderMax = 100.0
	DefaultStatsUnit = "rows"
)

// Chart defaults: a 1000x600 viewport.
const (
	DefaultChartWidth   = 1000.0
	DefaultChartHeight  = 600.0
	DefaultMarginTop    = 10.0
	DefaultMarginRight  = 10.0
	DefaultMarginBottom = 30.0
	DefaultMarginLeft   = 20.0
	DefaultRadiusMin    = 2.0
	DefaultRadiusMax    = 30.0
	DefaultTopFiles     = 25
)

// Site defaults.
const (
	DefaultSiteTitle = "Portfolio"
	DefaultBasePath  = "/portfolio/"
)

// Preference defaults.
const (
	DefaultPrefsFile = "prefs.db"
	DefaultScheme    = "auto"
)

// Export defaults.
const DefaultIndentSize = 2

// DefaultExportExtensions lists the file extensions blamed by export.
var DefaultExportExtensions = []string{"js", "css", "html", "svelte", "ts", "go", "py", "md"}
