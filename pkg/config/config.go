// Package config provides configuration loading and validation for locmeta.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidSliderMax = errors.New("filter slider max must be positive")
	ErrInvalidChartSize = errors.New("chart width and height must exceed the margins")
	ErrInvalidRadius    = errors.New("chart radius range must satisfy 0 < min <= max")
	ErrInvalidScheme    = errors.New("color scheme must be auto, light or dark")
	ErrInvalidLogFormat = errors.New("logging format must be text or json")
	ErrInvalidUnit      = errors.New("stats unit must be rows or commits")
	ErrInvalidTimeout   = errors.New("data timeout must be positive")
)

// Config holds all configuration for locmeta.
type Config struct {
	Data          DataConfig          `mapstructure:"data"`
	Filter        FilterConfig        `mapstructure:"filter"`
	Chart         ChartConfig         `mapstructure:"chart"`
	Stats         StatsConfig         `mapstructure:"stats"`
	Site          SiteConfig          `mapstructure:"site"`
	Prefs         PrefsConfig         `mapstructure:"prefs"`
	Export        ExportConfig        `mapstructure:"export"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// DataConfig locates and governs the inputs.
type DataConfig struct {
	LocCSV    string        `mapstructure:"loc_csv"`
	Projects  string        `mapstructure:"projects"`
	CommitURL string        `mapstructure:"commit_url"`
	Timeout   time.Duration `mapstructure:"timeout"`

	// Strict aborts a load on the first unparsable row.
	Strict bool `mapstructure:"strict"`
}

// FilterConfig configures the time slider.
type FilterConfig struct {
	SliderMax float64 `mapstructure:"slider_max"`
}

// ChartConfig holds the scatter-plot viewport.
type ChartConfig struct {
	Width        float64 `mapstructure:"width"`
	Height       float64 `mapstructure:"height"`
	MarginTop    float64 `mapstructure:"margin_top"`
	MarginRight  float64 `mapstructure:"margin_right"`
	MarginBottom float64 `mapstructure:"margin_bottom"`
	MarginLeft   float64 `mapstructure:"margin_left"`
	RadiusMin    float64 `mapstructure:"radius_min"`
	RadiusMax    float64 `mapstructure:"radius_max"`
	TopFiles     int     `mapstructure:"top_files"`
}

// StatsConfig configures the statistics.
type StatsConfig struct {
	Unit string `mapstructure:"unit"`
}

// SiteConfig configures the site navigation.
type SiteConfig struct {
	Title     string     `mapstructure:"title"`
	BasePath  string     `mapstructure:"base_path"`
	Host      string     `mapstructure:"host"`
	GitHubURL string     `mapstructure:"github_url"`
	Pages     []PageLink `mapstructure:"pages"`
}

// PageLink is one navigation entry.
type PageLink struct {
	URL   string `mapstructure:"url"`
	Title string `mapstructure:"title"`
}

// PrefsConfig locates the preference store.
type PrefsConfig struct {
	Path          string `mapstructure:"path"`
	DefaultScheme string `mapstructure:"default_scheme"`
}

// ExportConfig configures the git export.
type ExportConfig struct {
	Extensions []string `mapstructure:"extensions"`
	IndentSize int      `mapstructure:"indent_size"`
	SkipVendor bool     `mapstructure:"skip_vendor"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ObservabilityConfig holds tracing and metrics configuration.
type ObservabilityConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	OTLPHeaders  string  `mapstructure:"otlp_headers"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	Environment  string  `mapstructure:"environment"`
	MetricsFile  string  `mapstructure:"metrics_file"`
}

// LoadConfig loads configuration from file and environment variables.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("locmeta")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")

		home, homeErr := os.UserHomeDir()
		if homeErr == nil {
			viperCfg.AddConfigPath(filepath.Join(home, ".config", "locmeta"))
		}
	}

	viperCfg.SetEnvPrefix("LOCMETA")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("data.loc_csv", DefaultLocCSV)
	viperCfg.SetDefault("data.projects", DefaultProjects)
	viperCfg.SetDefault("data.commit_url", "")
	viperCfg.SetDefault("data.timeout", DefaultDataTimeout)
	viperCfg.SetDefault("data.strict", false)

	viperCfg.SetDefault("filter.slider_max", DefaultSliderMax)

	viperCfg.SetDefault("chart.width", DefaultChartWidth)
	viperCfg.SetDefault("chart.height", DefaultChartHeight)
	viperCfg.SetDefault("chart.margin_top", DefaultMarginTop)
	viperCfg.SetDefault("chart.margin_right", DefaultMarginRight)
	viperCfg.SetDefault("chart.margin_bottom", DefaultMarginBottom)
	viperCfg.SetDefault("chart.margin_left", DefaultMarginLeft)
	viperCfg.SetDefault("chart.radius_min", DefaultRadiusMin)
	viperCfg.SetDefault("chart.radius_max", DefaultRadiusMax)
	viperCfg.SetDefault("chart.top_files", DefaultTopFiles)

	viperCfg.SetDefault("stats.unit", DefaultStatsUnit)

	viperCfg.SetDefault("site.title", DefaultSiteTitle)
	viperCfg.SetDefault("site.base_path", DefaultBasePath)
	viperCfg.SetDefault("site.host", "")
	viperCfg.SetDefault("site.github_url", "")

	viperCfg.SetDefault("prefs.path", defaultPrefsPath())
	viperCfg.SetDefault("prefs.default_scheme", DefaultScheme)

	viperCfg.SetDefault("export.extensions", DefaultExportExtensions)
	viperCfg.SetDefault("export.indent_size", DefaultIndentSize)
	viperCfg.SetDefault("export.skip_vendor", true)

	viperCfg.SetDefault("logging.level", "info")
	viperCfg.SetDefault("logging.format", "text")

	viperCfg.SetDefault("observability.otlp_endpoint", "")
	viperCfg.SetDefault("observability.otlp_insecure", false)
	viperCfg.SetDefault("observability.otlp_headers", "")
	viperCfg.SetDefault("observability.sample_ratio", 1.0)
	viperCfg.SetDefault("observability.environment", "")
	viperCfg.SetDefault("observability.metrics_file", "")
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	if config.Filter.SliderMax <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSliderMax, config.Filter.SliderMax)
	}

	c := config.Chart
	if c.Width <= c.MarginLeft+c.MarginRight || c.Height <= c.MarginTop+c.MarginBottom {
		return fmt.Errorf("%w: %vx%v", ErrInvalidChartSize, c.Width, c.Height)
	}

	if c.RadiusMin <= 0 || c.RadiusMax < c.RadiusMin {
		return fmt.Errorf("%w: [%v, %v]", ErrInvalidRadius, c.RadiusMin, c.RadiusMax)
	}

	switch config.Prefs.DefaultScheme {
	case "auto", "light", "dark":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidScheme, config.Prefs.DefaultScheme)
	}

	switch config.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	switch config.Stats.Unit {
	case "rows", "commits":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidUnit, config.Stats.Unit)
	}

	if config.Data.Timeout <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, config.Data.Timeout)
	}

	return nil
}

func defaultPrefsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultPrefsFile
	}

	return filepath.Join(dir, "locmeta", DefaultPrefsFile)
}
