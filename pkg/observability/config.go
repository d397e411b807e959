package observability

import (
	"io"
	"log/slog"
)

// AppMode identifies the surface emitting telemetry.
type AppMode string

const (
	// ModeCLI is the one-shot command line mode.
	ModeCLI AppMode = "cli"
)

const (
	defaultServiceName        = "locmeta"
	defaultShutdownTimeoutSec = 5
)

// Config controls tracing, metrics and logging setup.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Mode           AppMode

	// OTLPEndpoint enables OTLP gRPC export of traces and metrics when set.
	OTLPEndpoint string
	OTLPInsecure bool
	OTLPHeaders  map[string]string

	// SampleRatio is the root trace sampling ratio; zero samples everything.
	SampleRatio float64

	LogLevel  slog.Level
	LogJSON   bool
	LogWriter io.Writer

	ShutdownTimeoutSec int
}

// DefaultConfig returns a CLI configuration with no exporters.
func DefaultConfig() Config {
	return Config{
		ServiceName:        defaultServiceName,
		Mode:               ModeCLI,
		LogLevel:           slog.LevelInfo,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}
