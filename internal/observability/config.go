package observability

import (
	"os"
	"strconv"
	"strings"
)

// Config carries logging, tracing and metrics settings.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
	OtelSamplingRatio    float64
}

// LoadConfig reads observability settings from the environment.
func LoadConfig() Config {
	return Config{
		ServiceName: envString("APP_SERVICE", "ledgique"),
		Environment: envString("ENVIRONMENT", "development"),
		Version:     envString("APP_VERSION", "0.1.0"),

		LogLevel:  envString("LOG_LEVEL", "info"),
		LogFormat: envString("LOG_FORMAT", "json"),

		OtelEnabled:          envBool("OTEL_ENABLED", false),
		OtelExporterEndpoint: envString("OTEL_EXPORTER_ENDPOINT", "localhost:4317"),
		OtelExporterProtocol: envString("OTEL_EXPORTER_PROTOCOL", "grpc"),
		OtelSamplingRatio:    envFloat("OTEL_SAMPLING_RATIO", 1.0),
	}
}

// Debug reports whether the service runs with debug-level diagnostics.
func (c Config) Debug() bool {
	return strings.EqualFold(strings.TrimSpace(c.LogLevel), "debug")
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

func envFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return parsed
}
