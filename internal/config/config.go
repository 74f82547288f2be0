package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppName       string
	Server        ServerConfig
	Webhook       WebhookConfig
	Database      DatabaseConfig
	Logging       LoggingConfig
	Metrics       MetricsConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Port int
}

type WebhookConfig struct {
	Secret string
}

type DatabaseConfig struct {
	Path      string
	LogTiming bool
}

type LoggingConfig struct {
	Level slog.Level
}

type MetricsConfig struct {
	Enabled bool
}

type ObservabilityConfig struct {
	Enabled           bool
	OTLPEndpoint      string
	OTLPTraceHeaders  map[string]string
	OTLPMetricHeaders map[string]string
	ServiceName       string
	ServiceVer        string
	SamplingRatio     float64
	MetricsConsole    bool
}

// Load reads process configuration from the environment.
// A missing webhook secret is not an error; readiness reports it instead.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("app_name", "Webhook Service")
	v.SetDefault("port", 8000)
	v.SetDefault("webhook_secret", "")
	v.SetDefault("database_url", "data/app.db")
	v.SetDefault("db_log_timing", false)
	v.SetDefault("log_level", "INFO")
	v.SetDefault("enable_metrics", true)
	v.SetDefault("otel_enabled", false)
	v.SetDefault("otel_exporter_otlp_endpoint", "")
	v.SetDefault("otel_exporter_otlp_headers", "")
	v.SetDefault("otel_exporter_otlp_traces_headers", "")
	v.SetDefault("otel_exporter_otlp_metrics_headers", "")
	v.SetDefault("otel_service_name", "msgsink")
	v.SetDefault("service_version", "dev")
	v.SetDefault("otel_sampling_ratio", 1.0)
	v.SetDefault("otel_metrics_console", false)

	port := v.GetInt("port")
	if port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT: %d", port)
	}

	level, err := parseLogLevel(v.GetString("log_level"))
	if err != nil {
		return Config{}, err
	}

	samplingRatio := v.GetFloat64("otel_sampling_ratio")
	if samplingRatio < 0 {
		samplingRatio = 0
	}
	if samplingRatio > 1 {
		samplingRatio = 1
	}

	serviceName := strings.TrimSpace(v.GetString("otel_service_name"))
	if serviceName == "" {
		serviceName = "msgsink"
	}
	serviceVersion := strings.TrimSpace(v.GetString("service_version"))
	if serviceVersion == "" {
		serviceVersion = "dev"
	}

	otlpEndpoint := strings.TrimSpace(v.GetString("otel_exporter_otlp_endpoint"))
	otlpCommonHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_headers"))
	otlpTraceHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_traces_headers"))
	otlpMetricHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_metrics_headers"))
	metricsConsole := v.GetBool("otel_metrics_console")

	cfg := Config{
		AppName: strings.TrimSpace(v.GetString("app_name")),
		Server:  ServerConfig{Port: port},
		Webhook: WebhookConfig{
			Secret: v.GetString("webhook_secret"),
		},
		Database: DatabaseConfig{
			Path:      strings.TrimSpace(v.GetString("database_url")),
			LogTiming: v.GetBool("db_log_timing"),
		},
		Logging: LoggingConfig{Level: level},
		Metrics: MetricsConfig{Enabled: v.GetBool("enable_metrics")},
		Observability: ObservabilityConfig{
			Enabled:           v.GetBool("otel_enabled") || otlpEndpoint != "" || metricsConsole,
			OTLPEndpoint:      otlpEndpoint,
			OTLPTraceHeaders:  mergeHeaderMaps(otlpCommonHeaders, otlpTraceHeaders),
			OTLPMetricHeaders: mergeHeaderMaps(otlpCommonHeaders, otlpMetricHeaders),
			ServiceName:       serviceName,
			ServiceVer:        serviceVersion,
			SamplingRatio:     samplingRatio,
			MetricsConsole:    metricsConsole,
		},
	}

	if cfg.AppName == "" {
		cfg.AppName = "Webhook Service"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/app.db"
	}

	return cfg, nil
}

// HasWebhookSecret reports whether ingestion can authenticate requests.
func (c Config) HasWebhookSecret() bool {
	return c.Webhook.Secret != ""
}

func parseLogLevel(raw string) (slog.Level, error) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	switch value {
	case "", "INFO":
		return slog.LevelInfo, nil
	case "WARNING":
		return slog.LevelWarn, nil
	case "CRITICAL":
		return slog.LevelError, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL: %q", raw)
	}
	return level, nil
}

func parseOTLPHeaders(raw string) map[string]string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	out := make(map[string]string)
	for _, part := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func mergeHeaderMaps(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}
