package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/fr0stylo/msgsink/pkg/webhookclient"
)

type config struct {
	BaseURL  string `mapstructure:"base_url"`
	Secret   string `mapstructure:"secret"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
	Text     string `mapstructure:"text"`
	Envelope string `mapstructure:"envelope"`
	Interval string `mapstructure:"interval"`
	Count    int    `mapstructure:"count"`
}

func loadConfig(path string) (config, error) {
	if strings.TrimSpace(path) == "" {
		return config{}, fmt.Errorf("config path is required")
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("interval", "1s")
	v.SetDefault("text", "generated message")
	if err := v.ReadInConfig(); err != nil {
		return config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Secret = strings.TrimSpace(cfg.Secret)
	cfg.From = strings.TrimSpace(cfg.From)
	cfg.To = strings.TrimSpace(cfg.To)
	cfg.Envelope = strings.TrimSpace(cfg.Envelope)
	cfg.Interval = strings.TrimSpace(cfg.Interval)

	if cfg.BaseURL == "" || cfg.Secret == "" || cfg.From == "" || cfg.To == "" {
		return config{}, fmt.Errorf("config must include base_url, secret, from, to")
	}
	if cfg.Count < 0 {
		return config{}, fmt.Errorf("count must not be negative")
	}
	if _, err := cfg.envelope(); err != nil {
		return config{}, err
	}

	parsed, err := time.ParseDuration(cfg.Interval)
	if err != nil {
		return config{}, fmt.Errorf("invalid interval duration: %w", err)
	}
	if parsed <= 0 {
		return config{}, fmt.Errorf("interval must be positive")
	}

	return cfg, nil
}

func (c config) envelope() (webhookclient.Envelope, error) {
	switch envelope := webhookclient.Envelope(c.Envelope); envelope {
	case webhookclient.EnvelopePlain, webhookclient.EnvelopeCloudEventBinary, webhookclient.EnvelopeCloudEventStructured:
		return envelope, nil
	default:
		return "", fmt.Errorf("unknown envelope %q", c.Envelope)
	}
}
