package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fr0stylo/msgsink/internal/observability"
	"github.com/fr0stylo/msgsink/pkg/webhookclient"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config) error {
	interval, _ := time.ParseDuration(cfg.Interval)
	envelope, _ := cfg.envelope()

	client := webhookclient.Client{
		Endpoint: cfg.BaseURL,
		Secret:   cfg.Secret,
		Envelope: envelope,
		HTTPClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: observability.InstrumentedTransport(http.DefaultTransport),
		},
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for sent := 0; cfg.Count == 0 || sent < cfg.Count; sent++ {
		if err := send(ctx, client, cfg); err != nil {
			fmt.Fprintln(os.Stderr, "webhook error:", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

func send(ctx context.Context, client webhookclient.Client, cfg config) error {
	text := cfg.Text
	id, err := client.Publish(ctx, webhookclient.Message{
		From: cfg.From,
		To:   cfg.To,
		Text: &text,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Webhook accepted (message_id %s)\n", id)
	return nil
}
