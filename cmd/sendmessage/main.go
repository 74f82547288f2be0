package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/fr0stylo/msgsink/pkg/webhookclient"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file loaded:", err)
	}
	v := viper.New()
	v.AutomaticEnv()

	endpoint := flag.String("endpoint", strings.TrimSpace(v.GetString("MSGSINK_ENDPOINT")), "Service base URL (or MSGSINK_ENDPOINT)")
	secret := flag.String("secret", strings.TrimSpace(v.GetString("WEBHOOK_SECRET")), "Webhook secret (or WEBHOOK_SECRET)")
	messageID := flag.String("id", "", "Message id (random UUID when empty)")
	from := flag.String("from", "", "Sender MSISDN in E.164 form")
	to := flag.String("to", "", "Recipient MSISDN in E.164 form")
	ts := flag.String("ts", "", "UTC timestamp ending in Z (now when empty)")
	text := flag.String("text", "", "Message text (optional)")
	envelope := flag.String("envelope", "", "Framing: empty, cloudevents-binary or cloudevents-structured")
	source := flag.String("source", strings.TrimSpace(v.GetString("MSGSINK_EVENT_SOURCE")), "CloudEvents source")
	timeout := flag.Duration("timeout", 10*time.Second, "Request timeout")
	flag.Parse()

	if strings.TrimSpace(*endpoint) == "" || strings.TrimSpace(*secret) == "" {
		exitErr("endpoint/secret are required (or set MSGSINK_ENDPOINT, WEBHOOK_SECRET)")
	}

	msg := webhookclient.Message{
		MessageID: strings.TrimSpace(*messageID),
		From:      strings.TrimSpace(*from),
		To:        strings.TrimSpace(*to),
		Timestamp: strings.TrimSpace(*ts),
	}
	if *text != "" {
		msg.Text = text
	}

	client := webhookclient.Client{
		Endpoint: strings.TrimSpace(*endpoint),
		Secret:   strings.TrimSpace(*secret),
		Timeout:  *timeout,
		Envelope: webhookclient.Envelope(strings.TrimSpace(*envelope)),
		Source:   strings.TrimSpace(*source),
	}
	id, err := client.Publish(context.Background(), msg)
	if err != nil {
		exitErr(err.Error())
	}

	fmt.Printf("Delivered message_id=%s from=%s to=%s\n", id, msg.From, msg.To)
}

func exitErr(message string) {
	fmt.Fprintln(os.Stderr, message)
	os.Exit(1)
}
