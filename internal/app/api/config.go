package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	ordersapp "github.com/Apurer/go-order-service/internal/domains/orders/application"
)

// Config carries environment-driven settings for the order pipeline processes.
type Config struct {
	Port              string
	PostgresDSN       string
	AWSRegion         string
	QueueURL          string
	TopicARN          string
	EventBusName      string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	PollMaxMessages   int32
	PollWait          time.Duration
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		AWSRegion:         strings.TrimSpace(os.Getenv("AWS_REGION")),
		QueueURL:          strings.TrimSpace(os.Getenv("ORDER_QUEUE_URL")),
		TopicARN:          strings.TrimSpace(os.Getenv("ORDER_TOPIC_ARN")),
		EventBusName:      strings.TrimSpace(os.Getenv("ORDER_EVENT_BUS")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		PollMaxMessages:   ordersapp.DefaultMaxMessages,
		PollWait:          ordersapp.DefaultPollWait,
	}
	if raw := strings.TrimSpace(os.Getenv("ORDER_POLL_MAX_MESSAGES")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 || limit > 10 {
			return Config{}, fmt.Errorf("ORDER_POLL_MAX_MESSAGES must be an integer between 1 and 10")
		}
		cfg.PollMaxMessages = int32(limit)
	}
	if raw := strings.TrimSpace(os.Getenv("ORDER_POLL_WAIT_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds < 0 || seconds > 20 {
			return Config{}, fmt.Errorf("ORDER_POLL_WAIT_SECONDS must be an integer between 0 and 20")
		}
		cfg.PollWait = time.Duration(seconds) * time.Second
	}
	return cfg, nil
}

// MessagingConfigured reports whether all three channel identifiers are present.
func (c Config) MessagingConfigured() bool {
	return c.QueueURL != "" && c.TopicARN != "" && c.EventBusName != ""
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
