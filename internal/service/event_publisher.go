package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"bed-admission-service/internal/observability/metrics"

	"github.com/go-resty/resty/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	EventBedCreated            = "BedCreated"
	EventBedStatusChanged      = "BedStatusChanged"
	EventBedDeactivated        = "BedDeactivated"
	EventAdmissionCreated      = "AdmissionCreated"
	EventAdmissionDischarged   = "AdmissionDischarged"
	EventAdmissionTransferred  = "AdmissionTransferred"
	EventWorkflowStatusChanged = "WorkflowStatusChanged"
)

// Timeout for individual Redis operations issued outside a request context
const redisOpTimeout = 5 * time.Second

// Event is the envelope sent to every sink
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// EventPublisher announces committed mutations to external collaborators.
// Publish never blocks the caller and never reports failure.
type EventPublisher interface {
	Publish(eventType string, payload interface{})
}

// RedisEventPublisher fans events out to a Redis pub/sub channel and,
// optionally, an HTTP webhook.
type RedisEventPublisher struct {
	redisClient *redis.Client
	channel     string
	webhook     *resty.Client
	webhookURL  string
	log         *logrus.Logger
	metrics     *metrics.BedMetrics

	wg sync.WaitGroup
}

// NewRedisEventPublisher creates a publisher. redisClient may be nil to
// disable the channel sink, webhookURL may be empty to disable the webhook.
func NewRedisEventPublisher(redisClient *redis.Client, channel, webhookURL string, log *logrus.Logger, m *metrics.BedMetrics) *RedisEventPublisher {
	p := &RedisEventPublisher{
		redisClient: redisClient,
		channel:     channel,
		webhookURL:  webhookURL,
		log:         log,
		metrics:     m,
	}

	if webhookURL != "" {
		p.webhook = resty.New().
			SetTimeout(10*time.Second).
			SetRetryCount(3).
			SetRetryWaitTime(500*time.Millisecond).
			SetRetryMaxWaitTime(3*time.Second).
			SetHeader("Content-Type", "application/json").
			AddRetryCondition(func(r *resty.Response, err error) bool {
				return r != nil && r.StatusCode() >= 500
			})
	}

	return p
}

func (p *RedisEventPublisher) Publish(eventType string, payload interface{}) {
	event := Event{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Warnf("Failed to encode %s event: %+v", eventType, err)
		return
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.deliver(eventType, body)
	}()
}

func (p *RedisEventPublisher) deliver(eventType string, body []byte) {
	if p.redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
		err := p.redisClient.Publish(ctx, p.channel, body).Err()
		cancel()
		p.metrics.ObserveEvent("redis", err)
		if err != nil {
			p.log.Warnf("Failed to publish %s event to channel %s: %+v", eventType, p.channel, err)
		}
	}

	if p.webhook != nil {
		err := p.postWebhook(body)
		p.metrics.ObserveEvent("webhook", err)
		if err != nil {
			p.log.Warnf("Failed to deliver %s event to webhook: %+v", eventType, err)
		}
	}
}

func (p *RedisEventPublisher) postWebhook(body []byte) error {
	resp, err := p.webhook.R().
		SetBody(body).
		Post(p.webhookURL)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("webhook responded %d", resp.StatusCode())
	}
	return nil
}

// Close waits for in-flight deliveries to finish
func (p *RedisEventPublisher) Close() {
	p.wg.Wait()
	p.log.Info("Event publisher stopped")
}
