package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestEventPublisher_RedisChannel(t *testing.T) {
	_, client := newTestRedis(t)
	ctx := context.Background()

	sub := client.Subscribe(ctx, "bed-events")
	t.Cleanup(func() { sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	publisher := NewRedisEventPublisher(client, "bed-events", "", quietLogger(), nil)
	publisher.Publish(EventBedCreated, map[string]string{"ward": "ICU"})
	publisher.Close()

	select {
	case msg := <-sub.Channel():
		var event struct {
			Type       string            `json:"type"`
			OccurredAt time.Time         `json:"occurred_at"`
			Payload    map[string]string `json:"payload"`
		}
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
		assert.Equal(t, EventBedCreated, event.Type)
		assert.Equal(t, "ICU", event.Payload["ward"])
		assert.False(t, event.OccurredAt.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("event not received")
	}
}

func TestEventPublisher_WebhookRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	var lastBody atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		lastBody.Store(string(body))
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(server.Close)

	publisher := NewRedisEventPublisher(nil, "", server.URL, quietLogger(), nil)
	publisher.Publish(EventAdmissionDischarged, map[string]string{"patient_id": "P1"})
	publisher.Close()

	assert.Equal(t, int32(2), calls.Load())
	assert.Contains(t, lastBody.Load(), `"type":"AdmissionDischarged"`)
}

func TestEventPublisher_FailuresNeverSurface(t *testing.T) {
	mr, client := newTestRedis(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	t.Cleanup(server.Close)
	mr.Close()

	publisher := NewRedisEventPublisher(client, "bed-events", server.URL, quietLogger(), nil)

	done := make(chan struct{})
	go func() {
		publisher.Publish(EventBedDeactivated, nil)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked")
	}
	publisher.Close()
}
