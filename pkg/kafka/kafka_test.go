package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func header(msg kafka.Message, key string) string {
	return NewHeaderCarrier(&msg.Headers).Get(key)
}

func TestNewEvent_Fields(t *testing.T) {
	type scored struct {
		ProductID string  `json:"product_id"`
		Score     float64 `json:"score"`
	}

	event, err := NewEvent("trust.product.scored", "p-1", "product", "review-trust", scored{"p-1", 87.5})
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, 1, event.Version)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, 2*time.Second)

	var got scored
	require.NoError(t, event.UnmarshalData(&got))
	assert.Equal(t, 87.5, got.Score)
}

func TestNewEvent_InvalidData(t *testing.T) {
	_, err := NewEvent("x", "a", "t", "s", make(chan int))
	require.Error(t, err)
}

func TestEvent_Chaining(t *testing.T) {
	event, err := NewEvent("x", "a", "t", "s", nil)
	require.NoError(t, err)

	assert.Same(t, event, event.WithCorrelationID("corr-1").WithMetadata("k", "v"))
	assert.Equal(t, "corr-1", event.CorrelationID)
	assert.Equal(t, "v", event.Metadata["k"])
}

func TestProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, nil, slog.New(slog.DiscardHandler))

	event, err := NewEvent("trust.product.scored", "p-1", "product", "review-trust", map[string]int{"n": 1})
	require.NoError(t, err)
	event.WithCorrelationID("corr-7")

	require.NoError(t, p.Publish(context.Background(), "trust.product.scored", event))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "trust.product.scored", msg.Topic)
	assert.Equal(t, []byte("p-1"), msg.Key)
	assert.Equal(t, "trust.product.scored", header(msg, "event_type"))
	assert.Equal(t, "review-trust", header(msg, "source"))
	assert.Equal(t, "corr-7", header(msg, "correlation_id"))
	assert.JSONEq(t, `{"n":1}`, string(mustEvent(t, msg.Value).Data))
}

func TestProducer_PublishInjectsTraceContext(t *testing.T) {
	prevTP, prevProp := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})

	ctx, span := tp.Tracer("test").Start(context.Background(), "publish")
	defer span.End()

	w := &fakeWriter{}
	p := NewProducerWithWriter(w, nil, slog.New(slog.DiscardHandler))
	event, err := NewEvent("x", "a", "t", "s", nil)
	require.NoError(t, err)

	require.NoError(t, p.Publish(ctx, "topic", event))
	assert.Contains(t, header(w.msgs[0], "traceparent"), span.SpanContext().TraceID().String())
}

func TestProducer_PublishError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := NewProducerWithWriter(w, nil, slog.New(slog.DiscardHandler))
	event, err := NewEvent("x", "a", "t", "s", nil)
	require.NoError(t, err)

	err = p.Publish(context.Background(), "topic", event)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestProducer_Close(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, NewProducerWithWriter(w, nil, slog.New(slog.DiscardHandler)).Close())
	assert.True(t, w.closed)
}

func TestPingBrokers_NoBrokers(t *testing.T) {
	require.Error(t, PingBrokers(context.Background(), nil))
}

func TestHeaderCarrier(t *testing.T) {
	headers := []kafka.Header{{Key: "existing", Value: []byte("v1")}}
	c := NewHeaderCarrier(&headers)

	assert.Equal(t, "v1", c.Get("existing"))
	assert.Empty(t, c.Get("missing"))

	c.Set("existing", "v2")
	c.Set("new", "v3")
	assert.Equal(t, "v2", c.Get("existing"))
	assert.Len(t, headers, 2)
	assert.ElementsMatch(t, []string{"existing", "new"}, c.Keys())
}

func mustEvent(t *testing.T, b []byte) *Event {
	t.Helper()
	var e Event
	require.NoError(t, json.Unmarshal(b, &e))
	return &e
}
