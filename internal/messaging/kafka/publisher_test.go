package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/storefront-service/internal/app/contracts"
)

func TestMessage(t *testing.T) {
	event := &contracts.OutboxEvent{
		EventID:     "evt-1",
		EventType:   "order.placed",
		AggregateID: "order-1",
		Payload:     `{"order_id":"order-1","total":45.5,"line_count":2}`,
		CreatedAt:   time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC),
	}

	msg, err := Message(event)
	require.NoError(t, err)
	assert.Equal(t, []byte("order-1"), msg.Key)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "order.placed", string(msg.Headers[1].Value))

	var envelope structpb.Struct
	require.NoError(t, protojson.Unmarshal(msg.Value, &envelope))
	fields := envelope.AsMap()
	assert.Equal(t, "evt-1", fields["event_id"])
	assert.Equal(t, "2026-07-01T10:00:00Z", fields["created_at"])

	payload, ok := fields["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 45.5, payload["total"])
}

func TestEnvelope_Numbers(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    any
	}{
		{name: "exact decimal stays a number", payload: `{"total":45.50}`, want: 45.5},
		{name: "integer stays a number", payload: `{"total":12}`, want: float64(12)},
		{name: "wide decimal becomes a string", payload: `{"total":12345678901234567.89}`, want: "12345678901234567.89"},
		{name: "large integer becomes a string", payload: `{"total":9007199254740993}`, want: "9007199254740993"},
		{name: "tenth becomes a string", payload: `{"total":0.1}`, want: "0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := Envelope(&contracts.OutboxEvent{EventID: "evt-3", Payload: tt.payload})
			require.NoError(t, err)

			var envelope structpb.Struct
			require.NoError(t, protojson.Unmarshal(value, &envelope))
			payload, ok := envelope.AsMap()["payload"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.want, payload["total"])
		})
	}
}

func TestEnvelope_NestedPayload(t *testing.T) {
	value, err := Envelope(&contracts.OutboxEvent{
		EventID: "evt-4",
		Payload: `{"items":[{"qty":2,"price":"1/3"}],"meta":null}`,
	})
	require.NoError(t, err)

	var envelope structpb.Struct
	require.NoError(t, protojson.Unmarshal(value, &envelope))
	payload := envelope.AsMap()["payload"].(map[string]any)
	items := payload["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, map[string]any{"qty": float64(2), "price": "1/3"}, items[0])
	assert.Nil(t, payload["meta"])
}

func TestEnvelope_EmptyPayload(t *testing.T) {
	value, err := Envelope(&contracts.OutboxEvent{EventID: "evt-5"})
	require.NoError(t, err)

	var envelope structpb.Struct
	require.NoError(t, protojson.Unmarshal(value, &envelope))
	assert.Nil(t, envelope.AsMap()["payload"])
}

func TestEnvelope_InvalidPayload(t *testing.T) {
	_, err := Envelope(&contracts.OutboxEvent{EventID: "evt-2", Payload: "{not json"})
	assert.Error(t, err)
}
