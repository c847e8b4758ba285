// Package kafka publishes outbox events to a Kafka topic. Each message is keyed by the
// aggregate id so that events of one aggregate stay ordered within a partition.
package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/storefront-service/internal/app/contracts"
)

// Publisher implements contracts.Publisher with a long-lived kafka-go writer.
type Publisher struct {
	writer *kafkaGo.Writer
}

// NewPublisher creates a Publisher for topic on brokers.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafkaGo.Writer{
			Addr:         kafkaGo.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafkaGo.Hash{},
			RequiredAcks: kafkaGo.RequireAll,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// Publish writes one event and waits for the broker acknowledgement.
func (p *Publisher) Publish(ctx context.Context, event *contracts.OutboxEvent) error {
	msg, err := Message(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s to kafka: %w", event.EventType, err)
	}
	return nil
}

// Close flushes and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// Message builds the Kafka message for an outbox event.
func Message(event *contracts.OutboxEvent) (kafkaGo.Message, error) {
	value, err := Envelope(event)
	if err != nil {
		return kafkaGo.Message{}, err
	}
	return kafkaGo.Message{
		Key:   []byte(event.AggregateID),
		Value: value,
		Time:  event.CreatedAt,
		Headers: []kafkaGo.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}, nil
}

// Envelope encodes the event metadata and payload as a protobuf Struct in JSON form.
// Payload numbers that a double cannot hold exactly are carried as decimal strings.
func Envelope(event *contracts.OutboxEvent) ([]byte, error) {
	payload := structpb.NewNullValue()
	if event.Payload != "" {
		dec := json.NewDecoder(bytes.NewReader([]byte(event.Payload)))
		dec.UseNumber()
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode payload of event %s: %w", event.EventID, err)
		}
		v, err := toValue(raw)
		if err != nil {
			return nil, fmt.Errorf("build envelope for event %s: %w", event.EventID, err)
		}
		payload = v
	}

	envelope := &structpb.Struct{Fields: map[string]*structpb.Value{
		"event_id":     structpb.NewStringValue(event.EventID),
		"event_type":   structpb.NewStringValue(event.EventType),
		"aggregate_id": structpb.NewStringValue(event.AggregateID),
		"created_at":   structpb.NewStringValue(event.CreatedAt.UTC().Format(time.RFC3339Nano)),
		"payload":      payload,
	}}

	return protojson.Marshal(envelope)
}

func toValue(v any) (*structpb.Value, error) {
	switch v := v.(type) {
	case json.Number:
		return numberValue(v), nil
	case map[string]any:
		fields := make(map[string]*structpb.Value, len(v))
		for k, item := range v {
			fv, err := toValue(item)
			if err != nil {
				return nil, err
			}
			fields[k] = fv
		}
		return structpb.NewStructValue(&structpb.Struct{Fields: fields}), nil
	case []any:
		values := make([]*structpb.Value, len(v))
		for i, item := range v {
			iv, err := toValue(item)
			if err != nil {
				return nil, err
			}
			values[i] = iv
		}
		return structpb.NewListValue(&structpb.ListValue{Values: values}), nil
	default:
		return structpb.NewValue(v)
	}
}

// numberValue keeps n as a number when float64 represents it exactly.
func numberValue(n json.Number) *structpb.Value {
	exact, ok := new(big.Rat).SetString(n.String())
	if !ok {
		return structpb.NewStringValue(n.String())
	}
	f, _ := exact.Float64()
	back := new(big.Rat)
	if back.SetFloat64(f) == nil || back.Cmp(exact) != 0 {
		return structpb.NewStringValue(n.String())
	}
	return structpb.NewNumberValue(f)
}
