package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"vedo/internal/platform/kafka/producer"
)

// KafkaSink publishes audit entries to a Kafka topic keyed by creator ID so
// per-creator history stays ordered within a partition.
type KafkaSink struct {
	producer *producer.Producer
	topic    string
}

func NewKafkaSink(p *producer.Producer, topic string) *KafkaSink {
	return &KafkaSink{producer: p, topic: topic}
}

// Publish hands the entry to the producer's background delivery so audit
// emission never blocks a request on broker round trips. Delivery failures
// are logged by the producer; Close flushes what is still buffered.
func (s *KafkaSink) Publish(_ context.Context, entry *Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}
	return s.producer.ProduceAsync(&producer.Message{
		Topic: s.topic,
		Key:   []byte(entry.CreatorID.String()),
		Value: payload,
		Headers: map[string]string{
			"action": string(entry.Action),
		},
	})
}
