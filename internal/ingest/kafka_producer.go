package ingest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/example/ride-engine/internal/models"
)

// LocationUpdate is the wire payload for a driver position report. The
// consumer replays these into the shared Redis directory.
type LocationUpdate struct {
	DriverID   string       `json:"driver_id"`
	Loc        models.Coord `json:"loc"`
	Rating     float64      `json:"rating"`
	ReportedAt time.Time    `json:"reported_at"`
}

type KafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	w := kafka.NewWriter(kafka.WriterConfig{Brokers: brokers, Topic: topic, Balancer: &kafka.LeastBytes{}})
	return &KafkaProducer{writer: w}
}

// PublishLocation emits one location update keyed by driver id so per-driver
// ordering survives partitioning.
func (k *KafkaProducer) PublishLocation(u LocationUpdate) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return k.writer.WriteMessages(ctx, kafka.Message{Key: []byte(u.DriverID), Value: b})
}

func (k *KafkaProducer) Close() error {
	if k.writer == nil {
		return nil
	}
	return k.writer.Close()
}
