package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/dealer-locator-service/internal/config"
	"github.com/couchcryptid/dealer-locator-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer the lead writer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// LeadWriter produces dealer leads to a Kafka topic.
// It implements domain.LeadPublisher.
type LeadWriter struct {
	writer messageWriter
	logger *slog.Logger
}

// NewLeadWriter creates a Kafka producer for the configured leads topic.
func NewLeadWriter(cfg *config.Config, logger *slog.Logger) *LeadWriter {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaLeadsTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &LeadWriter{writer: w, logger: logger}
}

// PublishLead serializes a lead and writes it synchronously, keyed by lead ID.
func (w *LeadWriter) PublishLead(ctx context.Context, lead domain.Lead) error {
	msg, err := serializeToMessage(lead)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write lead %s: %w", lead.ID, err)
	}
	w.logger.Debug("lead published", "lead_id", lead.ID, "postal_code", lead.PostalCode)
	return nil
}

func (w *LeadWriter) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Lead into a Kafka message.
func serializeToMessage(lead domain.Lead) (kafkago.Message, error) {
	data, err := json.Marshal(lead)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize lead: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(lead.ID),
		Value: data,
		Time:  lead.SubmittedAt,
		Headers: []kafkago.Header{
			{Key: "postal_code", Value: []byte(lead.PostalCode)},
			{Key: "submitted_at", Value: []byte(lead.SubmittedAt.Format(time.RFC3339))},
		},
	}, nil
}
