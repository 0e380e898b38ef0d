package kafka

import (
	"context"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/Coder-aditya-04/Jal-Rakshya/internal/config"
	"github.com/Coder-aditya-04/Jal-Rakshya/internal/domain"
)

// Writer produces messages to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	return newWriter(cfg.KafkaBrokers, cfg.KafkaSinkTopic, logger)
}

// NewAdvisoryWriter creates a Kafka producer for the advisory topic.
func NewAdvisoryWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	return newWriter(cfg.KafkaBrokers, cfg.KafkaAdvisoryTopic, logger)
}

func newWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch publishes multiple output events to the topic in a single
// WriteMessages call for efficiency.
func (w *Writer) LoadBatch(ctx context.Context, events []domain.OutputEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(events))
	for i := range events {
		msgs[i] = mapOutputEventToMessage(events[i])
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

// Publish writes a single output event to the topic.
func (w *Writer) Publish(ctx context.Context, event domain.OutputEvent) error {
	return w.writer.WriteMessages(ctx, mapOutputEventToMessage(event))
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// mapOutputEventToMessage converts a domain output event into a Kafka message.
func mapOutputEventToMessage(event domain.OutputEvent) kafkago.Message {
	headers := make([]kafkago.Header, 0, len(event.Headers))
	for k, v := range event.Headers {
		headers = append(headers, kafkago.Header{Key: k, Value: []byte(v)})
	}
	return kafkago.Message{
		Key:     event.Key,
		Value:   event.Value,
		Headers: headers,
	}
}
