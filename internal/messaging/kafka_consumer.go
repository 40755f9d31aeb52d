package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/corner-alert-service/internal/models"
)

// PayloadProcessor runs the scoring pipeline for one fixture payload.
type PayloadProcessor interface {
	ProcessPayload(ctx context.Context, payload *models.MatchPayload) error
}

// KafkaConsumer consumes match telemetry batches from Kafka and feeds them
// into the decision pipeline. It is the push-mode alternative to polling the
// feed API directly.
type KafkaConsumer struct {
	reader    *kafka.Reader
	processor PayloadProcessor
	logger    zerolog.Logger
}

// KafkaConsumerConfig holds Kafka consumer configuration
type KafkaConsumerConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "match_telemetry"
	GroupID string   // e.g., "corner-alert"
}

// NewKafkaConsumer creates a new Kafka consumer
func NewKafkaConsumer(
	config KafkaConsumerConfig,
	processor PayloadProcessor,
	logger zerolog.Logger,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.GroupID,
		MinBytes:       1e3,  // 1KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: 1000, // Commit every 1 second
	})

	return &KafkaConsumer{
		reader:    reader,
		processor: processor,
		logger:    logger.With().Str("component", "kafka_consumer").Logger(),
	}
}

// Start begins consuming messages from Kafka
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("topic", c.reader.Config().Topic).
		Str("group_id", c.reader.Config().GroupID).
		Msg("started consuming from Kafka")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("stopping Kafka consumer")
			return c.reader.Close()

		default:
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if err == context.Canceled {
					return nil
				}
				c.logger.Error().Err(err).Msg("failed to fetch message")
				continue
			}

			if err := c.processMessage(ctx, msg); err != nil {
				c.logger.Error().
					Err(err).
					Int64("offset", msg.Offset).
					Str("key", string(msg.Key)).
					Msg("failed to process message")
				// Don't commit if processing failed
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error().Err(err).Msg("failed to commit message")
			}
		}
	}
}

// processMessage processes a single Kafka message
func (c *KafkaConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	var telemetry models.TelemetryMessage
	if err := json.Unmarshal(msg.Value, &telemetry); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	c.logger.Debug().
		Int("payload_count", len(telemetry.Payloads)).
		Str("batch_id", telemetry.BatchID).
		Msg("processing telemetry batch")

	for i := range telemetry.Payloads {
		payload := &telemetry.Payloads[i]
		if err := c.processor.ProcessPayload(ctx, payload); err != nil {
			return fmt.Errorf("failed to process fixture %d: %w", payload.Snapshot.FixtureID, err)
		}
	}

	c.logger.Info().
		Int("payload_count", len(telemetry.Payloads)).
		Str("batch_id", telemetry.BatchID).
		Msg("processed telemetry batch")

	return nil
}

// Close closes the Kafka reader
func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
