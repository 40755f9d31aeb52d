package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cypherlabdev/corner-alert-service/internal/mocks"
	"github.com/cypherlabdev/corner-alert-service/internal/models"
)

// testKafkaConsumerSetup is a helper struct to hold test dependencies
type testKafkaConsumerSetup struct {
	mockProcessor *mocks.MockPayloadProcessor
	logger        zerolog.Logger
	ctrl          *gomock.Controller
}

// setupTestKafkaConsumer creates a test consumer with mocked dependencies
func setupTestKafkaConsumer(t *testing.T) *testKafkaConsumerSetup {
	ctrl := gomock.NewController(t)

	return &testKafkaConsumerSetup{
		mockProcessor: mocks.NewMockPayloadProcessor(ctrl),
		logger:        zerolog.Nop(),
		ctrl:          ctrl,
	}
}

// cleanup cleans up test resources
func (s *testKafkaConsumerSetup) cleanup() {
	s.ctrl.Finish()
}

func telemetryMessage(t *testing.T, batchID string, fixtureIDs ...int64) kafka.Message {
	payloads := make([]models.MatchPayload, 0, len(fixtureIDs))
	for _, id := range fixtureIDs {
		payloads = append(payloads, models.MatchPayload{
			Snapshot: models.MatchSnapshot{
				FixtureID: id,
				Minute:    75,
				Status:    models.StatusLive,
			},
		})
	}

	value, err := json.Marshal(models.TelemetryMessage{
		Payloads:  payloads,
		Timestamp: time.Now().UTC(),
		BatchID:   batchID,
	})
	require.NoError(t, err)

	return kafka.Message{Value: value}
}

// TestNewKafkaConsumer tests consumer creation
func TestNewKafkaConsumer(t *testing.T) {
	setup := setupTestKafkaConsumer(t)
	defer setup.cleanup()

	config := KafkaConsumerConfig{
		Brokers: []string{"localhost:9092"},
		Topic:   "live_match_telemetry",
		GroupID: "test-group",
	}

	consumer := NewKafkaConsumer(config, setup.mockProcessor, setup.logger)

	assert.NotNil(t, consumer)
	assert.NotNil(t, consumer.reader)
	assert.NotNil(t, consumer.processor)
	assert.Equal(t, config.Topic, consumer.reader.Config().Topic)
	assert.Equal(t, config.GroupID, consumer.reader.Config().GroupID)

	consumer.Close()
}

// TestProcessMessage_DeliversEachPayload tests batch fan-out to the pipeline
func TestProcessMessage_DeliversEachPayload(t *testing.T) {
	setup := setupTestKafkaConsumer(t)
	defer setup.cleanup()

	consumer := &KafkaConsumer{processor: setup.mockProcessor, logger: setup.logger}

	var seen []int64
	setup.mockProcessor.EXPECT().
		ProcessPayload(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payload *models.MatchPayload) error {
			seen = append(seen, payload.Snapshot.FixtureID)
			return nil
		}).
		Times(2)

	err := consumer.processMessage(context.Background(), telemetryMessage(t, "batch-1", 1001, 1002))

	require.NoError(t, err)
	assert.Equal(t, []int64{1001, 1002}, seen)
}

// TestProcessMessage_InvalidJSON tests that malformed messages error out so
// they are not committed
func TestProcessMessage_InvalidJSON(t *testing.T) {
	setup := setupTestKafkaConsumer(t)
	defer setup.cleanup()

	consumer := &KafkaConsumer{processor: setup.mockProcessor, logger: setup.logger}

	err := consumer.processMessage(context.Background(), kafka.Message{Value: []byte("not json")})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal message")
}

// TestProcessMessage_ProcessorErrorPropagates tests that a pipeline failure
// fails the whole batch
func TestProcessMessage_ProcessorErrorPropagates(t *testing.T) {
	setup := setupTestKafkaConsumer(t)
	defer setup.cleanup()

	consumer := &KafkaConsumer{processor: setup.mockProcessor, logger: setup.logger}

	setup.mockProcessor.EXPECT().
		ProcessPayload(gomock.Any(), gomock.Any()).
		Return(errors.New("pipeline failure"))

	err := consumer.processMessage(context.Background(), telemetryMessage(t, "batch-1", 1001, 1002))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fixture 1001")
}
