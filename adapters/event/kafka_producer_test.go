package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/profile-playground/internal/application/service"
	"github.com/khoahotran/profile-playground/pkg/logger"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	calls    int
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.calls++
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestPublishProfileEvent(t *testing.T) {
	w := &fakeWriter{}
	client := newKafkaProducerClient(w, logger.NewNop())
	e := service.NewProfileEvent(service.ProfileEventUpdated, uuid.New())

	require.NoError(t, client.PublishProfileEvent(context.Background(), e))

	require.Len(t, w.messages, 1)
	assert.Equal(t, e.OwnerID.String(), string(w.messages[0].Key))

	decoded, err := DecodeProfileEvent(w.messages[0])
	require.NoError(t, err)
	assert.Equal(t, e.ID, decoded.ID)
	assert.Equal(t, service.ProfileEventUpdated, decoded.EventType)
	assert.Equal(t, e.OwnerID, decoded.OwnerID)
}

func TestPublishProfileEvent_BreakerOpensAfterFailures(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	client := newKafkaProducerClient(w, logger.NewNop())
	e := service.NewProfileEvent(service.ProfileEventCreated, uuid.New())

	for i := 0; i < 5; i++ {
		assert.Error(t, client.PublishProfileEvent(context.Background(), e))
	}

	err := client.PublishProfileEvent(context.Background(), e)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 5, w.calls, "open breaker does not reach the writer")
}

func TestDecodeProfileEvent_Malformed(t *testing.T) {
	_, err := DecodeProfileEvent(kafka.Message{Value: []byte("{not json")})
	assert.Error(t, err)
}
