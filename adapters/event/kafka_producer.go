package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-playground/internal/application/service"
	"github.com/khoahotran/profile-playground/internal/config"
	"github.com/khoahotran/profile-playground/pkg/logger"
)

const (
	TopicProfileEvents = "profile.events"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	ProfileEventsWriter messageWriter
	cb                  *gobreaker.CircuitBreaker
	logger              logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	profileWriter := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicProfileEvents,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka Producers successfully.", zap.Strings("brokers", brokers))

	return newKafkaProducerClient(profileWriter, log), nil
}

func newKafkaProducerClient(w messageWriter, log logger.Logger) *KafkaProducerClient {
	settings := gobreaker.Settings{
		Name:        "kafka-" + TopicProfileEvents,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Kafka circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &KafkaProducerClient{
		ProfileEventsWriter: w,
		cb:                  gobreaker.NewCircuitBreaker(settings),
		logger:              log,
	}
}

// PublishProfileEvent writes e keyed by owner so events of one profile stay
// ordered within a partition.
func (c *KafkaProducerClient) PublishProfileEvent(ctx context.Context, e service.ProfileEvent) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal profile event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(e.OwnerID.String()),
		Value: value,
		Time:  e.OccurredAt,
	}

	_, err = c.cb.Execute(func() (interface{}, error) {
		return nil, c.ProfileEventsWriter.WriteMessages(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("publish %s event: %w", e.EventType, err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.ProfileEventsWriter != nil {
		if err := c.ProfileEventsWriter.Close(); err != nil {
			c.logger.Error("Failed to close Kafka writer", err)
		}
	}
	c.logger.Info("Closed Kafka Producers")
}

// DecodeProfileEvent parses a message read from TopicProfileEvents.
func DecodeProfileEvent(msg kafka.Message) (service.ProfileEvent, error) {
	var e service.ProfileEvent
	if err := json.Unmarshal(msg.Value, &e); err != nil {
		return e, fmt.Errorf("decode profile event: %w", err)
	}
	return e, nil
}
