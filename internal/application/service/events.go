package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ProfileEventType string

const (
	ProfileEventCreated ProfileEventType = "profile.created"
	ProfileEventUpdated ProfileEventType = "profile.updated"
	ProfileEventDeleted ProfileEventType = "profile.deleted"
)

type ProfileEvent struct {
	ID         uuid.UUID        `json:"id"`
	EventType  ProfileEventType `json:"event_type"`
	OwnerID    uuid.UUID        `json:"owner_id"`
	OccurredAt time.Time        `json:"occurred_at"`
}

func NewProfileEvent(t ProfileEventType, ownerID uuid.UUID) ProfileEvent {
	return ProfileEvent{
		ID:         uuid.New(),
		EventType:  t,
		OwnerID:    ownerID,
		OccurredAt: time.Now().UTC(),
	}
}

type EventPublisher interface {
	PublishProfileEvent(ctx context.Context, e ProfileEvent) error
}
