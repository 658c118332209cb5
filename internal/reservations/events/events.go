// Package events describes the reservation lifecycle events published after every
// successful mutation, and the publishers that deliver them.
package events

import (
	"context"
	"fmt"
	"hotelres/pkg/kafka"
	"hotelres/pkg/middleware"
	"hotelres/pkg/model"
	"strconv"
	"time"
)

type Type string

const (
	TypeCreated    Type = "reservation.created"
	TypeCheckedIn  Type = "reservation.checked_in"
	TypeCheckedOut Type = "reservation.checked_out"
	TypeCancelled  Type = "reservation.cancelled"
)

const SchemaVersion = "1"

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeCreated, TypeCheckedIn, TypeCheckedOut, TypeCancelled:
		return Type(s), nil
	}
	return "", fmt.Errorf("unknown reservation event type %q", s)
}

// TypeForStatus names the event emitted when a reservation enters status.
func TypeForStatus(status model.Status) Type {
	switch status {
	case model.StatusReserved:
		return TypeCreated
	case model.StatusCheckedIn:
		return TypeCheckedIn
	case model.StatusCheckedOut:
		return TypeCheckedOut
	case model.StatusCancelled:
		return TypeCancelled
	}
	return ""
}

type ReservationEvent struct {
	Type           Type           `json:"type"`
	ReservationID  int64          `json:"reservation_id"`
	GuestName      string         `json:"guest_name"`
	RoomNumber     int            `json:"room_number"`
	RoomType       model.RoomType `json:"room_type"`
	CheckIn        model.Date     `json:"check_in"`
	CheckOut       model.Date     `json:"check_out"`
	Status         model.Status   `json:"status"`
	PreviousStatus model.Status   `json:"previous_status,omitempty"`
	OccurredAt     time.Time      `json:"occurred_at"`
}

func NewReservationEvent(r *model.Reservation, previous model.Status) ReservationEvent {
	return ReservationEvent{
		Type:           TypeForStatus(r.Status),
		ReservationID:  r.ID,
		GuestName:      r.GuestName,
		RoomNumber:     r.RoomNumber,
		RoomType:       r.RoomType,
		CheckIn:        r.CheckIn,
		CheckOut:       r.CheckOut,
		Status:         r.Status,
		PreviousStatus: previous,
		OccurredAt:     r.UpdatedAt,
	}
}

type Publisher interface {
	Publish(ctx context.Context, event ReservationEvent) error
}

type messageProducer interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// KafkaPublisher keys every event by reservation id so a reservation's events
// stay ordered within one partition.
type KafkaPublisher struct {
	producer messageProducer
	source   string
}

func NewKafkaPublisher(producer messageProducer, source string) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		source:   source,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event ReservationEvent) error {
	msg, err := kafka.NewMessage().
		WithKey(strconv.FormatInt(event.ReservationID, 10)).
		WithValue(event).
		WithEventType(string(event.Type)).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build %s event: %w", event.Type, err)
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	return nil
}

// NoopPublisher drops events. Used when EVENTS_ENABLED is off.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, ReservationEvent) error {
	return nil
}
