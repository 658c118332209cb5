package housekeeping

import (
	"context"
	"fmt"
	"hotelres/internal/reservations/events"
	"hotelres/pkg/kafka"
	"hotelres/pkg/logger"
)

type eventFunc func(ctx context.Context, event events.ReservationEvent) error

// EventHandler applies reservation lifecycle events to the cleaning board.
type EventHandler struct {
	board    *Board
	log      *logger.Logger
	handlers map[events.Type]eventFunc
}

func NewEventHandler(board *Board, log *logger.Logger) *EventHandler {
	h := &EventHandler{
		board: board,
		log:   log,
	}
	h.handlers = map[events.Type]eventFunc{
		events.TypeCreated:    h.acknowledge,
		events.TypeCheckedIn:  h.onCheckedIn,
		events.TypeCheckedOut: h.onCheckedOut,
		events.TypeCancelled:  h.acknowledge,
	}
	return h
}

// Handle is a kafka.MessageHandler. Undecodable payloads and unknown event types
// are permanent errors so the consumer parks them on the DLQ without retrying.
func (h *EventHandler) Handle(ctx context.Context, msg kafka.Message) error {
	var event events.ReservationEvent
	if err := msg.DecodeValue(&event); err != nil {
		return err
	}

	eventType := event.Type
	if header := msg.GetEventType(); header != "" {
		parsed, err := events.ParseType(header)
		if err != nil {
			return kafka.NewPermanentError("unsupported event type", err)
		}
		eventType = parsed
	}

	fn, ok := h.handlers[eventType]
	if !ok {
		return kafka.NewPermanentError("unsupported event type", fmt.Errorf("no handler for %q", eventType))
	}
	return fn(ctx, event)
}

func (h *EventHandler) onCheckedOut(ctx context.Context, event events.ReservationEvent) error {
	added := h.board.MarkDirty(PendingRoom{
		RoomNumber:    event.RoomNumber,
		RoomType:      event.RoomType,
		ReservationID: event.ReservationID,
		Since:         event.OccurredAt,
	})

	h.log.Info("Room queued for cleaning",
		"room_number", event.RoomNumber,
		"reservation_id", event.ReservationID,
		"already_pending", !added,
	)
	return nil
}

func (h *EventHandler) onCheckedIn(ctx context.Context, event events.ReservationEvent) error {
	if h.board.IsPending(event.RoomNumber) {
		h.log.Warn("Guest checked into a room still awaiting cleaning",
			"room_number", event.RoomNumber,
			"reservation_id", event.ReservationID,
		)
	}
	return nil
}

func (h *EventHandler) acknowledge(ctx context.Context, event events.ReservationEvent) error {
	h.log.Debug("Reservation event acknowledged",
		"type", event.Type,
		"reservation_id", event.ReservationID,
		"room_number", event.RoomNumber,
	)
	return nil
}
