package service

import (
	"context"
	"errors"
	"fmt"
	"hotelres/internal/inventory"
	reservationserrors "hotelres/internal/reservations/errors"
	"hotelres/internal/reservations/events"
	"hotelres/internal/reservations/repository"
	"hotelres/internal/reservations/validator"
	"hotelres/pkg/config"
	apperrors "hotelres/pkg/errors"
	"hotelres/pkg/metrics"
	"hotelres/pkg/model"
	"hotelres/pkg/sanitizer"
	"hotelres/pkg/tracing"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

type ReservationService interface {
	ListRooms(ctx context.Context) ([]model.Room, error)
	FindAvailableRoom(ctx context.Context, roomType string, checkIn, checkOut model.Date) (model.Room, error)
	Create(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error)
	CheckIn(ctx context.Context, id int64) (*model.Reservation, error)
	CheckOut(ctx context.Context, id int64) (*model.Reservation, error)
	Cancel(ctx context.Context, id int64) (*model.Reservation, error)
	GetByID(ctx context.Context, id int64) (*model.Reservation, error)
	ListAll(ctx context.Context) ([]*model.Reservation, error)
	Search(ctx context.Context, query string) ([]*model.Reservation, error)
}

type reservationService struct {
	repo      repository.ReservationRepository
	inventory *inventory.Inventory
	validator *validator.ReservationValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewReservationService(
	repo repository.ReservationRepository,
	inv *inventory.Inventory,
	validator *validator.ReservationValidator,
	publisher events.Publisher,
	cfg *config.Config,
) ReservationService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &reservationService{
		repo:      repo,
		inventory: inv,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *reservationService) ListRooms(ctx context.Context) ([]model.Room, error) {
	return s.inventory.List(), nil
}

func (s *reservationService) FindAvailableRoom(ctx context.Context, roomType string, checkIn, checkOut model.Date) (model.Room, error) {
	ctx, span := tracing.StartSpan(ctx, "ReservationService.FindAvailableRoom",
		attribute.String("room_type", roomType),
		attribute.String("check_in", checkIn.String()),
		attribute.String("check_out", checkOut.String()),
	)
	defer span.End()

	room, err := s.findAvailableRoom(ctx, roomType, checkIn, checkOut)
	tracing.RecordError(span, err)
	s.observe("find_available_room", err)
	return room, err
}

func (s *reservationService) findAvailableRoom(ctx context.Context, roomType string, checkIn, checkOut model.Date) (model.Room, error) {
	canonical, err := s.resolveRoomType(roomType)
	if err != nil {
		return model.Room{}, err
	}

	if err := s.validator.ValidateWindow(checkIn, checkOut); err != nil {
		return model.Room{}, s.validationError(err)
	}

	room, found, err := s.firstFreeRoom(ctx, canonical, checkIn, checkOut)
	if err != nil {
		return model.Room{}, err
	}
	if !found {
		return model.Room{}, noAvailability(canonical, checkIn, checkOut)
	}

	s.cfg.Log.Debug("Available room found",
		"room_type", canonical,
		"room_number", room.Number,
		"check_in", checkIn,
		"check_out", checkOut,
	)
	return room, nil
}

func (s *reservationService) Create(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error) {
	ctx, span := tracing.StartSpan(ctx, "ReservationService.Create")
	defer span.End()

	reservation, err := s.create(ctx, req)
	tracing.RecordError(span, err)
	s.observe("create", err)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("reservation_id", reservation.ID),
		attribute.Int("room_number", reservation.RoomNumber),
	)
	return reservation, nil
}

func (s *reservationService) create(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error) {
	if req == nil {
		return nil, apperrors.InvalidInput("Reservation request cannot be empty")
	}

	sanitized := s.sanitize(req)
	if err := s.validator.Validate(sanitized); err != nil {
		return nil, s.validationError(err)
	}

	reservation := &model.Reservation{
		GuestName: sanitized.GuestName,
		RoomType:  sanitized.RoomType,
		CheckIn:   sanitized.CheckIn,
		CheckOut:  sanitized.CheckOut,
		Status:    model.StatusReserved,
	}

	err := s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		room, found, err := s.firstFreeRoom(txCtx, sanitized.RoomType, sanitized.CheckIn, sanitized.CheckOut)
		if err != nil {
			return err
		}
		if !found {
			return noAvailability(sanitized.RoomType, sanitized.CheckIn, sanitized.CheckOut)
		}

		reservation.RoomNumber = room.Number
		reservation.RoomType = room.Type
		if err := s.repo.Create(txCtx, reservation); err != nil {
			return apperrors.Internal("Failed to create reservation", err)
		}
		return nil
	})
	if err != nil {
		s.logFailure("Failed to create reservation", err,
			"guest_name", sanitized.GuestName,
			"room_type", sanitized.RoomType,
			"check_in", sanitized.CheckIn,
			"check_out", sanitized.CheckOut,
		)
		return nil, err
	}

	metrics.ActiveReservations.Inc()
	s.publish(ctx, reservation, "")

	s.cfg.Log.Info("Reservation created successfully",
		"id", reservation.ID,
		"guest_name", reservation.GuestName,
		"room_number", reservation.RoomNumber,
		"room_type", reservation.RoomType,
		"check_in", reservation.CheckIn,
		"check_out", reservation.CheckOut,
	)
	return reservation, nil
}

func (s *reservationService) CheckIn(ctx context.Context, id int64) (*model.Reservation, error) {
	return s.transition(ctx, "check_in", id, model.StatusCheckedIn)
}

func (s *reservationService) CheckOut(ctx context.Context, id int64) (*model.Reservation, error) {
	return s.transition(ctx, "check_out", id, model.StatusCheckedOut)
}

func (s *reservationService) Cancel(ctx context.Context, id int64) (*model.Reservation, error) {
	return s.transition(ctx, "cancel", id, model.StatusCancelled)
}

// transition re-reads the reservation inside the transaction so two callers racing
// on the same id cannot both apply the change.
func (s *reservationService) transition(ctx context.Context, operation string, id int64, target model.Status) (*model.Reservation, error) {
	ctx, span := tracing.StartSpan(ctx, "ReservationService.Transition",
		attribute.String("operation", operation),
		attribute.Int64("reservation_id", id),
		attribute.String("target_status", target.String()),
	)
	defer span.End()

	var updated *model.Reservation
	var previous model.Status

	err := s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return s.lookupError(err, id)
		}

		if !current.Status.CanTransitionTo(target) {
			return apperrors.InvalidTransition(
				fmt.Sprintf("Cannot move reservation %d from %s to %s", id, current.Status, target),
				map[string]any{
					"id":            id,
					"status":        current.Status,
					"target_status": target,
				},
			).WithCause(reservationserrors.ErrInvalidTransition)
		}

		previous = current.Status
		updated, err = s.repo.UpdateStatus(txCtx, id, target)
		if err != nil {
			return s.lookupError(err, id)
		}
		return nil
	})

	tracing.RecordError(span, err)
	s.observe(operation, err)
	if err != nil {
		s.logFailure("Reservation status change rejected", err,
			"id", id,
			"operation", operation,
			"target_status", target,
		)
		return nil, err
	}

	if previous.Active() && !target.Active() {
		metrics.ActiveReservations.Dec()
	}
	s.publish(ctx, updated, previous)

	s.cfg.Log.Info("Reservation status updated successfully",
		"id", id,
		"room_number", updated.RoomNumber,
		"from", previous,
		"to", updated.Status,
	)
	return updated, nil
}

func (s *reservationService) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, id)
	}
	return reservation, nil
}

func (s *reservationService) ListAll(ctx context.Context) ([]*model.Reservation, error) {
	reservations, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list reservations", "error", err)
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}
	return reservations, nil
}

func (s *reservationService) Search(ctx context.Context, query string) ([]*model.Reservation, error) {
	ctx, span := tracing.StartSpan(ctx, "ReservationService.Search")
	defer span.End()

	reservations, err := s.ListAll(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	needle := sanitizer.NormalizeQuery(query)
	if needle == "" {
		return reservations, nil
	}

	matches := make([]*model.Reservation, 0)
	for _, r := range reservations {
		if strings.Contains(sanitizer.Fold(r.SearchText()), needle) {
			matches = append(matches, r)
		}
	}

	s.cfg.Log.Debug("Reservation search completed",
		"query", needle,
		"count", len(matches),
		"total_count", len(reservations),
	)
	span.SetAttributes(attribute.Int("matches", len(matches)))
	return matches, nil
}

// --- Helpers ---

func (s *reservationService) sanitize(req *model.ReservationRequest) *model.ReservationRequest {
	sanitized := *req
	sanitized.GuestName = sanitizer.NormalizeGuestName(req.GuestName)

	roomType := sanitizer.NormalizeRoomType(string(req.RoomType))
	if canonical, ok := s.inventory.Canonical(roomType); ok {
		sanitized.RoomType = canonical
	} else {
		sanitized.RoomType = model.RoomType(roomType)
	}
	return &sanitized
}

func (s *reservationService) resolveRoomType(roomType string) (model.RoomType, error) {
	normalized := sanitizer.NormalizeRoomType(roomType)
	canonical, ok := s.inventory.Canonical(normalized)
	if ok {
		return canonical, nil
	}

	field := "room_type"
	message := "room_type is required"
	if normalized != "" {
		message = fmt.Sprintf("unknown room type %q", normalized)
	}
	err := apperrors.Validation("Invalid room type", map[string]any{field: message}).
		WithCause(reservationserrors.ErrUnknownRoomType)
	s.cfg.Log.Warn("Room type rejected", "room_type", normalized)
	return "", err
}

// firstFreeRoom scans the rooms of roomType in ascending number order and returns
// the first one with no active reservation overlapping [checkIn, checkOut).
func (s *reservationService) firstFreeRoom(ctx context.Context, roomType model.RoomType, checkIn, checkOut model.Date) (model.Room, bool, error) {
	for _, room := range s.inventory.ByType(roomType) {
		active, err := s.repo.FindActiveByRoom(ctx, room.Number)
		if err != nil {
			return model.Room{}, false, apperrors.Internal("Failed to check room availability", err)
		}

		free := true
		for _, r := range active {
			if r.Overlaps(checkIn, checkOut) {
				free = false
				break
			}
		}
		if free {
			return room, true, nil
		}
	}
	return model.Room{}, false, nil
}

func (s *reservationService) validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Internal("Failed to validate reservation", err)
	}

	s.cfg.Log.Warn("Reservation validation failed", "error", err)

	appErr := apperrors.Validation("Reservation validation failed", verrs.Details())
	if _, ok := verrs.Details()["room_type"]; ok {
		return appErr.WithCause(reservationserrors.ErrUnknownRoomType)
	}
	if _, ok := verrs.Details()["check_out"]; ok {
		return appErr.WithCause(reservationserrors.ErrInvalidDateRange)
	}
	return appErr.WithCause(err)
}

func (s *reservationService) lookupError(err error, id int64) error {
	if errors.Is(err, reservationserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Reservation", id).WithCause(reservationserrors.ErrNotFound)
	}
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.Internal("Failed to retrieve reservation", err)
}

func noAvailability(roomType model.RoomType, checkIn, checkOut model.Date) error {
	return apperrors.NoAvailability(
		fmt.Sprintf("No %s room is available from %s to %s", roomType, checkIn, checkOut),
		map[string]any{
			"room_type": roomType,
			"check_in":  checkIn.String(),
			"check_out": checkOut.String(),
		},
	).WithCause(reservationserrors.ErrNoAvailability)
}

// publish runs after the transaction has committed. A delivery failure is logged
// and never undoes the mutation.
func (s *reservationService) publish(ctx context.Context, r *model.Reservation, previous model.Status) {
	event := events.NewReservationEvent(r, previous)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.cfg.Log.Error("Failed to publish reservation event",
			"id", r.ID,
			"event_type", event.Type,
			"error", err,
		)
	}
}

func (s *reservationService) observe(operation string, err error) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = apperrors.AsAppError(err).Code
	}
	metrics.ReservationOperations.WithLabelValues(operation, outcome).Inc()
}

// logFailure logs expected business rejections at Warn and everything else at Error.
func (s *reservationService) logFailure(msg string, err error, args ...any) {
	args = append(args, "error", err)
	switch {
	case apperrors.HasCode(err, apperrors.CodeInternal):
		s.cfg.Log.Error(msg, args...)
	case apperrors.IsAppError(err):
		s.cfg.Log.Warn(msg, args...)
	default:
		s.cfg.Log.Error(msg, args...)
	}
}
