package repository

import (
	"context"
	"fmt"
	reservationserrors "hotelres/internal/reservations/errors"
	"hotelres/pkg/config"
	"hotelres/pkg/db"
	"hotelres/pkg/model"
	"sync"
	"time"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	FindByID(ctx context.Context, id int64) (*model.Reservation, error)
	FindAll(ctx context.Context) ([]*model.Reservation, error)
	FindActiveByRoom(ctx context.Context, roomNumber int) ([]*model.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status model.Status) (*model.Reservation, error)
	Count(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn db.TransactionFunc) error
}

// inMemoryReservationRepository keeps reservations in insertion order. Nothing is
// ever deleted and ids are never handed out twice. Callers only see copies.
type inMemoryReservationRepository struct {
	cfg       *config.Config
	txManager db.TransactionManager

	mu     sync.RWMutex
	items  []*model.Reservation
	index  map[int64]int
	nextID int64
}

func NewInMemoryReservationRepository(cfg *config.Config) ReservationRepository {
	base := cfg.ReservationIDBase
	if base <= 0 {
		base = config.DefaultReservationIDBase
	}
	return &inMemoryReservationRepository{
		cfg:       cfg,
		txManager: db.NewTransactionManager(),
		index:     make(map[int64]int),
		nextID:    base,
	}
}

func (r *inMemoryReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC().Truncate(time.Millisecond)
	reservation.ID = r.nextID
	reservation.CreatedAt = now
	reservation.UpdatedAt = now
	r.nextID++

	r.items = append(r.items, reservation.Clone())
	r.index[reservation.ID] = len(r.items) - 1

	id := reservation.ID
	db.OnRollback(ctx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if pos, ok := r.index[id]; ok && pos == len(r.items)-1 {
			r.items = r.items[:pos]
			delete(r.index, id)
		}
	})

	return nil
}

func (r *inMemoryReservationRepository) FindByID(ctx context.Context, id int64) (*model.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.index[id]
	if !ok {
		return nil, reservationserrors.ErrNotFound
	}
	return r.items[pos].Clone(), nil
}

func (r *inMemoryReservationRepository) FindAll(ctx context.Context) ([]*model.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to find reservations: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	reservations := make([]*model.Reservation, 0, len(r.items))
	for _, item := range r.items {
		reservations = append(reservations, item.Clone())
	}
	return reservations, nil
}

func (r *inMemoryReservationRepository) FindActiveByRoom(ctx context.Context, roomNumber int) ([]*model.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to find reservations: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var reservations []*model.Reservation
	for _, item := range r.items {
		if item.RoomNumber == roomNumber && item.Status.Active() {
			reservations = append(reservations, item.Clone())
		}
	}
	return reservations, nil
}

// UpdateStatus stores the new status as given. Whether the transition is allowed
// is the caller's decision.
func (r *inMemoryReservationRepository) UpdateStatus(ctx context.Context, id int64, status model.Status) (*model.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return nil, reservationserrors.ErrNotFound
	}

	item := r.items[pos]
	prevStatus, prevUpdated := item.Status, item.UpdatedAt
	item.Status = status
	item.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	db.OnRollback(ctx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		item.Status = prevStatus
		item.UpdatedAt = prevUpdated
	})

	return item.Clone(), nil
}

func (r *inMemoryReservationRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("failed to count reservations: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

func (r *inMemoryReservationRepository) ExecuteTransaction(ctx context.Context, fn db.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
