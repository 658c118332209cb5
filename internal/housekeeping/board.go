package housekeeping

import (
	"hotelres/pkg/metrics"
	"hotelres/pkg/model"
	"sort"
	"sync"
	"time"
)

// PendingRoom is a room that was vacated and has not been cleaned yet.
type PendingRoom struct {
	RoomNumber    int            `json:"room_number"`
	RoomType      model.RoomType `json:"room_type"`
	ReservationID int64          `json:"reservation_id"`
	Since         time.Time      `json:"since"`
}

// Board tracks rooms awaiting cleaning. It is safe for concurrent use.
type Board struct {
	mu      sync.RWMutex
	pending map[int]PendingRoom
}

func NewBoard() *Board {
	return &Board{
		pending: make(map[int]PendingRoom),
	}
}

// MarkDirty records the room as needing cleaning. It returns false when the room
// was already on the board; the earlier entry is kept.
func (b *Board) MarkDirty(room PendingRoom) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.pending[room.RoomNumber]; exists {
		return false
	}
	b.pending[room.RoomNumber] = room
	metrics.RoomsAwaitingCleaning.Set(float64(len(b.pending)))
	return true
}

// MarkClean removes the room from the board and reports whether it was there.
func (b *Board) MarkClean(roomNumber int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.pending[roomNumber]; !exists {
		return false
	}
	delete(b.pending, roomNumber)
	metrics.RoomsAwaitingCleaning.Set(float64(len(b.pending)))
	return true
}

func (b *Board) IsPending(roomNumber int) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, exists := b.pending[roomNumber]
	return exists
}

// Pending lists the rooms awaiting cleaning in ascending room number order.
func (b *Board) Pending() []PendingRoom {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rooms := make([]PendingRoom, 0, len(b.pending))
	for _, r := range b.pending {
		rooms = append(rooms, r)
	}
	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].RoomNumber < rooms[j].RoomNumber
	})
	return rooms
}
