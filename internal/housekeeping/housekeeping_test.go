package housekeeping

import (
	"context"
	"encoding/json"
	"hotelres/internal/reservations/events"
	"hotelres/pkg/kafka"
	"hotelres/pkg/logger"
	"hotelres/pkg/model"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func eventMessage(t *testing.T, event events.ReservationEvent) kafka.Message {
	t.Helper()
	msg, err := kafka.NewMessage().
		WithKey("1001").
		WithValue(event).
		WithEventType(string(event.Type)).
		Build()
	if err != nil {
		t.Fatalf("failed to build message: %v", err)
	}
	return msg
}

func checkedOut(id int64, room int) events.ReservationEvent {
	return events.ReservationEvent{
		Type:           events.TypeCheckedOut,
		ReservationID:  id,
		GuestName:      "Alice",
		RoomNumber:     room,
		RoomType:       model.RoomSingle,
		CheckIn:        model.MustParseDate("2024-06-01"),
		CheckOut:       model.MustParseDate("2024-06-03"),
		Status:         model.StatusCheckedOut,
		PreviousStatus: model.StatusCheckedIn,
		OccurredAt:     time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC),
	}
}

func TestBoard(t *testing.T) {
	board := NewBoard()

	if !board.MarkDirty(PendingRoom{RoomNumber: 201, ReservationID: 1}) {
		t.Error("expected first MarkDirty to add the room")
	}
	if board.MarkDirty(PendingRoom{RoomNumber: 201, ReservationID: 2}) {
		t.Error("expected second MarkDirty to be a no-op")
	}
	board.MarkDirty(PendingRoom{RoomNumber: 105, ReservationID: 3})

	pending := board.Pending()
	if len(pending) != 2 || pending[0].RoomNumber != 105 || pending[1].RoomNumber != 201 {
		t.Fatalf("expected rooms 105, 201 in order, got %+v", pending)
	}
	if pending[1].ReservationID != 1 {
		t.Errorf("expected the first entry to be kept, got reservation %d", pending[1].ReservationID)
	}

	if !board.MarkClean(201) {
		t.Error("expected MarkClean to remove room 201")
	}
	if board.MarkClean(201) {
		t.Error("expected second MarkClean to report false")
	}
	if board.IsPending(201) || !board.IsPending(105) {
		t.Error("unexpected pending state after cleaning")
	}
}

func TestBoard_Concurrent(t *testing.T) {
	board := NewBoard()
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			board.MarkDirty(PendingRoom{RoomNumber: n})
			_ = board.Pending()
		}(i)
	}
	wg.Wait()

	if got := len(board.Pending()); got != 50 {
		t.Errorf("expected 50 pending rooms, got %d", got)
	}
}

func TestEventHandler_Handle(t *testing.T) {
	tests := []struct {
		name          string
		event         events.ReservationEvent
		wantPending   bool
		wantPermanent bool
	}{
		{"checked out marks room", checkedOut(1001, 101), true, false},
		{"created is acknowledged", events.ReservationEvent{Type: events.TypeCreated, ReservationID: 1002, RoomNumber: 102, Status: model.StatusReserved}, false, false},
		{"checked in is acknowledged", events.ReservationEvent{Type: events.TypeCheckedIn, ReservationID: 1003, RoomNumber: 103, Status: model.StatusCheckedIn}, false, false},
		{"cancelled is acknowledged", events.ReservationEvent{Type: events.TypeCancelled, ReservationID: 1004, RoomNumber: 104, Status: model.StatusCancelled}, false, false},
		{"unknown type is permanent", events.ReservationEvent{Type: "reservation.teleported", ReservationID: 1005, RoomNumber: 105, Status: model.StatusReserved}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := NewBoard()
			handler := NewEventHandler(board, testLogger())

			err := handler.Handle(context.Background(), eventMessage(t, tt.event))

			if tt.wantPermanent {
				if kafka.ClassifyError(err) != kafka.ErrorTypePermanent {
					t.Fatalf("expected permanent error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if board.IsPending(tt.event.RoomNumber) != tt.wantPending {
				t.Errorf("expected pending=%v for room %d", tt.wantPending, tt.event.RoomNumber)
			}
		})
	}
}

func TestEventHandler_UndecodablePayloadIsPermanent(t *testing.T) {
	handler := NewEventHandler(NewBoard(), testLogger())
	msg := kafka.Message{
		Value:   []byte("not json"),
		Headers: map[string]string{kafka.HeaderEventType: string(events.TypeCheckedOut)},
	}

	err := handler.Handle(context.Background(), msg)
	if kafka.ClassifyError(err) != kafka.ErrorTypePermanent {
		t.Errorf("expected permanent error, got %v", err)
	}
}

func TestEventHandler_CheckedOutTwiceKeepsFirst(t *testing.T) {
	board := NewBoard()
	handler := NewEventHandler(board, testLogger())

	first := checkedOut(1001, 201)
	second := checkedOut(1002, 201)
	for _, e := range []events.ReservationEvent{first, second} {
		if err := handler.Handle(context.Background(), eventMessage(t, e)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	pending := board.Pending()
	if len(pending) != 1 || pending[0].ReservationID != 1001 {
		t.Errorf("expected single entry for reservation 1001, got %+v", pending)
	}
	if !pending[0].Since.Equal(first.OccurredAt) {
		t.Errorf("expected since %v, got %v", first.OccurredAt, pending[0].Since)
	}
}

func TestBoardHandler(t *testing.T) {
	board := NewBoard()
	board.MarkDirty(PendingRoom{RoomNumber: 301, RoomType: model.RoomSuite, ReservationID: 1001})

	router := httprouter.New()
	NewBoardHandler(board, testLogger()).RegisterRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/housekeeping/rooms", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Data []PendingRoom `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].RoomNumber != 301 {
		t.Errorf("unexpected board %+v", resp.Data)
	}

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/api/v1/housekeeping/rooms/301/clean", http.StatusNoContent},
		{"/api/v1/housekeeping/rooms/301/clean", http.StatusNotFound},
		{"/api/v1/housekeeping/rooms/abc/clean", http.StatusBadRequest},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.path, nil))
		if w.Code != tt.wantStatus {
			t.Errorf("%s: expected %d, got %d", tt.path, tt.wantStatus, w.Code)
		}
	}
}
