package client

import (
	"context"
	"errors"
	"hotelres/internal/housekeeping"
	"hotelres/internal/inventory"
	"hotelres/internal/reservations/handler"
	"hotelres/internal/reservations/repository"
	"hotelres/internal/reservations/service"
	"hotelres/internal/reservations/validator"
	"hotelres/pkg/app"
	"hotelres/pkg/config"
	apperrors "hotelres/pkg/errors"
	"hotelres/pkg/logger"
	"hotelres/pkg/model"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const (
	operatorUser = "frontdesk"
	operatorPass = "s3cret"
)

func testConfig() *config.Config {
	return &config.Config{
		ServiceName:       "test",
		Port:              "0",
		ReservationIDBase: config.DefaultReservationIDBase,
		OperatorUsername:  operatorUser,
		OperatorPassword:  operatorPass,
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
		IdempotencyTTL:    time.Minute,
		MaxRequestSize:    config.DefaultMaxRequestSize,
		ShutdownTimeout:   time.Second,
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
	}
}

func newReservationServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := testConfig()
	inv := inventory.Default()
	svc := service.NewReservationService(
		repository.NewInMemoryReservationRepository(cfg),
		inv,
		validator.NewReservationValidator(cfg.Log, inv),
		nil,
		cfg,
	)

	a := app.NewApplication(cfg)
	a.SetApp(handler.NewHealthHandler(inv, cfg.Log), handler.NewReservationHandler(svc, cfg.Log))

	server := httptest.NewServer(a.Handler())
	t.Cleanup(server.Close)
	return server
}

func request(guest string, roomType model.RoomType, in, out string) model.ReservationRequest {
	return model.ReservationRequest{
		GuestName: guest,
		RoomType:  roomType,
		CheckIn:   model.MustParseDate(in),
		CheckOut:  model.MustParseDate(out),
	}
}

func apiCode(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

func TestReservationClient_EndToEnd(t *testing.T) {
	server := newReservationServer(t)
	c := NewClient()
	c.SetReservationClient(server.URL, WithBasicAuth(operatorUser, operatorPass))
	ctx := context.Background()

	if err := NewHttpClient(server.URL).WaitForHealthy(ctx, time.Second); err != nil {
		t.Fatalf("server not healthy: %v", err)
	}

	rooms, err := c.Reservations.ListRooms(ctx)
	if err != nil || len(rooms) != 14 {
		t.Fatalf("ListRooms: %d rooms, err=%v", len(rooms), err)
	}

	wantRooms := []int{101, 102, 101}
	guests := []model.ReservationRequest{
		request("Alice", model.RoomSingle, "2024-06-01", "2024-06-03"),
		request("Bob", model.RoomSingle, "2024-06-02", "2024-06-04"),
		request("Cara", model.RoomSingle, "2024-06-03", "2024-06-05"),
	}
	var created []*model.Reservation
	for i, req := range guests {
		r, err := c.Reservations.Create(ctx, req, "")
		if err != nil {
			t.Fatalf("Create(%s): %v", req.GuestName, err)
		}
		if r.RoomNumber != wantRooms[i] {
			t.Errorf("%s: expected room %d, got %d", req.GuestName, wantRooms[i], r.RoomNumber)
		}
		created = append(created, r)
	}

	_, err = c.Reservations.Create(ctx, request("Dee", model.RoomSuite, "2024-07-10", "2024-07-09"), "")
	if apiCode(err) != apperrors.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}

	alice := created[0]
	if _, err := c.Reservations.CheckIn(ctx, alice.ID); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if _, err := c.Reservations.Cancel(ctx, alice.ID); apiCode(err) != apperrors.CodeInvalidTransition {
		t.Errorf("expected invalid transition cancelling a checked-in stay, got %v", err)
	}
	if _, err := c.Reservations.CheckOut(ctx, alice.ID); err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	cancelled, err := c.Reservations.Cancel(ctx, alice.ID)
	if err != nil || cancelled.Status != model.StatusCancelled {
		t.Fatalf("Cancel after check-out: %v %v", cancelled, err)
	}

	fetched, err := c.Reservations.GetByID(ctx, created[1].ID)
	if err != nil || fetched.GuestName != "Bob" {
		t.Errorf("GetByID: %v %v", fetched, err)
	}
	if _, err := c.Reservations.GetByID(ctx, 9999); apiCode(err) != apperrors.CodeNotFound {
		t.Errorf("expected not found, got %v", err)
	}

	room, err := c.Reservations.FindAvailableRoom(ctx, "single", model.MustParseDate("2024-06-02"), model.MustParseDate("2024-06-03"))
	if err != nil || room.Number != 101 {
		t.Errorf("FindAvailableRoom: %v %v", room, err)
	}

	page, err := c.Reservations.List(ctx, "CARA", 0, 0)
	if err != nil || page.TotalCount != 1 || page.Data[0].ID != created[2].ID {
		t.Errorf("List search: %+v %v", page, err)
	}
	page, err = c.Reservations.List(ctx, "", 2, 1)
	if err != nil || page.TotalCount != 3 || len(page.Data) != 2 || page.Data[0].ID != created[1].ID {
		t.Errorf("List page: %+v %v", page, err)
	}
}

func TestReservationClient_IdempotentCreate(t *testing.T) {
	server := newReservationServer(t)
	c := NewReservationClient(server.URL, WithBasicAuth(operatorUser, operatorPass))
	ctx := context.Background()
	req := request("Alice", model.RoomSuite, "2024-06-01", "2024-06-03")

	first, err := c.Create(ctx, req, "booking-42")
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := c.Create(ctx, req, "booking-42")
	if err != nil {
		t.Fatalf("retried create: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected replayed reservation %d, got %d", first.ID, second.ID)
	}

	page, err := c.List(ctx, "", 0, 0)
	if err != nil || page.TotalCount != 1 {
		t.Errorf("expected a single stored reservation, got %+v %v", page, err)
	}
}

func TestReservationClient_Unauthorized(t *testing.T) {
	server := newReservationServer(t)
	c := NewReservationClient(server.URL, WithBasicAuth(operatorUser, "wrong"))

	_, err := c.ListRooms(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 APIError, got %v", err)
	}
}

func TestHousekeepingClient(t *testing.T) {
	board := housekeeping.NewBoard()
	board.MarkDirty(housekeeping.PendingRoom{RoomNumber: 201, RoomType: model.RoomDouble, ReservationID: 1001})

	cfg := testConfig()
	a := app.NewApplication(cfg)
	a.SetApp(handler.NewHealthHandler(inventory.Default(), cfg.Log), housekeeping.NewBoardHandler(board, cfg.Log))
	server := httptest.NewServer(a.Handler())
	defer server.Close()

	c := NewHousekeepingClient(server.URL, WithBasicAuth(operatorUser, operatorPass), WithTimeout(2*time.Second))
	ctx := context.Background()

	pending, err := c.Pending(ctx)
	if err != nil || len(pending) != 1 || pending[0].RoomNumber != 201 || pending[0].RoomType != "Double" {
		t.Fatalf("Pending: %+v %v", pending, err)
	}
	if err := c.MarkClean(ctx, 201); err != nil {
		t.Fatalf("MarkClean: %v", err)
	}
	if err := c.MarkClean(ctx, 201); apiCode(err) != apperrors.CodeNotFound {
		t.Errorf("expected not found on second clean, got %v", err)
	}
}
