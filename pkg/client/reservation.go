package client

import (
	"context"
	"fmt"
	"hotelres/pkg/model"
	"net/url"
	"strconv"
)

type ReservationClient struct {
	httpClient *HttpClient
}

func NewReservationClient(baseURL string, opts ...Option) *ReservationClient {
	return &ReservationClient{
		httpClient: NewHttpClient(baseURL, opts...),
	}
}

type ReservationPage struct {
	Data       []*model.Reservation `json:"data"`
	TotalCount int64                `json:"total_count"`
	Limit      int                  `json:"limit"`
	Offset     int64                `json:"offset"`
}

func (c *ReservationClient) ListRooms(ctx context.Context) ([]model.Room, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/rooms")
	if err != nil {
		return nil, err
	}
	return decodeData[[]model.Room](resp)
}

func (c *ReservationClient) FindAvailableRoom(ctx context.Context, roomType string, checkIn, checkOut model.Date) (model.Room, error) {
	q := url.Values{}
	q.Set("type", roomType)
	q.Set("check_in", checkIn.String())
	q.Set("check_out", checkOut.String())

	resp, err := c.httpClient.GET(ctx, "/api/v1/rooms/available?"+q.Encode())
	if err != nil {
		return model.Room{}, err
	}
	return decodeData[model.Room](resp)
}

// Create books a room. A non-empty idempotencyKey makes retries of the same
// request return the original reservation instead of booking twice.
func (c *ReservationClient) Create(ctx context.Context, req model.ReservationRequest, idempotencyKey string) (*model.Reservation, error) {
	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{"Idempotency-Key": idempotencyKey}
	}

	resp, err := c.httpClient.POSTWithHeaders(ctx, "/api/v1/reservations", req, headers)
	if err != nil {
		return nil, err
	}
	return decodeData[*model.Reservation](resp)
}

func (c *ReservationClient) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	resp, err := c.httpClient.GET(ctx, reservationPath(id, ""))
	if err != nil {
		return nil, err
	}
	return decodeData[*model.Reservation](resp)
}

// List returns one page of reservations. An empty query lists everything.
func (c *ReservationClient) List(ctx context.Context, query string, limit int, offset int64) (*ReservationPage, error) {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.FormatInt(offset, 10))
	}

	path := "/api/v1/reservations"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, toAPIError(resp)
	}

	var page ReservationPage
	if err := resp.DecodeJSON(&page); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &page, nil
}

func (c *ReservationClient) CheckIn(ctx context.Context, id int64) (*model.Reservation, error) {
	return c.transition(ctx, id, "check-in")
}

func (c *ReservationClient) CheckOut(ctx context.Context, id int64) (*model.Reservation, error) {
	return c.transition(ctx, id, "check-out")
}

func (c *ReservationClient) Cancel(ctx context.Context, id int64) (*model.Reservation, error) {
	return c.transition(ctx, id, "cancel")
}

func (c *ReservationClient) transition(ctx context.Context, id int64, action string) (*model.Reservation, error) {
	resp, err := c.httpClient.POST(ctx, reservationPath(id, action), nil)
	if err != nil {
		return nil, err
	}
	return decodeData[*model.Reservation](resp)
}

func reservationPath(id int64, action string) string {
	path := "/api/v1/reservations/id/" + strconv.FormatInt(id, 10)
	if action != "" {
		path += "/" + action
	}
	return path
}
