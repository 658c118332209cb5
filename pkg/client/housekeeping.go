package client

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

type HousekeepingClient struct {
	httpClient *HttpClient
}

func NewHousekeepingClient(baseURL string, opts ...Option) *HousekeepingClient {
	return &HousekeepingClient{
		httpClient: NewHttpClient(baseURL, opts...),
	}
}

type PendingRoom struct {
	RoomNumber    int       `json:"room_number"`
	RoomType      string    `json:"room_type"`
	ReservationID int64     `json:"reservation_id"`
	Since         time.Time `json:"since"`
}

func (c *HousekeepingClient) Pending(ctx context.Context) ([]PendingRoom, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/housekeeping/rooms")
	if err != nil {
		return nil, err
	}
	return decodeData[[]PendingRoom](resp)
}

func (c *HousekeepingClient) MarkClean(ctx context.Context, roomNumber int) error {
	resp, err := c.httpClient.POST(ctx, "/api/v1/housekeeping/rooms/"+strconv.Itoa(roomNumber)+"/clean", nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusNoContent {
		return toAPIError(resp)
	}
	return nil
}
