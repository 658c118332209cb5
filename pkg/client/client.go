package client

type Client struct {
	Reservations *ReservationClient
	Housekeeping *HousekeepingClient
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) SetReservationClient(baseURL string, opts ...Option) {
	c.Reservations = NewReservationClient(baseURL, opts...)
}

func (c *Client) SetHousekeepingClient(baseURL string, opts ...Option) {
	c.Housekeeping = NewHousekeepingClient(baseURL, opts...)
}
