// Package frontdesk is the operator's command line view of the hotel: it books,
// checks guests in and out, searches reservations and follows housekeeping.
package frontdesk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"hotelres/pkg/client"
	"hotelres/pkg/model"

	"github.com/google/uuid"
)

var ErrUsage = errors.New("usage")

const usage = `commands:
  rooms                                   list all rooms
  available <type> <check-in> <check-out> find a free room
  book <guest> <type> <check-in> <check-out>
  show <id>
  list [query]                            list or search reservations
  checkin <id> | checkout <id> | cancel <id>
  cleaning                                rooms awaiting cleaning
  clean <room>                            mark a room clean
dates use yyyy-mm-dd`

type command struct {
	args int
	run  func(f *Frontdesk, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"rooms":     {0, (*Frontdesk).rooms},
	"available": {3, (*Frontdesk).available},
	"book":      {4, (*Frontdesk).book},
	"show":      {1, (*Frontdesk).show},
	"list":      {-1, (*Frontdesk).list},
	"checkin":   {1, (*Frontdesk).checkIn},
	"checkout":  {1, (*Frontdesk).checkOut},
	"cancel":    {1, (*Frontdesk).cancel},
	"cleaning":  {0, (*Frontdesk).cleaning},
	"clean":     {1, (*Frontdesk).clean},
}

type Frontdesk struct {
	api *client.Client
	out io.Writer
}

func New(cfg Config, out io.Writer) *Frontdesk {
	opts := []client.Option{client.WithTimeout(cfg.Timeout)}
	if cfg.Username != "" {
		opts = append(opts, client.WithBasicAuth(cfg.Username, cfg.Password))
	}

	api := client.NewClient()
	api.SetReservationClient(cfg.APIURL, opts...)
	api.SetHousekeepingClient(cfg.HousekeepingURL, opts...)

	return &Frontdesk{api: api, out: out}
}

// Run executes one command. Usage problems wrap ErrUsage.
func (f *Frontdesk) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given\n%s", ErrUsage, usage)
	}

	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q\n%s", ErrUsage, args[0], usage)
	}
	rest := args[1:]
	if cmd.args >= 0 && len(rest) != cmd.args {
		return fmt.Errorf("%w: %s takes %d argument(s), got %d\n%s", ErrUsage, args[0], cmd.args, len(rest), usage)
	}
	return cmd.run(f, ctx, rest)
}

func (f *Frontdesk) rooms(ctx context.Context, _ []string) error {
	rooms, err := f.api.Reservations.ListRooms(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(f.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROOM\tTYPE")
	for _, r := range rooms {
		fmt.Fprintf(tw, "%d\t%s\n", r.Number, r.Type)
	}
	return tw.Flush()
}

func (f *Frontdesk) available(ctx context.Context, args []string) error {
	checkIn, checkOut, err := parseStay(args[1], args[2])
	if err != nil {
		return err
	}

	room, err := f.api.Reservations.FindAvailableRoom(ctx, args[0], checkIn, checkOut)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(f.out, "Room %d (%s) is free from %s to %s\n", room.Number, room.Type, checkIn, checkOut)
	return err
}

// book sends a fresh idempotency key so a retried request cannot book twice.
func (f *Frontdesk) book(ctx context.Context, args []string) error {
	checkIn, checkOut, err := parseStay(args[2], args[3])
	if err != nil {
		return err
	}

	r, err := f.api.Reservations.Create(ctx, model.ReservationRequest{
		GuestName: args[0],
		RoomType:  model.RoomType(args[1]),
		CheckIn:   checkIn,
		CheckOut:  checkOut,
	}, uuid.NewString())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(f.out, "Reservation %d: %s in room %d (%s), %s to %s\n",
		r.ID, r.GuestName, r.RoomNumber, r.RoomType, r.CheckIn, r.CheckOut)
	return err
}

func (f *Frontdesk) show(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	r, err := f.api.Reservations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return f.printReservations([]*model.Reservation{r})
}

// list pages through every match so the operator sees the whole result.
func (f *Frontdesk) list(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")

	var all []*model.Reservation
	var offset int64
	for {
		page, err := f.api.Reservations.List(ctx, query, 100, offset)
		if err != nil {
			return err
		}
		all = append(all, page.Data...)
		offset += int64(len(page.Data))
		if len(page.Data) == 0 || offset >= page.TotalCount {
			break
		}
	}

	if len(all) == 0 {
		_, err := fmt.Fprintln(f.out, "No reservations found")
		return err
	}
	return f.printReservations(all)
}

func (f *Frontdesk) checkIn(ctx context.Context, args []string) error {
	return f.transition(ctx, args[0], f.api.Reservations.CheckIn)
}

func (f *Frontdesk) checkOut(ctx context.Context, args []string) error {
	return f.transition(ctx, args[0], f.api.Reservations.CheckOut)
}

func (f *Frontdesk) cancel(ctx context.Context, args []string) error {
	return f.transition(ctx, args[0], f.api.Reservations.Cancel)
}

func (f *Frontdesk) transition(ctx context.Context, rawID string, apply func(context.Context, int64) (*model.Reservation, error)) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	r, err := apply(ctx, id)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(f.out, "Reservation %d is now %s\n", r.ID, r.Status)
	return err
}

func (f *Frontdesk) cleaning(ctx context.Context, _ []string) error {
	pending, err := f.api.Housekeeping.Pending(ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		_, err := fmt.Fprintln(f.out, "All rooms are clean")
		return err
	}

	tw := tabwriter.NewWriter(f.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROOM\tTYPE\tRESERVATION\tSINCE")
	for _, p := range pending {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", p.RoomNumber, p.RoomType, p.ReservationID, p.Since.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func (f *Frontdesk) clean(ctx context.Context, args []string) error {
	room, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: invalid room number %q", ErrUsage, args[0])
	}
	if err := f.api.Housekeeping.MarkClean(ctx, room); err != nil {
		return err
	}
	_, err = fmt.Fprintf(f.out, "Room %d marked clean\n", room)
	return err
}

func (f *Frontdesk) printReservations(reservations []*model.Reservation) error {
	tw := tabwriter.NewWriter(f.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tGUEST\tROOM\tTYPE\tCHECK-IN\tCHECK-OUT\tSTATUS")
	for _, r := range reservations {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%s\n",
			r.ID, r.GuestName, r.RoomNumber, r.RoomType, r.CheckIn, r.CheckOut, r.Status)
	}
	return tw.Flush()
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid reservation id %q", ErrUsage, raw)
	}
	return id, nil
}

func parseStay(rawIn, rawOut string) (model.Date, model.Date, error) {
	checkIn, err := model.ParseDate(rawIn)
	if err != nil {
		return model.Date{}, model.Date{}, fmt.Errorf("%w: check-in %v", ErrUsage, err)
	}
	checkOut, err := model.ParseDate(rawOut)
	if err != nil {
		return model.Date{}, model.Date{}, fmt.Errorf("%w: check-out %v", ErrUsage, err)
	}
	return checkIn, checkOut, nil
}
