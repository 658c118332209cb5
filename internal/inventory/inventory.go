// Package inventory holds the hotel's fixed set of rooms. It is seeded once at
// startup and never mutated afterwards.
package inventory

import (
	"errors"
	"fmt"
	"hotelres/pkg/model"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrEmptyInventory = errors.New("inventory must contain at least one room")
	ErrDuplicateRoom  = errors.New("duplicate room number")
	ErrInvalidRoom    = errors.New("invalid room")
	ErrInvalidLayout  = errors.New("invalid room layout")
)

type Inventory struct {
	rooms  []model.Room
	byType map[model.RoomType][]model.Room
	types  []model.RoomType
}

func New(rooms []model.Room) (*Inventory, error) {
	if len(rooms) == 0 {
		return nil, ErrEmptyInventory
	}

	sorted := make([]model.Room, len(rooms))
	copy(sorted, rooms)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })

	inv := &Inventory{
		rooms:  sorted,
		byType: make(map[model.RoomType][]model.Room),
	}

	seen := make(map[int]struct{}, len(sorted))
	for _, room := range sorted {
		if room.Number <= 0 {
			return nil, fmt.Errorf("%w: room number must be positive, got %d", ErrInvalidRoom, room.Number)
		}
		if strings.TrimSpace(string(room.Type)) == "" {
			return nil, fmt.Errorf("%w: room %d has no type", ErrInvalidRoom, room.Number)
		}
		if _, dup := seen[room.Number]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateRoom, room.Number)
		}
		seen[room.Number] = struct{}{}

		if _, known := inv.byType[room.Type]; !known {
			inv.types = append(inv.types, room.Type)
		}
		inv.byType[room.Type] = append(inv.byType[room.Type], room)
	}

	return inv, nil
}

// Default returns the standard layout: five singles, six doubles and three suites.
func Default() *Inventory {
	inv, err := ParseLayout("Single:101-105,Double:201-206,Suite:301-303")
	if err != nil {
		panic(err)
	}
	return inv
}

// ParseLayout builds an inventory from a comma separated list of "<type>:<first>-<last>"
// blocks. A block may name a single room ("Penthouse:901").
func ParseLayout(layout string) (*Inventory, error) {
	var rooms []model.Room

	for _, block := range strings.Split(layout, ",") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		roomType, numbers, ok := strings.Cut(block, ":")
		roomType = strings.TrimSpace(roomType)
		if !ok || roomType == "" {
			return nil, fmt.Errorf("%w: block %q must be <type>:<first>-<last>", ErrInvalidLayout, block)
		}

		first, last, err := parseRange(strings.TrimSpace(numbers))
		if err != nil {
			return nil, fmt.Errorf("%w: block %q: %v", ErrInvalidLayout, block, err)
		}

		for n := first; n <= last; n++ {
			rooms = append(rooms, model.Room{Number: n, Type: model.RoomType(roomType)})
		}
	}

	return New(rooms)
}

func parseRange(s string) (int, int, error) {
	lo, hi, isRange := strings.Cut(s, "-")
	first, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return 0, 0, fmt.Errorf("room number %q is not a number", lo)
	}
	if !isRange {
		return first, first, nil
	}
	last, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return 0, 0, fmt.Errorf("room number %q is not a number", hi)
	}
	if last < first {
		return 0, 0, fmt.Errorf("range %d-%d is descending", first, last)
	}
	return first, last, nil
}

// List returns every room in ascending number order.
func (inv *Inventory) List() []model.Room {
	out := make([]model.Room, len(inv.rooms))
	copy(out, inv.rooms)
	return out
}

// ByType returns the rooms of one type in ascending number order. The order decides
// which room a new reservation gets when several are free.
func (inv *Inventory) ByType(roomType model.RoomType) []model.Room {
	rooms := inv.byType[roomType]
	out := make([]model.Room, len(rooms))
	copy(out, rooms)
	return out
}

// Types returns the room types in order of their lowest room number.
func (inv *Inventory) Types() []model.RoomType {
	out := make([]model.RoomType, len(inv.types))
	copy(out, inv.types)
	return out
}

func (inv *Inventory) HasType(roomType model.RoomType) bool {
	_, ok := inv.byType[roomType]
	return ok
}

// Canonical resolves a caller-supplied type case-insensitively to the spelling the
// inventory was seeded with.
func (inv *Inventory) Canonical(roomType string) (model.RoomType, bool) {
	for _, t := range inv.types {
		if strings.EqualFold(string(t), roomType) {
			return t, true
		}
	}
	return "", false
}

func (inv *Inventory) Get(number int) (model.Room, bool) {
	i := sort.Search(len(inv.rooms), func(i int) bool { return inv.rooms[i].Number >= number })
	if i < len(inv.rooms) && inv.rooms[i].Number == number {
		return inv.rooms[i], true
	}
	return model.Room{}, false
}

func (inv *Inventory) Len() int {
	return len(inv.rooms)
}
