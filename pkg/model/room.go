package model

type RoomType string

const (
	RoomSingle RoomType = "Single"
	RoomDouble RoomType = "Double"
	RoomSuite  RoomType = "Suite"
)

func (t RoomType) String() string {
	return string(t)
}

type Room struct {
	Number int      `json:"number"`
	Type   RoomType `json:"type"`
}
