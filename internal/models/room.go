package models

import (
	"strings"
	"time"
)

// Room represents a bookable room with a per-day availability encoding:
// one comma-separated entry per weekday, each a string of '1'/'0' flags
// indexed by slot ("1111111,1111111,...."). An empty encoding means the
// room is open on every day and slot.
type Room struct {
	ID           string    `db:"id" json:"id"`
	UniverseID   string    `db:"universe_id" json:"universe_id"`
	Name         string    `db:"name" json:"name"`
	Capacity     int       `db:"capacity" json:"capacity"`
	Type         string    `db:"type" json:"type"`
	Availability string    `db:"availability" json:"availability"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// OpenAt reports whether the room admits a booking at the given day and
// slot according to its availability encoding. Days beyond the encoded
// range and slots beyond a day's bitmap are closed; malformed encodings
// never raise, they just read as closed for the positions they miss.
func (r Room) OpenAt(day, slot int) bool {
	if strings.TrimSpace(r.Availability) == "" {
		return true
	}
	days := strings.Split(r.Availability, ",")
	if day < 0 || day >= len(days) {
		return false
	}
	mask := days[day]
	if slot < 0 || slot >= len(mask) {
		return false
	}
	return mask[slot] == '1'
}

// RoomFilter captures filtering options for listing rooms.
type RoomFilter struct {
	UniverseID string
	Search     string
	Type       string
	Page       int
	PageSize   int
}
