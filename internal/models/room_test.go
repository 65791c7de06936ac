package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomOpenAt(t *testing.T) {
	room := Room{Availability: "1111111,0000000,1110000"}

	assert.True(t, room.OpenAt(0, 0))
	assert.True(t, room.OpenAt(0, 6))
	assert.False(t, room.OpenAt(1, 3), "fully closed day")
	assert.True(t, room.OpenAt(2, 2))
	assert.False(t, room.OpenAt(2, 3))

	// Day beyond the encoded range is closed.
	assert.False(t, room.OpenAt(3, 0))
	assert.False(t, room.OpenAt(4, 0))

	// Slot beyond the day's bitmap is closed.
	short := Room{Availability: "111"}
	assert.True(t, short.OpenAt(0, 2))
	assert.False(t, short.OpenAt(0, 3))
}

func TestRoomOpenAtEmptyEncoding(t *testing.T) {
	room := Room{}
	for day := 0; day < DaysPerWeek; day++ {
		for slot := 0; slot < SlotsPerDay; slot++ {
			assert.True(t, room.OpenAt(day, slot))
		}
	}
	assert.True(t, Room{Availability: "   "}.OpenAt(4, 6))
}

func TestTeacherPreferredDayIndexes(t *testing.T) {
	assert.Equal(t, []int{1, 3}, Teacher{PreferredDays: "2,4"}.PreferredDayIndexes())
	assert.Equal(t, []int{3, 1}, Teacher{PreferredDays: "4, 2"}.PreferredDayIndexes(), "stated order is preserved")
	assert.Equal(t, []int{0, 1, 2, 3, 4}, Teacher{}.PreferredDayIndexes(), "empty list means any weekday")
	assert.Equal(t, []int{0, 1, 2, 3, 4}, Teacher{PreferredDays: "0,9,abc"}.PreferredDayIndexes(), "malformed entries degrade to no preference")
	assert.Equal(t, []int{2}, Teacher{PreferredDays: "3,6,x"}.PreferredDayIndexes())
}

func TestTimeslots(t *testing.T) {
	slots := Timeslots()
	assert.Len(t, slots, SlotsPerDay)
	assert.Equal(t, "07:30", slots[0].StartTime)
	assert.Equal(t, "18:30", slots[6].EndTime)
	assert.Equal(t, "08:30 - 10:00", slots[1].Label)
}

func TestDayName(t *testing.T) {
	assert.Equal(t, "Monday", DayName(0))
	assert.Equal(t, "Friday", DayName(4))
	assert.Equal(t, "Day 6", DayName(5))
}
