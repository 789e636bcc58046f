package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

// DefaultDurationHours is applied when a booking does not say how long it lasts.
const DefaultDurationHours = 2

// MaxDurationHours bounds the duration accepted from clients.
const MaxDurationHours = 24

// maxSlotHours is the longest duration a time.Duration can hold.
const maxSlotHours = math.MaxInt64 / int64(time.Hour)

// SlotEnd returns start plus hours. Durations too long for time.Duration
// end at the furthest representable instant instead of wrapping around.
func SlotEnd(start time.Time, hours int) time.Time {
	switch {
	case int64(hours) > maxSlotHours:
		return start.Add(time.Duration(math.MaxInt64))
	case int64(hours) < -maxSlotHours:
		return start.Add(time.Duration(math.MinInt64))
	}
	return start.Add(time.Duration(hours) * time.Hour)
}

// ParseBookingStatus accepts a status name in any letter case.
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return status, nil
	}
	return "", fmt.Errorf("invalid booking status %q", s)
}

// Active reports whether a booking in this status still holds its table.
func (s BookingStatus) Active() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

type Booking struct {
	ID              int64         `json:"id"`
	TableID         int64         `json:"tableId"`
	CustomerName    string        `json:"customerName"`
	CustomerEmail   string        `json:"customerEmail"`
	CustomerPhone   string        `json:"customerPhone"`
	PartySize       int           `json:"partySize"`
	BookingDateTime time.Time     `json:"bookingDateTime"`
	DurationHours   int           `json:"durationHours"`
	SpecialRequests string        `json:"specialRequests,omitempty"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// EndTime is the exclusive end of the booking's time slot.
func (b Booking) EndTime() time.Time {
	return SlotEnd(b.BookingDateTime, b.DurationHours)
}

// Overlaps reports whether [start, end) intersects the booking's slot.
// Slots that only touch at an endpoint do not overlap.
func (b Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.EndTime()) && end.After(b.BookingDateTime)
}
