package services

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/yeremiapane/table-booking/models"
)

// BookingStatistics is the flat summary served by the statistics endpoint.
type BookingStatistics struct {
	TotalBookings     int     `json:"totalBookings"`
	ConfirmedBookings int     `json:"confirmedBookings"`
	PendingBookings   int     `json:"pendingBookings"`
	CancelledBookings int     `json:"cancelledBookings"`
	TodaysBookings    int     `json:"todaysBookings"`
	ConfirmationRate  float64 `json:"confirmationRate"`
}

// BookingStore is the in-memory booking registry. It does not check that a
// booking's TableID refers to an existing table.
type BookingStore struct {
	clock    clock.Clock
	nextID   atomic.Int64
	mu       sync.RWMutex
	bookings map[int64]models.Booking
}

func NewBookingStore(clk clock.Clock) *BookingStore {
	if clk == nil {
		clk = clock.New()
	}
	return &BookingStore{
		clock:    clk,
		bookings: make(map[int64]models.Booking),
	}
}

func applyBookingDefaults(b *models.Booking) {
	if b.Status == "" {
		b.Status = models.BookingStatusPending
	}
	if b.DurationHours <= 0 {
		b.DurationHours = models.DefaultDurationHours
	}
}

func (s *BookingStore) Create(booking models.Booking) models.Booking {
	applyBookingDefaults(&booking)
	now := s.clock.Now()
	booking.ID = s.nextID.Add(1)
	booking.CreatedAt = now
	booking.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[booking.ID] = booking
	return booking
}

func (s *BookingStore) Get(id int64) (models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	booking, ok := s.bookings[id]
	if !ok {
		return models.Booking{}, ErrNotFound
	}
	return booking, nil
}

// Update replaces every field except ID and CreatedAt. Omitted status and
// duration fall back to their creation defaults.
func (s *BookingStore) Update(id int64, booking models.Booking) (models.Booking, error) {
	applyBookingDefaults(&booking)

	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.bookings[id]
	if !ok {
		return models.Booking{}, ErrNotFound
	}
	booking.ID = id
	booking.CreatedAt = existing.CreatedAt
	booking.UpdatedAt = s.clock.Now()
	s.bookings[id] = booking
	return booking, nil
}

func (s *BookingStore) UpdateStatus(id int64, status models.BookingStatus) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	booking, ok := s.bookings[id]
	if !ok {
		return models.Booking{}, ErrNotFound
	}
	booking.Status = status
	booking.UpdatedAt = s.clock.Now()
	s.bookings[id] = booking
	return booking, nil
}

func (s *BookingStore) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[id]; !ok {
		return false
	}
	delete(s.bookings, id)
	return true
}

func (s *BookingStore) List() []models.Booking {
	return s.filter(func(models.Booking) bool { return true })
}

func (s *BookingStore) ByStatus(status models.BookingStatus) []models.Booking {
	return s.filter(func(b models.Booking) bool { return b.Status == status })
}

func (s *BookingStore) ByTable(tableID int64) []models.Booking {
	return s.filter(func(b models.Booking) bool { return b.TableID == tableID })
}

// ByCustomerEmail matches email as a case-insensitive substring.
func (s *BookingStore) ByCustomerEmail(email string) []models.Booking {
	needle := strings.ToLower(email)
	return s.filter(func(b models.Booking) bool {
		return strings.Contains(strings.ToLower(b.CustomerEmail), needle)
	})
}

// ByDateRange returns bookings starting strictly between start and end.
func (s *BookingStore) ByDateRange(start, end time.Time) []models.Booking {
	return s.filter(func(b models.Booking) bool {
		return b.BookingDateTime.After(start) && b.BookingDateTime.Before(end)
	})
}

// Today returns bookings starting on the current local calendar day.
func (s *BookingStore) Today() []models.Booking {
	start, end := s.today()
	return s.filter(func(b models.Booking) bool {
		return inDay(b.BookingDateTime, start, end)
	})
}

// IsTableAvailable reports whether [start, start+durationHours) is free on
// tableID. Only pending and confirmed bookings hold a table.
func (s *BookingStore) IsTableAvailable(tableID int64, start time.Time, durationHours int) bool {
	end := models.SlotEnd(start, durationHours)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.TableID != tableID || !b.Status.Active() {
			continue
		}
		if b.Overlaps(start, end) {
			return false
		}
	}
	return true
}

func (s *BookingStore) Statistics() BookingStatistics {
	start, end := s.today()
	var stats BookingStatistics

	s.mu.RLock()
	for _, b := range s.bookings {
		stats.TotalBookings++
		switch b.Status {
		case models.BookingStatusConfirmed:
			stats.ConfirmedBookings++
		case models.BookingStatusPending:
			stats.PendingBookings++
		case models.BookingStatusCancelled:
			stats.CancelledBookings++
		}
		if inDay(b.BookingDateTime, start, end) {
			stats.TodaysBookings++
		}
	}
	s.mu.RUnlock()

	if stats.TotalBookings > 0 {
		stats.ConfirmationRate = float64(stats.ConfirmedBookings) / float64(stats.TotalBookings) * 100
	}
	return stats
}

// today returns local midnight and the following midnight.
func (s *BookingStore) today() (time.Time, time.Time) {
	now := s.clock.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

func inDay(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func (s *BookingStore) filter(keep func(models.Booking) bool) []models.Booking {
	s.mu.RLock()
	result := make([]models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		if keep(b) {
			result = append(result, b)
		}
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
