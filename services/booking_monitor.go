package services

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/utils"
)

// BookingMonitor periodically publishes booking and table counts as
// prometheus gauges.
type BookingMonitor struct {
	Bookings *BookingStore
	Tables   *TableStore
	Clock    clock.Clock
	Interval time.Duration
	// OnRefresh, when set, receives the statistics computed on each refresh.
	OnRefresh func(BookingStatistics)

	bookingsByStatus *prometheus.GaugeVec
	bookingsToday    prometheus.Gauge
	confirmationRate prometheus.Gauge
	tables           *prometheus.GaugeVec

	stopChan chan struct{}
	stopOnce sync.Once
}

func NewBookingMonitor(bookings *BookingStore, tables *TableStore, reg prometheus.Registerer) *BookingMonitor {
	m := &BookingMonitor{
		Bookings: bookings,
		Tables:   tables,
		Clock:    clock.New(),
		Interval: 15 * time.Second,
		bookingsByStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "table_booking",
				Name:      "bookings",
				Help:      "Number of bookings by status",
			},
			[]string{"status"},
		),
		bookingsToday: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "table_booking",
			Name:      "bookings_today",
			Help:      "Number of bookings starting today",
		}),
		confirmationRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "table_booking",
			Name:      "confirmation_rate",
			Help:      "Percentage of bookings that are confirmed",
		}),
		tables: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "table_booking",
				Name:      "tables",
				Help:      "Number of tables by availability",
			},
			[]string{"availability"},
		),
		stopChan: make(chan struct{}),
	}
	reg.MustRegister(m.bookingsByStatus, m.bookingsToday, m.confirmationRate, m.tables)
	return m
}

func (m *BookingMonitor) Start() {
	m.Refresh()
	ticker := m.Clock.Ticker(m.Interval)
	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.Refresh()
			case <-m.stopChan:
				return
			}
		}
	}()
	utils.InfoLogger.Printf("Booking monitor started (interval=%s)", m.Interval)
}

func (m *BookingMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

// Refresh recomputes every gauge from the current store contents.
func (m *BookingMonitor) Refresh() BookingStatistics {
	stats := m.Bookings.Statistics()
	completed := len(m.Bookings.ByStatus(models.BookingStatusCompleted))

	m.bookingsByStatus.WithLabelValues(string(models.BookingStatusPending)).Set(float64(stats.PendingBookings))
	m.bookingsByStatus.WithLabelValues(string(models.BookingStatusConfirmed)).Set(float64(stats.ConfirmedBookings))
	m.bookingsByStatus.WithLabelValues(string(models.BookingStatusCancelled)).Set(float64(stats.CancelledBookings))
	m.bookingsByStatus.WithLabelValues(string(models.BookingStatusCompleted)).Set(float64(completed))
	m.bookingsToday.Set(float64(stats.TodaysBookings))
	m.confirmationRate.Set(stats.ConfirmationRate)

	all := len(m.Tables.List())
	available := len(m.Tables.Available())
	m.tables.WithLabelValues("available").Set(float64(available))
	m.tables.WithLabelValues("unavailable").Set(float64(all - available))

	if m.OnRefresh != nil {
		m.OnRefresh(stats)
	}
	return stats
}
