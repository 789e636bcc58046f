package services

import (
	"time"

	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/utils"
)

// SeedMockData adds the sample tables and bookings the
// dashboard demo expects. Booking times are relative to now.
func SeedMockData(tables *TableStore, bookings *BookingStore, now time.Time) {
	sampleTables := []models.Table{
		models.NewTable("Garden View Table", 4, "Garden Terrace", "Beautiful table overlooking the garden with natural lighting", 25.0),
		models.NewTable("Window Booth", 2, "Main Dining", "Cozy booth by the window, perfect for intimate dining", 20.0),
		models.NewTable("Chef's Table", 6, "Kitchen View", "Premium seating with view of the open kitchen", 40.0),
		models.NewTable("Private Dining", 8, "Private Room", "Separate room for private events and celebrations", 60.0),
		models.NewTable("Bar Counter", 2, "Bar Area", "High-top seating at the bar counter", 15.0),
		models.NewTable("Patio Table", 4, "Outdoor Patio", "Al fresco dining on the covered patio", 30.0),
		models.NewTable("Round Table", 6, "Main Dining", "Classic round table perfect for family dining", 35.0),
		models.NewTable("Corner Nook", 3, "Main Dining", "Quiet corner spot with comfortable seating", 22.0),
	}
	for _, t := range sampleTables {
		tables.Create(t)
	}

	day := 24 * time.Hour
	sampleBookings := []models.Booking{
		{TableID: 1, CustomerName: "John Smith", CustomerEmail: "john.smith@email.com", CustomerPhone: "+1-555-0101", PartySize: 4, BookingDateTime: now.Add(day)},
		{TableID: 2, CustomerName: "Sarah Johnson", CustomerEmail: "sarah.j@email.com", CustomerPhone: "+1-555-0102", PartySize: 2, BookingDateTime: now.Add(2 * day)},
		{TableID: 3, CustomerName: "Mike Wilson", CustomerEmail: "mike.w@email.com", CustomerPhone: "+1-555-0103", PartySize: 6, BookingDateTime: now.Add(3 * day),
			Status: models.BookingStatusConfirmed, SpecialRequests: "Birthday celebration - need cake service"},
		{TableID: 1, CustomerName: "Emma Davis", CustomerEmail: "emma.d@email.com", CustomerPhone: "+1-555-0104", PartySize: 3, BookingDateTime: now.Add(5 * day)},
		{TableID: 4, CustomerName: "Robert Brown", CustomerEmail: "robert.b@email.com", CustomerPhone: "+1-555-0105", PartySize: 8, BookingDateTime: now.Add(7 * day),
			Status: models.BookingStatusCancelled},
	}
	for _, b := range sampleBookings {
		bookings.Create(b)
	}

	utils.InfoLogger.Printf("Seeded %d tables and %d bookings", len(sampleTables), len(sampleBookings))
}
