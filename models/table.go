package models

import "time"

// Table is a bookable restaurant table. Tables live in memory only.
type Table struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Capacity     int       `json:"capacity"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	IsAvailable  bool      `json:"isAvailable"`
	PricePerHour float64   `json:"pricePerHour"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewTable returns a table that is open for booking.
func NewTable(name string, capacity int, location, description string, pricePerHour float64) Table {
	return Table{
		Name:         name,
		Capacity:     capacity,
		Location:     location,
		Description:  description,
		IsAvailable:  true,
		PricePerHour: pricePerHour,
	}
}
