package entity

import "time"

// BookingStatus is the fulfillment state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking reserves tickets for a user on an event.
// TotalAmount is computed once at creation: ticket price times ticket count.
type Booking struct {
	ID              int64         `json:"id"`
	EventID         int64         `json:"eventId"`
	UserID          int64         `json:"userId"`
	NumberOfTickets int           `json:"numberOfTickets"`
	TotalAmount     float64       `json:"totalAmount"`
	Status          BookingStatus `json:"status"`
	BookingDate     time.Time     `json:"bookingDate"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}
