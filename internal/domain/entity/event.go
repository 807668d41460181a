package entity

import "time"

// EventStatus is the moderation state of an event.
type EventStatus string

const (
	EventDraft     EventStatus = "DRAFT"
	EventPending   EventStatus = "PENDING"
	EventPublished EventStatus = "PUBLISHED"
	EventRejected  EventStatus = "REJECTED"
)

// Event is an organizer-submitted happening that users can book tickets for.
// Lifecycle: DRAFT -> PENDING -> PUBLISHED or REJECTED.
type Event struct {
	ID            int64       `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	StartDateTime time.Time   `json:"startDateTime"`
	EndDateTime   time.Time   `json:"endDateTime"`
	Location      string      `json:"location"`
	MaxAttendees  int         `json:"maxAttendees"`
	TicketPrice   float64     `json:"ticketPrice"`
	ImageURL      string      `json:"imageUrl"`
	Status        EventStatus `json:"status"`
	CategoryID    int64       `json:"categoryId"`
	OrganizerID   int64       `json:"organizerId"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}
