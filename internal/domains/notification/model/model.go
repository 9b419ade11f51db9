package model

// Notification is a message addressed to the person who requested a booking.
type Notification struct {
	BookingID string
	EventType string
	Recipient string
	Subject   string
	Body      string
}
