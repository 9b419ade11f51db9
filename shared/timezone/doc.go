// Package timezone pins every wall-clock read and every date parse to the
// application timezone configured through APP_TIMEZONE.
//
//	now := timezone.Now()
//	day, err := timezone.Parse(time.DateOnly, "2025-03-10")
//	label := timezone.Format(booking.CreatedAt, time.RFC3339)
//
// Code that derives state from "now" (the availability calendar in particular)
// takes a Clock instead of calling Now directly, so tests can pass a FixedClock.
//
// Use IANA names ("UTC", "America/Bogota", "Europe/Madrid"). An unknown name falls
// back to UTC with an error log.
package timezone
