package reschedule_booking

import "time"

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	TimeFrom  time.Time `json:"timeFrom"`  // ISO 8601
	TimeUntil time.Time `json:"timeUntil"` // ISO 8601
}
