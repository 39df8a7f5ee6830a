// Package tz is the timezone boundary of the service: bookings are stored
// and compared in UTC, clients see times in a fixed offset timezone.
package tz

import "time"

// DefaultOffsetHours часовой пояс клиента по умолчанию (UTC+3)
const DefaultOffsetHours = 3

// Converter converts instants between UTC (storage) and the
// client-facing timezone. The zero value is unusable; use New.
type Converter struct {
	loc *time.Location
}

// New создает конвертер для фиксированного смещения в часах от UTC
func New(offsetHours int) *Converter {
	return &Converter{
		loc: time.FixedZone("client", offsetHours*3600),
	}
}

// Location returns the client timezone location.
func (c *Converter) Location() *time.Location {
	return c.loc
}

// ToClient renders a UTC instant in the client timezone.
func (c *Converter) ToClient(t time.Time) time.Time {
	return t.In(c.loc)
}

// ToUTC normalizes any instant to UTC for storage and comparison.
func (c *Converter) ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// ClientDate возвращает календарную дату момента времени в клиентском поясе
func (c *Converter) ClientDate(t time.Time) (year int, month time.Month, day int) {
	return t.In(c.loc).Date()
}
