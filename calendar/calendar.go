// Package calendar renders a single event as an iCalendar VCALENDAR block,
// suitable for use as a text/calendar content part.
package calendar

import (
	"strings"
	"time"
)

// Defaults used by the zero Renderer.
const (
	DefaultProduct  = "go-mailsend"
	DefaultTimezone = "Europe/Paris"
)

// stampLayout prints the wall clock fields of a time as they are, with a
// trailing Z. The time is not converted to UTC first.
const stampLayout = "20060102T150405Z"

// Renderer renders events. The zero value is ready to use.
type Renderer struct {
	// Product goes in the PRODID line.
	Product string

	// Timezone names the TZID of the start and end times.
	Timezone string

	// Now supplies the DTSTAMP. It defaults to time.Now.
	Now func() time.Time
}

// Format renders t the way every timestamp in the block is rendered.
func Format(t time.Time) string {
	return t.Format(stampLayout)
}

// Render returns the VCALENDAR block for one event. Lines are separated by a
// bare newline and there is no newline after the last line.
func (r Renderer) Render(location, summary string, start, end time.Time) string {
	product := r.Product
	if product == "" {
		product = DefaultProduct
	}

	tz := r.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	return strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//" + product + "//Calendar 1.0//EN",
		"X-WR-TIMEZONE:" + tz,
		"BEGIN:VEVENT",
		"DTSTAMP:" + Format(now()),
		"LOCATION:" + location,
		"DTSTART;TZID=" + tz + ":" + Format(start),
		"DTEND;TZID=" + tz + ":" + Format(end),
		"SUMMARY:" + summary,
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\n")
}

// Render uses a zero Renderer.
func Render(location, summary string, start, end time.Time) string {
	return Renderer{}.Render(location, summary, start, end)
}
