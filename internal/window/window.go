package window

import "time"

// DefaultLead is how long before the scheduled start an event becomes eligible.
const DefaultLead = time.Hour

// Selector decides whether an event is close enough to its start to be polled.
// Once eligible, an event stays eligible for every later instant.
type Selector struct {
	Lead time.Duration
}

// NewSelector returns a selector with the given lead. A negative lead falls back to DefaultLead.
func NewSelector(lead time.Duration) Selector {
	if lead < 0 {
		lead = DefaultLead
	}
	return Selector{Lead: lead}
}

// Eligible reports whether now is at or after start minus the lead.
func (s Selector) Eligible(now, start time.Time) bool {
	return !now.Before(start.Add(-s.Lead))
}
