package domain

import "time"

// Interest is the topic a visitor asks about on the booking form.
type Interest string

// Booking form topics.
const (
	InterestPrinter      Interest = "printer"
	InterestSmartHome    Interest = "smarthome"
	InterestConsultation Interest = "consultation"
	InterestOther        Interest = "other"
)

// DefaultInterest is preselected on the booking form.
const DefaultInterest = InterestConsultation

// LeadTimeFormat is RFC 3339 in UTC with millisecond precision.
const LeadTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Lead is a captured booking request.
type Lead struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Interest Interest `json:"interest"`
	// Date is when the lead was captured, ISO-8601 in UTC.
	Date string `json:"date"`
}

// Stamp sets Date from t.
func (l *Lead) Stamp(t time.Time) {
	l.Date = t.UTC().Format(LeadTimeFormat)
}
