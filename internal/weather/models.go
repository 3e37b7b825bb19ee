package weather

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// dateLayout is the only accepted wire format for record dates.
const dateLayout = "2006-01-02"

// ErrInvalidDate is returned when a date string does not match YYYY-MM-DD.
// Handlers surface it as a client error, never as a server fault.
var ErrInvalidDate = errors.New("Invalid date format. Use YYYY-MM-DD.")

// Date is a calendar date without a time-of-day component.
// The zero value means "unset".
type Date struct {
	t time.Time
}

// ParseDate parses a strict YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{t: t}, nil
}

// NewDate builds a Date from year/month/day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Equal reports whether two dates name the same calendar day.
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

// Before reports whether d is an earlier calendar day than o.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// Time exposes the underlying time value (midnight UTC).
func (d Date) Time() time.Time { return d.t }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.t.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("date %q: %w", s, err)
	}
	*d = parsed
	return nil
}

// Record is a single weather observation for a city on a given day.
// The id is assigned by the store on creation and never changes afterwards.
// City matching is case-insensitive; the stored casing is preserved.
// Temperatures keep their insertion order, they represent a time series
// (e.g. hourly readings).
type Record struct {
	ID           int       `json:"id"`
	Date         Date      `json:"date" validate:"required"`
	Lat          *float32  `json:"lat"`
	Lon          *float32  `json:"lon"`
	City         string    `json:"city" validate:"required,min=1"`
	State        string    `json:"state" validate:"required"`
	Temperatures []float64 `json:"temperatures" validate:"required,min=1"`
}

// Page is one bounded slice of a larger result set.
type Page[T any] struct {
	Items      []T
	TotalCount int64
	PageIndex  int
	PageSize   int
}

// TotalPages derives the page count from the total number of matches.
func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 || p.TotalCount <= 0 {
		return 0
	}
	return int((p.TotalCount + int64(p.PageSize) - 1) / int64(p.PageSize))
}
