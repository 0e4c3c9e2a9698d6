package models

import (
	"time"

	"fundsight/pkg/apperrors"
)

// dateLayout matches the wire format for all calendar dates.
const dateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day or zone component. As-of
// resolution compares dates, not instants, so the server's locale and
// timezone never influence which observation wins.
type Date struct {
	t time.Time
}

// ParseDate parses a YYYY-MM-DD string, rejecting calendar-invalid values
// such as 2024-02-30.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return Date{}, apperrors.Newf(apperrors.CodeBadRequest, "asofDate must be a valid date in YYYY-MM-DD format, got %q", s)
	}
	return Date{t: t}, nil
}

// DateOf truncates a time to its UTC calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// MustDate is a test helper; it panics on malformed input.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) IsZero() bool         { return d.t.IsZero() }
func (d Date) String() string       { return d.t.Format(dateLayout) }
func (d Date) Time() time.Time      { return d.t }
func (d Date) Equal(o Date) bool    { return d.t.Equal(o.t) }
func (d Date) Before(o Date) bool   { return d.t.Before(o.t) }
func (d Date) After(o Date) bool    { return d.t.After(o.t) }
func (d Date) Compare(o Date) int   { return d.t.Compare(o.t) }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return apperrors.New(apperrors.CodeBadRequest, "date must be a JSON string in YYYY-MM-DD format")
	}
	parsed, err := ParseDate(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
