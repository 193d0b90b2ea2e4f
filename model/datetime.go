package model

import (
	"strings"
	"time"
)

const (
	dateTimeLayout     = "2006-01-02T15:04:05"
	dateTimeLayoutFrac = "2006-01-02T15:04:05.999999999"
)

// DateTime is a timestamp that travels on the wire as an ISO-8601 local
// date-time without a zone offset, e.g. "2024-07-01T12:30:00".
type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) DateTime { return DateTime{Time: t} }

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateTimeLayout, s)
	if err != nil {
		t, err = time.Parse(dateTimeLayoutFrac, s)
	}
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
