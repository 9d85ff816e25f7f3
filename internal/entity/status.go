package entity

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

// Status is the disposition of a questionnaire. Only the five values below
// are ever persisted.
type Status string

const (
	StatusUntracked       Status = "Untracked"
	StatusQualifiedShowUp Status = "Qualified Show-Up"
	StatusNoShow          Status = "No Show"
	StatusDisqualified    Status = "Disqualified"
	StatusClosed          Status = "Closed"
)

var ErrInvalidStatus = errors.New("invalid status")

// Statuses returns every legal status in display order.
func Statuses() []Status {
	return []Status{
		StatusUntracked,
		StatusQualifiedShowUp,
		StatusNoShow,
		StatusDisqualified,
		StatusClosed,
	}
}

// ParseStatus matches s exactly against the status vocabulary.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusUntracked, StatusQualifiedShowUp, StatusNoShow, StatusDisqualified, StatusClosed:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

func (s Status) String() string {
	return string(s)
}

// StatusList renders the vocabulary for error messages.
func StatusList() string {
	names := make([]string, 0, 5)
	for _, st := range Statuses() {
		names = append(names, string(st))
	}
	return strings.Join(names, ", ")
}

func (s Status) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, string(s))
	}
	return string(s), nil
}

func (s *Status) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("status: unsupported scan type %T", src)
	}

	st, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}
