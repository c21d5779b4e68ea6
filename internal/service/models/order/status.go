package order

import (
	"database/sql/driver"
	"errors"
)

type Status string

const (
	// StatusPaid is the status every order is created with. There is no
	// payment integration; this is a placeholder classification, not a
	// verified payment state.
	StatusPaid Status = "paid"
)

var ErrInvalidStatus = errors.New("invalid order status")

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

func ParseStatus(s string) (Status, error) {
	switch s {
	case StatusPaid.String():
		return StatusPaid, nil
	default:
		return "", ErrInvalidStatus
	}
}
