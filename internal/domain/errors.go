package domain

import "errors"

// ErrUnknownStatus is returned when a booking status is not recognized
var ErrUnknownStatus = errors.New("domain: unknown booking status")
