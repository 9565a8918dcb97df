package common

import "errors"

// ErrBusy is returned when an action is invoked while the same action is
// still in flight.
var ErrBusy = errors.New("operation already in progress")
