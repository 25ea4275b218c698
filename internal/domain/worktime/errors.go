package worktime

import "errors"

// Work-time domain errors
var (
	ErrRequestNotFound         = errors.New("work-time request not found")
	ErrRequestAlreadyResponded = errors.New("work-time request already has a response")
	ErrResponseNotFound        = errors.New("work-time response not found")
)
