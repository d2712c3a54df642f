package errors

import "errors"

// ErrNotFound is returned by stores when a lookup matches nothing.
var ErrNotFound = errors.New("record not found")

var (
	ErrCourseIDRequired = errors.New("course id not provided")
	ErrUnitNotFound     = errors.New("invalid subsection")
	ErrProgressNotFound = errors.New("course progress does not exist")
	ErrAlreadyCompleted = errors.New("subsection already completed")
)
