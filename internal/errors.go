package internal

import "errors"

// Typed store failures. Handlers map these to HTTP statuses; nothing else
// in the codebase produces them.
var (
	// ErrActiveCycleExists: a start was attempted while the user already
	// has an open sleep cycle.
	ErrActiveCycleExists = errors.New("an active sleep cycle already exists")

	// ErrCycleNotFound: no cycle matches the request (no open cycle to
	// end, or an unknown cycle id).
	ErrCycleNotFound = errors.New("sleep cycle not found")

	// ErrInvalidInterval: an end timestamp that is not strictly after the
	// start. Equal timestamps fail too.
	ErrInvalidInterval = errors.New("end time must be strictly after start time")

	// ErrGoalNotFound: strict fetch of a day with no goal record.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrExerciseNotFound: unknown exercise id.
	ErrExerciseNotFound = errors.New("exercise not found")
)

// AppError is the error shape carried in API response envelopes.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}
