package simulation

import "errors"

var (
	// ErrRecordNotFound is returned when a history record does not exist.
	ErrRecordNotFound = errors.New("simulation: record not found")
	// ErrEmptyUserID is returned when a record has no owner.
	ErrEmptyUserID = errors.New("simulation: empty user id")
	// ErrNilRecord is returned when saving a nil record.
	ErrNilRecord = errors.New("simulation: nil record")
	// ErrForbidden is returned when a caller reads another user's record.
	ErrForbidden = errors.New("simulation: forbidden")
)
