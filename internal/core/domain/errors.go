package domain

import "fmt"

// Error is a domain failure with a stable machine-readable code. Errors
// compare equal under errors.Is when their codes match, so sentinel kinds
// below can be matched against instances carrying contextual messages.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

var (
	ErrInvalidTimeRange      = &Error{Code: "invalid_time_range"}
	ErrSlotNotFound          = &Error{Code: "slot_not_found"}
	ErrSlotAlreadyExists     = &Error{Code: "slot_already_exists"}
	ErrSlotNotAvailable      = &Error{Code: "slot_not_available"}
	ErrUnauthorizedOperation = &Error{Code: "unauthorized_operation"}
	ErrPetNotFound           = &Error{Code: "pet_not_found"}
	ErrPetServiceUnavailable = &Error{Code: "pet_service_unavailable"}
)

// NewError builds an instance of the given kind with a formatted message.
func NewError(kind *Error, format string, args ...interface{}) *Error {
	return &Error{
		Code:    kind.Code,
		Message: fmt.Sprintf(format, args...),
	}
}
