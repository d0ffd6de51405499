package core

import (
	"errors"
	"fmt"
)

// Denial reason codes. The numeric values are part of the contract surface
// and are checked by compatibility tests.
const (
	CodeNotAdmin int32 = 100
	CodeNotFound int32 = 101
	CodeNotOwner int32 = 102
)

// ContractError is a caller-visible denial. Denials are normal outcomes
// carried in the result value; they are never raised as panics.
type ContractError struct {
	Code int32
	Msg  string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Msg, e.Code)
}

// Errorf builds a ContractError with the given denial code.
func Errorf(code int32, format string, a ...interface{}) *ContractError {
	return &ContractError{Code: code, Msg: fmt.Sprintf(format, a...)}
}

// CodeOf extracts the denial code from err. The second return value is false
// when err carries no code (infrastructure failures, nil).
func CodeOf(err error) (int32, bool) {
	var ce *ContractError
	if errors.As(err, &ce) {
		return ce.Code, true
	}
	return 0, false
}
