package code

import (
	"strconv"

	"github.com/pkg/errors"
)

// Codes for ledger operation responses
const (
	OK      uint32 = 0
	Unknown uint32 = 1

	// arithmetic
	Overflow     uint32 = 101
	Underflow    uint32 = 102
	DivideByZero uint32 = 103

	// transfer
	InvalidRecipient uint32 = 201
	FrozenRecipient  uint32 = 202

	// roles and administration
	Unauthorized   uint32 = 301
	InvalidFeeRate uint32 = 302
	InvalidTarget  uint32 = 303

	// confiscation
	NoActiveMotion      uint32 = 401
	MotionNotConfirming uint32 = 402
	MotionNotPassed     uint32 = 403
	AlreadyFrozen       uint32 = 404
	NotFrozen           uint32 = 405

	// state
	InvariantViolation uint32 = 501
	InvalidValue       uint32 = 502
)

var names = map[uint32]string{
	OK:                  "ok",
	Unknown:             "unknown",
	Overflow:            "overflow",
	Underflow:           "underflow",
	DivideByZero:        "divide_by_zero",
	InvalidRecipient:    "invalid_recipient",
	FrozenRecipient:     "frozen_recipient",
	Unauthorized:        "unauthorized",
	InvalidFeeRate:      "invalid_fee_rate",
	InvalidTarget:       "invalid_target",
	NoActiveMotion:      "no_active_motion",
	MotionNotConfirming: "motion_not_confirming",
	MotionNotPassed:     "motion_not_passed",
	AlreadyFrozen:       "already_frozen",
	NotFrozen:           "not_frozen",
	InvariantViolation:  "invariant_violation",
	InvalidValue:        "invalid_value",
}

// Error is a coded failure of a ledger operation. Sentinel values below are
// wrapped with context by callers and matched with errors.Is.
type Error struct {
	Code uint32
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

var (
	ErrOverflow            = &Error{Code: Overflow, Msg: "overflow"}
	ErrUnderflow           = &Error{Code: Underflow, Msg: "underflow"}
	ErrDivideByZero        = &Error{Code: DivideByZero, Msg: "divide by zero"}
	ErrInvalidRecipient    = &Error{Code: InvalidRecipient, Msg: "invalid recipient"}
	ErrFrozenRecipient     = &Error{Code: FrozenRecipient, Msg: "recipient account is frozen"}
	ErrUnauthorized        = &Error{Code: Unauthorized, Msg: "unauthorized"}
	ErrInvalidFeeRate      = &Error{Code: InvalidFeeRate, Msg: "transfer fee rate exceeds maximum"}
	ErrInvalidTarget       = &Error{Code: InvalidTarget, Msg: "invalid target"}
	ErrNoActiveMotion      = &Error{Code: NoActiveMotion, Msg: "no active confiscation motion"}
	ErrMotionNotConfirming = &Error{Code: MotionNotConfirming, Msg: "motion is not in confirmation"}
	ErrMotionNotPassed     = &Error{Code: MotionNotPassed, Msg: "motion has not passed"}
	ErrAlreadyFrozen       = &Error{Code: AlreadyFrozen, Msg: "account already frozen"}
	ErrNotFrozen           = &Error{Code: NotFrozen, Msg: "account is not frozen"}
	ErrInvariantViolation  = &Error{Code: InvariantViolation, Msg: "invariant violation"}
	ErrInvalidValue        = &Error{Code: InvalidValue, Msg: "invalid value"}
)

// CodeOf returns the code carried by err, OK for nil and Unknown for errors
// outside the taxonomy.
func CodeOf(err error) uint32 {
	if err == nil {
		return OK
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return Unknown
}

// Name returns a short snake_case name of the code.
func Name(c uint32) string {
	if name, ok := names[c]; ok {
		return name
	}

	return strconv.Itoa(int(c))
}
