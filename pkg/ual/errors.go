package ual

import "fmt"

// ErrorType categorizes authenticator failures
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeDataRequest
	ErrorTypeSigning
	ErrorTypeLogin
	ErrorTypeLogout
	ErrorTypeInitialization
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeValidation:
		return "Validation"
	case ErrorTypeDataRequest:
		return "DataRequest"
	case ErrorTypeSigning:
		return "Signing"
	case ErrorTypeLogin:
		return "Login"
	case ErrorTypeLogout:
		return "Logout"
	case ErrorTypeInitialization:
		return "Initialization"
	default:
		return fmt.Sprintf("ErrorType(%d)", int(t))
	}
}

// Error is the uniform error shape every authenticator reports to the host
type Error struct {
	Message string
	Type    ErrorType
	Source  string // name of the authenticator that raised the error
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
