package lynx

import (
	"errors"

	"github.com/sigweihq/ual-lynx/pkg/constants"
	"github.com/sigweihq/ual-lynx/pkg/ual"
)

var (
	// ErrVerifyKeyOwnershipUnsupported is returned by User.VerifyKeyOwnership
	ErrVerifyKeyOwnershipUnsupported = errors.New(constants.MsgVerifyKeyUnsupported)

	// ErrNoLoadSignal is recorded when the event probe is used with a locator that cannot announce loading
	ErrNoLoadSignal = errors.New("bridge locator does not provide a loaded signal")

	errUnableToConnect = errors.New(constants.MsgUnableToConnect)
	errEmptyAccount    = errors.New("wallet returned no account")
)

// NewError creates a host-facing error tagged with this authenticator's name
func NewError(message string, errType ual.ErrorType, cause error) *ual.Error {
	return &ual.Error{
		Message: message,
		Type:    errType,
		Source:  constants.Name,
		Cause:   cause,
	}
}
