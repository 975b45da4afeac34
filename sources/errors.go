package sources

import (
	"errors"
	"fmt"
	"syscall"

	ffms "github.com/GreatValueCreamSoda/goffms2"

	"github.com/GreatValueCreamSoda/hdrplay/averror"
)

var ErrNoVideoTrack = errors.New("file has no video track")

// Error is a failed ffms2 call. It unwraps to both the libav code the failure
// maps to and the error returned by the binding, so errors.Is works against
// averror codes as well as syscall errnos.
type Error struct {
	Op      string
	Code    averror.Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("%s: %s (%s)", e.Op, msg, e.Code.Name())
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Code}
	}
	return []error{e.Code, e.Err}
}

// ErrorCode maps an ffms2 error report onto the libav error space.
func ErrorCode(info *ffms.ErrorInfo) averror.Code {
	if info == nil {
		return averror.ErrUnknown
	}
	if ffms.Errors(info.ErrorType) == ffms.ErrorCancelled {
		return averror.ErrExit
	}

	switch ffms.Errors(info.SubType) {
	case ffms.ErrorNoFile:
		return averror.FromErrno(syscall.ENOENT)
	case ffms.ErrorFileRead, ffms.ErrorFileWrite:
		return averror.FromErrno(syscall.EIO)
	case ffms.ErrorAllocationFailed:
		return averror.FromErrno(syscall.ENOMEM)
	case ffms.ErrorInvalidArgument, ffms.ErrorFileMismatch:
		return averror.FromErrno(syscall.EINVAL)
	case ffms.ErrorUnsupported, ffms.ErrorNotAvailable:
		return averror.ErrPatchWelcome
	case ffms.ErrorCodec:
		return averror.ErrInvalidData
	case ffms.ErrorUser:
		return averror.ErrExit
	}
	return averror.ErrUnknown
}

func newError(op string, info *ffms.ErrorInfo, err error) error {
	e := &Error{Op: op, Code: ErrorCode(info), Err: err}
	if info != nil {
		e.Message = info.Message
	}
	return e
}
