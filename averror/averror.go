// Package averror re-declares FFmpeg's error code space natively so that Go
// code can compare, print and wrap libav return values without going through
// the C preprocessor.
//
// FFmpeg encodes two kinds of negative return values: POSIX errno values
// negated with AVERROR(e), and four character tags negated with FFERRTAG. Both
// are represented by Code.
package averror

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"syscall"
)

// Code is a negative libav return value.
type Code int32

// Tag builds a tagged error code the same way the FFERRTAG macro does.
func Tag(a, b, c, d byte) Code {
	return -Code(int32(a) | int32(b)<<8 | int32(c)<<16 | int32(d)<<24)
}

const (
	ErrBSFNotFound      Code = -(0xF8 | 'B'<<8 | 'S'<<16 | 'F'<<24)
	ErrBug              Code = -('B' | 'U'<<8 | 'G'<<16 | '!'<<24)
	ErrBufferTooSmall   Code = -('B' | 'U'<<8 | 'F'<<16 | 'S'<<24)
	ErrDecoderNotFound  Code = -(0xF8 | 'D'<<8 | 'E'<<16 | 'C'<<24)
	ErrDemuxerNotFound  Code = -(0xF8 | 'D'<<8 | 'E'<<16 | 'M'<<24)
	ErrEncoderNotFound  Code = -(0xF8 | 'E'<<8 | 'N'<<16 | 'C'<<24)
	ErrEOF              Code = -('E' | 'O'<<8 | 'F'<<16 | ' '<<24)
	ErrExit             Code = -('E' | 'X'<<8 | 'I'<<16 | 'T'<<24)
	ErrExternal         Code = -('E' | 'X'<<8 | 'T'<<16 | ' '<<24)
	ErrFilterNotFound   Code = -(0xF8 | 'F'<<8 | 'I'<<16 | 'L'<<24)
	ErrInvalidData      Code = -('I' | 'N'<<8 | 'D'<<16 | 'A'<<24)
	ErrMuxerNotFound    Code = -(0xF8 | 'M'<<8 | 'U'<<16 | 'X'<<24)
	ErrOptionNotFound   Code = -(0xF8 | 'O'<<8 | 'P'<<16 | 'T'<<24)
	ErrPatchWelcome     Code = -('P' | 'A'<<8 | 'W'<<16 | 'E'<<24)
	ErrProtocolNotFound Code = -(0xF8 | 'P'<<8 | 'R'<<16 | 'O'<<24)
	ErrStreamNotFound   Code = -(0xF8 | 'S'<<8 | 'T'<<16 | 'R'<<24)
	ErrBug2             Code = -('B' | 'U'<<8 | 'G'<<16 | ' '<<24)
	ErrUnknown          Code = -('U' | 'N'<<8 | 'K'<<16 | 'N'<<24)

	ErrExperimental  Code = -0x2bb2afa8
	ErrInputChanged  Code = -0x636e6701
	ErrOutputChanged Code = -0x636e6702

	// HTTP & RTSP errors
	ErrHTTPBadRequest      Code = -(0xF8 | '4'<<8 | '0'<<16 | '0'<<24)
	ErrHTTPUnauthorized    Code = -(0xF8 | '4'<<8 | '0'<<16 | '1'<<24)
	ErrHTTPForbidden       Code = -(0xF8 | '4'<<8 | '0'<<16 | '3'<<24)
	ErrHTTPNotFound        Code = -(0xF8 | '4'<<8 | '0'<<16 | '4'<<24)
	ErrHTTPTooManyRequests Code = -(0xF8 | '4'<<8 | '2'<<16 | '9'<<24)
	ErrHTTPOther4xx        Code = -(0xF8 | '4'<<8 | 'X'<<16 | 'X'<<24)
	ErrHTTPServerError     Code = -(0xF8 | '5'<<8 | 'X'<<16 | 'X'<<24)
)

// MaxStringSize mirrors AV_ERROR_MAX_STRING_SIZE.
const MaxStringSize = 64

type tagInfo struct {
	name, message string
}

var tagTable = map[Code]tagInfo{
	ErrBSFNotFound:         {"AVERROR_BSF_NOT_FOUND", "Bitstream filter not found"},
	ErrBug:                 {"AVERROR_BUG", "Internal bug, should not have happened"},
	ErrBug2:                {"AVERROR_BUG2", "Internal bug, should not have happened"},
	ErrBufferTooSmall:      {"AVERROR_BUFFER_TOO_SMALL", "Buffer too small"},
	ErrDecoderNotFound:     {"AVERROR_DECODER_NOT_FOUND", "Decoder not found"},
	ErrDemuxerNotFound:     {"AVERROR_DEMUXER_NOT_FOUND", "Demuxer not found"},
	ErrEncoderNotFound:     {"AVERROR_ENCODER_NOT_FOUND", "Encoder not found"},
	ErrEOF:                 {"AVERROR_EOF", "End of file"},
	ErrExit:                {"AVERROR_EXIT", "Immediate exit requested"},
	ErrExperimental:        {"AVERROR_EXPERIMENTAL", "Experimental feature"},
	ErrExternal:            {"AVERROR_EXTERNAL", "Generic error in an external library"},
	ErrFilterNotFound:      {"AVERROR_FILTER_NOT_FOUND", "Filter not found"},
	ErrHTTPBadRequest:      {"AVERROR_HTTP_BAD_REQUEST", "Server returned 400 Bad Request"},
	ErrHTTPForbidden:       {"AVERROR_HTTP_FORBIDDEN", "Server returned 403 Forbidden (access denied)"},
	ErrHTTPNotFound:        {"AVERROR_HTTP_NOT_FOUND", "Server returned 404 Not Found"},
	ErrHTTPTooManyRequests: {"AVERROR_HTTP_TOO_MANY_REQUESTS", "Server returned 429 Too Many Requests"},
	ErrHTTPOther4xx:        {"AVERROR_HTTP_OTHER_4XX", "Server returned 4XX Client Error, but not one of 40{0,1,3,4}"},
	ErrHTTPServerError:     {"AVERROR_HTTP_SERVER_ERROR", "Server returned 5XX Server Error reply"},
	ErrHTTPUnauthorized:    {"AVERROR_HTTP_UNAUTHORIZED", "Server returned 401 Unauthorized (authorization failed)"},
	ErrInputChanged:        {"AVERROR_INPUT_CHANGED", "Input changed"},
	ErrInvalidData:         {"AVERROR_INVALIDDATA", "Invalid data found when processing input"},
	ErrMuxerNotFound:       {"AVERROR_MUXER_NOT_FOUND", "Muxer not found"},
	ErrOptionNotFound:      {"AVERROR_OPTION_NOT_FOUND", "Option not found"},
	ErrOutputChanged:       {"AVERROR_OUTPUT_CHANGED", "Output changed"},
	ErrPatchWelcome:        {"AVERROR_PATCHWELCOME", "Not yet implemented in FFmpeg, patches welcome"},
	ErrProtocolNotFound:    {"AVERROR_PROTOCOL_NOT_FOUND", "Protocol not found"},
	ErrStreamNotFound:      {"AVERROR_STREAM_NOT_FOUND", "Stream not found"},
	ErrUnknown:             {"AVERROR_UNKNOWN", "Unknown error occurred"},
}

// EOF returns the end of stream marker, AVERROR_EOF.
func EOF() Code { return ErrEOF }

// EAGAIN returns AVERROR(EAGAIN) for the host platform. Decoders return it
// when output is not available in the current state and more input has to be
// sent first.
func EAGAIN() Code { return FromErrno(errnoEAGAIN) }

// FromErrno converts a platform errno into the libav error space. It is the
// AVERROR(e) macro.
func FromErrno(errno syscall.Errno) Code { return -Code(errno) }

// Errno is the inverse of FromErrno. ok is false for tagged codes and for
// non-negative values.
func (c Code) Errno() (syscall.Errno, bool) {
	if c >= 0 || c.IsTag() {
		return 0, false
	}
	return syscall.Errno(-c), true
}

// IsTag reports whether c is one of the named FFERRTAG style codes.
func (c Code) IsTag() bool {
	_, ok := tagTable[c]
	return ok
}

// Name returns the macro spelling of c: AVERROR_EOF for tagged codes and
// AVERROR(EAGAIN) style for errno codes.
func (c Code) Name() string {
	if info, ok := tagTable[c]; ok {
		return info.name
	}
	if errno, ok := c.Errno(); ok {
		if name, ok := errnoName(errno); ok {
			return "AVERROR(" + name + ")"
		}
		return fmt.Sprintf("AVERROR(%d)", int(errno))
	}
	return fmt.Sprintf("%d", int32(c))
}

// Error returns the same text av_strerror would produce.
func (c Code) Error() string {
	if info, ok := tagTable[c]; ok {
		return info.message
	}
	if errno, ok := c.Errno(); ok {
		if _, named := errnoName(errno); named {
			return errno.Error()
		}
	}
	return fmt.Sprintf("Error number %d occurred", int32(c))
}

// Is lets errors.Is match AVERROR_EOF against io.EOF and errno codes against
// the equivalent syscall.Errno.
func (c Code) Is(target error) bool {
	switch t := target.(type) {
	case Code:
		return c == t
	case syscall.Errno:
		errno, ok := c.Errno()
		return ok && errno == t
	}
	return c == ErrEOF && target == io.EOF
}

// FromReturn turns a libav style return value into an error. Non-negative
// values are success.
func FromReturn(ret int) error {
	if ret >= 0 {
		return nil
	}
	return Code(ret)
}

// Wrap is FromReturn with an operation prefix.
func Wrap(op string, ret int) error {
	if ret >= 0 {
		return nil
	}
	return fmt.Errorf("%s: %w", op, Code(ret))
}

// IsEOF reports whether err is, or wraps, AVERROR_EOF or io.EOF.
func IsEOF(err error) bool {
	return errors.Is(err, ErrEOF) || errors.Is(err, io.EOF)
}

// IsAgain reports whether err is, or wraps, AVERROR(EAGAIN).
func IsAgain(err error) bool {
	var code Code
	if !errors.As(err, &code) {
		return false
	}
	return code == EAGAIN()
}

// All returns every named tagged code, ordered by name.
func All() []Code {
	codes := make([]Code, 0, len(tagTable))
	for code := range tagTable {
		codes = append(codes, code)
	}
	slices.SortFunc(codes, func(a, b Code) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return codes
}

// ErrUnknownCode is returned by Parse for input that names no known code.
var ErrUnknownCode = errors.New("unknown libav error code")

// Parse resolves a decimal return value, a macro name such as AVERROR_EOF, an
// AVERROR(EAGAIN) spelling or a bare errno name.
func Parse(s string) (Code, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		if n >= 0 {
			return 0, fmt.Errorf("%w: %d is not negative", ErrUnknownCode, n)
		}
		return Code(n), nil
	}

	for code, info := range tagTable {
		if strings.EqualFold(info.name, s) {
			return code, nil
		}
	}

	const prefix = "AVERROR("
	name := s
	if len(s) > len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) &&
		strings.HasSuffix(s, ")") {
		name = strings.TrimSpace(s[len(prefix) : len(s)-1])
		if n, err := strconv.ParseInt(name, 10, 32); err == nil && n > 0 {
			return FromErrno(syscall.Errno(n)), nil
		}
	}
	if errno, ok := ParseErrno(strings.ToUpper(name)); ok {
		return FromErrno(errno), nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownCode, s)
}
