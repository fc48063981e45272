package streaming

import "fmt"

// Kind classifies resolution failures. All of them are non-fatal to the
// process: the caller surfaces one message and stays interactive.
type Kind int

const (
	// KindNetwork covers transport and HTTP failures.
	KindNetwork Kind = iota
	// KindParse covers malformed HTML, JSON or obfuscation payloads.
	KindParse
	// KindNotFound means a well-formed response held no extractable target.
	KindNotFound
	// KindConfig covers missing credentials or setup.
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "Network error"
	case KindParse:
		return "Parse error"
	case KindNotFound:
		return "Not found"
	case KindConfig:
		return "Config error"
	default:
		return "Unknown error"
	}
}

// Error is the resolution pipeline's error type.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NetworkErr wraps a transport failure message.
func NetworkErr(format string, args ...any) *Error {
	return &Error{Kind: KindNetwork, Message: fmt.Sprintf(format, args...)}
}

// ParseErr wraps a malformed-content failure message.
func ParseErr(format string, args ...any) *Error {
	return &Error{Kind: KindParse, Message: fmt.Sprintf(format, args...)}
}

// NotFoundErr wraps a no-extractable-target failure message.
func NotFoundErr(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}
