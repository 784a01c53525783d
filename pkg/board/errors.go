package board

import "fmt"

// Kind identifies which rule of the flip/map protocol denied an operation.
type Kind int

const (
	// KindParseError marks a malformed board file. Neither NewBoard nor the
	// boardfile package returns it: both report malformed input as plain
	// fmt errors.
	KindParseError Kind = iota
	KindOutOfBounds
	KindEmptySpace
	KindContested
	KindNoFirst
	KindEmptyTarget
	KindSecondContested
	KindInvalidLabel
)

func (k Kind) String() string {
	switch k {
	case KindParseError:
		return "ParseError"
	case KindOutOfBounds:
		return "OutOfBounds"
	case KindEmptySpace:
		return "EmptySpace"
	case KindContested:
		return "Contested"
	case KindNoFirst:
		return "NoFirst"
	case KindEmptyTarget:
		return "EmptyTarget"
	case KindSecondContested:
		return "SecondContested"
	case KindInvalidLabel:
		return "InvalidLabel"
	default:
		return "Unknown"
	}
}

// Error is the error type this package returns when a rule denies an
// operation; NewBoard's validation errors and context errors are plain
// errors instead. Callers that only
// care about the rule that fired should compare with errors.Is against the
// Err* sentinels below; callers that want the message use Error().
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string {
	if e.msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

// Is reports whether target is a *Error with the same Kind, regardless of
// message, so callers can do errors.Is(err, board.ErrEmptySpace).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Sentinels for errors.Is comparisons. Their message field is irrelevant.
var (
	ErrOutOfBounds     = &Error{Kind: KindOutOfBounds}
	ErrEmptySpace      = &Error{Kind: KindEmptySpace}
	ErrContested       = &Error{Kind: KindContested}
	ErrNoFirst         = &Error{Kind: KindNoFirst}
	ErrEmptyTarget     = &Error{Kind: KindEmptyTarget}
	ErrSecondContested = &Error{Kind: KindSecondContested}
	ErrInvalidLabel    = &Error{Kind: KindInvalidLabel}
	ErrParseError      = &Error{Kind: KindParseError}
)
