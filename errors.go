package btregex

import "errors"

// Errors returned by Matcher accessors and replacement helpers. Returned
// errors wrap these sentinels with detail, so compare with errors.Is.
var (
	// ErrNoMatch reports an accessor call without a current match.
	ErrNoMatch = errors.New("regexp: no match available")

	// ErrNoSuchGroup reports a group number out of range or an unknown
	// group name.
	ErrNoSuchGroup = errors.New("regexp: no such group")

	// ErrIndexOutOfBounds reports a search start or region outside the
	// input.
	ErrIndexOutOfBounds = errors.New("regexp: index out of bounds")

	// ErrIllegalTemplate reports a malformed replacement template.
	ErrIllegalTemplate = errors.New("regexp: illegal replacement template")
)
