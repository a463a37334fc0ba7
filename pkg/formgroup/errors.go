package formgroup

import "errors"

var (
	// ErrStackUnderflow is returned when a group is closed while none is open.
	ErrStackUnderflow = errors.New("no open form group")
	// ErrGroupMismatch is returned by CloseGroupNamed when the innermost open
	// group has a different name.
	ErrGroupMismatch = errors.New("form group closed out of order")
)
