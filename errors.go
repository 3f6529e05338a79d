package lidarclip

// Error is a constant error type used for sentinel errors across lidarclip
// packages. Compare with errors.Cause.
type Error string

func (e Error) Error() string { return string(e) }
