package worker

import "errors"

// ErrShutdownTimeout reports that the worker did not stop within the
// shutdown grace period.
var ErrShutdownTimeout = errors.New("refresh worker shutdown timeout")
