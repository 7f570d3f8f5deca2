package scoring

import "errors"

// Sentinel kinds for selection validation errors.
var (
	ErrUnknownCode   = errors.New("unknown code")
	ErrSelectionKind = errors.New("selection kind mismatch")
	ErrNegativeCount = errors.New("negative count")
)
