package season

import "errors"

// Sentinel kinds for season file errors.
var (
	ErrLoadSeason        = errors.New("load season failed")
	ErrInvalidSeasonFile = errors.New("invalid season file")
)
