package app

import "errors"

// Sentinel kinds for season service errors. Callers match with
// errors.Is.
var (
	ErrInvalidSnapshot           = errors.New("invalid season snapshot")
	ErrInvalidRosterSize         = errors.New("roster must have exactly 5 contestants")
	ErrUnknownContestant         = errors.New("unknown contestant")
	ErrUnknownTeam               = errors.New("unknown team")
	ErrContestantEliminated      = errors.New("contestant eliminated")
	ErrAlreadyEliminated         = errors.New("contestant already eliminated")
	ErrSeasonComplete            = errors.New("season complete")
	ErrEpisodeNotAired           = errors.New("episode not aired")
	ErrSeasonalCodeOutsideFinale = errors.New("seasonal code outside finale")
)
