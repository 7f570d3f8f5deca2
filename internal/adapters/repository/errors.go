package repository

import "errors"

// Sentinel kinds for ledger errors.
var (
	ErrUnknownContestant = errors.New("unknown contestant")
	ErrNoEntry           = errors.New("no entry for episode")
)
