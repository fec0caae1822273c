package model

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrInvalidArg = errors.New("invalid argument")
	ErrBadVersion = errors.New("invalid resource version")
	ErrIsArchived = errors.New("entity is archived")

	// ErrTeamInactive rejects writes against converted teams.
	ErrTeamInactive = errors.New("team is not active")

	// ErrNotTeamable rejects team-up over teams which are not active
	// individual registrations.
	ErrNotTeamable = errors.New("team is not eligible for team-up")
)
