package domain

import "errors"

var (
	// ErrTooManyCategories is returned when the board already holds the maximum number of categories.
	ErrTooManyCategories = errors.New("board already has the maximum number of categories")
	// ErrTooManyTeams is returned when the roster is full.
	ErrTooManyTeams = errors.New("roster already has the maximum number of teams")
	// ErrLastTeam is returned when removing the only remaining team.
	ErrLastTeam = errors.New("at least one team must remain")
	// ErrStateNotFound indicates no state has been persisted under the slot yet.
	ErrStateNotFound = errors.New("game state not found")
)
