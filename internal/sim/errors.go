package sim

import "errors"

// ErrInvalidFormat indicates a series designator other than BO1, BO3 or BO5.
var ErrInvalidFormat = errors.New("series format must be BO1, BO3 or BO5")

// ErrEmptyRoster indicates a team without players.
var ErrEmptyRoster = errors.New("roster must contain at least one player")

// ErrInvalidRating indicates a player with a negative base rating.
var ErrInvalidRating = errors.New("player rating must be non-negative")

// ErrSameTeam indicates both sides of a simulation carry the same team name.
var ErrSameTeam = errors.New("teams must have distinct names")
