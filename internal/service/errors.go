package service

import "errors"

var (
	ErrInvalidName  = errors.New("player name must not be empty")
	ErrCareerExists = errors.New("career already exists")
	ErrUnknownRole  = errors.New("unknown role")
	ErrNoOpponent   = errors.New("no opponent team with players available")
)
