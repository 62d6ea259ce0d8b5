package services

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrForbidden          = errors.New("admin rights required")
	ErrNoCompetitions     = errors.New("no competitions available")
	ErrUnknownCompetition = errors.New("unknown competition")
	ErrUnknownQuestion    = errors.New("unknown bonus question")
)
