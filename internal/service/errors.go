package service

import "errors"

var (
	ErrCompanyNotFound    = errors.New("company not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrInvalidCoordinates = errors.New("valid coordinates are required")
	ErrInvalidSafeZone    = errors.New("invalid safe zone geometry")
	ErrOutsideZone        = errors.New("you are outside the designated area")
	ErrAlreadyTimedIn     = errors.New("you have already timed in today")
	ErrNotTimedIn         = errors.New("you have not timed in today")
	ErrAlreadyTimedOut    = errors.New("you have already timed out today")
)
