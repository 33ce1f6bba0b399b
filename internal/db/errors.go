package db

import "errors"

// Domain-level database error sentinels.
var (
	// Topic errors
	ErrTopicNotFound  = errors.New("topic not found")
	ErrInvalidTopicID = errors.New("invalid topic id")
	ErrDuplicateTopic = errors.New("duplicate topic id in strategy")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Store errors
	ErrTimeout = errors.New("database request timed out")
)
