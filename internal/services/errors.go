package services

import "errors"

var (
	// ErrPostNotFound indicates the referenced post doesn't exist
	ErrPostNotFound = errors.New("post not found")

	// ErrActorNotFound indicates the referenced user doesn't exist
	ErrActorNotFound = errors.New("user not found")

	// ErrNotificationNotFound indicates the referenced notification doesn't
	// exist or belongs to another recipient
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrEmptyContent indicates comment content is empty after trimming
	ErrEmptyContent = errors.New("content is required")

	// ErrSelfFollow indicates an actor tried to follow themselves
	ErrSelfFollow = errors.New("cannot follow yourself")

	// ErrNotOwner indicates the actor doesn't own the targeted resource
	ErrNotOwner = errors.New("not the owner of this resource")

	// ErrConflict indicates a uniqueness-constraint race was lost during a
	// toggle; the caller should re-read state and retry
	ErrConflict = errors.New("conflicting concurrent update")
)

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPostNotFound) ||
		errors.Is(err, ErrActorNotFound) ||
		errors.Is(err, ErrNotificationNotFound)
}

// IsInvalid checks if an error is a validation or invalid-operation error
func IsInvalid(err error) bool {
	return errors.Is(err, ErrEmptyContent) || errors.Is(err, ErrSelfFollow)
}

// IsConflict checks if an error is a lost toggle race
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
