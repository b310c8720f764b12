package chat

import "errors"

var (
	// ErrUnauthenticated means the operation required an identity and the
	// credential was absent, malformed or expired.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrNotFound means the referenced conversation does not exist.
	ErrNotFound = errors.New("conversation not found")
	// ErrInvalidRecipient means the conversation has no counterpart for the
	// sender. Defensive: the pair invariant should make this impossible.
	ErrInvalidRecipient = errors.New("invalid recipient")
	// ErrPersistFailed means the store write failed. The only failure of a
	// send that is surfaced to the caller.
	ErrPersistFailed = errors.New("persist failed")
)
