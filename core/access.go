package core

import (
	"github.com/wansing/kiosk/auth"
)

// Ownable is an entity with a fixed author. Ownership never transfers.
type Ownable interface {
	AuthorID() int
}

// RequireOwner is the single capability check of kiosk. Notes and comments
// share it. Anonymous users get ErrAuthRequired. Logged-in users which are
// not the owner get ErrNotFound, so a foreign entity is indistinguishable
// from a missing one.
func RequireOwner(user auth.User, entity Ownable) error {
	if user == nil {
		return ErrAuthRequired
	}
	if user.ID() != entity.AuthorID() {
		return ErrNotFound
	}
	return nil
}
