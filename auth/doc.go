// Package auth models user accounts.
//
// Authorization in kiosk is by ownership only: an entity is mutable by the
// user who created it, and by nobody else. There are no groups or roles.
package auth
