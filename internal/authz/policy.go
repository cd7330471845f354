// Package authz holds the ownership policy shared by every service. It is a
// pure decision function over the acting identity and a resource's stored
// owner, with no store access of its own.
package authz

import "tunecrate/internal/auth"

// Visibility describes who may read a resource.
type Visibility int

const (
	// VisibilityPublic resources are readable by anyone: catalog entities,
	// songs, system playlists.
	VisibilityPublic Visibility = iota
	// VisibilityOwner resources are readable only by their owner: user
	// playlists, favorites.
	VisibilityOwner
)

// Decision is the outcome of a policy check.
type Decision int

const (
	// Deny refuses the action; callers report forbidden.
	Deny Decision = iota
	// Allow permits the action.
	Allow
	// Hide refuses the action and conceals the resource's existence;
	// callers report not-found, never forbidden.
	Hide
)

// CanRead decides whether the actor may read a resource. ownerID zero means
// the resource is unowned (system playlists, catalog entities).
func CanRead(actor auth.Identity, ownerID int64, vis Visibility) Decision {
	if vis == VisibilityPublic {
		return Allow
	}
	if actor.Admin() || (ownerID != 0 && actor.UserID == ownerID) {
		return Allow
	}
	return Hide
}

// CanMutate decides whether the actor may modify or delete a resource.
// Unowned resources accept mutation only from admins. Owned resources accept
// only their owner; when the resource was not even readable by the actor the
// refusal is Hide so nothing about its existence leaks.
func CanMutate(actor auth.Identity, ownerID int64, vis Visibility) Decision {
	if actor.Admin() {
		return Allow
	}
	if ownerID == 0 {
		return Deny
	}
	if actor.UserID == ownerID {
		return Allow
	}
	if vis == VisibilityOwner {
		return Hide
	}
	return Deny
}
