// Package policy holds the authorization decisions as pure functions. They
// never touch the database: callers supply every fact the decision needs
// (e.g. whether a follow already exists). A false result is not an error;
// page flows turn it into a redirect and API flows into a 403.
package policy

import "github.com/Luismorlan/postboard/model"

// CanEditOrDelete is true iff the actor is the post's author. Anonymous
// actors (nil) can never mutate.
func CanEditOrDelete(actor *model.User, post *model.Post) bool {
	if actor == nil || post == nil {
		return false
	}
	return actor.Id == post.AuthorID
}

// CanFollow is true iff the actor is authenticated, is not the target, and
// does not already follow the target.
func CanFollow(actor *model.User, target *model.User, alreadyFollowing bool) bool {
	if actor == nil || target == nil {
		return false
	}
	if actor.Id == target.Id {
		return false
	}
	return !alreadyFollowing
}

// CanComment is true iff the actor is an authenticated identity. Anonymous
// users may read comments but never write them.
func CanComment(actor *model.User) bool {
	return actor != nil
}

// CanMutateViaAPI gates API PUT/PATCH/DELETE with the same ownership rule as
// the page edit/delete flows.
func CanMutateViaAPI(actor *model.User, post *model.Post) bool {
	return CanEditOrDelete(actor, post)
}
