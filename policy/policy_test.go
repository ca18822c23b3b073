package policy

import (
	"testing"

	"github.com/Luismorlan/postboard/model"
	"github.com/stretchr/testify/assert"
)

var (
	alice = &model.User{Id: "u-alice", Username: "alice"}
	bob   = &model.User{Id: "u-bob", Username: "bob"}
)

func TestCanEditOrDelete(t *testing.T) {
	post := &model.Post{Id: "p1", AuthorID: alice.Id}

	assert.True(t, CanEditOrDelete(alice, post))
	assert.False(t, CanEditOrDelete(bob, post))
	assert.False(t, CanEditOrDelete(nil, post))
	assert.False(t, CanEditOrDelete(alice, nil))
}

func TestCanFollow(t *testing.T) {
	assert.True(t, CanFollow(bob, alice, false))
	assert.False(t, CanFollow(bob, alice, true))

	// Self-follow is always rejected, followed or not.
	assert.False(t, CanFollow(alice, alice, false))
	assert.False(t, CanFollow(alice, alice, true))

	assert.False(t, CanFollow(nil, alice, false))
	assert.False(t, CanFollow(bob, nil, false))
}

func TestCanComment(t *testing.T) {
	assert.True(t, CanComment(alice))
	assert.False(t, CanComment(nil))
}

func TestCanMutateViaAPI(t *testing.T) {
	post := &model.Post{Id: "p1", AuthorID: bob.Id}

	assert.True(t, CanMutateViaAPI(bob, post))
	assert.False(t, CanMutateViaAPI(alice, post))
	assert.False(t, CanMutateViaAPI(nil, post))
}
