package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loke-social/loke-server/internal/models"
)

func TestVisibleLevelsPerRelationship(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{models.VisibilityEveryone, models.VisibilityFriendOnly, models.VisibilityOwnerOnly},
		visibleLevels(true, false), "owner sees every level")

	assert.ElementsMatch(t,
		[]string{models.VisibilityEveryone, models.VisibilityFriendOnly},
		visibleLevels(false, true), "friend never sees owner-only posts")

	assert.Equal(t,
		[]string{models.VisibilityEveryone},
		visibleLevels(false, false), "stranger sees public posts only")
}

func TestFriendUsernamesEitherDirection(t *testing.T) {
	links := []models.Friend{
		{UserID: "alice", FriendUserID: "bob"},
		{UserID: "carol", FriendUserID: "alice"},
	}

	assert.Equal(t, []string{"bob", "carol"}, friendUsernames(links, "alice"))
	assert.Empty(t, friendUsernames(nil, "alice"))
}
