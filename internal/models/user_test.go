package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDSet(t *testing.T) {
	s := NewIDSet("b", "a", "b")
	s.Add("c")

	assert.Len(t, s, 3)
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("z"))
	assert.Equal(t, []string{"a", "b", "c"}, s.Sorted())
}

func TestRelationsSet(t *testing.T) {
	r := NewRelations()
	r.Set(RelationFollowers).Add("alice")

	assert.True(t, r.Followers.Has("alice"))
	assert.Nil(t, r.Set(RelationKind("blocked")))
	assert.Empty(t, r.Set(RelationPendingFollowers))
}

func TestIsPrivate(t *testing.T) {
	assert.True(t, User{AccountType: AccountPrivate}.IsPrivate())
	assert.False(t, User{AccountType: AccountPublic}.IsPrivate())
	assert.False(t, User{}.IsPrivate())
}
