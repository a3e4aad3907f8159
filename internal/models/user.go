package models

import (
	"sort"
	"time"
)

// AccountType controls who may follow a user without approval.
type AccountType string

const (
	AccountPublic  AccountType = "public"
	AccountPrivate AccountType = "private"
)

// User represents a user in the system. The id is the identity provider's
// subject, so it is assigned by the caller rather than generated here.
type User struct {
	ID             string      `gorm:"primaryKey;size:64"`
	Username       string      `gorm:"size:255;uniqueIndex;not null"`
	Email          string      `gorm:"size:255;index"`
	FullName       string      `gorm:"size:255"`
	Bio            string      `gorm:"size:1024"`
	Location       string      `gorm:"size:255"`
	ProfilePicture string      `gorm:"size:1024"`
	AccountType    AccountType `gorm:"size:20;not null;default:'public'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u User) IsPrivate() bool { return u.AccountType == AccountPrivate }

// RelationKind names one of the relationship sets held by a user.
type RelationKind string

const (
	RelationFollowers        RelationKind = "followers"
	RelationFollowing        RelationKind = "following"
	RelationConnections      RelationKind = "connections"
	RelationPendingFollowers RelationKind = "pending_followers"
)

// UserEdge is one element of a relationship set: MemberID belongs to the
// Kind set of UserID. The composite key makes adding an element idempotent.
type UserEdge struct {
	UserID    string       `gorm:"primaryKey;size:64"`
	Kind      RelationKind `gorm:"primaryKey;size:32"`
	MemberID  string       `gorm:"primaryKey;size:64;index"`
	CreatedAt time.Time
}

// IDSet is a set of user ids.
type IDSet map[string]struct{}

func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Add(id string) { s[id] = struct{}{} }

// Sorted returns the ids in ascending order.
func (s IDSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Relations holds the four relationship sets of a user.
type Relations struct {
	Followers        IDSet
	Following        IDSet
	Connections      IDSet
	PendingFollowers IDSet
}

func NewRelations() Relations {
	return Relations{
		Followers:        IDSet{},
		Following:        IDSet{},
		Connections:      IDSet{},
		PendingFollowers: IDSet{},
	}
}

// Set returns the set for kind, nil for an unknown kind.
func (r Relations) Set(kind RelationKind) IDSet {
	switch kind {
	case RelationFollowers:
		return r.Followers
	case RelationFollowing:
		return r.Following
	case RelationConnections:
		return r.Connections
	case RelationPendingFollowers:
		return r.PendingFollowers
	}
	return nil
}
