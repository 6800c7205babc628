package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is a toggleable endorsement of one content item by one user.
// At most one vote exists per (user, content, kind) triple.
type Vote struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ContentID uuid.UUID
	Kind      Kind
	CreatedAt time.Time
}

type VoteResult int

const (
	VoteCast VoteResult = iota
	VoteRemoved
)

func (r VoteResult) String() string {
	if r == VoteRemoved {
		return "removed"
	}
	return "cast"
}
