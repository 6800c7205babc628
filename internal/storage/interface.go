package storage

import (
	"context"

	"github.com/parsgolf/server/internal/domain"

	"github.com/google/uuid"
)

// ContentStorage persists the three content variants. Get returns items in
// any approval state; callers gate visibility.
type ContentStorage interface {
	Create(ctx context.Context, item domain.Item) (domain.Item, error)
	Get(ctx context.Context, kind domain.Kind, id uuid.UUID) (domain.Item, error)
	Update(ctx context.Context, item domain.Item) (domain.Item, error)
	SetApproved(ctx context.Context, kind domain.Kind, id uuid.UUID) (domain.Item, error)
	List(ctx context.Context, q domain.ListQuery) (domain.Page, error)
	ListPending(ctx context.Context, kind domain.Kind) ([]domain.Item, error)
	FilterOptions(ctx context.Context, kind domain.Kind) (domain.FilterOptions, error)
	LinkPlayerUser(ctx context.Context, playerID, userID uuid.UUID) (domain.Player, error)
	ListBySubmitter(ctx context.Context, submitterID uuid.UUID) ([]domain.Item, error)
	ListVotedBy(ctx context.Context, userID uuid.UUID) ([]domain.Item, error)
}

// VoteStorage owns the vote ledger. Toggle runs the read and the write in a
// single transaction; the unique index on the triple is the safety net.
type VoteStorage interface {
	Toggle(ctx context.Context, vote domain.Vote) (domain.VoteResult, error)
	Count(ctx context.Context, kind domain.Kind, contentID uuid.UUID) (int, error)
	HasVoted(ctx context.Context, userID uuid.UUID, kind domain.Kind, contentID uuid.UUID) (bool, error)
}
