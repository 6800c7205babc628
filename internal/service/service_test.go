package service

import (
	"context"
	"database/sql"
	"sort"
	"testing"

	"github.com/parsgolf/server/auth/users"
	"github.com/parsgolf/server/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContentStorage struct {
	items map[uuid.UUID]domain.Item
	votes *fakeVoteStorage
}

func newFakeContentStorage(votes *fakeVoteStorage) *fakeContentStorage {
	return &fakeContentStorage{
		items: make(map[uuid.UUID]domain.Item),
		votes: votes,
	}
}

func (f *fakeContentStorage) Create(_ context.Context, item domain.Item) (domain.Item, error) {
	f.items[item.ItemID()] = item
	return item, nil
}

func (f *fakeContentStorage) Get(_ context.Context, kind domain.Kind, id uuid.UUID) (domain.Item, error) {
	item, ok := f.items[id]
	if !ok || item.ItemKind() != kind {
		return nil, sql.ErrNoRows
	}
	return item, nil
}

func (f *fakeContentStorage) Update(_ context.Context, patch domain.Item) (domain.Item, error) {
	existing, ok := f.items[patch.ItemID()]
	if !ok {
		return nil, sql.ErrNoRows
	}
	patch, err := withLifecycle(patch, patch.ItemID(), existing.IsApproved(), existing.Submitter())
	if err != nil {
		return nil, err
	}
	f.items[patch.ItemID()] = patch
	return patch, nil
}

func (f *fakeContentStorage) SetApproved(_ context.Context, kind domain.Kind, id uuid.UUID) (domain.Item, error) {
	item, ok := f.items[id]
	if !ok || item.ItemKind() != kind {
		return nil, sql.ErrNoRows
	}
	item, err := withLifecycle(item, id, true, item.Submitter())
	if err != nil {
		return nil, err
	}
	f.items[id] = item
	return item, nil
}

func (f *fakeContentStorage) List(_ context.Context, q domain.ListQuery) (domain.Page, error) {
	var items []domain.Item
	for _, item := range f.items {
		if item.ItemKind() != q.Kind || !item.IsApproved() {
			continue
		}
		if !matchesFilters(item, q.Filters) {
			continue
		}
		count := 0
		if f.votes != nil {
			count = f.votes.count(q.Kind, item.ItemID())
		}
		items = append(items, withVoteCount(item, count))
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := voteCount(items[i]), voteCount(items[j])
		if a != b {
			return a > b
		}
		return items[i].ItemID().String() < items[j].ItemID().String()
	})
	return domain.Page{
		Items:      items,
		Number:     q.Page,
		PerPage:    q.PerPage,
		TotalItems: len(items),
		TotalPages: 1,
	}, nil
}

func (f *fakeContentStorage) ListPending(_ context.Context, kind domain.Kind) ([]domain.Item, error) {
	var items []domain.Item
	for _, item := range f.items {
		if item.ItemKind() == kind && !item.IsApproved() {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeContentStorage) FilterOptions(_ context.Context, _ domain.Kind) (domain.FilterOptions, error) {
	return domain.FilterOptions{}, nil
}

func (f *fakeContentStorage) ListBySubmitter(_ context.Context, submitterID uuid.UUID) ([]domain.Item, error) {
	var items []domain.Item
	for _, item := range f.items {
		if item.IsApproved() && item.Submitter() == submitterID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeContentStorage) ListVotedBy(_ context.Context, userID uuid.UUID) ([]domain.Item, error) {
	var items []domain.Item
	for key := range f.votes.votes {
		if key.user != userID {
			continue
		}
		item, ok := f.items[key.content]
		if !ok || !item.IsApproved() {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (f *fakeContentStorage) LinkPlayerUser(_ context.Context, playerID, userID uuid.UUID) (domain.Player, error) {
	item, ok := f.items[playerID]
	if !ok {
		return domain.Player{}, sql.ErrNoRows
	}
	player, ok := item.(domain.Player)
	if !ok {
		return domain.Player{}, sql.ErrNoRows
	}
	player.UserID = userID
	player.Verified = true
	f.items[playerID] = player
	return player, nil
}

type voteID struct {
	user    uuid.UUID
	content uuid.UUID
	kind    domain.Kind
}

type fakeVoteStorage struct {
	votes map[voteID]bool
}

func newFakeVoteStorage() *fakeVoteStorage {
	return &fakeVoteStorage{votes: make(map[voteID]bool)}
}

func (f *fakeVoteStorage) Toggle(_ context.Context, vote domain.Vote) (domain.VoteResult, error) {
	key := voteID{user: vote.UserID, content: vote.ContentID, kind: vote.Kind}
	if f.votes[key] {
		delete(f.votes, key)
		return domain.VoteRemoved, nil
	}
	f.votes[key] = true
	return domain.VoteCast, nil
}

func (f *fakeVoteStorage) Count(_ context.Context, kind domain.Kind, id uuid.UUID) (int, error) {
	return f.count(kind, id), nil
}

func (f *fakeVoteStorage) count(kind domain.Kind, id uuid.UUID) int {
	n := 0
	for key := range f.votes {
		if key.content == id && key.kind == kind {
			n++
		}
	}
	return n
}

func (f *fakeVoteStorage) HasVoted(_ context.Context, userID uuid.UUID, kind domain.Kind, id uuid.UUID) (bool, error) {
	return f.votes[voteID{user: userID, content: id, kind: kind}], nil
}

type fakePromoter struct {
	promoted []uuid.UUID
}

func (f *fakePromoter) PromoteToPlayer(_ context.Context, userID uuid.UUID) error {
	f.promoted = append(f.promoted, userID)
	return nil
}

func matchesFilters(item domain.Item, f domain.Filters) bool {
	switch v := item.(type) {
	case domain.Club:
		if f.Brand != "" && v.Brand != f.Brand {
			return false
		}
		if f.ClubType != "" && v.ClubType != f.ClubType {
			return false
		}
	case domain.Player:
		if f.Country != "" && v.Country != f.Country {
			return false
		}
	case domain.Course:
		if f.IsPublic != nil && v.IsPublic != *f.IsPublic {
			return false
		}
		if f.HasHostedMajor != nil && v.HasHostedMajor != *f.HasHostedMajor {
			return false
		}
	}
	return true
}

func voteCount(item domain.Item) int {
	switch v := item.(type) {
	case domain.Club:
		return v.VoteCount
	case domain.Player:
		return v.VoteCount
	case domain.Course:
		return v.VoteCount
	}
	return 0
}

func newTestService() (*ContentService, *fakeContentStorage, *fakeVoteStorage, *fakePromoter) {
	votes := newFakeVoteStorage()
	content := newFakeContentStorage(votes)
	promoter := &fakePromoter{}
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return New(log, content, votes, promoter), content, votes, promoter
}

func regularUser() users.User {
	return users.User{ID: uuid.New(), Name: "bob", Role: users.RoleUser}
}

func moderator() users.User {
	return users.User{ID: uuid.New(), Name: "mod", Role: users.RoleEmployee}
}

func admin() users.User {
	return users.User{ID: uuid.New(), Name: "root", Role: users.RoleAdmin}
}

func testClub() domain.Club {
	return domain.Club{Name: "Stealth 2 Driver", Brand: "TaylorMade", ClubType: "Driver"}
}

func TestSubmitApprovalByRole(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	fromUser, err := svc.Submit(ctx, testClub(), regularUser())
	require.NoError(t, err)
	assert.False(t, fromUser.IsApproved())

	club := testClub()
	club.Name = "Paradym Driver"
	fromMod, err := svc.Submit(ctx, club, moderator())
	require.NoError(t, err)
	assert.True(t, fromMod.IsApproved())

	club.Name = "Qi10 Driver"
	fromAdmin, err := svc.Submit(ctx, club, admin())
	require.NoError(t, err)
	assert.True(t, fromAdmin.IsApproved())
}

func TestSubmitValidation(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService()

	_, err := svc.Submit(context.Background(), domain.Club{Name: "No brand"}, regularUser())
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Submit(context.Background(), domain.Player{Name: "No country"}, regularUser())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetHidesUnapproved(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	submitter := regularUser()

	item, err := svc.Submit(ctx, testClub(), submitter)
	require.NoError(t, err)

	// Invisible to everyone, the submitter included.
	_, err = svc.Get(ctx, domain.KindClub, item.ItemID())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Approve(ctx, domain.KindClub, item.ItemID(), moderator())
	require.NoError(t, err)

	got, err := svc.Get(ctx, domain.KindClub, item.ItemID())
	require.NoError(t, err)
	assert.Equal(t, item.ItemID(), got.ItemID())
}

func TestApproveIdempotent(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	item, err := svc.Submit(ctx, testClub(), regularUser())
	require.NoError(t, err)

	first, err := svc.Approve(ctx, domain.KindClub, item.ItemID(), moderator())
	require.NoError(t, err)
	assert.True(t, first.IsApproved())

	second, err := svc.Approve(ctx, domain.KindClub, item.ItemID(), moderator())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestApproveForbiddenForRegulars(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	item, err := svc.Submit(ctx, testClub(), regularUser())
	require.NoError(t, err)

	_, err = svc.Approve(ctx, domain.KindClub, item.ItemID(), regularUser())
	assert.ErrorIs(t, err, ErrForbidden)

	player := regularUser()
	player.Role = users.RolePlayer
	_, err = svc.Approve(ctx, domain.KindClub, item.ItemID(), player)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestToggleVoteParity(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	voter := regularUser()

	item, err := svc.Submit(ctx, testClub(), moderator())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		result, err := svc.ToggleVote(ctx, domain.KindClub, item.ItemID(), voter.ID)
		require.NoError(t, err)
		if i%2 == 0 {
			assert.Equal(t, domain.VoteCast, result)
		} else {
			assert.Equal(t, domain.VoteRemoved, result)
		}
		count, err := svc.VoteCount(ctx, domain.KindClub, item.ItemID())
		require.NoError(t, err)
		assert.Equal(t, (i+1)%2, count)
	}
}

func TestToggleVoteUnapproved(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	item, err := svc.Submit(ctx, testClub(), regularUser())
	require.NoError(t, err)

	_, err = svc.ToggleVote(ctx, domain.KindClub, item.ItemID(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEditPermissions(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	owner := regularUser()

	item, err := svc.Submit(ctx, testClub(), owner)
	require.NoError(t, err)
	club := item.(domain.Club)
	club.Description = "updated"

	_, err = svc.Edit(ctx, club, regularUser())
	assert.ErrorIs(t, err, ErrForbidden)

	edited, err := svc.Edit(ctx, club, owner)
	require.NoError(t, err)
	assert.Equal(t, "updated", edited.(domain.Club).Description)
	// Editing must not flip the approval state.
	assert.False(t, edited.IsApproved())

	club.Description = "moderated"
	edited, err = svc.Edit(ctx, club, moderator())
	require.NoError(t, err)
	assert.Equal(t, "moderated", edited.(domain.Club).Description)
	assert.False(t, edited.IsApproved())
}

func TestVerifyPlayer(t *testing.T) {
	t.Parallel()
	svc, _, _, promoter := newTestService()
	ctx := context.Background()
	target := uuid.New()

	item, err := svc.Submit(ctx, domain.Player{Name: "Scottie Scheffler", Country: "USA"}, moderator())
	require.NoError(t, err)

	_, err = svc.VerifyPlayer(ctx, item.ItemID(), target, moderator())
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, promoter.promoted)

	player, err := svc.VerifyPlayer(ctx, item.ItemID(), target, admin())
	require.NoError(t, err)
	assert.True(t, player.Verified)
	assert.Equal(t, target, player.UserID)
	assert.Equal(t, []uuid.UUID{target}, promoter.promoted)
}

func TestListHidesUnapprovedAndSortsByVotes(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	mod := moderator()

	popular, err := svc.Submit(ctx, testClub(), mod)
	require.NoError(t, err)
	quiet := testClub()
	quiet.Name = "Apex Pro Irons"
	quietItem, err := svc.Submit(ctx, quiet, mod)
	require.NoError(t, err)
	hidden := testClub()
	hidden.Name = "Unreviewed Putter"
	_, err = svc.Submit(ctx, hidden, regularUser())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.ToggleVote(ctx, domain.KindClub, popular.ItemID(), uuid.New())
		require.NoError(t, err)
	}
	_, err = svc.ToggleVote(ctx, domain.KindClub, quietItem.ItemID(), uuid.New())
	require.NoError(t, err)

	page, err := svc.List(ctx, domain.ListQuery{Kind: domain.KindClub})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	for _, item := range page.Items {
		assert.True(t, item.IsApproved())
	}
	counts := make([]int, 0, len(page.Items))
	for _, item := range page.Items {
		counts = append(counts, voteCount(item))
	}
	assert.True(t, sort.IsSorted(sort.Reverse(sort.IntSlice(counts))))
	assert.Equal(t, popular.ItemID(), page.Items[0].ItemID())
}

func TestListSortNormalization(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.List(ctx, domain.ListQuery{Kind: "unknown"})
	assert.ErrorIs(t, err, ErrValidation)

	// Ranking sorting is player-only, difficulty is course-only; both fall
	// back to votes elsewhere and the query still succeeds.
	_, err = svc.List(ctx, domain.ListQuery{Kind: domain.KindClub, Sort: domain.SortRanking})
	assert.NoError(t, err)
	_, err = svc.List(ctx, domain.ListQuery{Kind: domain.KindClub, Sort: domain.SortDifficulty})
	assert.NoError(t, err)
}

func TestPendingModeratorOnly(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Submit(ctx, testClub(), regularUser())
	require.NoError(t, err)

	_, err = svc.Pending(ctx, domain.KindClub, regularUser())
	assert.ErrorIs(t, err, ErrForbidden)

	pending, err := svc.Pending(ctx, domain.KindClub, moderator())
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestBulkImport(t *testing.T) {
	t.Parallel()
	svc, content, _, _ := newTestService()
	ctx := context.Background()
	importer := moderator()

	valid := testClub()
	missingBrand := domain.Club{Name: "No brand at all"}
	// Duplicate detection is case-insensitive.
	duplicate := testClub()
	duplicate.Name = "STEALTH 2 DRIVER"
	wrongKind := domain.Player{Name: "Not a club", Country: "USA"}

	report, err := svc.BulkImport(ctx, domain.KindClub,
		[]domain.Item{valid, missingBrand, duplicate, wrongKind}, importer.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created)
	require.Len(t, report.Errors, 3)
	assert.Equal(t, 2, report.Errors[0].Row)
	assert.Equal(t, 3, report.Errors[1].Row)
	assert.Equal(t, 4, report.Errors[2].Row)

	// Imported records are approved immediately.
	for _, item := range content.items {
		assert.True(t, item.IsApproved())
		assert.Equal(t, importer.ID, item.Submitter())
	}
}

func TestProfile(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	user := regularUser()

	mine, err := svc.Submit(ctx, testClub(), user)
	require.NoError(t, err)
	other := testClub()
	other.Name = "Paradym Driver"
	theirs, err := svc.Submit(ctx, other, moderator())
	require.NoError(t, err)

	_, err = svc.ToggleVote(ctx, domain.KindClub, theirs.ItemID(), user.ID)
	require.NoError(t, err)

	// The pending submission stays hidden from the public profile.
	submitted, voted, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, submitted)
	require.Len(t, voted, 1)
	assert.Equal(t, theirs.ItemID(), voted[0].ItemID())

	_, err = svc.Approve(ctx, domain.KindClub, mine.ItemID(), moderator())
	require.NoError(t, err)

	submitted, _, err = svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, submitted, 1)
	assert.Equal(t, mine.ItemID(), submitted[0].ItemID())
}

func TestSimilar(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	mod := moderator()

	driver, err := svc.Submit(ctx, testClub(), mod)
	require.NoError(t, err)
	other := testClub()
	other.Name = "Paradym Driver"
	otherItem, err := svc.Submit(ctx, other, mod)
	require.NoError(t, err)
	iron := testClub()
	iron.Name = "Apex Irons"
	iron.ClubType = "Iron"
	_, err = svc.Submit(ctx, iron, mod)
	require.NoError(t, err)

	similar, err := svc.Similar(ctx, driver, 4)
	require.NoError(t, err)
	require.Len(t, similar, 1)
	assert.Equal(t, otherItem.ItemID(), similar[0].ItemID())
}
