package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/parsgolf/server/auth/users"
	"github.com/parsgolf/server/internal/domain"
	"github.com/parsgolf/server/internal/normalize"
	"github.com/parsgolf/server/internal/storage"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RolePromoter promotes a user account to the Player role. Kept as a
// separate collaborator so verification stays an explicit two-step
// operation: promote the role, then link the player record.
type RolePromoter interface {
	PromoteToPlayer(ctx context.Context, userID uuid.UUID) error
}

type ContentService struct {
	content storage.ContentStorage
	votes   storage.VoteStorage
	roles   RolePromoter
	log     *logrus.Entry
}

func New(l *logrus.Logger, content storage.ContentStorage, votes storage.VoteStorage, roles RolePromoter) *ContentService {
	return &ContentService{
		content: content,
		votes:   votes,
		roles:   roles,
		log:     l.WithField("from", "content-service"),
	}
}

// Submit creates a content item. Items submitted by moderators are approved
// immediately, everything else waits in the moderation queue.
func (s *ContentService) Submit(ctx context.Context, item domain.Item, submitter users.User) (domain.Item, error) {
	if err := validate(item); err != nil {
		return nil, err
	}
	approved := submitter.Role.Moderator()
	item, err := withLifecycle(item, uuid.New(), approved, submitter.ID)
	if err != nil {
		return nil, err
	}
	created, err := s.content.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"kind":     created.ItemKind(),
		"id":       created.ItemID(),
		"approved": created.IsApproved(),
	}).Info("content submitted")
	return created, nil
}

// Get returns an approved item by id. Unapproved items are not visible to
// anyone through this path, their submitter included.
func (s *ContentService) Get(ctx context.Context, kind domain.Kind, id uuid.UUID) (domain.Item, error) {
	item, err := s.content.Get(ctx, kind, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !item.IsApproved() {
		return nil, ErrNotFound
	}
	count, err := s.votes.Count(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return withVoteCount(item, count), nil
}

// Edit updates an item's attributes. Allowed for the submitter and for
// moderators. Approval state is never touched by an edit.
func (s *ContentService) Edit(ctx context.Context, patch domain.Item, actor users.User) (domain.Item, error) {
	existing, err := s.content.Get(ctx, patch.ItemKind(), patch.ItemID())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if existing.Submitter() != actor.ID && !actor.Role.Moderator() {
		return nil, ErrForbidden
	}
	if err := validate(patch); err != nil {
		return nil, err
	}
	return s.content.Update(ctx, patch)
}

// Approve flips an item to approved. Idempotent: approving an approved item
// returns it unchanged.
func (s *ContentService) Approve(ctx context.Context, kind domain.Kind, id uuid.UUID, actor users.User) (domain.Item, error) {
	if !actor.Role.Moderator() {
		return nil, ErrForbidden
	}
	item, err := s.content.Get(ctx, kind, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if item.IsApproved() {
		return item, nil
	}
	approved, err := s.content.SetApproved(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"kind": kind, "id": id, "by": actor.ID}).Info("content approved")
	return approved, nil
}

// ToggleVote casts the user's vote on an approved item, or removes it when
// one already exists.
func (s *ContentService) ToggleVote(ctx context.Context, kind domain.Kind, id, userID uuid.UUID) (domain.VoteResult, error) {
	item, err := s.content.Get(ctx, kind, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if !item.IsApproved() {
		return 0, ErrNotFound
	}
	return s.votes.Toggle(ctx, domain.Vote{
		ID:        uuid.New(),
		UserID:    userID,
		ContentID: id,
		Kind:      kind,
	})
}

func (s *ContentService) VoteCount(ctx context.Context, kind domain.Kind, id uuid.UUID) (int, error) {
	return s.votes.Count(ctx, kind, id)
}

func (s *ContentService) HasVoted(ctx context.Context, userID uuid.UUID, kind domain.Kind, id uuid.UUID) (bool, error) {
	return s.votes.HasVoted(ctx, userID, kind, id)
}

// VerifyPlayer links a player record to a user account. Admin only. The
// target user is promoted to the Player role first when needed, then the
// record is linked and marked verified.
func (s *ContentService) VerifyPlayer(ctx context.Context, playerID, targetUserID uuid.UUID, actor users.User) (domain.Player, error) {
	if actor.Role != users.RoleAdmin {
		return domain.Player{}, ErrForbidden
	}
	item, err := s.content.Get(ctx, domain.KindPlayer, playerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Player{}, ErrNotFound
		}
		return domain.Player{}, err
	}
	if _, ok := item.(domain.Player); !ok {
		return domain.Player{}, ErrNotFound
	}
	if err := s.roles.PromoteToPlayer(ctx, targetUserID); err != nil {
		return domain.Player{}, err
	}
	player, err := s.content.LinkPlayerUser(ctx, playerID, targetUserID)
	if err != nil {
		return domain.Player{}, err
	}
	s.log.WithFields(logrus.Fields{"player": playerID, "user": targetUserID}).Info("player verified")
	return player, nil
}

// List returns one page of approved items. Unknown sort keys fall back to
// the vote-count ordering.
func (s *ContentService) List(ctx context.Context, q domain.ListQuery) (domain.Page, error) {
	if !q.Kind.Valid() {
		return domain.Page{}, fmt.Errorf("%w: unknown content kind %q", ErrValidation, q.Kind)
	}
	switch q.Sort {
	case domain.SortNewest, domain.SortName:
	case domain.SortRanking:
		if q.Kind != domain.KindPlayer {
			q.Sort = domain.SortVotes
		}
	case domain.SortDifficulty:
		if q.Kind != domain.KindCourse {
			q.Sort = domain.SortVotes
		}
	default:
		q.Sort = domain.SortVotes
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = domain.DefaultPerPage
	}
	return s.content.List(ctx, q)
}

// Pending lists unapproved items of a kind for the moderation dashboard.
func (s *ContentService) Pending(ctx context.Context, kind domain.Kind, actor users.User) ([]domain.Item, error) {
	if !actor.Role.Moderator() {
		return nil, ErrForbidden
	}
	return s.content.ListPending(ctx, kind)
}

func (s *ContentService) FilterOptions(ctx context.Context, kind domain.Kind) (domain.FilterOptions, error) {
	return s.content.FilterOptions(ctx, kind)
}

// Profile collects a user's public activity: their approved submissions and
// the approved items they voted for. Pending submissions stay hidden here
// like everywhere else.
func (s *ContentService) Profile(ctx context.Context, userID uuid.UUID) (submitted, voted []domain.Item, err error) {
	submitted, err = s.content.ListBySubmitter(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	voted, err = s.content.ListVotedBy(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return submitted, voted, nil
}

// Similar returns a few approved items sharing the given item's grouping
// attribute (club type for clubs, country for players).
func (s *ContentService) Similar(ctx context.Context, item domain.Item, limit int) ([]domain.Item, error) {
	q := domain.ListQuery{Kind: item.ItemKind(), Sort: domain.SortVotes, Page: 1, PerPage: limit + 1}
	switch v := item.(type) {
	case domain.Club:
		q.Filters.ClubType = v.ClubType
	case domain.Player:
		q.Filters.Country = v.Country
	default:
		return nil, nil
	}
	page, err := s.content.List(ctx, q)
	if err != nil {
		return nil, err
	}
	similar := make([]domain.Item, 0, limit)
	for _, it := range page.Items {
		if it.ItemID() == item.ItemID() {
			continue
		}
		similar = append(similar, it)
		if len(similar) == limit {
			break
		}
	}
	return similar, nil
}

// RowError reports a single failed row of a bulk import.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

type ImportReport struct {
	Created int
	Errors  []RowError
}

// BulkImport inserts pre-approved records on behalf of an importer that the
// caller has already privilege-checked. Row failures are collected, never
// aborting the rest of the batch. Duplicate names within one batch are
// skipped.
func (s *ContentService) BulkImport(ctx context.Context, kind domain.Kind, records []domain.Item, submitterID uuid.UUID) (ImportReport, error) {
	if !kind.Valid() {
		return ImportReport{}, fmt.Errorf("%w: unknown content kind %q", ErrValidation, kind)
	}
	var report ImportReport
	seen := mapset.NewSet[string]()
	for i, record := range records {
		if record.ItemKind() != kind {
			report.Errors = append(report.Errors, RowError{Row: i + 1, Err: fmt.Errorf("%w: record kind %q", ErrValidation, record.ItemKind())})
			continue
		}
		if err := validate(record); err != nil {
			report.Errors = append(report.Errors, RowError{Row: i + 1, Err: err})
			continue
		}
		if !seen.Add(normalize.Name(record.ItemName())) {
			report.Errors = append(report.Errors, RowError{Row: i + 1, Err: fmt.Errorf("%w: duplicate name %q", ErrValidation, record.ItemName())})
			continue
		}
		item, err := withLifecycle(record, uuid.New(), true, submitterID)
		if err != nil {
			report.Errors = append(report.Errors, RowError{Row: i + 1, Err: err})
			continue
		}
		if _, err := s.content.Create(ctx, item); err != nil {
			report.Errors = append(report.Errors, RowError{Row: i + 1, Err: err})
			continue
		}
		report.Created++
	}
	s.log.WithFields(logrus.Fields{
		"kind":    kind,
		"created": report.Created,
		"failed":  len(report.Errors),
	}).Info("bulk import finished")
	return report, nil
}

func validate(item domain.Item) error {
	var err error
	if item.ItemName() == "" {
		err = errors.Join(err, errors.New("name is required"))
	}
	switch v := item.(type) {
	case domain.Club:
		if v.Brand == "" {
			err = errors.Join(err, errors.New("brand is required"))
		}
		if v.ClubType == "" {
			err = errors.Join(err, errors.New("club type is required"))
		}
	case domain.Player:
		if v.Country == "" {
			err = errors.Join(err, errors.New("country is required"))
		}
	case domain.Course:
		if v.Location == "" {
			err = errors.Join(err, errors.New("location is required"))
		}
	default:
		err = errors.Join(err, fmt.Errorf("unknown content kind %T", item))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

func withLifecycle(item domain.Item, id uuid.UUID, approved bool, submitterID uuid.UUID) (domain.Item, error) {
	switch v := item.(type) {
	case domain.Club:
		v.ID = id
		v.Approved = approved
		v.SubmitterID = submitterID
		return v, nil
	case domain.Player:
		v.ID = id
		v.Approved = approved
		v.SubmitterID = submitterID
		return v, nil
	case domain.Course:
		v.ID = id
		v.Approved = approved
		v.SubmitterID = submitterID
		return v, nil
	}
	return nil, fmt.Errorf("unknown content kind %T", item)
}

func withVoteCount(item domain.Item, count int) domain.Item {
	switch v := item.(type) {
	case domain.Club:
		v.VoteCount = count
		return v
	case domain.Player:
		v.VoteCount = count
		return v
	case domain.Course:
		v.VoteCount = count
		return v
	}
	return item
}
