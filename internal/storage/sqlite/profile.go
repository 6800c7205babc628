package sqlite

import (
	"context"

	"github.com/parsgolf/server/gen/model"
	"github.com/parsgolf/server/gen/table"
	"github.com/parsgolf/server/internal/domain"

	"github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
)

// ListBySubmitter returns all approved items a user submitted, newest first,
// clubs before players before courses.
func (s *Storage) ListBySubmitter(ctx context.Context, submitterID uuid.UUID) ([]domain.Item, error) {
	sub := sqlite.String(submitterID.String())
	var items []domain.Item

	clubs, err := s.clubsWhere(ctx, table.Clubs.Approved.IS_TRUE().AND(table.Clubs.SubmitterID.EQ(sub)))
	if err != nil {
		return nil, err
	}
	items = append(items, clubs...)

	players, err := s.playersWhere(ctx, table.Players.Approved.IS_TRUE().AND(table.Players.SubmitterID.EQ(sub)))
	if err != nil {
		return nil, err
	}
	items = append(items, players...)

	courses, err := s.coursesWhere(ctx, table.Courses.Approved.IS_TRUE().AND(table.Courses.SubmitterID.EQ(sub)))
	if err != nil {
		return nil, err
	}
	return append(items, courses...), nil
}

// ListVotedBy returns the approved items a user has voted for.
func (s *Storage) ListVotedBy(ctx context.Context, userID uuid.UUID) ([]domain.Item, error) {
	var votes []model.Votes
	err := table.Votes.
		SELECT(table.Votes.AllColumns).
		FROM(table.Votes).
		WHERE(table.Votes.UserID.EQ(sqlite.String(userID.String()))).
		ORDER_BY(table.Votes.CreatedAt.DESC()).
		QueryContext(ctx, s.db, &votes)
	if err != nil {
		return nil, err
	}

	ids := make(map[domain.Kind][]sqlite.Expression)
	for _, vote := range votes {
		kind := domain.Kind(vote.ContentKind)
		ids[kind] = append(ids[kind], sqlite.String(vote.ContentID))
	}

	var items []domain.Item
	if exprs := ids[domain.KindClub]; len(exprs) > 0 {
		clubs, err := s.clubsWhere(ctx, table.Clubs.Approved.IS_TRUE().AND(table.Clubs.ID.IN(exprs...)))
		if err != nil {
			return nil, err
		}
		items = append(items, clubs...)
	}
	if exprs := ids[domain.KindPlayer]; len(exprs) > 0 {
		players, err := s.playersWhere(ctx, table.Players.Approved.IS_TRUE().AND(table.Players.ID.IN(exprs...)))
		if err != nil {
			return nil, err
		}
		items = append(items, players...)
	}
	if exprs := ids[domain.KindCourse]; len(exprs) > 0 {
		courses, err := s.coursesWhere(ctx, table.Courses.Approved.IS_TRUE().AND(table.Courses.ID.IN(exprs...)))
		if err != nil {
			return nil, err
		}
		items = append(items, courses...)
	}
	return items, nil
}

func (s *Storage) clubsWhere(ctx context.Context, cond sqlite.BoolExpression) ([]domain.Item, error) {
	voteJoin := table.Votes.ContentID.EQ(table.Clubs.ID).
		AND(table.Votes.ContentKind.EQ(sqlite.String(string(domain.KindClub))))

	var rows []struct {
		model.Clubs
		VoteCount int64 `alias:"vote_count"`
	}
	err := table.Clubs.
		SELECT(table.Clubs.AllColumns, sqlite.COUNT(table.Votes.ID).AS("vote_count")).
		FROM(table.Clubs.LEFT_JOIN(table.Votes, voteJoin)).
		WHERE(cond).
		GROUP_BY(table.Clubs.ID).
		ORDER_BY(table.Clubs.CreatedAt.DESC()).
		QueryContext(ctx, s.db, &rows)
	if err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		club, err := convertClubToDomain(row.Clubs)
		if err != nil {
			return nil, err
		}
		club.VoteCount = int(row.VoteCount)
		items = append(items, club)
	}
	return items, nil
}

func (s *Storage) playersWhere(ctx context.Context, cond sqlite.BoolExpression) ([]domain.Item, error) {
	voteJoin := table.Votes.ContentID.EQ(table.Players.ID).
		AND(table.Votes.ContentKind.EQ(sqlite.String(string(domain.KindPlayer))))

	var rows []struct {
		model.Players
		VoteCount int64 `alias:"vote_count"`
	}
	err := table.Players.
		SELECT(table.Players.AllColumns, sqlite.COUNT(table.Votes.ID).AS("vote_count")).
		FROM(table.Players.LEFT_JOIN(table.Votes, voteJoin)).
		WHERE(cond).
		GROUP_BY(table.Players.ID).
		ORDER_BY(table.Players.CreatedAt.DESC()).
		QueryContext(ctx, s.db, &rows)
	if err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		player, err := convertPlayerToDomain(row.Players)
		if err != nil {
			return nil, err
		}
		player.VoteCount = int(row.VoteCount)
		items = append(items, player)
	}
	return items, nil
}

func (s *Storage) coursesWhere(ctx context.Context, cond sqlite.BoolExpression) ([]domain.Item, error) {
	voteJoin := table.Votes.ContentID.EQ(table.Courses.ID).
		AND(table.Votes.ContentKind.EQ(sqlite.String(string(domain.KindCourse))))

	var rows []struct {
		model.Courses
		VoteCount int64 `alias:"vote_count"`
	}
	err := table.Courses.
		SELECT(table.Courses.AllColumns, sqlite.COUNT(table.Votes.ID).AS("vote_count")).
		FROM(table.Courses.LEFT_JOIN(table.Votes, voteJoin)).
		WHERE(cond).
		GROUP_BY(table.Courses.ID).
		ORDER_BY(table.Courses.CreatedAt.DESC()).
		QueryContext(ctx, s.db, &rows)
	if err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		course, err := convertCourseToDomain(row.Courses)
		if err != nil {
			return nil, err
		}
		course.VoteCount = int(row.VoteCount)
		items = append(items, course)
	}
	return items, nil
}
