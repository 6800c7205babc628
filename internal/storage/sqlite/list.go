package sqlite

import (
	"context"
	"errors"

	"github.com/parsgolf/server/gen/model"
	"github.com/parsgolf/server/gen/table"
	"github.com/parsgolf/server/internal/domain"

	"github.com/go-jet/jet/v2/sqlite"
)

// List selects one page of approved items with their vote counts. The vote
// ordering is recomputed on every query via a join and group-by rather than
// a denormalized counter.
func (s *Storage) List(ctx context.Context, q domain.ListQuery) (domain.Page, error) {
	switch q.Kind {
	case domain.KindClub:
		return s.listClubs(ctx, q)
	case domain.KindPlayer:
		return s.listPlayers(ctx, q)
	case domain.KindCourse:
		return s.listCourses(ctx, q)
	}
	return domain.Page{}, errors.New("unknown content kind")
}

func (s *Storage) listClubs(ctx context.Context, q domain.ListQuery) (domain.Page, error) {
	cond := table.Clubs.Approved.IS_TRUE()
	if q.Filters.Brand != "" {
		cond = cond.AND(table.Clubs.Brand.EQ(sqlite.String(q.Filters.Brand)))
	}
	if q.Filters.ClubType != "" {
		cond = cond.AND(table.Clubs.ClubType.EQ(sqlite.String(q.Filters.ClubType)))
	}

	total, err := s.countRows(ctx, table.Clubs, table.Clubs.ID, cond)
	if err != nil {
		return domain.Page{}, err
	}

	voteJoin := table.Votes.ContentID.EQ(table.Clubs.ID).
		AND(table.Votes.ContentKind.EQ(sqlite.String(string(domain.KindClub))))

	var order []sqlite.OrderByClause
	switch q.Sort {
	case domain.SortNewest:
		order = []sqlite.OrderByClause{table.Clubs.CreatedAt.DESC()}
	case domain.SortName:
		order = []sqlite.OrderByClause{table.Clubs.Name.ASC()}
	default:
		order = []sqlite.OrderByClause{sqlite.COUNT(table.Votes.ID).DESC(), table.Clubs.ID.ASC()}
	}

	var rows []struct {
		model.Clubs
		VoteCount int64 `alias:"vote_count"`
	}
	err = table.Clubs.
		SELECT(table.Clubs.AllColumns, sqlite.COUNT(table.Votes.ID).AS("vote_count")).
		FROM(table.Clubs.LEFT_JOIN(table.Votes, voteJoin)).
		WHERE(cond).
		GROUP_BY(table.Clubs.ID).
		ORDER_BY(order...).
		LIMIT(int64(q.PerPage)).
		OFFSET(int64((q.Page - 1) * q.PerPage)).
		QueryContext(ctx, s.db, &rows)
	if err != nil {
		return domain.Page{}, err
	}

	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		club, err := convertClubToDomain(row.Clubs)
		if err != nil {
			return domain.Page{}, err
		}
		club.VoteCount = int(row.VoteCount)
		items = append(items, club)
	}
	return buildPage(items, q, total), nil
}

func (s *Storage) listPlayers(ctx context.Context, q domain.ListQuery) (domain.Page, error) {
	cond := table.Players.Approved.IS_TRUE()
	if q.Filters.Country != "" {
		cond = cond.AND(table.Players.Country.EQ(sqlite.String(q.Filters.Country)))
	}

	total, err := s.countRows(ctx, table.Players, table.Players.ID, cond)
	if err != nil {
		return domain.Page{}, err
	}

	voteJoin := table.Votes.ContentID.EQ(table.Players.ID).
		AND(table.Votes.ContentKind.EQ(sqlite.String(string(domain.KindPlayer))))

	var order []sqlite.OrderByClause
	switch q.Sort {
	case domain.SortNewest:
		order = []sqlite.OrderByClause{table.Players.CreatedAt.DESC()}
	case domain.SortName:
		order = []sqlite.OrderByClause{table.Players.Name.ASC()}
	case domain.SortRanking:
		order = []sqlite.OrderByClause{table.Players.WorldRanking.ASC()}
	default:
		order = []sqlite.OrderByClause{sqlite.COUNT(table.Votes.ID).DESC(), table.Players.ID.ASC()}
	}

	var rows []struct {
		model.Players
		VoteCount int64 `alias:"vote_count"`
	}
	err = table.Players.
		SELECT(table.Players.AllColumns, sqlite.COUNT(table.Votes.ID).AS("vote_count")).
		FROM(table.Players.LEFT_JOIN(table.Votes, voteJoin)).
		WHERE(cond).
		GROUP_BY(table.Players.ID).
		ORDER_BY(order...).
		LIMIT(int64(q.PerPage)).
		OFFSET(int64((q.Page - 1) * q.PerPage)).
		QueryContext(ctx, s.db, &rows)
	if err != nil {
		return domain.Page{}, err
	}

	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		player, err := convertPlayerToDomain(row.Players)
		if err != nil {
			return domain.Page{}, err
		}
		player.VoteCount = int(row.VoteCount)
		items = append(items, player)
	}
	return buildPage(items, q, total), nil
}

func (s *Storage) listCourses(ctx context.Context, q domain.ListQuery) (domain.Page, error) {
	cond := table.Courses.Approved.IS_TRUE()
	if q.Filters.IsPublic != nil {
		cond = cond.AND(table.Courses.IsPublic.EQ(sqlite.Bool(*q.Filters.IsPublic)))
	}
	if q.Filters.HasHostedMajor != nil {
		cond = cond.AND(table.Courses.HasHostedMajor.EQ(sqlite.Bool(*q.Filters.HasHostedMajor)))
	}

	total, err := s.countRows(ctx, table.Courses, table.Courses.ID, cond)
	if err != nil {
		return domain.Page{}, err
	}

	voteJoin := table.Votes.ContentID.EQ(table.Courses.ID).
		AND(table.Votes.ContentKind.EQ(sqlite.String(string(domain.KindCourse))))

	var order []sqlite.OrderByClause
	switch q.Sort {
	case domain.SortNewest:
		order = []sqlite.OrderByClause{table.Courses.CreatedAt.DESC()}
	case domain.SortName:
		order = []sqlite.OrderByClause{table.Courses.Name.ASC()}
	case domain.SortDifficulty:
		order = []sqlite.OrderByClause{table.Courses.DifficultyRating.DESC()}
	default:
		order = []sqlite.OrderByClause{sqlite.COUNT(table.Votes.ID).DESC(), table.Courses.ID.ASC()}
	}

	var rows []struct {
		model.Courses
		VoteCount int64 `alias:"vote_count"`
	}
	err = table.Courses.
		SELECT(table.Courses.AllColumns, sqlite.COUNT(table.Votes.ID).AS("vote_count")).
		FROM(table.Courses.LEFT_JOIN(table.Votes, voteJoin)).
		WHERE(cond).
		GROUP_BY(table.Courses.ID).
		ORDER_BY(order...).
		LIMIT(int64(q.PerPage)).
		OFFSET(int64((q.Page - 1) * q.PerPage)).
		QueryContext(ctx, s.db, &rows)
	if err != nil {
		return domain.Page{}, err
	}

	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		course, err := convertCourseToDomain(row.Courses)
		if err != nil {
			return domain.Page{}, err
		}
		course.VoteCount = int(row.VoteCount)
		items = append(items, course)
	}
	return buildPage(items, q, total), nil
}

func (s *Storage) ListPending(ctx context.Context, kind domain.Kind) ([]domain.Item, error) {
	switch kind {
	case domain.KindClub:
		var rows []model.Clubs
		err := table.Clubs.
			SELECT(table.Clubs.AllColumns).
			FROM(table.Clubs).
			WHERE(table.Clubs.Approved.IS_FALSE()).
			ORDER_BY(table.Clubs.CreatedAt.ASC()).
			QueryContext(ctx, s.db, &rows)
		if err != nil {
			return nil, err
		}
		items := make([]domain.Item, 0, len(rows))
		for _, row := range rows {
			club, err := convertClubToDomain(row)
			if err != nil {
				return nil, err
			}
			items = append(items, club)
		}
		return items, nil
	case domain.KindPlayer:
		var rows []model.Players
		err := table.Players.
			SELECT(table.Players.AllColumns).
			FROM(table.Players).
			WHERE(table.Players.Approved.IS_FALSE()).
			ORDER_BY(table.Players.CreatedAt.ASC()).
			QueryContext(ctx, s.db, &rows)
		if err != nil {
			return nil, err
		}
		items := make([]domain.Item, 0, len(rows))
		for _, row := range rows {
			player, err := convertPlayerToDomain(row)
			if err != nil {
				return nil, err
			}
			items = append(items, player)
		}
		return items, nil
	case domain.KindCourse:
		var rows []model.Courses
		err := table.Courses.
			SELECT(table.Courses.AllColumns).
			FROM(table.Courses).
			WHERE(table.Courses.Approved.IS_FALSE()).
			ORDER_BY(table.Courses.CreatedAt.ASC()).
			QueryContext(ctx, s.db, &rows)
		if err != nil {
			return nil, err
		}
		items := make([]domain.Item, 0, len(rows))
		for _, row := range rows {
			course, err := convertCourseToDomain(row)
			if err != nil {
				return nil, err
			}
			items = append(items, course)
		}
		return items, nil
	}
	return nil, errors.New("unknown content kind")
}

func (s *Storage) FilterOptions(ctx context.Context, kind domain.Kind) (domain.FilterOptions, error) {
	var opts domain.FilterOptions
	switch kind {
	case domain.KindClub:
		var rows []model.Clubs
		err := table.Clubs.
			SELECT(table.Clubs.ID, table.Clubs.Brand, table.Clubs.ClubType).
			FROM(table.Clubs).
			WHERE(table.Clubs.Approved.IS_TRUE()).
			QueryContext(ctx, s.db, &rows)
		if err != nil {
			return domain.FilterOptions{}, err
		}
		opts.Brands = distinct(rows, func(r model.Clubs) string { return r.Brand })
		opts.ClubTypes = distinct(rows, func(r model.Clubs) string { return r.ClubType })
	case domain.KindPlayer:
		var rows []model.Players
		err := table.Players.
			SELECT(table.Players.ID, table.Players.Country).
			FROM(table.Players).
			WHERE(table.Players.Approved.IS_TRUE()).
			QueryContext(ctx, s.db, &rows)
		if err != nil {
			return domain.FilterOptions{}, err
		}
		opts.Countries = distinct(rows, func(r model.Players) string { return r.Country })
	}
	return opts, nil
}

func (s *Storage) countRows(ctx context.Context, t sqlite.ReadableTable, id sqlite.ColumnString, cond sqlite.BoolExpression) (int, error) {
	var dest struct {
		Total int64 `alias:"total"`
	}
	err := sqlite.
		SELECT(sqlite.COUNT(id).AS("total")).
		FROM(t).
		WHERE(cond).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		return 0, err
	}
	return int(dest.Total), nil
}

func buildPage(items []domain.Item, q domain.ListQuery, total int) domain.Page {
	totalPages := total / q.PerPage
	if total%q.PerPage != 0 {
		totalPages++
	}
	return domain.Page{
		Items:      items,
		Number:     q.Page,
		PerPage:    q.PerPage,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

func distinct[T any](rows []T, f func(T) string) []string {
	seen := make(map[string]struct{}, len(rows))
	var out []string
	for _, row := range rows {
		v := f(row)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
