package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/parsgolf/server/gen/model"
	"github.com/parsgolf/server/gen/table"
	"github.com/parsgolf/server/internal/config"
	"github.com/parsgolf/server/internal/domain"
	sqlite3migrate "github.com/parsgolf/server/internal/migrate"
	"github.com/parsgolf/server/internal/storage"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ storage.ContentStorage = (*Storage)(nil)
var _ storage.VoteStorage = (*Storage)(nil)

func New(l *logrus.Logger, cfg config.Content) (*Storage, error) {
	log := l.WithField("from", "content-storage")
	db, err := sql.Open("sqlite3", buildSource(cfg.SqliteFile))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	err = sqlite3migrate.UpContentDB(db)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}
	log.Info("content storage connected")
	return &Storage{
		db:  db,
		log: log,
	}, nil
}

func buildSource(fileName string) string {
	return "file:" + fileName + "?cache=shared&_foreign_keys=on"
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	now := time.Now()
	switch v := item.(type) {
	case domain.Club:
		v.CreatedAt = now
		v.UpdatedAt = now
		var dest model.Clubs
		err := table.Clubs.
			INSERT(table.Clubs.AllColumns).
			MODEL(convertClubFromDomain(v)).
			RETURNING(table.Clubs.AllColumns).
			QueryContext(ctx, s.db, &dest)
		if err != nil {
			return nil, err
		}
		return convertClubToDomain(dest)
	case domain.Player:
		v.CreatedAt = now
		v.UpdatedAt = now
		var dest model.Players
		err := table.Players.
			INSERT(table.Players.AllColumns).
			MODEL(convertPlayerFromDomain(v)).
			RETURNING(table.Players.AllColumns).
			QueryContext(ctx, s.db, &dest)
		if err != nil {
			return nil, err
		}
		return convertPlayerToDomain(dest)
	case domain.Course:
		v.CreatedAt = now
		v.UpdatedAt = now
		var dest model.Courses
		err := table.Courses.
			INSERT(table.Courses.AllColumns).
			MODEL(convertCourseFromDomain(v)).
			RETURNING(table.Courses.AllColumns).
			QueryContext(ctx, s.db, &dest)
		if err != nil {
			return nil, err
		}
		return convertCourseToDomain(dest)
	}
	return nil, errors.New("unknown content kind")
}

func (s *Storage) Get(ctx context.Context, kind domain.Kind, id uuid.UUID) (domain.Item, error) {
	switch kind {
	case domain.KindClub:
		var dest model.Clubs
		err := table.Clubs.
			SELECT(table.Clubs.AllColumns).
			FROM(table.Clubs).
			WHERE(table.Clubs.ID.EQ(sqlite.UUID(id))).
			QueryContext(ctx, s.db, &dest)
		if err != nil {
			return nil, mapNoRows(err)
		}
		return convertClubToDomain(dest)
	case domain.KindPlayer:
		var dest model.Players
		err := table.Players.
			SELECT(table.Players.AllColumns).
			FROM(table.Players).
			WHERE(table.Players.ID.EQ(sqlite.UUID(id))).
			QueryContext(ctx, s.db, &dest)
		if err != nil {
			return nil, mapNoRows(err)
		}
		return convertPlayerToDomain(dest)
	case domain.KindCourse:
		var dest model.Courses
		err := table.Courses.
			SELECT(table.Courses.AllColumns).
			FROM(table.Courses).
			WHERE(table.Courses.ID.EQ(sqlite.UUID(id))).
			QueryContext(ctx, s.db, &dest)
		if err != nil {
			return nil, mapNoRows(err)
		}
		return convertCourseToDomain(dest)
	}
	return nil, errors.New("unknown content kind")
}

// Update writes the kind-specific attributes only. Lifecycle columns
// (approved, submitter_id, verified, user_id, created_at) stay untouched.
func (s *Storage) Update(ctx context.Context, item domain.Item) (domain.Item, error) {
	now := time.Now()
	switch v := item.(type) {
	case domain.Club:
		v.UpdatedAt = now
		m := convertClubFromDomain(v)
		_, err := table.Clubs.
			UPDATE(
				table.Clubs.Name,
				table.Clubs.Brand,
				table.Clubs.ClubType,
				table.Clubs.Description,
				table.Clubs.ImageURL,
				table.Clubs.PurchaseLink,
				table.Clubs.Price,
				table.Clubs.ReleaseYear,
				table.Clubs.UpdatedAt,
			).
			MODEL(m).
			WHERE(table.Clubs.ID.EQ(sqlite.UUID(v.ID))).
			ExecContext(ctx, s.db)
		if err != nil {
			return nil, err
		}
	case domain.Player:
		v.UpdatedAt = now
		m := convertPlayerFromDomain(v)
		_, err := table.Players.
			UPDATE(
				table.Players.Name,
				table.Players.ProfileImage,
				table.Players.Bio,
				table.Players.Country,
				table.Players.WorldRanking,
				table.Players.ProSince,
				table.Players.MajorWins,
				table.Players.TourWins,
				table.Players.UpdatedAt,
			).
			MODEL(m).
			WHERE(table.Players.ID.EQ(sqlite.UUID(v.ID))).
			ExecContext(ctx, s.db)
		if err != nil {
			return nil, err
		}
	case domain.Course:
		v.UpdatedAt = now
		m := convertCourseFromDomain(v)
		_, err := table.Courses.
			UPDATE(
				table.Courses.Name,
				table.Courses.Location,
				table.Courses.Description,
				table.Courses.ImageURL,
				table.Courses.Website,
				table.Courses.Par,
				table.Courses.LengthYards,
				table.Courses.DifficultyRating,
				table.Courses.YearBuilt,
				table.Courses.Designer,
				table.Courses.IsPublic,
				table.Courses.HasHostedMajor,
				table.Courses.UpdatedAt,
			).
			MODEL(m).
			WHERE(table.Courses.ID.EQ(sqlite.UUID(v.ID))).
			ExecContext(ctx, s.db)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("unknown content kind")
	}
	return s.Get(ctx, item.ItemKind(), item.ItemID())
}

func (s *Storage) SetApproved(ctx context.Context, kind domain.Kind, id uuid.UUID) (domain.Item, error) {
	now := sqlite.RawTimestamp("#ts", map[string]interface{}{"#ts": time.Now()})
	var err error
	switch kind {
	case domain.KindClub:
		_, err = table.Clubs.
			UPDATE(table.Clubs.Approved, table.Clubs.UpdatedAt).
			SET(sqlite.Bool(true), now).
			WHERE(table.Clubs.ID.EQ(sqlite.UUID(id))).
			ExecContext(ctx, s.db)
	case domain.KindPlayer:
		_, err = table.Players.
			UPDATE(table.Players.Approved, table.Players.UpdatedAt).
			SET(sqlite.Bool(true), now).
			WHERE(table.Players.ID.EQ(sqlite.UUID(id))).
			ExecContext(ctx, s.db)
	case domain.KindCourse:
		_, err = table.Courses.
			UPDATE(table.Courses.Approved, table.Courses.UpdatedAt).
			SET(sqlite.Bool(true), now).
			WHERE(table.Courses.ID.EQ(sqlite.UUID(id))).
			ExecContext(ctx, s.db)
	default:
		return nil, errors.New("unknown content kind")
	}
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, kind, id)
}

func (s *Storage) LinkPlayerUser(ctx context.Context, playerID, userID uuid.UUID) (domain.Player, error) {
	_, err := table.Players.
		UPDATE(table.Players.UserID, table.Players.Verified, table.Players.UpdatedAt).
		SET(sqlite.UUID(userID), sqlite.Bool(true), sqlite.RawTimestamp("#ts", map[string]interface{}{"#ts": time.Now()})).
		WHERE(table.Players.ID.EQ(sqlite.UUID(playerID))).
		ExecContext(ctx, s.db)
	if err != nil {
		return domain.Player{}, err
	}
	item, err := s.Get(ctx, domain.KindPlayer, playerID)
	if err != nil {
		return domain.Player{}, err
	}
	player, ok := item.(domain.Player)
	if !ok {
		return domain.Player{}, errors.New("not a player record")
	}
	return player, nil
}

// Toggle removes the user's vote for the item when one exists, otherwise
// inserts it, all in one transaction. A unique-index violation on insert
// means a concurrent toggle won the race; the duplicate cast collapses into
// a removal instead of surfacing as an error.
func (s *Storage) Toggle(ctx context.Context, vote domain.Vote) (domain.VoteResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	tripleMatch := table.Votes.UserID.EQ(sqlite.UUID(vote.UserID)).
		AND(table.Votes.ContentID.EQ(sqlite.UUID(vote.ContentID))).
		AND(table.Votes.ContentKind.EQ(sqlite.String(string(vote.Kind))))

	res, err := table.Votes.
		DELETE().
		WHERE(tripleMatch).
		ExecContext(ctx, tx)
	if err != nil {
		return 0, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		return domain.VoteRemoved, tx.Commit()
	}

	vote.CreatedAt = time.Now()
	_, err = table.Votes.
		INSERT(table.Votes.AllColumns).
		MODEL(convertVoteFromDomain(vote)).
		ExecContext(ctx, tx)
	if err != nil {
		if isUniqueViolation(err) {
			_, delErr := table.Votes.DELETE().WHERE(tripleMatch).ExecContext(ctx, tx)
			if delErr != nil {
				return 0, delErr
			}
			return domain.VoteRemoved, tx.Commit()
		}
		return 0, err
	}
	return domain.VoteCast, tx.Commit()
}

func (s *Storage) Count(ctx context.Context, kind domain.Kind, contentID uuid.UUID) (int, error) {
	var dest struct {
		Count int64 `alias:"vote_count"`
	}
	err := table.Votes.
		SELECT(sqlite.COUNT(table.Votes.ID).AS("vote_count")).
		FROM(table.Votes).
		WHERE(table.Votes.ContentID.EQ(sqlite.UUID(contentID)).
			AND(table.Votes.ContentKind.EQ(sqlite.String(string(kind))))).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		return 0, err
	}
	return int(dest.Count), nil
}

func (s *Storage) HasVoted(ctx context.Context, userID uuid.UUID, kind domain.Kind, contentID uuid.UUID) (bool, error) {
	var dest model.Votes
	err := table.Votes.
		SELECT(table.Votes.ID).
		FROM(table.Votes).
		WHERE(table.Votes.UserID.EQ(sqlite.UUID(userID)).
			AND(table.Votes.ContentID.EQ(sqlite.UUID(contentID))).
			AND(table.Votes.ContentKind.EQ(sqlite.String(string(kind))))).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func mapNoRows(err error) error {
	if errors.Is(err, qrm.ErrNoRows) {
		return sql.ErrNoRows
	}
	return err
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
