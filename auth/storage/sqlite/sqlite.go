package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"

	"github.com/parsgolf/server/auth/gen/model"
	"github.com/parsgolf/server/auth/gen/table"
	"github.com/parsgolf/server/auth/storage"
	"github.com/parsgolf/server/auth/users"
	"github.com/parsgolf/server/internal/config"
	sqlite3migrate "github.com/parsgolf/server/internal/migrate"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ storage.AuthStorage = (*Storage)(nil)

func New(l *logrus.Logger, cfg config.Auth) (*Storage, error) {
	log := l.WithField("from", "auth-storage")
	db, err := sql.Open("sqlite3", "file:"+cfg.SqliteFile+"?cache=shared")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	err = sqlite3migrate.UpAuthDB(db)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}
	log.Info("auth storage connected")
	return &Storage{
		db:  db,
		log: log,
	}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

var userColumns = table.Users.AllColumns.Except(
	table.Users.PasswordHash,
	table.Users.PasswordSalt,
)

func (s *Storage) CreateUser(ctx context.Context, user users.User, secret users.Secret) error {
	dbUser := model.Users{
		ID:            user.ID.String(),
		Username:      user.Name,
		Email:         optional(user.Email),
		PasswordHash:  bytesToHex(secret.PasswordHash),
		PasswordSalt:  bytesToHex(secret.Salt),
		RoleID:        roleToID(user.Role),
		Bio:           user.Bio,
		ProfileImage:  user.ProfileImage,
		OauthProvider: optional(user.OAuthProvider),
		OauthID:       optional(user.OAuthID),
		CreatedAt:     time.Now(),
	}
	_, err := table.Users.INSERT(table.Users.AllColumns).MODEL(dbUser).ExecContext(ctx, s.db)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id uuid.UUID) (users.User, error) {
	return s.getUser(ctx, table.Users.ID.EQ(sqlite.UUID(id)))
}

func (s *Storage) GetUserByName(ctx context.Context, name string) (users.User, error) {
	return s.getUser(ctx, table.Users.Username.EQ(sqlite.String(name)))
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (users.User, error) {
	return s.getUser(ctx, table.Users.Email.EQ(sqlite.String(email)))
}

func (s *Storage) GetUserByOAuth(ctx context.Context, provider, oauthID string) (users.User, error) {
	return s.getUser(ctx, table.Users.OauthProvider.EQ(sqlite.String(provider)).
		AND(table.Users.OauthID.EQ(sqlite.String(oauthID))))
}

func (s *Storage) getUser(ctx context.Context, where sqlite.BoolExpression) (users.User, error) {
	var dest model.Users
	err := table.Users.
		SELECT(userColumns).
		FROM(table.Users).
		WHERE(where.AND(table.Users.DeletedAt.IS_NULL())).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return users.User{}, sql.ErrNoRows
		}
		return users.User{}, err
	}
	return convertUserToDomain(dest)
}

func (s *Storage) GetUserSecret(ctx context.Context, user users.User) (users.Secret, error) {
	var where sqlite.BoolExpression
	switch {
	case user.ID != uuid.Nil:
		where = table.Users.ID.EQ(sqlite.UUID(user.ID))
	case user.Email != "":
		where = table.Users.Email.EQ(sqlite.String(user.Email))
	case user.Name != "":
		where = table.Users.Username.EQ(sqlite.String(user.Name))
	default:
		return users.Secret{}, errors.New("empty user")
	}

	var dbUser model.Users
	err := table.Users.
		SELECT(
			table.Users.PasswordHash,
			table.Users.PasswordSalt,
		).
		FROM(table.Users).
		WHERE(where).
		QueryContext(ctx, s.db, &dbUser)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return users.Secret{}, sql.ErrNoRows
		}
		return users.Secret{}, err
	}
	hash, err := hexToBytes(dbUser.PasswordHash)
	if err != nil {
		return users.Secret{}, err
	}
	salt, err := hexToBytes(dbUser.PasswordSalt)
	if err != nil {
		return users.Secret{}, err
	}
	return users.Secret{
		PasswordHash: hash,
		Salt:         salt,
	}, nil
}

func (s *Storage) SignIn(ctx context.Context, email string, passwordHash []byte) (users.User, error) {
	var dest model.Users
	err := table.Users.
		SELECT(userColumns).
		FROM(table.Users).
		WHERE(
			table.Users.Email.EQ(sqlite.String(email)).
				AND(table.Users.DeletedAt.IS_NULL()).
				AND(table.Users.PasswordHash.EQ(sqlite.String(bytesToHex(passwordHash)))),
		).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return users.User{}, sql.ErrNoRows
		}
		return users.User{}, err
	}
	return convertUserToDomain(dest)
}

func (s *Storage) UpdateSecret(ctx context.Context, id uuid.UUID, secret users.Secret) error {
	_, err := table.Users.
		UPDATE(table.Users.PasswordHash, table.Users.PasswordSalt).
		SET(sqlite.String(bytesToHex(secret.PasswordHash)), sqlite.String(bytesToHex(secret.Salt))).
		WHERE(table.Users.ID.EQ(sqlite.UUID(id))).
		ExecContext(ctx, s.db)
	return err
}

func (s *Storage) UpdateProfile(ctx context.Context, id uuid.UUID, bio, profileImage string) (users.User, error) {
	_, err := table.Users.
		UPDATE(table.Users.Bio, table.Users.ProfileImage).
		SET(sqlite.String(bio), sqlite.String(profileImage)).
		WHERE(table.Users.ID.EQ(sqlite.UUID(id))).
		ExecContext(ctx, s.db)
	if err != nil {
		return users.User{}, err
	}
	return s.GetUser(ctx, id)
}

func (s *Storage) SetRole(ctx context.Context, id uuid.UUID, role users.Role) (users.User, error) {
	_, err := table.Users.
		UPDATE(table.Users.RoleID).
		SET(sqlite.Int(int64(roleToID(role)))).
		WHERE(table.Users.ID.EQ(sqlite.UUID(id))).
		ExecContext(ctx, s.db)
	if err != nil {
		return users.User{}, err
	}
	return s.GetUser(ctx, id)
}

func (s *Storage) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := table.Users.
		UPDATE(table.Users.LastLogin).
		SET(sqlite.RawTimestamp("#ts", map[string]interface{}{"#ts": time.Now()})).
		WHERE(table.Users.ID.EQ(sqlite.UUID(id))).
		ExecContext(ctx, s.db)
	return err
}

func (s *Storage) ListUsers(ctx context.Context) ([]users.User, error) {
	var dest []model.Users
	err := table.Users.
		SELECT(userColumns).
		FROM(table.Users).
		WHERE(table.Users.DeletedAt.IS_NULL()).
		ORDER_BY(table.Users.CreatedAt.ASC()).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		return nil, err
	}
	converted := make([]users.User, 0, len(dest))
	for _, dbUser := range dest {
		u, err := convertUserToDomain(dbUser)
		if err != nil {
			return nil, err
		}
		converted = append(converted, u)
	}
	return converted, nil
}

func convertUserToDomain(dbUser model.Users) (users.User, error) {
	id, err := uuid.Parse(dbUser.ID)
	if err != nil {
		return users.User{}, err
	}
	u := users.User{
		ID:           id,
		Name:         dbUser.Username,
		Role:         roleFromID(dbUser.RoleID),
		Bio:          dbUser.Bio,
		ProfileImage: dbUser.ProfileImage,
		RegisteredAt: dbUser.CreatedAt,
	}
	if dbUser.Email != nil {
		u.Email = *dbUser.Email
	}
	if dbUser.OauthProvider != nil {
		u.OAuthProvider = *dbUser.OauthProvider
	}
	if dbUser.OauthID != nil {
		u.OAuthID = *dbUser.OauthID
	}
	if dbUser.LastLogin != nil {
		u.LastLogin = *dbUser.LastLogin
	}
	return u, nil
}

func roleToID(role users.Role) int32 {
	switch role {
	case users.RolePlayer:
		return 2
	case users.RoleEmployee:
		return 3
	case users.RoleAdmin:
		return 4
	default:
		return 1
	}
}

func roleFromID(id int32) users.Role {
	switch id {
	case 2:
		return users.RolePlayer
	case 3:
		return users.RoleEmployee
	case 4:
		return users.RoleAdmin
	default:
		return users.RoleUser
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func bytesToHex(b []byte) string {
	return hex.EncodeToString(b)
}

func hexToBytes(s string) ([]byte, error) {
	return hex.DecodeString(s)
}
