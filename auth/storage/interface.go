package storage

import (
	"context"

	"github.com/parsgolf/server/auth/users"

	"github.com/google/uuid"
)

type AuthStorage interface {
	CreateUser(ctx context.Context, user users.User, secret users.Secret) error
	GetUser(ctx context.Context, id uuid.UUID) (users.User, error)
	GetUserByName(ctx context.Context, name string) (users.User, error)
	GetUserByEmail(ctx context.Context, email string) (users.User, error)
	GetUserByOAuth(ctx context.Context, provider, oauthID string) (users.User, error)
	GetUserSecret(ctx context.Context, user users.User) (users.Secret, error)
	SignIn(ctx context.Context, email string, passwordHash []byte) (users.User, error)
	UpdateSecret(ctx context.Context, id uuid.UUID, secret users.Secret) error
	UpdateProfile(ctx context.Context, id uuid.UUID, bio, profileImage string) (users.User, error)
	SetRole(ctx context.Context, id uuid.UUID, role users.Role) (users.User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
	ListUsers(ctx context.Context) ([]users.User, error)
}
