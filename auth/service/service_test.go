package service

import (
	"bytes"
	"context"
	"database/sql"
	"testing"

	"github.com/parsgolf/server/auth/users"
	"github.com/parsgolf/server/internal/config"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStorage struct {
	users   map[uuid.UUID]users.User
	secrets map[uuid.UUID]users.Secret
}

func newMemStorage() *memStorage {
	return &memStorage{
		users:   make(map[uuid.UUID]users.User),
		secrets: make(map[uuid.UUID]users.Secret),
	}
}

func (m *memStorage) CreateUser(_ context.Context, user users.User, secret users.Secret) error {
	m.users[user.ID] = user
	m.secrets[user.ID] = secret
	return nil
}

func (m *memStorage) GetUser(_ context.Context, id uuid.UUID) (users.User, error) {
	user, ok := m.users[id]
	if !ok {
		return users.User{}, sql.ErrNoRows
	}
	return user, nil
}

func (m *memStorage) GetUserByName(_ context.Context, name string) (users.User, error) {
	for _, user := range m.users {
		if user.Name == name {
			return user, nil
		}
	}
	return users.User{}, sql.ErrNoRows
}

func (m *memStorage) GetUserByEmail(_ context.Context, email string) (users.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return users.User{}, sql.ErrNoRows
}

func (m *memStorage) GetUserByOAuth(_ context.Context, provider, oauthID string) (users.User, error) {
	for _, user := range m.users {
		if user.OAuthProvider == provider && user.OAuthID == oauthID {
			return user, nil
		}
	}
	return users.User{}, sql.ErrNoRows
}

func (m *memStorage) GetUserSecret(_ context.Context, user users.User) (users.Secret, error) {
	switch {
	case user.ID != uuid.Nil:
		secret, ok := m.secrets[user.ID]
		if !ok {
			return users.Secret{}, sql.ErrNoRows
		}
		return secret, nil
	case user.Email != "":
		u, err := m.GetUserByEmail(context.Background(), user.Email)
		if err != nil {
			return users.Secret{}, err
		}
		return m.secrets[u.ID], nil
	case user.Name != "":
		u, err := m.GetUserByName(context.Background(), user.Name)
		if err != nil {
			return users.Secret{}, err
		}
		return m.secrets[u.ID], nil
	}
	return users.Secret{}, sql.ErrNoRows
}

func (m *memStorage) SignIn(_ context.Context, email string, passwordHash []byte) (users.User, error) {
	for id, user := range m.users {
		if user.Email == email && bytes.Equal(m.secrets[id].PasswordHash, passwordHash) {
			return user, nil
		}
	}
	return users.User{}, sql.ErrNoRows
}

func (m *memStorage) UpdateSecret(_ context.Context, id uuid.UUID, secret users.Secret) error {
	if _, ok := m.users[id]; !ok {
		return sql.ErrNoRows
	}
	m.secrets[id] = secret
	return nil
}

func (m *memStorage) UpdateProfile(_ context.Context, id uuid.UUID, bio, profileImage string) (users.User, error) {
	user, ok := m.users[id]
	if !ok {
		return users.User{}, sql.ErrNoRows
	}
	user.Bio = bio
	user.ProfileImage = profileImage
	m.users[id] = user
	return user, nil
}

func (m *memStorage) SetRole(_ context.Context, id uuid.UUID, role users.Role) (users.User, error) {
	user, ok := m.users[id]
	if !ok {
		return users.User{}, sql.ErrNoRows
	}
	user.Role = role
	m.users[id] = user
	return user, nil
}

func (m *memStorage) TouchLastLogin(_ context.Context, id uuid.UUID) error {
	return nil
}

func (m *memStorage) ListUsers(_ context.Context) ([]users.User, error) {
	list := make([]users.User, 0, len(m.users))
	for _, user := range m.users {
		list = append(list, user)
	}
	return list, nil
}

func testConfig() config.Auth {
	return config.Auth{
		Token:          "test-token",
		Expiration:     "1h",
		ResetTokenTTL:  "10m",
		RootEmail:      "root@example.com",
		RootPassword:   "root-password",
		PasswordPepper: "pepper",
		Rules: []config.Rule{
			{Name: "admin", Path: "^/admin", Method: []string{"*"}, Allow: []string{"Admin"}},
			{Name: "members", Path: "^/vote", Method: []string{"POST"}, Allow: []string{"User", "Player", "Employee", "Admin"}},
			{Name: "public", Path: ".*", Method: []string{"*"}, Allow: []string{"*"}},
		},
	}
}

func newTestService(t *testing.T) (*Service, *memStorage) {
	t.Helper()
	store := newMemStorage()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	svc, err := New(context.Background(), log, testConfig(), store)
	require.NoError(t, err)
	return svc, store
}

func TestRootBootstrap(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t)
	ctx := context.Background()

	root, err := store.GetUserByName(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, users.RoleAdmin, root.Role)
	assert.Equal(t, "root@example.com", root.Email)

	logged, err := svc.Login(ctx, "root@example.com", "root-password")
	require.NoError(t, err)
	assert.Equal(t, root.ID, logged.ID)
}

func TestSignUpAndLogin(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	err := svc.SignUp(ctx, "bob", "bob@example.com", "secret-password")
	require.NoError(t, err)

	user, err := svc.Login(ctx, "bob@example.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Name)
	assert.Equal(t, users.RoleUser, user.Role)

	_, err = svc.Login(ctx, "bob@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrBadCredential)

	_, err = svc.Login(ctx, "nobody@example.com", "secret-password")
	assert.ErrorIs(t, err, ErrBadCredential)
}

func TestSignUpDuplicates(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, "bob", "bob@example.com", "secret-password"))
	assert.ErrorIs(t, svc.SignUp(ctx, "bob", "other@example.com", "secret-password"), ErrUserExists)
	assert.ErrorIs(t, svc.SignUp(ctx, "robert", "bob@example.com", "secret-password"), ErrUserExists)
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, "bob", "bob@example.com", "secret-password"))
	user, err := svc.Login(ctx, "bob@example.com", "secret-password")
	require.NoError(t, err)

	cookie, err := svc.GenerateJWTCookie(user.ID, "localhost")
	require.NoError(t, err)

	got, err := svc.Auth(ctx, cookie.Value, "POST", "/vote/something")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAuthRules(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	// Anonymous passes wildcard rules but not member rules.
	_, err := svc.Auth(ctx, "", "GET", "/clubs")
	require.NoError(t, err)
	_, err = svc.Auth(ctx, "", "POST", "/vote/abc")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	require.NoError(t, svc.SignUp(ctx, "bob", "bob@example.com", "secret-password"))
	user, err := svc.Login(ctx, "bob@example.com", "secret-password")
	require.NoError(t, err)
	cookie, err := svc.GenerateJWTCookie(user.ID, "localhost")
	require.NoError(t, err)

	_, err = svc.Auth(ctx, cookie.Value, "POST", "/vote/abc")
	assert.NoError(t, err)
	_, err = svc.Auth(ctx, cookie.Value, "GET", "/admin/users")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Auth(ctx, "garbage-token", "GET", "/clubs")
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestOAuthLogin(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.OAuthLogin(ctx, "google", "g-123", "tiger@example.com", "Tiger Woods")
	require.NoError(t, err)
	assert.Equal(t, "tiger_woods", first.Name)
	assert.Equal(t, users.RoleUser, first.Role)

	// Same identity resolves to the same account.
	again, err := svc.OAuthLogin(ctx, "google", "g-123", "tiger@example.com", "Tiger Woods")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	// A name collision gets a numeric suffix.
	other, err := svc.OAuthLogin(ctx, "github", "gh-9", "other@example.com", "Tiger Woods")
	require.NoError(t, err)
	assert.Equal(t, "tiger_woods1", other.Name)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestOAuthLoginWithoutEmail(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	// Providers may withhold the email; accounts must not collide on it.
	first, err := svc.OAuthLogin(ctx, "github", "gh-1", "", "Ghost One")
	require.NoError(t, err)
	second, err := svc.OAuthLogin(ctx, "github", "gh-2", "", "Ghost Two")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	again, err := svc.OAuthLogin(ctx, "github", "gh-1", "", "Ghost One")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
}

func TestGetUserByName(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, "bob", "bob@example.com", "secret-password"))
	user, err := svc.GetUserByName(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Name)

	_, err = svc.GetUserByName(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestOAuthLoginLinksByEmail(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, "bob", "bob@example.com", "secret-password"))
	existing, err := svc.Login(ctx, "bob@example.com", "secret-password")
	require.NoError(t, err)

	linked, err := svc.OAuthLogin(ctx, "google", "g-55", "bob@example.com", "Bob Jones")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, linked.ID)
}

func TestPasswordReset(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, "bob", "bob@example.com", "old-password"))
	user, err := svc.GetUserByEmail(ctx, "bob@example.com")
	require.NoError(t, err)

	token, err := svc.GeneratePasswordResetToken(user)
	require.NoError(t, err)

	// A reset token is not a session token.
	_, err = svc.Auth(ctx, token, "POST", "/vote/abc")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	require.NoError(t, svc.ResetPassword(ctx, token, "new-password"))

	_, err = svc.Login(ctx, "bob@example.com", "old-password")
	assert.ErrorIs(t, err, ErrBadCredential)
	_, err = svc.Login(ctx, "bob@example.com", "new-password")
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.ResetPassword(ctx, "garbage", "whatever"), ErrNotAuthorized)
}

func TestPromoteToPlayer(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, "bob", "bob@example.com", "secret-password"))
	user, err := store.GetUserByName(ctx, "bob")
	require.NoError(t, err)

	require.NoError(t, svc.PromoteToPlayer(ctx, user.ID))
	promoted, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, users.RolePlayer, promoted.Role)

	// Moderators keep their role.
	root, err := store.GetUserByName(ctx, "root")
	require.NoError(t, err)
	require.NoError(t, svc.PromoteToPlayer(ctx, root.ID))
	rootAfter, err := store.GetUser(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, users.RoleAdmin, rootAfter.Role)

	assert.ErrorIs(t, svc.PromoteToPlayer(ctx, uuid.New()), ErrUserNotFound)
}

func TestSetRoleAdminOnly(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, "bob", "bob@example.com", "secret-password"))
	bob, err := store.GetUserByName(ctx, "bob")
	require.NoError(t, err)
	root, err := store.GetUserByName(ctx, "root")
	require.NoError(t, err)

	_, err = svc.SetRole(ctx, bob, bob.ID, users.RoleEmployee)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.SetRole(ctx, root, bob.ID, users.RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, users.RoleEmployee, updated.Role)

	_, err = svc.SetRole(ctx, root, bob.ID, users.Role("Wizard"))
	assert.Error(t, err)
}

func TestListUsersAdminOnly(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, "bob", "bob@example.com", "secret-password"))
	bob, err := store.GetUserByName(ctx, "bob")
	require.NoError(t, err)
	root, err := store.GetUserByName(ctx, "root")
	require.NoError(t, err)

	_, err = svc.ListUsers(ctx, bob)
	assert.ErrorIs(t, err, ErrForbidden)

	list, err := svc.ListUsers(ctx, root)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
