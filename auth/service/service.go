package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/parsgolf/server/auth/storage"
	"github.com/parsgolf/server/auth/users"
	"github.com/parsgolf/server/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Service struct {
	storage storage.AuthStorage
	cfg     config.Auth
	log     *logrus.Entry
}

var (
	ErrForbidden     = errors.New("access denied")
	ErrNotAuthorized = errors.New("unauthorized")
	ErrUserExists    = errors.New("username or email already taken")
	ErrBadCredential = errors.New("invalid email or password")
	ErrUserNotFound  = errors.New("user not found")
)

var usernameRegexp = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

const resetAudience = "password-reset"

// New creates the auth service and bootstraps the root admin account when
// the user table is still empty of it.
func New(ctx context.Context, l *logrus.Logger, cfg config.Auth, storage storage.AuthStorage) (*Service, error) {
	s := Service{
		cfg:     cfg,
		storage: storage,
		log:     l.WithField("from", "auth-service"),
	}
	_, err := s.storage.GetUserSecret(ctx, users.User{Name: "root"})
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		salt, err := randomSalt()
		if err != nil {
			return nil, err
		}
		secret := generateSecret(cfg.RootPassword, cfg.PasswordPepper, salt)
		err = s.storage.CreateUser(ctx, users.User{
			ID:           uuid.New(),
			Name:         "root",
			Email:        cfg.RootEmail,
			Role:         users.RoleAdmin,
			RegisteredAt: time.Now(),
		}, secret)
		if err != nil {
			return nil, err
		}
		s.log.Info("root account created")
	}
	return &s, nil
}

func (s *Service) Login(ctx context.Context, email string, password string) (users.User, error) {
	userSecret, err := s.storage.GetUserSecret(ctx, users.User{Email: email})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, ErrBadCredential
		}
		return users.User{}, err
	}
	secret := generateSecret(password, s.cfg.PasswordPepper, userSecret.Salt)
	user, err := s.storage.SignIn(ctx, email, secret.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, ErrBadCredential
		}
		return users.User{}, err
	}
	if err := s.storage.TouchLastLogin(ctx, user.ID); err != nil {
		return users.User{}, err
	}
	return user, nil
}

func (s *Service) SignUp(ctx context.Context, name, email, password string) error {
	if !usernameRegexp.MatchString(name) {
		return errors.New("username can only contain letters, numbers, and underscores")
	}
	if _, err := s.storage.GetUserByName(ctx, name); err == nil {
		return ErrUserExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if _, err := s.storage.GetUserByEmail(ctx, email); err == nil {
		return ErrUserExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	salt, err := randomSalt()
	if err != nil {
		return err
	}
	secret := generateSecret(password, s.cfg.PasswordPepper, salt)
	return s.storage.CreateUser(ctx, users.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		Role:         users.RoleUser,
		RegisteredAt: time.Now(),
	}, secret)
}

// OAuthLogin finds the account bound to an external identity, or by email,
// or creates a fresh one with a unique username derived from the provider's
// display name.
func (s *Service) OAuthLogin(ctx context.Context, provider, oauthID, email, name string) (users.User, error) {
	if oauthID == "" {
		return users.User{}, ErrNotAuthorized
	}
	user, err := s.storage.GetUserByOAuth(ctx, provider, oauthID)
	if err == nil {
		return user, s.storage.TouchLastLogin(ctx, user.ID)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return users.User{}, err
	}
	if email != "" {
		user, err = s.storage.GetUserByEmail(ctx, email)
		if err == nil {
			return user, s.storage.TouchLastLogin(ctx, user.ID)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return users.User{}, err
		}
	}

	username, err := s.uniqueUsername(ctx, name)
	if err != nil {
		return users.User{}, err
	}
	user = users.User{
		ID:            uuid.New(),
		Name:          username,
		Email:         email,
		Role:          users.RoleUser,
		OAuthProvider: provider,
		OAuthID:       oauthID,
		RegisteredAt:  time.Now(),
	}
	salt, err := randomSalt()
	if err != nil {
		return users.User{}, err
	}
	// External-identity accounts get a random unusable password.
	random := uuid.NewString()
	err = s.storage.CreateUser(ctx, user, generateSecret(random, s.cfg.PasswordPepper, salt))
	if err != nil {
		return users.User{}, err
	}
	s.log.WithFields(logrus.Fields{"provider": provider, "user": user.ID}).Info("oauth account created")
	return user, nil
}

func (s *Service) uniqueUsername(ctx context.Context, name string) (string, error) {
	base := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
	base = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			return r
		}
		return -1
	}, base)
	if base == "" {
		base = "golfer"
	}
	candidate := base
	for counter := 1; ; counter++ {
		_, err := s.storage.GetUserByName(ctx, candidate)
		if errors.Is(err, sql.ErrNoRows) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s%d", base, counter)
	}
}

func (s *Service) GenerateJWTCookie(userID uuid.UUID, host string) (*fiber.Cookie, error) {
	expiresIn, err := time.ParseDuration(s.cfg.Expiration)
	if err != nil {
		return nil, err
	}
	expirationTime := time.Now().Add(expiresIn)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		ExpiresAt: expirationTime.Unix(),
		IssuedAt:  time.Now().Unix(),
		Subject:   userID.String(),
	})
	tokenString, err := token.SignedString([]byte(s.cfg.Token))
	if err != nil {
		return nil, err
	}
	return &fiber.Cookie{
		Name:     "token",
		Value:    tokenString,
		Path:     "/",
		Domain:   host,
		Expires:  expirationTime,
		HTTPOnly: true,
	}, nil
}

// Auth resolves the session cookie and checks the request against the
// configured access rules. The first rule matching path and method decides.
func (s *Service) Auth(ctx context.Context, cookie string, method string, url string) (users.User, error) {
	user, err := s.getUserFromToken(ctx, cookie)
	if err != nil {
		return users.User{}, ErrNotAuthorized
	}

	for _, rule := range s.cfg.Rules {
		r, err := regexp.Compile(rule.Path)
		if err != nil {
			return users.User{}, err
		}
		if !r.MatchString(url) {
			continue
		}
		for _, ruleMethod := range rule.Method {
			if ruleMethod != "*" && ruleMethod != method {
				continue
			}
			for _, role := range rule.Allow {
				if role == "*" {
					return user, nil
				}
				if !user.IsZero() && users.Role(role) == user.Role {
					return user, nil
				}
			}
			if user.IsZero() {
				return users.User{}, ErrNotAuthorized
			}
			return users.User{}, ErrForbidden
		}
	}
	return users.User{}, ErrForbidden
}

func (s *Service) getUserFromToken(ctx context.Context, cookie string) (users.User, error) {
	if cookie == "" {
		return users.User{}, nil
	}
	claims, err := s.parseToken(cookie)
	if err != nil {
		return users.User{}, err
	}
	if claims.Audience == resetAudience {
		return users.User{}, errors.New("not a session token")
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return users.User{}, err
	}
	return s.storage.GetUser(ctx, id)
}

func (s *Service) parseToken(tokenString string) (*jwt.StandardClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.StandardClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Token), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*jwt.StandardClaims)
	if !ok || !token.Valid {
		return nil, errors.New("bad token")
	}
	return claims, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (users.User, error) {
	user, err := s.storage.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, ErrUserNotFound
		}
		return users.User{}, err
	}
	return user, nil
}

func (s *Service) GetUserByEmail(ctx context.Context, email string) (users.User, error) {
	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, ErrUserNotFound
		}
		return users.User{}, err
	}
	return user, nil
}

func (s *Service) GetUserByName(ctx context.Context, name string) (users.User, error) {
	user, err := s.storage.GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, ErrUserNotFound
		}
		return users.User{}, err
	}
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, bio, profileImage string) (users.User, error) {
	return s.storage.UpdateProfile(ctx, id, bio, profileImage)
}

func (s *Service) ListUsers(ctx context.Context, actor users.User) ([]users.User, error) {
	if actor.Role != users.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.storage.ListUsers(ctx)
}

// SetRole assigns a role to a user. Admin only.
func (s *Service) SetRole(ctx context.Context, actor users.User, targetID uuid.UUID, role users.Role) (users.User, error) {
	if actor.Role != users.RoleAdmin {
		return users.User{}, ErrForbidden
	}
	if !role.Valid() {
		return users.User{}, fmt.Errorf("unknown role %q", role)
	}
	return s.storage.SetRole(ctx, targetID, role)
}

// PromoteToPlayer raises the user's role to Player unless the account is
// already a Player or a moderator.
func (s *Service) PromoteToPlayer(ctx context.Context, userID uuid.UUID) error {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	if user.Role != users.RoleUser {
		return nil
	}
	_, err = s.storage.SetRole(ctx, userID, users.RolePlayer)
	return err
}

// GeneratePasswordResetToken issues a short-lived token mailed to the user.
func (s *Service) GeneratePasswordResetToken(user users.User) (string, error) {
	ttl, err := time.ParseDuration(s.cfg.ResetTokenTTL)
	if err != nil {
		ttl = 10 * time.Minute
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Audience:  resetAudience,
		ExpiresAt: time.Now().Add(ttl).Unix(),
		IssuedAt:  time.Now().Unix(),
		Subject:   user.ID.String(),
	})
	return token.SignedString([]byte(s.cfg.Token))
}

// ResetPassword replaces the password of the account named by a valid reset
// token.
func (s *Service) ResetPassword(ctx context.Context, tokenString, password string) error {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return ErrNotAuthorized
	}
	if claims.Audience != resetAudience {
		return ErrNotAuthorized
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ErrNotAuthorized
	}
	salt, err := randomSalt()
	if err != nil {
		return err
	}
	return s.storage.UpdateSecret(ctx, id, generateSecret(password, s.cfg.PasswordPepper, salt))
}

func randomSalt() ([]byte, error) {
	salt := make([]byte, 8)
	_, err := rand.Read(salt)
	if err != nil {
		return nil, err
	}
	return salt, nil
}

func generateSecret(password string, pepper string, salt []byte) users.Secret {
	sha := sha256.New()
	sha.Write([]byte(pepper + password))
	sha.Write(salt)
	return users.Secret{
		PasswordHash: sha.Sum(nil),
		Salt:         salt,
	}
}
