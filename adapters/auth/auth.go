// Package auth resolves bearer credentials into core identities and owns
// the account endpoints' logic: registration, login and token issuance.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/parniiyan/To-do-list/core"
)

const TokenType = "bearer"

type Service struct {
	users  core.Users
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(users core.Users, secret string, ttl time.Duration) *Service {
	return &Service{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *Service) Register(ctx context.Context, email, password string) (core.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return core.User{}, core.ErrUserInvalidArgs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return core.User{}, fmt.Errorf("hash password: %w", err)
	}

	return s.users.CreateUser(ctx, email, string(hash))
}

// Login checks the credentials and returns a signed access token. Unknown
// emails and wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return "", core.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", core.ErrInvalidCredentials
	}

	return s.IssueToken(u.ID)
}

func (s *Service) IssueToken(userID int64) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Resolve turns a raw bearer token into an identity. An empty token is
// Anonymous; anything else must be a valid token for an existing user.
func (s *Service) Resolve(ctx context.Context, token string) (core.Identity, error) {
	if token == "" {
		return core.Anonymous(), nil
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return core.Identity{}, core.ErrUnauthenticated
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return core.Identity{}, core.ErrUnauthenticated
	}

	if _, err := s.users.GetUser(ctx, userID); err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return core.Identity{}, core.ErrUnauthenticated
		}
		return core.Identity{}, err
	}

	return core.UserIdentity(userID), nil
}

func (s *Service) Me(ctx context.Context, id core.Identity) (core.User, error) {
	uid, ok := id.UserID()
	if !ok {
		return core.User{}, core.ErrUnauthenticated
	}
	return s.users.GetUser(ctx, uid)
}
