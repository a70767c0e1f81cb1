package service

import (
	"context"
	"strings"
	"time"

	"github.com/jotterhq/jotter/internal/model"
	appErr "github.com/jotterhq/jotter/internal/pkg/errors"
	"github.com/jotterhq/jotter/internal/pkg/jwt"
	"github.com/jotterhq/jotter/internal/pkg/password"
	"github.com/jotterhq/jotter/internal/pkg/timeutil"
	"github.com/jotterhq/jotter/internal/repo"
)

type AuthService struct {
	users  *repo.UserRepo
	secret []byte
	ttl    time.Duration
}

func NewAuthService(users *repo.UserRepo, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: secret, ttl: ttl}
}

func (s *AuthService) Register(ctx context.Context, email, name, plain string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, appErr.ErrInvalid
	}
	if len(plain) < 8 {
		return nil, appErr.ErrInvalid
	}
	hash, err := password.Hash(plain)
	if err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	user := &model.User{
		ID:           newID(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login returns a signed token. Wrong email and wrong password both map to
// ErrUnauthorized so the caller cannot probe which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, plain string) (string, *model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if appErr.IsNotFound(err) {
			return "", nil, appErr.ErrUnauthorized
		}
		return "", nil, err
	}
	if password.Compare(user.PasswordHash, plain) != nil {
		return "", nil, appErr.ErrUnauthorized
	}
	token, err := jwt.GenerateToken(user.ID, user.Email, s.secret, s.ttl)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}
