package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"clientportal/internal/apperr"
	"clientportal/internal/model"
	"clientportal/internal/util"
)

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
}

type AuthService struct {
	users     UserStore
	jwtSecret string
	logger    *zap.Logger
}

func NewAuthService(users UserStore, jwtSecret string, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

type RegisterInput struct {
	Username    string   `json:"username" binding:"required"`
	Email       string   `json:"email" binding:"required"`
	Password    string   `json:"password" binding:"required"`
	FullName    string   `json:"fullName"`
	CompanyName string   `json:"companyName"`
	Roles       []string `json:"roles"`
}

// Register creates a new user. Username uniqueness is checked before email,
// so a request violating both reports the username error.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	taken, err := s.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Error: Username is already taken!")
	}

	taken, err = s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Error: Email is already in use!")
	}

	hash, err := util.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		CompanyName:  in.CompanyName,
		Roles:        model.ParseRoles(in.Roles),
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("id", u.ID),
		zap.String("username", u.Username),
	)
	return u, nil
}

type LoginResult struct {
	Token    string   `json:"token"`
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// Login verifies credentials and issues a token. The failure message never
// distinguishes a bad username from a bad password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if !util.CheckPassword(password, u.PasswordHash) {
		return nil, invalidCredentials()
	}

	token, err := util.GenerateJWT(u, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", zap.String("username", u.Username))

	return &LoginResult{
		Token:    token,
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Roles:    model.RoleNames(u.Roles),
	}, nil
}

func invalidCredentials() error {
	return fmt.Errorf("%w: Invalid username or password", apperr.ErrUnauthenticated)
}
