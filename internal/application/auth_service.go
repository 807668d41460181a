package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eventhub/event-management-backend/internal/domain/entity"
	repo "github.com/eventhub/event-management-backend/internal/domain/repository"
	"github.com/eventhub/event-management-backend/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already in use")
	ErrAdminRequired      = errors.New("admin access required")
)

// AuthService implements registration, credential verification, token
// issuance, and principal resolution.
type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Logger: logger}
}

type SignupInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// SigninResult carries the issued token together with the authenticated user.
type SigninResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// Signup registers a new user. Username and email uniqueness are pre-checked;
// the DB unique constraints remain the backstop against concurrent inserts.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	if taken, err := s.Users.ExistsByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}
	if taken, err := s.Users.ExistsByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  hash,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Roles:     []string{entity.RoleUser},
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("username", in.Username).Error("create user failed")
		}
		return nil, err
	}
	return u, nil
}

// Authenticate verifies the identifier/password pair. The identifier may be a
// username or an email; an "@" selects the email lookup. Failures collapse to
// ErrInvalidCredentials so the response never reveals which field was wrong.
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (*entity.User, error) {
	var u *entity.User
	var err error
	if strings.Contains(identifier, "@") {
		u, err = s.Users.GetByEmail(ctx, identifier)
	} else {
		u, err = s.Users.GetByUsername(ctx, identifier)
	}
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Signin authenticates and issues a token whose subject is the username.
func (s *AuthService) Signin(ctx context.Context, identifier, password string) (*SigninResult, error) {
	u, err := s.Authenticate(ctx, identifier, password)
	if err != nil {
		return nil, err
	}
	token, exp, err := s.JWT.Issue(u.Username)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("username", u.Username).Error("issue token failed")
		}
		return nil, err
	}
	return &SigninResult{User: u, Token: token, ExpiresAt: exp}, nil
}

// AdminSignin is Signin plus an admin role requirement. No token is issued
// for a non-admin account.
func (s *AuthService) AdminSignin(ctx context.Context, identifier, password string) (*SigninResult, error) {
	u, err := s.Authenticate(ctx, identifier, password)
	if err != nil {
		return nil, err
	}
	p := &entity.Principal{ID: u.ID, Username: u.Username, Email: u.Email, Roles: u.Roles}
	if !p.HasRole(entity.RoleAdmin) {
		return nil, ErrAdminRequired
	}
	token, exp, err := s.JWT.Issue(u.Username)
	if err != nil {
		return nil, err
	}
	return &SigninResult{User: u, Token: token, ExpiresAt: exp}, nil
}

// ResolvePrincipal loads the full identity for a validated token subject.
// The complete role set is preserved; guards depend on all granted roles.
func (s *AuthService) ResolvePrincipal(ctx context.Context, subject string) (*entity.Principal, error) {
	var u *entity.User
	var err error
	if strings.Contains(subject, "@") {
		u, err = s.Users.GetByEmail(ctx, subject)
	} else {
		u, err = s.Users.GetByUsername(ctx, subject)
	}
	if err != nil {
		return nil, err
	}
	return &entity.Principal{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Roles:    u.Roles,
	}, nil
}
