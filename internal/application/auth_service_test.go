package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eventhub/event-management-backend/internal/domain/entity"
	"github.com/eventhub/event-management-backend/pkg/helpers"
)

func newAuthService() (*AuthService, *stubUserRepo) {
	users := newStubUserRepo()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(users, jwt, nil), users
}

func TestSignupSigninRoundTrip(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	u, err := svc.Signup(ctx, SignupInput{
		Username:  "johndoe",
		Email:     "john@example.com",
		Password:  "password123",
		FirstName: "John",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	require.NotZero(t, u.ID)
	require.Equal(t, []string{entity.RoleUser}, u.Roles)
	require.NotEqual(t, "password123", u.Password, "password stored in plaintext")

	res, err := svc.Signin(ctx, "johndoe", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.Equal(t, u.ID, res.User.ID)

	subject, err := svc.JWT.Validate(res.Token)
	require.NoError(t, err)
	require.Equal(t, "johndoe", subject)
}

func TestSignupDuplicateUsername(t *testing.T) {
	svc, users := newAuthService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Username: "johndoe", Email: "john@example.com", Password: "pw123456"})
	require.NoError(t, err)

	before := len(users.users)
	_, err = svc.Signup(ctx, SignupInput{Username: "johndoe", Email: "other@example.com", Password: "pw123456"})
	require.ErrorIs(t, err, ErrUsernameTaken)
	require.Equal(t, before, len(users.users), "duplicate signup mutated the store")
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, users := newAuthService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Username: "johndoe", Email: "john@example.com", Password: "pw123456"})
	require.NoError(t, err)

	before := len(users.users)
	_, err = svc.Signup(ctx, SignupInput{Username: "janedoe", Email: "john@example.com", Password: "pw123456"})
	require.ErrorIs(t, err, ErrEmailTaken)
	require.Equal(t, before, len(users.users))
}

func TestSigninByUsernameAndEmailSamePrincipal(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Username: "johndoe", Email: "john@example.com", Password: "pw123456"})
	require.NoError(t, err)

	byName, err := svc.Signin(ctx, "johndoe", "pw123456")
	require.NoError(t, err)
	byMail, err := svc.Signin(ctx, "john@example.com", "pw123456")
	require.NoError(t, err)
	require.Equal(t, byName.User.ID, byMail.User.ID)
}

func TestSigninWrongPassword(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Username: "johndoe", Email: "john@example.com", Password: "pw123456"})
	require.NoError(t, err)

	_, err = svc.Signin(ctx, "johndoe", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Signin(ctx, "nosuchuser", "pw123456")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminSigninRejectsNonAdmin(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Username: "johndoe", Email: "john@example.com", Password: "pw123456"})
	require.NoError(t, err)

	_, err = svc.AdminSignin(ctx, "johndoe", "pw123456")
	require.ErrorIs(t, err, ErrAdminRequired)
}

func TestAdminSigninAcceptsDualRoleForms(t *testing.T) {
	svc, users := newAuthService()
	ctx := context.Background()

	for i, roles := range [][]string{
		{"ADMIN"},
		{"ROLE_ADMIN"},
		{"admin"},
		{entity.RoleUser, entity.RoleAdmin},
	} {
		hash, err := helpers.HashPassword("pw123456")
		require.NoError(t, err)
		u := &entity.User{
			Username: "admin" + string(rune('a'+i)),
			Email:    "admin" + string(rune('a'+i)) + "@example.com",
			Password: hash,
			Roles:    roles,
		}
		require.NoError(t, users.Create(ctx, u))

		res, err := svc.AdminSignin(ctx, u.Username, "pw123456")
		require.NoError(t, err, "roles %v", roles)
		require.NotEmpty(t, res.Token)
	}
}

func TestResolvePrincipalPreservesAllRoles(t *testing.T) {
	svc, users := newAuthService()
	ctx := context.Background()

	hash, err := helpers.HashPassword("pw123456")
	require.NoError(t, err)
	u := &entity.User{
		Username: "multi",
		Email:    "multi@example.com",
		Password: hash,
		Roles:    []string{entity.RoleUser, entity.RoleOrganizer, entity.RoleAdmin},
	}
	require.NoError(t, users.Create(ctx, u))

	p, err := svc.ResolvePrincipal(ctx, "multi")
	require.NoError(t, err)
	require.Equal(t, u.Roles, p.Roles)

	byMail, err := svc.ResolvePrincipal(ctx, "multi@example.com")
	require.NoError(t, err)
	require.Equal(t, p.ID, byMail.ID)
}

func TestResolvePrincipalUnknownSubject(t *testing.T) {
	svc, _ := newAuthService()
	_, err := svc.ResolvePrincipal(context.Background(), "ghost")
	require.Error(t, err)
}
