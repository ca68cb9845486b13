package service

import (
	"context"
	"testing"

	"blogicum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return &models.User{}, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
	}
}

func TestUserService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc := NewUserService(noopUserRepo())
	ctx := context.Background()

	tests := []struct {
		name  string
		input SignupInput
	}{
		{
			name:  "username too short",
			input: SignupInput{Username: "ab", Email: "a@example.com", Password: "Valid-Password-99"},
		},
		{
			name:  "username with invalid characters",
			input: SignupInput{Username: "has spaces", Email: "a@example.com", Password: "Valid-Password-99"},
		},
		{
			name:  "malformed email",
			input: SignupInput{Username: "validname", Email: "not-an-email", Password: "Valid-Password-99"},
		},
		{
			name:  "weak password",
			input: SignupInput{Username: "validname", Email: "a@example.com", Password: "short"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Register(ctx, tc.input)
			assertValidationError(t, err)
		})
	}
}

func TestUserService_Register_HashesPassword(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	var created *models.User
	repo.createFn = func(_ context.Context, user *models.User) error {
		user.ID = 1
		created = user
		return nil
	}

	svc := NewUserService(repo)
	user, err := svc.Register(context.Background(), SignupInput{
		Username:  "blogger",
		Email:     "Blogger@Example.COM",
		Password:  "Valid-Password-99",
		FirstName: "Blog",
		LastName:  "Ger",
	})
	require.NoError(t, err)

	assert.Equal(t, "blogger@example.com", user.Email, "email normalized to lowercase")
	require.NotNil(t, created)
	assert.NotEqual(t, "Valid-Password-99", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("Valid-Password-99")))
}

func TestUserService_Authenticate(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("Valid-Password-99"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := noopUserRepo()
	repo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		if email == "known@example.com" {
			return &models.User{ID: 1, Email: email, Password: string(hash)}, nil
		}
		return nil, nil
	}

	svc := NewUserService(repo)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "known@example.com", "Valid-Password-99")
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "known@example.com", "wrong")
		assertUnauthorizedError(t, err)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody@example.com", "Valid-Password-99")
		assertUnauthorizedError(t, err)
	})
}

// assertUnauthorizedError asserts that err is an AppError with code UNAUTHORIZED.
func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected AppError, got %T: %v", err, err)
	assert.Equal(t, models.ErrCodeUnauthorized, appErr.Code)
}

func TestUserService_UpdateProfile_Validation(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "blogger", Email: "blogger@example.com"}, nil
	}
	updated := false
	repo.updateFn = func(_ context.Context, _ *models.User) error {
		updated = true
		return nil
	}

	svc := NewUserService(repo)
	_, err := svc.UpdateProfile(context.Background(), 1, ProfileInput{Username: "x", Email: "blogger@example.com"})

	assertValidationError(t, err)
	assert.False(t, updated, "update must not reach the store")
}
