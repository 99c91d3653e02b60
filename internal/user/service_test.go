package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/homestay/homestay/internal/auth"
	"github.com/homestay/homestay/internal/user"
	"github.com/homestay/homestay/internal/validate"
)

func TestService_Register(t *testing.T) {
	type testCase struct {
		name      string
		params    user.RegisterParams
		setupMock func(repo *user.MockRepository)
		wantErr   error
		verify    func(t *testing.T, u *user.User)
	}

	tests := []testCase{
		{
			name:   "HashesPasswordAndDefaultsRole",
			params: user.RegisterParams{Username: " Nguyễn Văn A ", Email: " Alice@Example.com", Password: "secret"},
			setupMock: func(repo *user.MockRepository) {
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
					u.ID = uuid.New()
					return nil
				})
			},
			verify: func(t *testing.T, u *user.User) {
				assert.Equal(t, "Nguyễn Văn A", u.Username)
				assert.Equal(t, "alice@example.com", u.Email)
				assert.Equal(t, user.RoleUser, u.Role)
				assert.NotEqual(t, "secret", u.PasswordHash)
				require.NoError(t, auth.CheckPassword(u.PasswordHash, "secret"))
			},
		},
		{
			name:      "ShortUsername",
			params:    user.RegisterParams{Username: "ab", Email: "a@example.com", Password: "secret"},
			setupMock: func(_ *user.MockRepository) {},
			wantErr:   user.ErrInvalidInput,
		},
		{
			name:      "UsernameWithSymbols",
			params:    user.RegisterParams{Username: "bob!", Email: "a@example.com", Password: "secret"},
			setupMock: func(_ *user.MockRepository) {},
			wantErr:   user.ErrInvalidInput,
		},
		{
			name:      "ShortPassword",
			params:    user.RegisterParams{Username: "bobby", Email: "a@example.com", Password: "ab"},
			setupMock: func(_ *user.MockRepository) {},
			wantErr:   user.ErrInvalidInput,
		},
		{
			name:   "Duplicate",
			params: user.RegisterParams{Username: "bobby", Email: "a@example.com", Password: "secret"},
			setupMock: func(repo *user.MockRepository) {
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(user.ErrAlreadyExists)
			},
			wantErr: user.ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := user.NewMockRepository(ctrl)
			tt.setupMock(repo)

			u, err := user.NewService(repo).Register(context.Background(), tt.params)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			if tt.verify != nil {
				tt.verify(t, u)
			}
		})
	}
}

func TestService_Register_FieldErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := user.NewService(user.NewMockRepository(ctrl))

	_, err := svc.Register(context.Background(), user.RegisterParams{Username: "bobby", Email: "nope", Password: "secret"})

	var fieldErrs validate.Errors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "email", fieldErrs[0].Field)
}

func TestService_Login(t *testing.T) {
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)

	stored := &user.User{ID: uuid.New(), Email: "alice@example.com", PasswordHash: hash, Role: user.RoleUser}

	type testCase struct {
		name      string
		email     string
		password  string
		setupMock func(repo *user.MockRepository)
		wantErr   error
		wantFail  bool
	}

	tests := []testCase{
		{
			name:     "Success",
			email:    "ALICE@example.com",
			password: "secret",
			setupMock: func(repo *user.MockRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "alice@example.com").Return(stored, nil)
			},
		},
		{
			name:     "WrongPassword",
			email:    "alice@example.com",
			password: "wrong",
			setupMock: func(repo *user.MockRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "alice@example.com").Return(stored, nil)
			},
			wantErr: user.ErrInvalidCredentials,
		},
		{
			name:     "UnknownEmail",
			email:    "bob@example.com",
			password: "secret",
			setupMock: func(repo *user.MockRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "bob@example.com").Return(nil, user.ErrNotFound)
			},
			wantErr: user.ErrInvalidCredentials,
		},
		{
			name:      "MissingPassword",
			email:     "alice@example.com",
			setupMock: func(_ *user.MockRepository) {},
			wantErr:   user.ErrInvalidInput,
		},
		{
			name:     "RepositoryFailure",
			email:    "alice@example.com",
			password: "secret",
			setupMock: func(repo *user.MockRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantFail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := user.NewMockRepository(ctrl)
			tt.setupMock(repo)

			u, err := user.NewService(repo).Login(context.Background(), tt.email, tt.password)

			switch {
			case tt.wantFail:
				require.Error(t, err)
				assert.NotErrorIs(t, err, user.ErrInvalidCredentials)
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, stored.ID, u.ID)
			}
		})
	}
}

func TestService_AdminLogin(t *testing.T) {
	hash, err := auth.HashPassword("admin123")
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	repo := user.NewMockRepository(ctrl)
	repo.EXPECT().GetAdminByUsername(gomock.Any(), "admin").Return(&user.User{
		Username:     "admin",
		PasswordHash: hash,
		Role:         user.RoleAdmin,
	}, nil)
	repo.EXPECT().GetAdminByUsername(gomock.Any(), "guest").Return(nil, user.ErrNotFound)

	svc := user.NewService(repo)

	u, err := svc.AdminLogin(context.Background(), " admin ", "admin123")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, u.Role)

	_, err = svc.AdminLogin(context.Background(), "guest", "admin123")
	require.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestService_Update(t *testing.T) {
	id := uuid.New()

	ctrl := gomock.NewController(t)
	repo := user.NewMockRepository(ctrl)
	repo.EXPECT().GetUser(gomock.Any(), id).Return(&user.User{ID: id, Username: "alice", Email: "alice@example.com"}, nil)
	repo.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(nil)

	u, err := user.NewService(repo).Update(context.Background(), id, user.UpdateParams{
		Email:       new("Alice2@Example.com"),
		Address:     new(" 12 Main Street "),
		DateOfBirth: new("1990-04-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice2@example.com", u.Email)
	assert.Equal(t, "12 Main Street", u.Address)
	assert.Equal(t, "1990-04-01", u.DateOfBirth)
}

func TestService_Update_InvalidDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := user.NewService(user.NewMockRepository(ctrl))

	_, err := svc.Update(context.Background(), uuid.New(), user.UpdateParams{DateOfBirth: new("01/04/1990")})
	require.ErrorIs(t, err, user.ErrInvalidInput)
}

func TestService_ChangePassword(t *testing.T) {
	id := uuid.New()
	hash, err := auth.HashPassword("old-pass")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().GetUser(gomock.Any(), id).Return(&user.User{ID: id, PasswordHash: hash}, nil)
		repo.EXPECT().UpdatePassword(gomock.Any(), id, gomock.Any()).DoAndReturn(func(_ context.Context, _ uuid.UUID, h string) error {
			assert.NoError(t, auth.CheckPassword(h, "new-pass"))
			return nil
		})

		require.NoError(t, user.NewService(repo).ChangePassword(context.Background(), id, "old-pass", "new-pass"))
	})

	t.Run("WrongCurrent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().GetUser(gomock.Any(), id).Return(&user.User{ID: id, PasswordHash: hash}, nil)

		err := user.NewService(repo).ChangePassword(context.Background(), id, "nope", "new-pass")
		require.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("TooShort", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		err := user.NewService(user.NewMockRepository(ctrl)).ChangePassword(context.Background(), id, "old-pass", "x")
		require.ErrorIs(t, err, user.ErrInvalidInput)
	})
}

func TestService_EnsureAdmin(t *testing.T) {
	t.Run("Exists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().GetAdminByUsername(gomock.Any(), "admin").Return(&user.User{}, nil)

		created, err := user.NewService(repo).EnsureAdmin(context.Background(), "admin", "admin@example.com", "admin123")
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("Creates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().GetAdminByUsername(gomock.Any(), "admin").Return(nil, user.ErrNotFound)
		repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
			assert.Equal(t, user.RoleAdmin, u.Role)
			return nil
		})

		created, err := user.NewService(repo).EnsureAdmin(context.Background(), "admin", "admin@example.com", "admin123")
		require.NoError(t, err)
		assert.True(t, created)
	})
}
