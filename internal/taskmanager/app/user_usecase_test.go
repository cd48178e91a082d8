package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/taskmanager/app"
	"taskmanager/internal/taskmanager/domain/entities"
	"taskmanager/internal/taskmanager/ports/api"
)

var errDatabase = errors.New("database connection error")

func testUser() *entities.User {
	return &entities.User{
		ID:             "0b7c1f0e-8d4a-4c0f-9a54-0f4c3c1a1111",
		IdentifyNumber: 1,
		Email:          "a@x.com",
		Name:           "Ann",
		CreatedAt:      time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreateUser(t *testing.T) {
	input := api.CreateUserInput{IdentifyNumber: 1, Email: "a@x.com", Name: "Ann"}

	tests := []struct {
		name        string
		input       api.CreateUserInput
		setupMocks  func(repo *mockUserRepository)
		wantErr     error
		wantErrText string
	}{
		{
			name:  "success",
			input: input,
			setupMocks: func(repo *mockUserRepository) {
				repo.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, entities.ErrUserNotFound).Once()
				repo.On("FindByIdentifyNumber", mock.Anything, int64(1)).Return(nil, entities.ErrUserNotFound).Once()
				repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
					return u.ID == "" && u.IdentifyNumber == 1 && u.Email == "a@x.com" && u.Name == "Ann"
				})).Return(testUser(), nil).Once()
			},
		},
		{
			name:  "email already taken",
			input: input,
			setupMocks: func(repo *mockUserRepository) {
				other := testUser()
				other.IdentifyNumber = 99
				repo.On("FindByEmail", mock.Anything, "a@x.com").Return(other, nil).Once()
			},
			wantErr:     entities.ErrEmailAlreadyExists,
			wantErrText: "checking email uniqueness",
		},
		{
			name:  "identify number already taken",
			input: input,
			setupMocks: func(repo *mockUserRepository) {
				repo.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, entities.ErrUserNotFound).Once()
				repo.On("FindByIdentifyNumber", mock.Anything, int64(1)).Return(testUser(), nil).Once()
			},
			wantErr:     entities.ErrIdentifyNumberAlreadyExists,
			wantErrText: "checking identify number uniqueness",
		},
		{
			name:  "email lookup fails",
			input: input,
			setupMocks: func(repo *mockUserRepository) {
				repo.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, errDatabase).Once()
			},
			wantErr: errDatabase,
		},
		{
			name:  "storage reports conflict after checks passed",
			input: input,
			setupMocks: func(repo *mockUserRepository) {
				repo.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, entities.ErrUserNotFound).Once()
				repo.On("FindByIdentifyNumber", mock.Anything, int64(1)).Return(nil, entities.ErrUserNotFound).Once()
				repo.On("Create", mock.Anything, mock.Anything).Return(nil, entities.ErrEmailAlreadyExists).Once()
			},
			wantErr:     entities.ErrConflict,
			wantErrText: "creating user",
		},
		{
			name:       "name too short",
			input:      api.CreateUserInput{IdentifyNumber: 1, Email: "a@x.com", Name: "An"},
			setupMocks: func(*mockUserRepository) {},
			wantErr:    entities.ErrNameTooShort,
		},
		{
			name:       "name too long",
			input:      api.CreateUserInput{IdentifyNumber: 1, Email: "a@x.com", Name: strings.Repeat("n", 300)},
			setupMocks: func(*mockUserRepository) {},
			wantErr:    entities.ErrNameTooLong,
		},
		{
			name:       "invalid email",
			input:      api.CreateUserInput{IdentifyNumber: 1, Email: "nope", Name: "Ann"},
			setupMocks: func(*mockUserRepository) {},
			wantErr:    entities.ErrValidation,
		},
		{
			name:       "non-positive identify number",
			input:      api.CreateUserInput{IdentifyNumber: 0, Email: "a@x.com", Name: "Ann"},
			setupMocks: func(*mockUserRepository) {},
			wantErr:    entities.ErrInvalidIdentifyNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockUserRepository)
			tt.setupMocks(repo)
			useCase := app.NewUserUseCase(repo)

			user, err := useCase.CreateUser(context.Background(), tt.input)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantErrText != "" {
					assert.Contains(t, err.Error(), tt.wantErrText)
				}
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, testUser(), user)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestGetUserByID(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(repo *mockUserRepository)
		want       *entities.User
		wantErr    error
	}{
		{
			name: "found",
			setupMocks: func(repo *mockUserRepository) {
				repo.On("FindByIdentifyNumber", mock.Anything, int64(1)).Return(testUser(), nil).Once()
			},
			want: testUser(),
		},
		{
			name: "not found",
			setupMocks: func(repo *mockUserRepository) {
				repo.On("FindByIdentifyNumber", mock.Anything, int64(1)).Return(nil, entities.ErrUserNotFound).Once()
			},
			wantErr: entities.ErrNotFound,
		},
		{
			name: "repository error",
			setupMocks: func(repo *mockUserRepository) {
				repo.On("FindByIdentifyNumber", mock.Anything, int64(1)).Return(nil, errDatabase).Once()
			},
			wantErr: errDatabase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockUserRepository)
			tt.setupMocks(repo)

			user, err := app.NewUserUseCase(repo).GetUserByID(context.Background(), 1)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, user)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestGetAllUsers(t *testing.T) {
	t.Run("returns repository order", func(t *testing.T) {
		second := testUser()
		second.IdentifyNumber = 2
		second.Email = "b@x.com"
		users := []*entities.User{testUser(), second}

		repo := new(mockUserRepository)
		repo.On("FindAll", mock.Anything).Return(users, nil).Once()

		got, err := app.NewUserUseCase(repo).GetAllUsers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, users, got)
		repo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("FindAll", mock.Anything).Return(nil, errDatabase).Once()

		got, err := app.NewUserUseCase(repo).GetAllUsers(context.Background())
		assert.ErrorIs(t, err, errDatabase)
		assert.Nil(t, got)
	})
}

func TestUpdateUser(t *testing.T) {
	tests := []struct {
		name       string
		input      api.UpdateUserInput
		setupMocks func(repo *mockUserRepository)
		wantEmail  string
		wantName   string
		wantErr    error
	}{
		{
			name:  "name only keeps email",
			input: api.UpdateUserInput{Name: ptr("Annabel")},
			setupMocks: func(repo *mockUserRepository) {
				repo.On("FindByIdentifyNumber", mock.Anything, int64(1)).Return(testUser(), nil).Once()
				repo.On("Update", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
					return u.Email == "a@x.com" && u.Name == "Annabel"
				})).Return(func() *entities.User {
					u := testUser()
					u.Name = "Annabel"
					return u
				}(), nil).Once()
			},
			wantEmail: "a@x.com",
			wantName:  "Annabel",
		},
		{
			name:  "email only keeps name",
			input: api.UpdateUserInput{Email: ptr("new@x.com")},
			setupMocks: func(repo *mockUserRepository) {
				repo.On("FindByIdentifyNumber", mock.Anything, int64(1)).Return(testUser(), nil).Once()
				repo.On("FindByEmail", mock.Anything, "new@x.com").Return(nil, entities.ErrUserNotFound).Once()
				repo.On("Update", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
					return u.Email == "new@x.com" && u.Name == "Ann"
				})).Return(func() *entities.User {
					u := testUser()
					u.Email = "new@x.com"
					return u
				}(), nil).Once()
			},
			wantEmail: "new@x.com",
			wantName:  "Ann",
		},
		{
			name:  "unchanged email skips uniqueness check",
			input: api.UpdateUserInput{Email: ptr("a@x.com")},
			setupMocks: func(repo *mockUserRepository) {
				repo.On("FindByIdentifyNumber", mock.Anything, int64(1)).Return(testUser(), nil).Once()
				repo.On("Update", mock.Anything, mock.Anything).Return(testUser(), nil).Once()
			},
			wantEmail: "a@x.com",
			wantName:  "Ann",
		},
		{
			name:  "email taken by another user",
			input: api.UpdateUserInput{Email: ptr("taken@x.com")},
			setupMocks: func(repo *mockUserRepository) {
				other := testUser()
				other.IdentifyNumber = 2
				other.Email = "taken@x.com"
				repo.On("FindByIdentifyNumber", mock.Anything, int64(1)).Return(testUser(), nil).Once()
				repo.On("FindByEmail", mock.Anything, "taken@x.com").Return(other, nil).Once()
			},
			wantErr: entities.ErrEmailAlreadyExists,
		},
		{
			name:  "user not found",
			input: api.UpdateUserInput{Name: ptr("Annabel")},
			setupMocks: func(repo *mockUserRepository) {
				repo.On("FindByIdentifyNumber", mock.Anything, int64(1)).Return(nil, entities.ErrUserNotFound).Once()
			},
			wantErr: entities.ErrNotFound,
		},
		{
			name:       "invalid name",
			input:      api.UpdateUserInput{Name: ptr("A")},
			setupMocks: func(*mockUserRepository) {},
			wantErr:    entities.ErrValidation,
		},
		{
			name:  "update fails",
			input: api.UpdateUserInput{Name: ptr("Annabel")},
			setupMocks: func(repo *mockUserRepository) {
				repo.On("FindByIdentifyNumber", mock.Anything, int64(1)).Return(testUser(), nil).Once()
				repo.On("Update", mock.Anything, mock.Anything).Return(nil, errDatabase).Once()
			},
			wantErr: errDatabase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockUserRepository)
			tt.setupMocks(repo)

			user, err := app.NewUserUseCase(repo).UpdateUser(context.Background(), 1, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantEmail, user.Email)
				assert.Equal(t, tt.wantName, user.Name)
				assert.Equal(t, int64(1), user.IdentifyNumber)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestDeleteUser(t *testing.T) {
	t.Run("deletes existing user", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("FindByIdentifyNumber", mock.Anything, int64(1)).Return(testUser(), nil).Once()
		repo.On("Delete", mock.Anything, int64(1)).Return(nil).Once()

		require.NoError(t, app.NewUserUseCase(repo).DeleteUser(context.Background(), 1))
		repo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("FindByIdentifyNumber", mock.Anything, int64(1)).Return(nil, entities.ErrUserNotFound).Once()

		err := app.NewUserUseCase(repo).DeleteUser(context.Background(), 1)
		assert.ErrorIs(t, err, entities.ErrNotFound)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("delete fails", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("FindByIdentifyNumber", mock.Anything, int64(1)).Return(testUser(), nil).Once()
		repo.On("Delete", mock.Anything, int64(1)).Return(errDatabase).Once()

		err := app.NewUserUseCase(repo).DeleteUser(context.Background(), 1)
		assert.ErrorIs(t, err, errDatabase)
		assert.Contains(t, err.Error(), "deleting user")
	})
}

func TestUserScenarios(t *testing.T) {
	ctx := context.Background()

	t.Run("created user can be read back", func(t *testing.T) {
		store := newMemoryStore()
		users := app.NewUserUseCase(memoryUserRepo{store})

		created, err := users.CreateUser(ctx, api.CreateUserInput{IdentifyNumber: 1, Email: "a@x.com", Name: "Ann"})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		got, err := users.GetUserByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", got.Email)
		assert.Equal(t, "Ann", got.Name)
		assert.Equal(t, int64(1), got.IdentifyNumber)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		store := newMemoryStore()
		users := app.NewUserUseCase(memoryUserRepo{store})

		_, err := users.CreateUser(ctx, api.CreateUserInput{IdentifyNumber: 1, Email: "dup@x.com", Name: "Ann"})
		require.NoError(t, err)

		_, err = users.CreateUser(ctx, api.CreateUserInput{IdentifyNumber: 2, Email: "dup@x.com", Name: "Bob"})
		assert.ErrorIs(t, err, entities.ErrConflict)
	})

	t.Run("unknown identifiers are not found", func(t *testing.T) {
		users := app.NewUserUseCase(memoryUserRepo{newMemoryStore()})

		_, err := users.GetUserByID(ctx, 404)
		assert.ErrorIs(t, err, entities.ErrNotFound)

		_, err = users.UpdateUser(ctx, 404, api.UpdateUserInput{Name: ptr("Nobody")})
		assert.ErrorIs(t, err, entities.ErrNotFound)

		assert.ErrorIs(t, users.DeleteUser(ctx, 404), entities.ErrNotFound)
	})
}
