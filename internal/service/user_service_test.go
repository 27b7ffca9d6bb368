package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/bilemo-api/internal/domain"
	"github.com/phrazzld/bilemo-api/internal/pagination"
	"github.com/phrazzld/bilemo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T) (UserService, *MockUserStore, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	users := &MockUserStore{}
	users.On("WithTx", mock.Anything).Maybe()

	svc, err := NewUserService(users, db, plainHasher{}, nil)
	require.NoError(t, err)
	return svc, users, dbMock
}

func TestNewUserServiceValidatesDependencies(t *testing.T) {
	_, err := NewUserService(nil, nil, nil, nil)
	assert.ErrorIs(t, err, ErrServiceMisconfigured)
}

func TestUserServiceCreate(t *testing.T) {
	input := NewUserInput{Username: "ana", Email: "Ana@Example.com", Password: "pw"}

	tests := []struct {
		name       string
		setup      func(users *MockUserStore, db sqlmock.Sqlmock)
		wantErr    error
		wantCreate bool
	}{
		{
			name: "success",
			setup: func(users *MockUserStore, db sqlmock.Sqlmock) {
				db.ExpectBegin()
				users.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, store.ErrUserNotFound)
				users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
					Run(func(args mock.Arguments) { args.Get(1).(*domain.User).ID = 77 }).
					Return(nil)
				db.ExpectCommit()
			},
			wantCreate: true,
		},
		{
			name: "email already registered",
			setup: func(users *MockUserStore, db sqlmock.Sqlmock) {
				db.ExpectBegin()
				users.On("GetByEmail", mock.Anything, "ana@example.com").
					Return(&domain.User{ID: 1, Email: "ana@example.com"}, nil)
				db.ExpectRollback()
			},
			wantErr: store.ErrEmailExists,
		},
		{
			name: "concurrent insert hits unique constraint",
			setup: func(users *MockUserStore, db sqlmock.Sqlmock) {
				db.ExpectBegin()
				users.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, store.ErrUserNotFound)
				users.On("Create", mock.Anything, mock.Anything).Return(store.ErrEmailExists)
				db.ExpectRollback()
			},
			wantErr:    store.ErrEmailExists,
			wantCreate: true,
		},
		{
			name: "lookup failure",
			setup: func(users *MockUserStore, db sqlmock.Sqlmock) {
				db.ExpectBegin()
				users.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, errors.New("boom"))
				db.ExpectRollback()
			},
			wantErr: errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, db := newTestUserService(t)
			tt.setup(users, db)

			user, err := svc.Create(context.Background(), 3, input)
			switch {
			case tt.wantErr == nil:
				require.NoError(t, err)
				assert.Equal(t, int64(77), user.ID)
				assert.Equal(t, int64(3), user.ClientID)
				assert.Equal(t, "ana@example.com", user.Email)
				assert.Equal(t, "hashed:pw", user.HashedPassword)
			case errors.Is(tt.wantErr, store.ErrEmailExists):
				assert.ErrorIs(t, err, store.ErrEmailExists)
			default:
				assert.EqualError(t, errors.Unwrap(err), tt.wantErr.Error())
			}

			if !tt.wantCreate {
				users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
			assert.NoError(t, db.ExpectationsWereMet())
		})
	}
}

func TestUserServiceCreateValidation(t *testing.T) {
	svc, users, db := newTestUserService(t)

	_, err := svc.Create(context.Background(), 3, NewUserInput{Username: "ana", Email: "not-an-email", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Create(context.Background(), 3, NewUserInput{Username: "ana", Email: "a@b.io"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	assert.NoError(t, db.ExpectationsWereMet())
}

func TestUserServiceListByClient(t *testing.T) {
	svc, users, _ := newTestUserService(t)
	ctx := context.Background()

	users.On("ListByClient", ctx, int64(2), 0, 10).Return([]*domain.User{}, 0, nil)

	page, err := svc.ListByClient(ctx, 2, pagination.NewParams(1, 10))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.TotalPages)
}

func TestUserServiceGetAndDelete(t *testing.T) {
	svc, users, _ := newTestUserService(t)
	ctx := context.Background()

	users.On("GetByID", ctx, int64(5)).Return(nil, store.ErrUserNotFound)
	users.On("Delete", ctx, int64(6)).Return(nil)

	_, err := svc.Get(ctx, 5)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.NoError(t, svc.Delete(ctx, 6))
}
