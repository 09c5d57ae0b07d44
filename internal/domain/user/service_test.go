package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func newTestService(repo Repository) *Service {
	fixed := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	return NewService(repo, NewCredentialsValidator(), slog.Default(),
		WithCost(bcrypt.MinCost),
		WithClock(func() time.Time { return fixed }),
	)
}

func TestService_Register(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	req := RegisterRequest{Email: "a@x.com", Password: "secret1", Name: "Alice"}

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *User) bool {
		return u.Email == req.Email && u.Name == "Alice" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*User).ID = 1
	}).Return(nil)

	u, err := service.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	assert.Equal(t, time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), u.CreatedAt)
	assert.NotEqual(t, req.Password, u.PasswordHash)

	mockRepo.AssertExpectations(t)
}

func TestService_Register_Duplicate(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(ErrAlreadyExists)

	_, err := service.Register(context.Background(), RegisterRequest{Email: "a@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestService_Register_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{name: "missing email", req: RegisterRequest{Password: "secret1"}},
		{name: "missing password", req: RegisterRequest{Email: "a@x.com"}},
		{name: "malformed email", req: RegisterRequest{Email: "not-an-email", Password: "secret1"}},
		{name: "short password", req: RegisterRequest{Email: "a@x.com", Password: "123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			service := newTestService(mockRepo)

			_, err := service.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Register_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := service.Register(context.Background(), RegisterRequest{Email: "a@x.com", Password: "secret1"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NotErrorIs(t, err, ErrAlreadyExists)
}

func TestService_Authenticate_Success(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := User{ID: 7, Email: "a@x.com", PasswordHash: string(hash)}
	mockRepo.On("FindByEmail", mock.Anything, "a@x.com").Return(stored, nil)

	u, err := service.Authenticate(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, stored, u)

	mockRepo.AssertExpectations(t)
}

func TestService_Authenticate_Failures(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		setup    func(m *MockRepository)
		wantErr  error
	}{
		{
			name:     "unknown email",
			email:    "nobody@x.com",
			password: "secret1",
			setup: func(m *MockRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@x.com").Return(User{}, ErrNotFound)
			},
			wantErr: ErrInvalidAuth,
		},
		{
			name:     "wrong password",
			email:    "a@x.com",
			password: "wrong-one",
			setup: func(m *MockRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(User{ID: 1, PasswordHash: string(hash)}, nil)
			},
			wantErr: ErrInvalidAuth,
		},
		{
			name:     "corrupted hash",
			email:    "a@x.com",
			password: "secret1",
			setup: func(m *MockRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(User{ID: 1, PasswordHash: "invalidhash"}, nil)
			},
			wantErr: ErrInvalidAuth,
		},
		{
			name:     "missing password",
			email:    "a@x.com",
			password: "",
			setup:    func(m *MockRepository) {},
			wantErr:  ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			tt.setup(mockRepo)
			service := newTestService(mockRepo)

			_, err := service.Authenticate(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestService_Find(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("FindByID", mock.Anything, 1).Return(User{ID: 1, Email: "a@x.com"}, nil)
	mockRepo.On("FindByID", mock.Anything, 2).Return(User{}, ErrNotFound)

	u, err := service.Find(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)

	_, err = service.Find(context.Background(), 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWithCost_IgnoresOutOfRange(t *testing.T) {
	s := NewService(new(MockRepository), NewCredentialsValidator(), slog.Default(), WithCost(99))
	assert.Equal(t, DefaultCost, s.cost)
}
