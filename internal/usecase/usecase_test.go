package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/usecase"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/security"
	"go-portfolio-backend/pkg/token"
	"go-portfolio-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	logger.Init("development")
	m.Run()
}

// Mock Repositories

type MockContactRepo struct {
	mock.Mock
}

func (m *MockContactRepo) Create(ctx context.Context, contact *domain.Contact) error {
	return m.Called(ctx, contact).Error(0)
}
func (m *MockContactRepo) List(ctx context.Context, page, pageSize int) ([]domain.Contact, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Contact), args.Get(1).(int64), args.Error(2)
}
func (m *MockContactRepo) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}
func (m *MockContactRepo) SetRead(ctx context.Context, id string, read bool) error {
	return m.Called(ctx, id, read).Error(0)
}
func (m *MockContactRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockContactRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockContactRepo) CountUnread(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockContactRepo) Recent(ctx context.Context, n int) ([]domain.Contact, error) {
	args := m.Called(ctx, n)
	return args.Get(0).([]domain.Contact), args.Error(1)
}

type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}
func (m *MockAdminRepo) IncrementLoginAttempts(ctx context.Context, email string) (int, error) {
	args := m.Called(ctx, email)
	return args.Int(0), args.Error(1)
}
func (m *MockAdminRepo) ResetLoginAttempts(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

// Contact intake

func TestContactSubmit(t *testing.T) {
	validSub := func() *domain.ContactSubmission {
		return &domain.ContactSubmission{
			Name:    "Jane Doe",
			Email:   "jane@x.com",
			Message: "Hello, this is a ten-plus char message.",
		}
	}

	t.Run("valid submission is stored with read=false", func(t *testing.T) {
		mockRepo := new(MockContactRepo)
		uc := usecase.NewContactUsecase(mockRepo, validation.New(), nil)

		before := time.Now()
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Contact")).
			Run(func(args mock.Arguments) {
				c := args.Get(1).(*domain.Contact)
				c.ID = "11111111-2222-3333-4444-555555555555"
				c.CreatedAt = time.Now()
			}).
			Return(nil)

		contact, err := uc.Submit(context.Background(), validSub(), "203.0.113.7")
		require.NoError(t, err)
		assert.NotEmpty(t, contact.ID)
		assert.False(t, contact.Read)
		assert.Equal(t, "Jane Doe", contact.Name)
		assert.Equal(t, "jane@x.com", contact.Email)
		assert.Equal(t, "203.0.113.7", contact.IPAddress)
		assert.False(t, contact.CreatedAt.Before(before))
		mockRepo.AssertExpectations(t)
	})

	t.Run("fields are trimmed before storage", func(t *testing.T) {
		mockRepo := new(MockContactRepo)
		uc := usecase.NewContactUsecase(mockRepo, validation.New(), nil)

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Contact")).Return(nil)

		sub := validSub()
		sub.Name = "  Jane Doe  "
		sub.Message = "  Hello, this is a ten-plus char message.  "

		contact, err := uc.Submit(context.Background(), sub, "")
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", contact.Name)
		assert.Equal(t, "Hello, this is a ten-plus char message.", contact.Message)
	})

	t.Run("invalid submission names every failing field and never hits storage", func(t *testing.T) {
		mockRepo := new(MockContactRepo)
		uc := usecase.NewContactUsecase(mockRepo, validation.New(), nil)

		_, err := uc.Submit(context.Background(), &domain.ContactSubmission{
			Name:    "J",
			Email:   "bad",
			Message: "short",
		}, "")
		require.Error(t, err)

		var vErr *validation.Error
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "name")
		assert.Contains(t, vErr.Fields, "email")
		assert.Contains(t, vErr.Fields, "message")
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("only IPv4 addresses are stored", func(t *testing.T) {
		tests := []struct {
			name     string
			clientIP string
			want     string
		}{
			{"plain IPv4 kept", "203.0.113.7", "203.0.113.7"},
			{"IPv4-mapped IPv6 unwrapped", "::ffff:203.0.113.7", "203.0.113.7"},
			{"plain IPv6 dropped", "2001:db8::1", ""},
			{"garbage dropped", "not-an-ip", ""},
			{"empty stays empty", "", ""},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mockRepo := new(MockContactRepo)
				uc := usecase.NewContactUsecase(mockRepo, validation.New(), nil)

				mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

				contact, err := uc.Submit(context.Background(), validSub(), tt.clientIP)
				require.NoError(t, err)
				assert.Equal(t, tt.want, contact.IPAddress)
			})
		}
	})

	t.Run("whitespace-only message fails after trimming", func(t *testing.T) {
		mockRepo := new(MockContactRepo)
		uc := usecase.NewContactUsecase(mockRepo, validation.New(), nil)

		sub := validSub()
		sub.Message = "             "

		_, err := uc.Submit(context.Background(), sub, "")
		var vErr *validation.Error
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "message")
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		mockRepo := new(MockContactRepo)
		uc := usecase.NewContactUsecase(mockRepo, validation.New(), nil)

		mockRepo.On("Create", mock.Anything, mock.Anything).Return(apperror.Internal(assert.AnError))

		_, err := uc.Submit(context.Background(), validSub(), "")
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 500, appErr.Code)
	})
}

// Admin authentication

func newAuthFixture(t *testing.T) (*MockAdminRepo, domain.AuthUsecase, *token.Service) {
	t.Helper()
	mockRepo := new(MockAdminRepo)
	tokens := token.NewService("test-secret", time.Hour)
	tracker := security.NewLoginTracker(security.DefaultLoginTrackerConfig())
	return mockRepo, usecase.NewAuthUsecase(mockRepo, tokens, tracker), tokens
}

func activeAdmin(t *testing.T, email, password string) *domain.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.Admin{
		ID:           1,
		Email:        email,
		PasswordHash: string(hash),
		Role:         "admin",
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
}

func TestLogin(t *testing.T) {
	t.Run("correct password issues a verifiable token", func(t *testing.T) {
		mockRepo, uc, _ := newAuthFixture(t)
		admin := activeAdmin(t, "admin@example.com", "Correct#Horse1")

		mockRepo.On("GetByEmail", mock.Anything, "admin@example.com").Return(admin, nil)
		mockRepo.On("ResetLoginAttempts", mock.Anything, "admin@example.com").Return(nil)

		signed, err := uc.Login(context.Background(), "admin@example.com", "Correct#Horse1", "203.0.113.7")
		require.NoError(t, err)

		claims, err := uc.Verify(context.Background(), signed)
		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", claims.Email)
		assert.Equal(t, "admin", claims.Role)
		mockRepo.AssertExpectations(t)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		mockRepo, uc, _ := newAuthFixture(t)
		admin := activeAdmin(t, "admin@example.com", "Correct#Horse1")

		mockRepo.On("GetByEmail", mock.Anything, "admin@example.com").Return(admin, nil)
		mockRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, apperror.NotFound("Admin not found"))
		mockRepo.On("IncrementLoginAttempts", mock.Anything, "admin@example.com").Return(1, nil)

		_, wrongPassErr := uc.Login(context.Background(), "admin@example.com", "wrong-password", "")
		_, unknownErr := uc.Login(context.Background(), "ghost@example.com", "whatever", "")

		require.Error(t, wrongPassErr)
		require.Error(t, unknownErr)

		var appErr1, appErr2 *apperror.AppError
		require.ErrorAs(t, wrongPassErr, &appErr1)
		require.ErrorAs(t, unknownErr, &appErr2)
		assert.Equal(t, appErr1.Code, appErr2.Code)
		assert.Equal(t, appErr1.Message, appErr2.Message, "error must not reveal account existence")
	})

	t.Run("wrong password increments the stored attempt counter", func(t *testing.T) {
		mockRepo, uc, _ := newAuthFixture(t)
		admin := activeAdmin(t, "admin@example.com", "Correct#Horse1")

		mockRepo.On("GetByEmail", mock.Anything, "admin@example.com").Return(admin, nil)
		mockRepo.On("IncrementLoginAttempts", mock.Anything, "admin@example.com").Return(1, nil)

		_, err := uc.Login(context.Background(), "admin@example.com", "wrong-password", "")
		require.Error(t, err)
		mockRepo.AssertCalled(t, "IncrementLoginAttempts", mock.Anything, "admin@example.com")
	})

	t.Run("disabled account is rejected even with the correct password", func(t *testing.T) {
		mockRepo, uc, _ := newAuthFixture(t)
		admin := activeAdmin(t, "admin@example.com", "Correct#Horse1")
		admin.IsActive = false

		mockRepo.On("GetByEmail", mock.Anything, "admin@example.com").Return(admin, nil)

		_, err := uc.Login(context.Background(), "admin@example.com", "Correct#Horse1", "")
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
	})
}

func TestVerify(t *testing.T) {
	t.Run("expired token is rejected despite a valid signature", func(t *testing.T) {
		mockRepo := new(MockAdminRepo)
		expiredTokens := token.NewService("test-secret", -time.Minute)
		tracker := security.NewLoginTracker(security.DefaultLoginTrackerConfig())
		uc := usecase.NewAuthUsecase(mockRepo, expiredTokens, tracker)

		signed, err := expiredTokens.Issue("admin@example.com", "admin")
		require.NoError(t, err)

		_, err = uc.Verify(context.Background(), signed)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Code)
	})

	t.Run("garbage token is rejected with the same error kind", func(t *testing.T) {
		_, uc, _ := newAuthFixture(t)

		_, err := uc.Verify(context.Background(), "not.a.token")
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Code)
	})
}

// Admin contact management

func TestAdminUsecase(t *testing.T) {
	t.Run("list computes pagination metadata", func(t *testing.T) {
		mockRepo := new(MockContactRepo)
		uc := usecase.NewAdminUsecase(mockRepo, 5)

		contacts := []domain.Contact{{ID: "a"}, {ID: "b"}}
		mockRepo.On("List", mock.Anything, 2, 10).Return(contacts, int64(25), nil)

		result, err := uc.ListContacts(context.Background(), 2, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(25), result.Total)
		assert.Equal(t, 2, result.Page)
		assert.Equal(t, 3, result.TotalPages)
		assert.Len(t, result.Data, 2)
	})

	t.Run("list clamps out-of-range paging params", func(t *testing.T) {
		mockRepo := new(MockContactRepo)
		uc := usecase.NewAdminUsecase(mockRepo, 5)

		mockRepo.On("List", mock.Anything, 1, 20).Return([]domain.Contact{}, int64(0), nil)

		result, err := uc.ListContacts(context.Background(), -3, 100000)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, 20, result.PageSize)
	})

	t.Run("mark read passes NotFound through", func(t *testing.T) {
		mockRepo := new(MockContactRepo)
		uc := usecase.NewAdminUsecase(mockRepo, 5)

		mockRepo.On("SetRead", mock.Anything, "missing", true).Return(apperror.NotFound("Contact not found"))

		err := uc.MarkRead(context.Background(), "missing", true)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("mark read is idempotent at the usecase boundary", func(t *testing.T) {
		mockRepo := new(MockContactRepo)
		uc := usecase.NewAdminUsecase(mockRepo, 5)

		mockRepo.On("SetRead", mock.Anything, "id-1", true).Return(nil).Twice()

		require.NoError(t, uc.MarkRead(context.Background(), "id-1", true))
		require.NoError(t, uc.MarkRead(context.Background(), "id-1", true))
		mockRepo.AssertExpectations(t)
	})

	t.Run("dashboard stats aggregate totals, unread, and recent", func(t *testing.T) {
		mockRepo := new(MockContactRepo)
		uc := usecase.NewAdminUsecase(mockRepo, 5)

		recent := []domain.Contact{{ID: "a"}, {ID: "b"}}
		mockRepo.On("CountAll", mock.Anything).Return(int64(12), nil)
		mockRepo.On("CountUnread", mock.Anything).Return(int64(4), nil)
		mockRepo.On("Recent", mock.Anything, 5).Return(recent, nil)

		stats, err := uc.DashboardStats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(12), stats.TotalContacts)
		assert.Equal(t, int64(4), stats.UnreadContacts)
		assert.Len(t, stats.RecentContacts, 2)
	})
}
