package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-portfolio-backend/internal/delivery/http/middleware"
	v1 "go-portfolio-backend/internal/delivery/http/v1"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init("development")
	m.Run()
}

type MockContactUsecase struct {
	mock.Mock
}

func (m *MockContactUsecase) Submit(ctx context.Context, sub *domain.ContactSubmission, clientIP string) (*domain.Contact, error) {
	args := m.Called(ctx, sub, clientIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func newContactRouter(uc domain.ContactUsecase) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	api := r.Group("/api")
	v1.NewContactHandler(api, uc)
	return r
}

func TestSubmitContact(t *testing.T) {
	t.Run("valid submission returns success with an id", func(t *testing.T) {
		mockUC := new(MockContactUsecase)
		router := newContactRouter(mockUC)

		stored := &domain.Contact{
			ID:        "11111111-2222-3333-4444-555555555555",
			Name:      "Jane Doe",
			Email:     "jane@x.com",
			Message:   "Hello, this is a ten-plus char message.",
			Read:      false,
			CreatedAt: time.Now(),
		}
		mockUC.On("Submit", mock.Anything, mock.AnythingOfType("*domain.ContactSubmission"), mock.Anything).
			Return(stored, nil)

		body := `{"name":"Jane Doe","email":"jane@x.com","message":"Hello, this is a ten-plus char message."}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				ID string `json:"id"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Data.ID)
	})

	t.Run("validation failure returns field-level errors", func(t *testing.T) {
		mockUC := new(MockContactUsecase)
		router := newContactRouter(mockUC)

		mockUC.On("Submit", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &validation.Error{Fields: map[string]string{
				"name":  "Must be at least 2 characters",
				"email": "Must be a valid email address",
			}})

		body := `{"name":"J","email":"bad","message":"Hello, this is a ten-plus char message."}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Success bool              `json:"success"`
			Error   map[string]string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error, "name")
		assert.Contains(t, resp.Error, "email")
	})

	t.Run("malformed JSON returns a 400 without reaching the usecase", func(t *testing.T) {
		mockUC := new(MockContactUsecase)
		router := newContactRouter(mockUC)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUC.AssertNotCalled(t, "Submit")
	})
}
