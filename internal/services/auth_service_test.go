package services_test

import (
	"io"
	"log"
	"os"
	"testing"

	"gemstore/internal/models"
	"gemstore/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// TestMain suppresses logging during tests for cleaner output
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := &models.User{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
		IsSeller: true,
	}

	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(user, "password123")
	assert.NoError(t, err)
	// The stored password is an irreversible hash, never the plaintext.
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	assert.False(t, user.CreatedAt.IsZero())
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_PasswordMismatch(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := &models.User{Username: "testuser", Email: "test@example.com", Password: "password123"}

	err := authService.RegisterUser(user, "different")
	assert.ErrorIs(t, err, models.ErrPasswordMismatch)
	// Nothing is written when the confirmation does not match.
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_RegisterUser_UsernameTaken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := &models.User{Username: "taken", Email: "test@example.com", Password: "password123"}

	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(models.ErrUsernameTaken).Once()

	err := authService.RegisterUser(user, "password123")
	assert.ErrorIs(t, err, models.ErrUsernameTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	stored := &models.User{ID: "u1", Username: "testuser", Password: string(hashed), IsSeller: true}

	// Successful login issues a token carrying identity and role claims.
	mockRepo.On("GetByUsername", "testuser").Return(stored, nil).Once()
	token, err := authService.LoginUser("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "u1", claims["user_id"])
	assert.Equal(t, "testuser", claims["username"])
	assert.Equal(t, true, claims["is_seller"])

	// Wrong password
	mockRepo.On("GetByUsername", "testuser").Return(stored, nil).Once()
	_, err = authService.LoginUser("testuser", "wrongpassword")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	// Unknown user is indistinguishable from a wrong password.
	mockRepo.On("GetByUsername", "nobody").Return(nil, models.ErrUserNotFound).Once()
	_, err = authService.LoginUser("nobody", "password123")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	_, err := authService.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	// Tokens signed with a different secret are rejected.
	other := services.NewAuthService(mockRepo, "other_secret")
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	stored := &models.User{ID: "u1", Username: "testuser", Password: string(hashed)}
	mockRepo.On("GetByUsername", "testuser").Return(stored, nil).Once()
	token, err := other.LoginUser("testuser", "password123")
	assert.NoError(t, err)

	_, err = authService.ValidateToken(token)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestAuthService_CurrentUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	stored := &models.User{ID: "u1", Username: "testuser", Password: string(hashed), IsSeller: true}

	mockRepo.On("GetByUsername", "testuser").Return(stored, nil).Once()
	token, err := authService.LoginUser("testuser", "password123")
	assert.NoError(t, err)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)

	mockRepo.On("GetByID", "u1").Return(stored, nil).Once()
	user, err := authService.CurrentUser(claims)
	assert.NoError(t, err)
	assert.Equal(t, "testuser", user.Username)

	// A token for a since-deleted user no longer authenticates.
	mockRepo.On("GetByID", "u1").Return(nil, models.ErrUserNotFound).Once()
	_, err = authService.CurrentUser(claims)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	mockRepo.AssertExpectations(t)
}
