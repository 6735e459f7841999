package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/cuportal/student-portal-api/api/handlers"
	"github.com/cuportal/student-portal-api/databases/mocks"
	"github.com/cuportal/student-portal-api/models"
)

func withJWTSecret(t *testing.T, secret string) {
	old := os.Getenv("JWT_SECRET")
	os.Setenv("JWT_SECRET", secret)
	t.Cleanup(func() { os.Setenv("JWT_SECRET", old) })
}

func TestAdmin_AdminLoginHandler_Success(t *testing.T) {
	withJWTSecret(t, "test-secret")

	password := "strong-pass"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	adminUser := &models.AdminUser{
		ID:           primitive.NewObjectID(),
		Email:        "dean@cuportal.edu",
		Name:         "Dean of Students",
		PasswordHash: string(hash),
		Active:       true,
		Roles:        []string{"admin"},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	mockADB := &mocks.AdminDatabase{}
	mockRDB := &mocks.AdminResetDatabase{}
	mockADB.On("FindOne", mock.Anything, bson.M{"email": "dean@cuportal.edu", "active": true}).Return(adminUser, nil)

	h := handlers.Admin{ADB: mockADB, RDB: mockRDB}

	body := `{"email": "Dean@cuportal.edu", "password": "strong-pass"}`
	req, err := http.NewRequest("POST", "/api/v1/admin/login", strings.NewReader(body))
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	h.AdminLoginHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
		Admin struct {
			Email string   `json:"email"`
			Roles []string `json:"roles"`
		} `json:"admin"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "dean@cuportal.edu", resp.Admin.Email)
	assert.Equal(t, []string{"admin"}, resp.Admin.Roles)
}

func TestAdmin_AdminLoginHandler_WrongPassword(t *testing.T) {
	withJWTSecret(t, "test-secret")

	hash, _ := bcrypt.GenerateFromPassword([]byte("right-pass"), bcrypt.DefaultCost)
	adminUser := &models.AdminUser{
		ID:           primitive.NewObjectID(),
		Email:        "dean@cuportal.edu",
		PasswordHash: string(hash),
		Active:       true,
	}

	mockADB := &mocks.AdminDatabase{}
	mockADB.On("FindOne", mock.Anything, mock.Anything).Return(adminUser, nil)

	h := handlers.Admin{ADB: mockADB, RDB: &mocks.AdminResetDatabase{}}

	req, err := http.NewRequest("POST", "/api/v1/admin/login", strings.NewReader(`{"email": "dean@cuportal.edu", "password": "wrong-pass"}`))
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	h.AdminLoginHandler(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
}

func TestAdmin_AdminLoginHandler_UnknownAccount(t *testing.T) {
	withJWTSecret(t, "test-secret")

	mockADB := &mocks.AdminDatabase{}
	mockADB.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)

	h := handlers.Admin{ADB: mockADB, RDB: &mocks.AdminResetDatabase{}}

	req, err := http.NewRequest("POST", "/api/v1/admin/login", strings.NewReader(`{"email": "nobody@cuportal.edu", "password": "whatever"}`))
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	h.AdminLoginHandler(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
}

func TestAdmin_AdminForgotPasswordHandler_SameAnswerEitherWay(t *testing.T) {
	adminUser := &models.AdminUser{
		ID:     primitive.NewObjectID(),
		Email:  "dean@cuportal.edu",
		Active: true,
	}

	mockADB := &mocks.AdminDatabase{}
	mockRDB := &mocks.AdminResetDatabase{}
	mockADB.On("FindOne", mock.Anything, bson.M{"email": "dean@cuportal.edu", "active": true}).Return(adminUser, nil)
	mockRDB.On("InsertOne", mock.Anything, mock.AnythingOfType("models.AdminPasswordReset")).Return(nil, nil)

	h := handlers.Admin{ADB: mockADB, RDB: mockRDB}

	req, err := http.NewRequest("POST", "/api/v1/admin/forgot-password", strings.NewReader(`{"email": "dean@cuportal.edu"}`))
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	h.AdminForgotPasswordHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	knownBody := w.Body.String()

	// Unknown account gets the identical answer and no reset row
	mockADB2 := &mocks.AdminDatabase{}
	mockADB2.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)
	mockRDB2 := &mocks.AdminResetDatabase{}

	h2 := handlers.Admin{ADB: mockADB2, RDB: mockRDB2}

	req2, err := http.NewRequest("POST", "/api/v1/admin/forgot-password", strings.NewReader(`{"email": "nobody@cuportal.edu"}`))
	assert.NoError(t, err)

	w2 := httptest.NewRecorder()
	h2.AdminForgotPasswordHandler(w2, req2)

	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, knownBody, w2.Body.String())
	mockRDB2.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestAdmin_AdminResetPasswordHandler_Success(t *testing.T) {
	adminID := primitive.NewObjectID()
	reset := &models.AdminPasswordReset{
		ID:        primitive.NewObjectID(),
		AdminID:   adminID,
		TokenHash: "abc123",
		ExpiresAt: time.Now().Add(30 * time.Minute),
		CreatedAt: time.Now(),
	}

	mockADB := &mocks.AdminDatabase{}
	mockRDB := &mocks.AdminResetDatabase{}
	mockRDB.On("FindOne", mock.Anything, mock.Anything).Return(reset, nil)
	mockADB.On("UpdateOne", mock.Anything, bson.M{"_id": adminID}, mock.Anything).Return(&mongo.UpdateResult{MatchedCount: 1}, nil)
	mockRDB.On("UpdateOne", mock.Anything, bson.M{"_id": reset.ID}, mock.Anything).Return(&mongo.UpdateResult{MatchedCount: 1}, nil)

	h := handlers.Admin{ADB: mockADB, RDB: mockRDB}

	req, err := http.NewRequest("POST", "/api/v1/admin/reset-password", strings.NewReader(`{"token": "some-plain-token", "password": "new-strong-pass"}`))
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	h.AdminResetPasswordHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "password updated")
	mockADB.AssertExpectations(t)
	mockRDB.AssertExpectations(t)
}

func TestAdmin_AdminResetPasswordHandler_InvalidToken(t *testing.T) {
	mockADB := &mocks.AdminDatabase{}
	mockRDB := &mocks.AdminResetDatabase{}
	mockRDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)

	h := handlers.Admin{ADB: mockADB, RDB: mockRDB}

	req, err := http.NewRequest("POST", "/api/v1/admin/reset-password", strings.NewReader(`{"token": "expired-or-bogus", "password": "new-strong-pass"}`))
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	h.AdminResetPasswordHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")
	mockADB.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}
