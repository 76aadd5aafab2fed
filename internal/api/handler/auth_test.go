package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"claimboard/backend/internal/api/handler"
	"claimboard/backend/internal/logger"
	"claimboard/backend/internal/models"
	"claimboard/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret-do-not-use"

// stubStorage embeds the interface so only the methods a test actually
// exercises need an implementation.
type stubStorage struct {
	storage.Storage

	createProfile     func(*models.Profile) error
	getProfileByEmail func(string) (*models.Profile, error)
	getProfileByID    func(string) (*models.Profile, error)
}

func (s *stubStorage) CreateProfile(p *models.Profile) error { return s.createProfile(p) }

func (s *stubStorage) GetProfileByEmail(email string) (*models.Profile, error) {
	return s.getProfileByEmail(email)
}

func (s *stubStorage) GetProfileByID(id string) (*models.Profile, error) {
	return s.getProfileByID(id)
}

func newTestRouter(store storage.Storage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewHandler(nil, nil, nil, store, testSecret, logger.NewNop())
	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func doJSON(r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignup_CreatesProfileAndIssuesToken(t *testing.T) {
	store := &stubStorage{
		createProfile: func(p *models.Profile) error {
			p.ID = "user_1"
			return nil
		},
	}
	r := newTestRouter(store)

	w := doJSON(r, http.MethodPost, "/auth/signup", gin.H{
		"email":    "Alice@Example.com",
		"password": "hunter2hunter2",
	}, "")

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Token   string         `json:"token"`
		Profile models.Profile `json:"profile"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice@example.com", resp.Profile.Email)
}

func TestSignup_Validation(t *testing.T) {
	r := newTestRouter(&stubStorage{})

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing email", gin.H{"password": "hunter2hunter2"}},
		{"malformed email", gin.H{"email": "not-an-email", "password": "hunter2hunter2"}},
		{"short password", gin.H{"email": "a@b.com", "password": "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/auth/signup", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	store := &stubStorage{
		createProfile: func(*models.Profile) error { return gorm.ErrDuplicatedKey },
	}
	r := newTestRouter(store)

	w := doJSON(r, http.MethodPost, "/auth/signup", gin.H{
		"email":    "taken@example.com",
		"password": "hunter2hunter2",
	}, "")

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	store := &stubStorage{
		getProfileByEmail: func(string) (*models.Profile, error) {
			return &models.Profile{ID: "user_1", Email: "a@b.com", PasswordHash: string(hash)}, nil
		},
	}
	r := newTestRouter(store)

	w := doJSON(r, http.MethodPost, "/auth/signin", gin.H{
		"email":    "a@b.com",
		"password": "wrong-password",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignin_UnknownEmail(t *testing.T) {
	store := &stubStorage{
		getProfileByEmail: func(string) (*models.Profile, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	r := newTestRouter(store)

	w := doJSON(r, http.MethodPost, "/auth/signin", gin.H{
		"email":    "ghost@example.com",
		"password": "whatever-password",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Signin then /me round-trips the token through the auth middleware.
func TestSignin_TokenGrantsAccess(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	profile := &models.Profile{ID: "user_1", Email: "a@b.com", PasswordHash: string(hash)}
	store := &stubStorage{
		getProfileByEmail: func(string) (*models.Profile, error) { return profile, nil },
		getProfileByID: func(id string) (*models.Profile, error) {
			assert.Equal(t, "user_1", id)
			return profile, nil
		},
	}
	r := newTestRouter(store)

	w := doJSON(r, http.MethodPost, "/auth/signin", gin.H{
		"email":    "a@b.com",
		"password": "correct-password",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	me := doJSON(r, http.MethodGet, "/me", nil, resp.Token)
	assert.Equal(t, http.StatusOK, me.Code)

	// Same token via the query parameter, the path WebSocket clients use.
	req := httptest.NewRequest(http.MethodGet, "/me?token="+resp.Token, nil)
	qw := httptest.NewRecorder()
	r.ServeHTTP(qw, req)
	assert.Equal(t, http.StatusOK, qw.Code)
}

func TestRequireAuth_RejectsMissingAndBadTokens(t *testing.T) {
	r := newTestRouter(&stubStorage{})

	w := doJSON(r, http.MethodGet, "/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/me", nil, "not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
