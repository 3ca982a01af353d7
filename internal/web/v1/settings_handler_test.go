package v1

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openblog/web-service/internal/core/domain"
	logicv1 "github.com/openblog/web-service/internal/logic/v1"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockUsers is a function-field mock of domain.UserRepository.
type mockUsers struct {
	getByID       func(ctx context.Context, id string) (*domain.User, error)
	emailInUse    func(ctx context.Context, email, excludeUserID string) (bool, error)
	usernameInUse func(ctx context.Context, username, excludeUserID string) (bool, error)
	update        func(ctx context.Context, user *domain.User) error

	usernameChecks int
}

func (m *mockUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (m *mockUsers) EmailInUse(ctx context.Context, email, excludeUserID string) (bool, error) {
	if m.emailInUse != nil {
		return m.emailInUse(ctx, email, excludeUserID)
	}
	return false, nil
}

func (m *mockUsers) UsernameInUse(ctx context.Context, username, excludeUserID string) (bool, error) {
	m.usernameChecks++
	if m.usernameInUse != nil {
		return m.usernameInUse(ctx, username, excludeUserID)
	}
	return false, nil
}

func (m *mockUsers) Update(ctx context.Context, user *domain.User) error {
	if m.update != nil {
		return m.update(ctx, user)
	}
	return nil
}

// mockPhotoUploader is a function-field mock of domain.PhotoUploader.
type mockPhotoUploader struct {
	upload func(ctx context.Context, payload []byte, key string) (string, error)
}

func (m *mockPhotoUploader) Upload(ctx context.Context, payload []byte, key string) (string, error) {
	if m.upload != nil {
		return m.upload(ctx, payload, key)
	}
	return "https://cdn.example.com/avatars/" + key, nil
}

// mockSessions is a function-field mock of domain.SessionRepository.
type mockSessions struct {
	findByID func(ctx context.Context, id string) (*domain.Session, error)
	save     func(ctx context.Context, session *domain.Session) error

	saves int
}

func (m *mockSessions) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, nil
}

func (m *mockSessions) Create(ctx context.Context, session *domain.Session) error { return nil }

func (m *mockSessions) Save(ctx context.Context, session *domain.Session) error {
	m.saves++
	if m.save != nil {
		return m.save(ctx, session)
	}
	return nil
}

func (m *mockSessions) DeleteByID(ctx context.Context, id string) error { return nil }

func testUser() *domain.User {
	return &domain.User{
		ID:       "u-1",
		Username: "ada",
		Email:    "ada@example.com",
		Name:     "Ada L",
		Bio:      "analyst",
	}
}

func testSession() *domain.Session {
	return &domain.Session{
		ID: "sess-1",
		User: domain.SessionUser{
			UserID:        "u-1",
			Username:      "ada",
			Name:          "Ada L",
			Authenticated: true,
		},
	}
}

// newSettingsRouter wires the handler behind a stub of the session
// middleware. A nil session simulates a request that slipped past the gate.
func newSettingsRouter(h *SettingsHandler, session *domain.Session) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if session != nil {
			c.Set("session", session)
			c.Set("user_id", session.User.UserID)
		}
	})
	r.GET("/api/v1/settings", h.GetSettings)
	r.PUT("/api/v1/settings/basic-info", h.UpdateBasicInfo)
	return r
}

func putBasicInfo(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings/basic-info", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateBasicInfoHandler_Success(t *testing.T) {
	user := testUser()
	session := testSession()

	var saved *domain.User
	users := &mockUsers{
		getByID: func(context.Context, string) (*domain.User, error) { return user, nil },
		update: func(_ context.Context, u *domain.User) error {
			saved = u
			return nil
		},
	}
	sessions := &mockSessions{}
	svc := logicv1.NewSettingsService(users, &mockPhotoUploader{})
	r := newSettingsRouter(NewSettingsHandler(svc, sessions), session)

	w := putBasicInfo(t, r, gin.H{"name": "Ada", "bio": "hi"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	require.NotNil(t, saved)
	assert.Equal(t, "Ada", saved.Name)
	assert.Equal(t, "hi", saved.Bio)
	assert.Equal(t, "Ada", session.User.Name)
	assert.Equal(t, 1, sessions.saves, "session commit must follow a successful update")
}

func TestUpdateBasicInfoHandler_DuplicateEmail(t *testing.T) {
	session := testSession()
	users := &mockUsers{
		getByID:    func(context.Context, string) (*domain.User, error) { return testUser(), nil },
		emailInUse: func(context.Context, string, string) (bool, error) { return true, nil },
	}
	sessions := &mockSessions{}
	svc := logicv1.NewSettingsService(users, &mockPhotoUploader{})
	r := newSettingsRouter(NewSettingsHandler(svc, sessions), session)

	w := putBasicInfo(t, r, gin.H{"email": "taken@x.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, msgEmailTaken, resp["message"])
	assert.Zero(t, sessions.saves, "failed update must not commit the session")
}

func TestUpdateBasicInfoHandler_DuplicateUsername(t *testing.T) {
	session := testSession()
	users := &mockUsers{
		getByID:       func(context.Context, string) (*domain.User, error) { return testUser(), nil },
		usernameInUse: func(context.Context, string, string) (bool, error) { return true, nil },
	}
	sessions := &mockSessions{}
	svc := logicv1.NewSettingsService(users, &mockPhotoUploader{})
	r := newSettingsRouter(NewSettingsHandler(svc, sessions), session)

	w := putBasicInfo(t, r, gin.H{"username": "grace"})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, msgUsernameTaken, resp["message"])
	assert.Zero(t, sessions.saves)
}

func TestUpdateBasicInfoHandler_UnchangedUsernameDropped(t *testing.T) {
	session := testSession()
	users := &mockUsers{
		getByID: func(context.Context, string) (*domain.User, error) { return testUser(), nil },
	}
	svc := logicv1.NewSettingsService(users, &mockPhotoUploader{})
	r := newSettingsRouter(NewSettingsHandler(svc, &mockSessions{}), session)

	// Same username the session already has: pre-filter drops it.
	w := putBasicInfo(t, r, gin.H{"username": "ada", "name": "Ada"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, users.usernameChecks, "unchanged username must not hit the availability check")
}

func TestUpdateBasicInfoHandler_PhotoTooLarge(t *testing.T) {
	session := testSession()
	svc := logicv1.NewSettingsService(&mockUsers{}, &mockPhotoUploader{})
	r := newSettingsRouter(NewSettingsHandler(svc, &mockSessions{}), session)

	oversize := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0xAB}, maxPhotoBytes+1))
	w := putBasicInfo(t, r, gin.H{"profilePhoto": "data:image/png;base64," + oversize})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, msgPhotoTooLarge, resp["message"])
}

func TestUpdateBasicInfoHandler_MalformedPhoto(t *testing.T) {
	session := testSession()
	svc := logicv1.NewSettingsService(&mockUsers{}, &mockPhotoUploader{})
	r := newSettingsRouter(NewSettingsHandler(svc, &mockSessions{}), session)

	w := putBasicInfo(t, r, gin.H{"profilePhoto": "data:image/png;base64"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBasicInfoHandler_NoSession(t *testing.T) {
	svc := logicv1.NewSettingsService(&mockUsers{}, &mockPhotoUploader{})
	r := newSettingsRouter(NewSettingsHandler(svc, &mockSessions{}), nil)

	w := putBasicInfo(t, r, gin.H{"name": "Ada"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetSettingsHandler(t *testing.T) {
	session := testSession()
	users := &mockUsers{
		getByID: func(context.Context, string) (*domain.User, error) { return testUser(), nil },
	}
	svc := logicv1.NewSettingsService(users, &mockPhotoUploader{})
	r := newSettingsRouter(NewSettingsHandler(svc, &mockSessions{}), session)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"currentUser"`))
	assert.True(t, strings.Contains(w.Body.String(), `"sessionUser"`))
}
