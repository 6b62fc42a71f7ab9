package handlers

import (
	"context"
	"net/http"
	"time"

	"itemhub/internal/models"
	"itemhub/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID  int
	signUpErr error
	token     string
	tokenErr  error
	parsed    string
	parseErr  error
	authUser  *models.User
	authErr   error

	lastSignUpUsername string
	lastSignUpPassword string
	lastLoginUsername  string
	lastLoginPassword  string
	lastParsedToken    string
	lastAuthToken      string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.token, m.tokenErr
}

func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParsedToken = token
	return m.parsed, m.parseErr
}

func (m *mockAuth) Authenticate(token string) (*models.User, error) {
	m.lastAuthToken = token
	return m.authUser, m.authErr
}

type mockItems struct {
	listResp  []models.Item
	listErr   error
	createdID int
	createErr error
	getResp   models.Item
	getErr    error
	updateErr error
	deleteErr error

	lastListOwner   int
	lastCreateOwner int
	lastCreateName  string
	lastGetID       int
	lastRequester   int
	lastUpdateName  string
	deleteCalls     int
}

func (m *mockItems) List(ctx context.Context, ownerID int) ([]models.Item, error) {
	m.lastListOwner = ownerID
	return m.listResp, m.listErr
}

func (m *mockItems) Create(ctx context.Context, ownerID int, name string) (models.Item, error) {
	m.lastCreateOwner = ownerID
	m.lastCreateName = name
	if m.createErr != nil {
		return models.Item{}, m.createErr
	}
	return models.Item{ID: m.createdID, Name: name, OwnerID: ownerID}, nil
}

func (m *mockItems) Get(ctx context.Context, id, requesterID int) (models.Item, error) {
	m.lastGetID = id
	m.lastRequester = requesterID
	return m.getResp, m.getErr
}

func (m *mockItems) Update(ctx context.Context, id, requesterID int, name string) (models.Item, error) {
	m.lastGetID = id
	m.lastRequester = requesterID
	m.lastUpdateName = name
	if m.updateErr != nil {
		return models.Item{}, m.updateErr
	}
	return models.Item{ID: id, Name: name, OwnerID: requesterID}, nil
}

func (m *mockItems) Delete(ctx context.Context, id, requesterID int) error {
	m.deleteCalls++
	m.lastGetID = id
	m.lastRequester = requesterID
	return m.deleteErr
}

type mockActivity struct {
	resp     []models.ActivityEvent
	err      error
	lastUser int
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockActivity) List(ctx context.Context, userID int, f service.ActivityFilter) ([]models.ActivityEvent, error) {
	m.lastUser = userID
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
