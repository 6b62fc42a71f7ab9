package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"itemhub/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const testSigningKey = "test-signing-key"

// mockUserRepo is a lightweight in-test mock for repository.Users.
type mockUserRepo struct {
	CreateFn        func(username, hash string) (int, error)
	GetByUsernameFn func(username string) (*models.User, error)

	createCalls []struct {
		username string
		hash     string
	}
	getCalls []string
}

func (m *mockUserRepo) Create(username, hash string) (int, error) {
	m.createCalls = append(m.createCalls, struct {
		username string
		hash     string
	}{username: username, hash: hash})
	return m.CreateFn(username, hash)
}

func (m *mockUserRepo) GetByUsername(username string) (*models.User, error) {
	m.getCalls = append(m.getCalls, username)
	if m.GetByUsernameFn == nil {
		return nil, nil
	}
	return m.GetByUsernameFn(username)
}

// mockActivityRepo records appended events and serves canned lists.
type mockActivityRepo struct {
	appendErr error
	appended  []models.ActivityEvent

	listResp []models.ActivityEvent
	listErr  error
	lastFrom time.Time
	lastTo   time.Time
	lastType string

	prunedBefore []time.Time
	pruneN       int64
	pruneErr     error
}

func (m *mockActivityRepo) Append(ctx context.Context, e models.ActivityEvent) error {
	m.appended = append(m.appended, e)
	return m.appendErr
}

func (m *mockActivityRepo) ListByUser(ctx context.Context, userID int, from, to time.Time, typ string) ([]models.ActivityEvent, error) {
	m.lastFrom = from
	m.lastTo = to
	m.lastType = typ
	return m.listResp, m.listErr
}

func (m *mockActivityRepo) Prune(ctx context.Context, before time.Time) (int64, error) {
	m.prunedBefore = append(m.prunedBefore, before)
	return m.pruneN, m.pruneErr
}

func newTestAuthService(users *mockUserRepo) (*AuthService, *mockActivityRepo) {
	activity := &mockActivityRepo{}
	return NewAuthService(users, activity, testSigningKey), activity
}

// --- SignUp tests ---

func TestAuthService_SignUp_SuccessHashesPasswordAndCallsRepo(t *testing.T) {
	mock := &mockUserRepo{
		CreateFn: func(username, hash string) (int, error) {
			return 42, nil
		},
	}
	svc, activity := newTestAuthService(mock)

	id, err := svc.SignUp(context.Background(), "alice", "s3cr3t")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}

	// Ensure Create called exactly once with hashed password (not equal to raw) and valid bcrypt.
	if len(mock.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mock.createCalls))
	}
	call := mock.createCalls[0]
	if call.username != "alice" {
		t.Errorf("expected username 'alice', got %q", call.username)
	}
	if call.hash == "s3cr3t" {
		t.Errorf("expected hashed password not equal to raw password")
	}
	if err := verifyPassword(call.hash, "s3cr3t"); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}

	if len(activity.appended) != 1 || activity.appended[0].Type != models.ActivityRegister {
		t.Errorf("expected one REGISTER activity event, got %+v", activity.appended)
	}
}

func TestAuthService_SignUp_DuplicateUsername(t *testing.T) {
	mock := &mockUserRepo{
		CreateFn: func(username, hash string) (int, error) {
			t.Fatal("Create should not be called for a taken username")
			return 0, nil
		},
		GetByUsernameFn: func(username string) (*models.User, error) {
			return &models.User{ID: 1, Username: username, PasswordHash: "x"}, nil
		},
	}
	svc, _ := newTestAuthService(mock)

	_, err := svc.SignUp(context.Background(), "alice", "whatever")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if len(mock.createCalls) != 0 {
		t.Fatalf("expected no Create calls, got %d", len(mock.createCalls))
	}
}

func TestAuthService_SignUp_EmptyPassword(t *testing.T) {
	mock := &mockUserRepo{
		CreateFn: func(username, hash string) (int, error) {
			t.Fatal("Create should not be called for empty password")
			return 0, nil
		},
	}
	svc, _ := newTestAuthService(mock)

	_, err := svc.SignUp(context.Background(), "bob", "   ")
	if err == nil {
		t.Fatalf("expected error for empty password, got nil")
	}
	if len(mock.createCalls) != 0 {
		t.Fatalf("expected no Create calls, got %d", len(mock.createCalls))
	}
}

func TestAuthService_SignUp_RepoError(t *testing.T) {
	mock := &mockUserRepo{
		CreateFn: func(username, hash string) (int, error) {
			return 0, errors.New("db down")
		},
	}
	svc, _ := newTestAuthService(mock)

	_, err := svc.SignUp(context.Background(), "carl", "pass123")
	if err == nil {
		t.Fatalf("expected repo error, got nil")
	}
}

// --- GenerateToken tests ---

func TestAuthService_GenerateToken_Success(t *testing.T) {
	// Prepare a user with a valid bcrypt hash for the provided password.
	hash, err := hashPassword("letmein")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	user := &models.User{ID: 7, Username: "diana", PasswordHash: hash}

	mock := &mockUserRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			if username != "diana" {
				t.Fatalf("expected username 'diana', got %q", username)
			}
			return user, nil
		},
	}
	svc, activity := newTestAuthService(mock)

	token, err := svc.GenerateToken(context.Background(), "diana", "letmein")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	// Validate the token parses and resolves back to the username.
	username, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if username != "diana" {
		t.Fatalf("expected username 'diana' from token, got %q", username)
	}

	if len(activity.appended) != 1 || activity.appended[0].Type != models.ActivityLogin {
		t.Fatalf("expected one LOGIN activity event, got %+v", activity.appended)
	}
}

func TestAuthService_GenerateToken_UserNotFound(t *testing.T) {
	mock := &mockUserRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return nil, nil
		},
	}
	svc, _ := newTestAuthService(mock)

	_, err := svc.GenerateToken(context.Background(), "ghost", "pw")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got: %v", err)
	}
}

func TestAuthService_GenerateToken_InvalidPassword(t *testing.T) {
	// Stored hash for different password.
	correctHash, err := hashPassword("correct")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	mock := &mockUserRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return &models.User{ID: 1, Username: "eve", PasswordHash: correctHash}, nil
		},
	}
	svc, _ := newTestAuthService(mock)

	_, err = svc.GenerateToken(context.Background(), "eve", "wrong")
	if !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got: %v", err)
	}
}

func TestAuthService_GenerateToken_RepoError(t *testing.T) {
	mock := &mockUserRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return nil, errors.New("query failed")
		},
	}
	svc, _ := newTestAuthService(mock)

	_, err := svc.GenerateToken(context.Background(), "john", "pw")
	if err == nil {
		t.Fatalf("expected repo error, got nil")
	}
}

// --- ParseToken tests ---

func TestAuthService_ParseToken_Success(t *testing.T) {
	svc, _ := newTestAuthService(&mockUserRepo{})
	token, err := svc.issueToken("nina")
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	username, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if username != "nina" {
		t.Fatalf("expected username 'nina', got %q", username)
	}
}

func TestAuthService_ParseToken_Malformed(t *testing.T) {
	svc, _ := newTestAuthService(&mockUserRepo{})
	_, err := svc.ParseToken("not-a-jwt")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestAuthService_ParseToken_InvalidSignature(t *testing.T) {
	svc, _ := newTestAuthService(&mockUserRepo{})

	// Create a token signed with a different key.
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		Username: "mallory",
	})
	otherKey := []byte("different-key")
	badToken, err := tk.SignedString(otherKey)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	_, err = svc.ParseToken(badToken)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong key, got %v", err)
	}
}

func TestAuthService_ParseToken_OldTokenStillValid(t *testing.T) {
	svc, _ := newTestAuthService(&mockUserRepo{})

	// Tokens carry no expiry; one issued long ago still verifies.
	past := time.Now().Add(-365 * 24 * time.Hour)
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(past),
		},
		Username: "oldtimer",
	})
	oldToken, err := tk.SignedString([]byte(testSigningKey))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	username, err := svc.ParseToken(oldToken)
	if err != nil {
		t.Fatalf("expected old token to verify, got %v", err)
	}
	if username != "oldtimer" {
		t.Fatalf("expected username 'oldtimer', got %q", username)
	}
}

func TestAuthService_ParseToken_UnexpectedAlg(t *testing.T) {
	svc, _ := newTestAuthService(&mockUserRepo{})

	// Generate RSA key for RS256 signing
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey failed: %v", err)
	}

	tk := jwt.NewWithClaims(jwt.SigningMethodRS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		Username: "rsa-user",
	})

	tokenStr, err := tk.SignedString(privateKey)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	_, err = svc.ParseToken(tokenStr)
	if err == nil {
		t.Fatalf("expected error due to unexpected signing method")
	}
}

// --- Authenticate tests ---

func TestAuthService_Authenticate_ResolvesUser(t *testing.T) {
	user := &models.User{ID: 9, Username: "frank", PasswordHash: "h"}
	mock := &mockUserRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return user, nil
		},
	}
	svc, _ := newTestAuthService(mock)

	token, err := svc.issueToken("frank")
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	got, err := svc.Authenticate(token)
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if got.ID != 9 || got.Username != "frank" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestAuthService_Authenticate_UnknownUser(t *testing.T) {
	mock := &mockUserRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return nil, nil
		},
	}
	svc, _ := newTestAuthService(mock)

	token, err := svc.issueToken("vanished")
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	_, err = svc.Authenticate(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for unknown user, got %v", err)
	}
}
