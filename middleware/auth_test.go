package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sadeeshasathsara/nexa-sub000/domain"
	"github.com/sadeeshasathsara/nexa-sub000/utils"

	"github.com/gin-gonic/gin"
)

type fakeSessionRepo struct {
	sessions map[string]*domain.Session
}

func (f *fakeSessionRepo) CreateSession(_ context.Context, sess *domain.Session, _ time.Duration) error {
	f.sessions[sess.ID] = sess
	return nil
}

func (f *fakeSessionRepo) GetSession(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := f.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return sess, nil
}

func (f *fakeSessionRepo) DeleteSession(_ context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *domain.User) error {
	f.users[user.UUID] = user
	return nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetUserByUUID(_ context.Context, uuid string) (*domain.User, error) {
	user, ok := f.users[uuid]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) ListUsers(_ context.Context, _, _ string) ([]domain.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, user *domain.User) error {
	f.users[user.UUID] = user
	return nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, uuid string) error {
	delete(f.users, uuid)
	return nil
}

func newTestAuthenticator() (*Authenticator, *utils.JWTManager, *fakeSessionRepo, *fakeUserRepo) {
	jwt := utils.NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
	sessions := &fakeSessionRepo{sessions: map[string]*domain.Session{}}
	users := &fakeUserRepo{users: map[string]*domain.User{}}
	return NewAuthenticator(jwt, sessions, users), jwt, sessions, users
}

func echoIdentity(c *gin.Context) {
	identity, _ := IdentityFrom(c)
	c.JSON(http.StatusOK, gin.H{"uuid": identity.UUID, "role": identity.Role})
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth, jwt, _, _ := newTestAuthenticator()

	r := gin.New()
	r.GET("/private", auth.BearerToken(), echoIdentity)

	token, err := jwt.GenerateToken("uuid-1", "ann@example.com", domain.RoleStudent, "Ann")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + token, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage", "Bearer not-a-token", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestSignedCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth, jwt, _, _ := newTestAuthenticator()

	r := gin.New()
	r.GET("/private", auth.SignedCookie(), echoIdentity)

	token, err := jwt.GenerateToken("uuid-1", "dan@example.com", domain.RoleDonor, "Dan")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("with cookie: status = %d, want 200", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no cookie: status = %d, want 401", w.Code)
	}
}

func TestServerSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth, _, sessions, users := newTestAuthenticator()

	users.users["admin-uuid"] = &domain.User{
		UUID:   "admin-uuid",
		Email:  "admin@example.com",
		Role:   domain.RoleAdmin,
		Status: domain.StatusActive,
	}
	sessions.sessions["sess-1"] = &domain.Session{ID: "sess-1", UserUUID: "admin-uuid"}
	sessions.sessions["sess-orphan"] = &domain.Session{ID: "sess-orphan", UserUUID: "gone-uuid"}

	r := gin.New()
	r.GET("/private", auth.ServerSession(), echoIdentity)

	do := func(sessionID string) int {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		if sessionID != "" {
			req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionID})
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := do("sess-1"); code != http.StatusOK {
		t.Errorf("valid session: status = %d, want 200", code)
	}
	if code := do(""); code != http.StatusUnauthorized {
		t.Errorf("no cookie: status = %d, want 401", code)
	}
	if code := do("unknown"); code != http.StatusUnauthorized {
		t.Errorf("unknown session: status = %d, want 401", code)
	}
	if code := do("sess-orphan"); code != http.StatusUnauthorized {
		t.Errorf("orphaned session: status = %d, want 401", code)
	}

	// A suspended account keeps its session record but loses access.
	users.users["admin-uuid"].Status = domain.StatusSuspended
	if code := do("sess-1"); code != http.StatusForbidden {
		t.Errorf("suspended account: status = %d, want 403", code)
	}
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth, jwt, _, _ := newTestAuthenticator()

	r := gin.New()
	r.GET("/tutor-only", auth.BearerToken(), RequireRole(domain.RoleTutor), echoIdentity)
	r.GET("/no-auth", RequireRole(domain.RoleTutor), echoIdentity)

	tutorToken, _ := jwt.GenerateToken("uuid-t", "t@example.com", domain.RoleTutor, "T")
	studentToken, _ := jwt.GenerateToken("uuid-s", "s@example.com", domain.RoleStudent, "S")

	do := func(path, token string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := do("/tutor-only", tutorToken); code != http.StatusOK {
		t.Errorf("tutor: status = %d, want 200", code)
	}
	if code := do("/tutor-only", studentToken); code != http.StatusForbidden {
		t.Errorf("student: status = %d, want 403", code)
	}
	// RequireRole without a preceding authenticator rejects as unauthenticated.
	if code := do("/no-auth", ""); code != http.StatusUnauthorized {
		t.Errorf("no identity: status = %d, want 401", code)
	}
}
