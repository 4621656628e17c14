package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/zapshift/zapshift-server/internal/middleware"
	"github.com/zapshift/zapshift-server/internal/models"
)

func newUserRouter(users *fakeUserStore, verifier *fakeVerifier) *gin.Engine {
	r := gin.New()
	r.GET("/users", ListUsers(users))
	r.GET("/user/:email/role", GetUserRole(users))
	r.POST("/users", CreateUser(users))
	r.PATCH("/users/:id", middleware.VerifyToken(verifier), middleware.RequireAdmin(users), SetUserRole(users))
	return r
}

func TestCreateUserIdempotent(t *testing.T) {
	users := newFakeUserStore()
	r := newUserRouter(users, &fakeVerifier{})

	body := `{"email":"a@x.com","name":"Alice"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("first create: got status %d, want 200", w.Code)
	}
	var first map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &first); err != nil {
		t.Fatalf("unmarshal first response: %v", err)
	}
	if _, ok := first["insertedId"]; !ok {
		t.Fatalf("first create: expected insertedId, got %v", first)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("second create: got status %d, want 200", w.Code)
	}
	var second map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &second); err != nil {
		t.Fatalf("unmarshal second response: %v", err)
	}
	if second["message"] != "This user already exits" {
		t.Errorf("second create: got %v, want duplicate message", second)
	}

	stored, _ := users.List(t.Context())
	if len(stored) != 1 {
		t.Errorf("got %d stored users, want 1", len(stored))
	}
	if stored[0].Role != models.RoleUser {
		t.Errorf("stored role = %q, want %q", stored[0].Role, models.RoleUser)
	}
}

func TestCreateUserIgnoresClientRole(t *testing.T) {
	users := newFakeUserStore()
	r := newUserRouter(users, &fakeVerifier{})

	// A role in the request body must not survive; the server always assigns
	// the default.
	body := `{"email":"b@x.com","role":"Admin"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
	stored, _ := users.FindByEmail(t.Context(), "b@x.com")
	if stored == nil || stored.Role != models.RoleUser {
		t.Errorf("stored role = %v, want %q", stored, models.RoleUser)
	}
}

func TestGetUserRoleDefaultsForUnknownEmail(t *testing.T) {
	users := newFakeUserStore()
	r := newUserRouter(users, &fakeVerifier{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/user/nobody@x.com/role", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["role"] != "user" {
		t.Errorf("role = %q, want %q", resp["role"], "user")
	}
}

func TestGetUserRoleReturnsStoredRole(t *testing.T) {
	users := newFakeUserStore()
	users.seed(models.User{Email: "boss@x.com", Role: models.RoleAdmin})
	r := newUserRouter(users, &fakeVerifier{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/user/boss@x.com/role", nil)
	r.ServeHTTP(w, req)

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["role"] != models.RoleAdmin {
		t.Errorf("role = %q, want %q", resp["role"], models.RoleAdmin)
	}
}

func TestSetUserRoleAuthorization(t *testing.T) {
	users := newFakeUserStore()
	users.seed(models.User{Email: "boss@x.com", Role: models.RoleAdmin})
	target := users.seed(models.User{Email: "a@x.com", Role: models.RoleUser})
	verifier := &fakeVerifier{tokens: map[string]string{
		"admin-token": "boss@x.com",
		"plain-token": "a@x.com",
	}}
	r := newUserRouter(users, verifier)

	patch := func(token string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("PATCH", "/users/2", strings.NewReader(`{"role":"Admin"}`))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		r.ServeHTTP(w, req)
		return w
	}

	if w := patch(""); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: got status %d, want 401", w.Code)
	}
	if w := patch("bogus"); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: got status %d, want 401", w.Code)
	}
	if w := patch("plain-token"); w.Code != http.StatusForbidden {
		t.Errorf("non-admin: got status %d, want 403", w.Code)
	}

	w := patch("admin-token")
	if w.Code != http.StatusOK {
		t.Fatalf("admin: got status %d, want 200", w.Code)
	}
	updated, _ := users.Get(t.Context(), target.ID)
	if updated.Role != models.RoleAdmin {
		t.Errorf("role = %q, want %q", updated.Role, models.RoleAdmin)
	}
}
