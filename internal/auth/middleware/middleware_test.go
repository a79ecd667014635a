package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/scalednative/assessment-engine/internal/rbac"
)

func TestJWTRoundTrip(t *testing.T) {
	a := NewAuthService("test-secret")
	tok, err := a.IssueJWT("alice", "learner")
	if err != nil {
		t.Fatalf("IssueJWT: %v", err)
	}
	c, err := a.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Sub != "alice" || c.Role != "learner" {
		t.Fatalf("claims = %+v", c)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := NewAuthService("secret-a").IssueJWT("alice", "learner")
	if err != nil {
		t.Fatalf("IssueJWT: %v", err)
	}
	if _, err := NewAuthService("secret-b").Parse(tok); err == nil {
		t.Fatal("token signed with another secret should not parse")
	}
}

func TestJWTMiddlewareAttachesIdentity(t *testing.T) {
	a := NewAuthService("test-secret")
	tok, err := a.IssueJWT("alice", "learner")
	if err != nil {
		t.Fatalf("IssueJWT: %v", err)
	}

	var gotSub, gotRole string
	h := JWTMiddleware(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub = SubjectFromContext(r.Context())
		gotRole = rbac.RoleFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotSub != "alice" || gotRole != "learner" {
		t.Fatalf("context identity = %s/%s", gotSub, gotRole)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing bearer: %d, want 401", rec.Code)
	}
}

func TestLoginHandler(t *testing.T) {
	a := NewAuthService("test-secret")
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	opts := LoginOpts{AdminUser: "admin", AdminPassHash: string(hash), DevLogins: true}
	h := LoginHandler(a, opts)

	login := func(username, password, role string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]string{
			"username": username, "password": password, "role": role,
		})
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body)))
		return rec
	}

	rec := login("admin", "s3cret", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin login: %d %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	c, err := a.Parse(resp["access_token"])
	if err != nil || c.Role != "admin" {
		t.Fatalf("admin token claims = %+v, %v", c, err)
	}

	if rec := login("admin", "wrong", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad admin password: %d, want 401", rec.Code)
	}
	if rec := login("alice", "alice", "learner"); rec.Code != http.StatusOK {
		t.Fatalf("dev learner login: %d", rec.Code)
	}
	if rec := login("alice", "nope", "learner"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("dev login wrong password: %d, want 401", rec.Code)
	}
	if rec := login("alice", "alice", "admin"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("dev login cannot claim admin: %d, want 401", rec.Code)
	}
}
