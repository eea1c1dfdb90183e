package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

func TestSignUpCreatesUserAndProfile(t *testing.T) {
	t.Parallel()

	_, app, db := newTestServer(t)
	_, userID := signUp(t, app, "writer@example.com", "a long password", "Avery")

	var userCount, profileCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Profile{}).Count(&profileCount)
	if userCount != 1 || profileCount != 1 {
		t.Fatalf("expected 1 user and 1 profile, got %d and %d", userCount, profileCount)
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if user.PasswordHash == nil {
		t.Fatal("expected stored password hash")
	}
	if *user.PasswordHash == "a long password" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte("a long password")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Fatalf("expected USER role, got %s", user.Role)
	}
}

func TestSignUpDuplicateEmailCaseInsensitive(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestServer(t)
	signUp(t, app, "writer@example.com", "a long password", "Avery")

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/auth/sign-up", fiber.Map{
		"email":     "WRITER@Example.Com",
		"password":  "another password",
		"firstName": "Impostor",
	}, "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
	if envelope.StatusCode != http.StatusConflict {
		t.Fatalf("envelope statusCode mismatch: %d", envelope.StatusCode)
	}
	if envelope.Message == "" {
		t.Fatal("expected error message in envelope")
	}
}

func TestSignInRoundTrip(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestServer(t)
	signUp(t, app, "writer@example.com", "a long password", "Avery")

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/auth/sign-in", fiber.Map{
		"email":    "Writer@Example.com",
		"password": "a long password",
	}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", resp.StatusCode, envelope.Message)
	}

	data := envelope.Data.(map[string]any)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("expected token in response")
	}

	// The issued token opens protected routes.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/users/me", nil, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on /users/me, got %d", resp.StatusCode)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestServer(t)
	signUp(t, app, "writer@example.com", "a long password", "Avery")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/sign-in", fiber.Map{
		"email":    "writer@example.com",
		"password": "not the password",
	}, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestSignInUnknownEmail(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestServer(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/sign-in", fiber.Map{
		"email":    "ghost@example.com",
		"password": "a long password",
	}, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestSignInPasswordlessAccount(t *testing.T) {
	t.Parallel()

	_, app, db := newTestServer(t)

	// An account created through an OAuth provider has no password hash.
	user := models.User{Email: "oauth@example.com", Role: models.RoleUser}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/sign-in", fiber.Map{
		"email":    "oauth@example.com",
		"password": "anything at all",
	}, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestGuardRejectsMissingHeader(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestServer(t)

	resp, envelope := doJSON(t, app, http.MethodGet, "/api/users/me", nil, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if envelope.StatusCode != http.StatusUnauthorized {
		t.Fatalf("envelope statusCode mismatch: %d", envelope.StatusCode)
	}
}

func TestGuardRejectsTamperedToken(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestServer(t)
	token, _ := signUp(t, app, "writer@example.com", "a long password", "Avery")

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/users/me", nil, tampered)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for tampered token, got %d", resp.StatusCode)
	}
}

func TestGuardRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	srv, app, _ := newTestServer(t)
	_, userID := signUp(t, app, "writer@example.com", "a long password", "Avery")

	expired, err := srv.tokens.IssueWithExpiry(userID, "writer@example.com", time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("issue expired token: %v", err)
	}

	resp, _ := doJSON(t, app, http.MethodGet, "/api/users/me", nil, expired)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", resp.StatusCode)
	}
}

func TestPublicRoutesNeedNoToken(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestServer(t)
	signUp(t, app, "writer@example.com", "a long password", "Avery")

	resp, _ := doJSON(t, app, http.MethodGet, "/api/posts", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on public posts, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodGet, "/api/users/1", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on public profile, got %d", resp.StatusCode)
	}

	// The public profile route must not open up /users/me.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/users/me", nil, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 on /users/me without a token, got %d", resp.StatusCode)
	}
}

func TestSignOutRevokesToken(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	_, app, _ := newTestServerWithRedis(t, rdb)
	token, _ := signUp(t, app, "writer@example.com", "a long password", "Avery")

	resp, _ := doJSON(t, app, http.MethodGet, "/api/users/me", nil, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 before sign-out, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/sign-out", nil, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on sign-out, got %d", resp.StatusCode)
	}

	resp, envelope := doJSON(t, app, http.MethodGet, "/api/users/me", nil, token)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 after sign-out, got %d", resp.StatusCode)
	}
	if envelope.Message != "Token has been revoked" {
		t.Fatalf("unexpected message %q", envelope.Message)
	}

	// Signing in again issues a fresh token unaffected by the old jti.
	resp, envelope = doJSON(t, app, http.MethodPost, "/api/auth/sign-in", fiber.Map{
		"email":    "writer@example.com",
		"password": "a long password",
	}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on fresh sign-in, got %d", resp.StatusCode)
	}
	fresh, _ := envelope.Data.(map[string]any)["token"].(string)
	resp, _ = doJSON(t, app, http.MethodGet, "/api/users/me", nil, fresh)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with fresh token, got %d", resp.StatusCode)
	}
}

func TestGoogleRedirectUnconfigured(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 when Google is not configured, got %d", resp.StatusCode)
	}
}
