package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:          "0",
		Env:           "test",
		JWTSecret:     "test-secret-key-used-only-in-tests!",
		TokenTTLHours: 1,
	}
}

// newTestServer builds a Server over an in-memory database with the full
// route table mounted, without the outer middleware stack.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	return newTestServerWithRedis(t, nil)
}

// newTestServerWithRedis is newTestServer with an injected Redis client,
// for tests that exercise revocation.
func newTestServerWithRedis(t *testing.T, rdb *redis.Client) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	srv, err := NewServerWithDeps(testConfig(), db, rdb)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, models.NewInternalError(err))
		},
	})
	srv.SetupRoutes(app)

	return srv, app, db
}

// doJSON performs a request with an optional JSON body and bearer token,
// returning the response and its decoded envelope.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (*http.Response, models.Envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	var envelope models.Envelope
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	_ = resp.Body.Close()
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &envelope); err != nil {
			t.Fatalf("decode envelope from %q: %v", raw, err)
		}
	}

	return resp, envelope
}

// signUp registers a user through the API and returns the issued token and
// user ID.
func signUp(t *testing.T, app *fiber.App, email, password, firstName string) (string, uint) {
	t.Helper()

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/auth/sign-up", fiber.Map{
		"email":     email,
		"password":  password,
		"firstName": firstName,
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("sign-up %s: expected 201, got %d (%s)", email, resp.StatusCode, envelope.Message)
	}

	data, ok := envelope.Data.(map[string]any)
	if !ok {
		t.Fatalf("sign-up %s: missing data in envelope", email)
	}
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatalf("sign-up %s: missing token", email)
	}
	user, _ := data["user"].(map[string]any)
	id, _ := user["id"].(float64)
	if id == 0 {
		t.Fatalf("sign-up %s: missing user ID", email)
	}

	return token, uint(id)
}
