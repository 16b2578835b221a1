package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"storefront/internal/http/handlers"
	"storefront/internal/repos"
)

// newApp builds the app exactly as the binary does, on a private in-memory
// database.
func newApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB("file:"+uuid.NewString()+"?mode=memory&cache=shared", false)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	app := fiber.New()
	app.Server().MaxRequestBodySize = 1 << 20
	app.Use(requestid.New())
	handlers.Register(app, handlers.NewDeps(db))
	return app, db
}

func seedUser(t *testing.T, db *sqlx.DB, username string) int64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO users(username,email,first_name,password_hash) VALUES(?,?,?,'x')`,
		username, username+"@storefront.test", username)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

func decode(t *testing.T, b []byte, dst any) {
	t.Helper()
	if err := json.Unmarshal(b, dst); err != nil {
		t.Fatalf("decode %s: %v", b, err)
	}
}
