package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAdminProductDetail(t *testing.T) {
	app, db := newApp(t)
	uid := seedUser(t, db, "alice")
	pid := createProduct(t, app, "Airpods", "89.99")
	if _, err := db.Exec(`UPDATE products SET user_id = ? WHERE id = ?`, uid, int64(pid)); err != nil {
		t.Fatal(err)
	}

	_, body := doJSON(t, app, "GET", fmt.Sprintf("/admin/products/%.0f/", pid), "")
	var detail map[string]any
	decode(t, body, &detail)
	if detail["user"].(float64) != float64(uid) {
		t.Fatalf("detail must expose the owning user: %s", body)
	}
	if detail["created_at"] == nil || detail["updated_at"] == nil {
		t.Fatalf("detail must expose timestamps: %s", body)
	}
}

func TestAdminDeleteUserNullifiesReferences(t *testing.T) {
	app, db := newApp(t)
	uid := seedUser(t, db, "alice")
	pid := createProduct(t, app, "Airpods", "89.99")
	if _, err := db.Exec(`UPDATE products SET user_id = ? WHERE id = ?`, uid, int64(pid)); err != nil {
		t.Fatal(err)
	}

	resp, _ := doJSON(t, app, "POST", fmt.Sprintf("/admin/users/%d/delete", uid), "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	// the product row survives with its reference nulled
	resp, body := doJSON(t, app, "GET", fmt.Sprintf("/admin/products/%.0f/", pid), "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("product must survive user deletion, got %d", resp.StatusCode)
	}
	var detail map[string]any
	decode(t, body, &detail)
	if detail["user"] != nil {
		t.Fatalf("user reference must be null: %s", body)
	}

	resp, _ = doJSON(t, app, "POST", fmt.Sprintf("/admin/users/%d/delete", uid), "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for missing user, got %d", resp.StatusCode)
	}
}

func TestAdminUsersList(t *testing.T) {
	app, db := newApp(t)
	seedUser(t, db, "alice")
	seedUser(t, db, "bob")

	_, body := doJSON(t, app, "GET", "/admin/users/", "")
	var users []map[string]any
	decode(t, body, &users)
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %s", body)
	}
	if users[0]["username"] != "alice" {
		t.Fatalf("unexpected user payload: %s", body)
	}
	if _, present := users[0]["password_hash"]; present {
		t.Fatalf("password hash must never serialize: %s", body)
	}
}
