package main

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/qzlaw/office-backend/internal/storage"
	"github.com/qzlaw/office-backend/pkg/config"
	"github.com/qzlaw/office-backend/pkg/models"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		AllowedOrigins:   []string{"*"},
		UploadDir:        t.TempDir(),
		CaseNumberPrefix: "QZ",
	}
	return newApp(cfg, db, storage.NewLocal(t.TempDir()))
}

/* ===== Tests — OPTIONS contract ===== */

func Test_Options_Preflight_Returns200Empty(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodOptions, "/api/cases", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("preflight status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if len(body) != 0 {
		t.Fatalf("preflight body = %q, want empty", body)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") == "" {
		t.Fatal("preflight response is missing CORS headers")
	}
}

func Test_Options_WithoutPreflightHeaders_Returns200Empty(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/cases", "/api/clients", "/api/stats"} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodOptions, path, nil))
		if err != nil {
			t.Fatalf("request %s: %v", path, err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("OPTIONS %s status = %d, want 200", path, resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		if len(body) != 0 {
			t.Fatalf("OPTIONS %s body = %q, want empty", path, body)
		}
	}
}

func Test_Options_DoesNotShadowOtherMethods(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/clients", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("GET /api/clients status = %d, want 200", resp.StatusCode)
	}
}
