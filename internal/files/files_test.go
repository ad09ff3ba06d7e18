package files

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/qzlaw/office-backend/internal/storage"
	"github.com/qzlaw/office-backend/pkg/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestApp(db *gorm.DB, dir string) *fiber.App {
	h := NewHandler(db, storage.NewLocal(dir))
	app := fiber.New()
	app.Get("/api/upload", h.List)
	app.Post("/api/upload", h.Upload)
	app.Delete("/api/upload", h.Delete)
	return app
}

// doUpload builds a multipart POST with a case_id field and one file.
func doUpload(t *testing.T, app *fiber.App, caseID, filename, content string) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if caseID != "" {
		if err := w.WriteField("case_id", caseID); err != nil {
			t.Fatal(err)
		}
	}
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", "/api/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

/* ============================================================================
   Tests — upload
   ============================================================================ */

func Test_Upload_StoresArtifactAndMetadata(t *testing.T) {
	db := openTestDB(t)
	dir := t.TempDir()
	app := newTestApp(db, dir)

	status, out := doUpload(t, app, "case-1", "contract.pdf", "pdf bytes")
	if status != 201 {
		t.Fatalf("want 201, got %d (%v)", status, out)
	}

	id, _ := out["id"].(string)
	if len(id) < 4 || id[:3] != "cf-" {
		t.Fatalf("id should carry cf- prefix, got %q", id)
	}
	if out["original_name"] != "contract.pdf" {
		t.Fatalf("unexpected original_name %v", out["original_name"])
	}

	key, _ := out["filename"].(string)
	if filepath.Ext(key) != ".pdf" {
		t.Fatalf("stored key should keep the extension, got %q", key)
	}
	data, err := os.ReadFile(filepath.Join(dir, key))
	if err != nil {
		t.Fatalf("artifact missing: %v", err)
	}
	if string(data) != "pdf bytes" {
		t.Fatalf("artifact content mismatch: %q", data)
	}

	var rec models.CaseFile
	if err := db.Take(&rec, "id = ?", id).Error; err != nil {
		t.Fatal(err)
	}
	if rec.CaseID != "case-1" || rec.Filename != key {
		t.Fatalf("metadata row wrong: %#v", rec)
	}
	if rec.FileSize != int64(len("pdf bytes")) {
		t.Fatalf("want size %d, got %d", len("pdf bytes"), rec.FileSize)
	}
}

func Test_Upload_MissingParts_Rejected(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db, t.TempDir())

	if status, out := doUpload(t, app, "", "a.pdf", "x"); status != 400 || out["error"] != "case_id is required" {
		t.Fatalf("missing case_id: got %d %v", status, out)
	}
	if status, out := doUpload(t, app, "case-1", "", ""); status != 400 || out["error"] != "No file uploaded" {
		t.Fatalf("missing file: got %d %v", status, out)
	}
}

/* ============================================================================
   Tests — list and delete
   ============================================================================ */

func Test_List_FiltersByCase(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db, t.TempDir())

	doUpload(t, app, "case-1", "a.pdf", "a")
	doUpload(t, app, "case-1", "b.pdf", "b")
	doUpload(t, app, "case-2", "c.pdf", "c")

	resp, _ := app.Test(httptest.NewRequest("GET", "/api/upload?case_id=case-1", nil))
	var list []models.CaseFile
	_ = json.NewDecoder(resp.Body).Decode(&list)
	if len(list) != 2 {
		t.Fatalf("want 2 files for case-1, got %d", len(list))
	}

	resp2, _ := app.Test(httptest.NewRequest("GET", "/api/upload", nil))
	if resp2.StatusCode != 400 {
		t.Fatalf("missing case_id: want 400, got %d", resp2.StatusCode)
	}
}

// First delete removes artifact and row; the second must 404 because the
// row is the source of truth once in sync.
func Test_Delete_ThenDeleteAgain(t *testing.T) {
	db := openTestDB(t)
	dir := t.TempDir()
	app := newTestApp(db, dir)

	_, out := doUpload(t, app, "case-1", "doc.pdf", "x")
	id := out["id"].(string)
	key := out["filename"].(string)

	resp, _ := app.Test(httptest.NewRequest("DELETE", "/api/upload?id="+id, nil))
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	if _, err := os.Stat(filepath.Join(dir, key)); !os.IsNotExist(err) {
		t.Fatalf("artifact should be removed, stat err=%v", err)
	}
	var n int64
	db.Model(&models.CaseFile{}).Count(&n)
	if n != 0 {
		t.Fatalf("row should be gone, %d left", n)
	}

	resp2, _ := app.Test(httptest.NewRequest("DELETE", "/api/upload?id="+id, nil))
	if resp2.StatusCode != 404 {
		t.Fatalf("second delete want 404, got %d", resp2.StatusCode)
	}
}

// An artifact that vanished outside the API must not wedge the metadata:
// delete still succeeds and removes the row.
func Test_Delete_ToleratesMissingArtifact(t *testing.T) {
	db := openTestDB(t)
	dir := t.TempDir()
	app := newTestApp(db, dir)

	_, out := doUpload(t, app, "case-1", "doc.pdf", "x")
	id := out["id"].(string)
	key := out["filename"].(string)

	if err := os.Remove(filepath.Join(dir, key)); err != nil {
		t.Fatal(err)
	}

	resp, _ := app.Test(httptest.NewRequest("DELETE", "/api/upload?id="+id, nil))
	if resp.StatusCode != 200 {
		t.Fatalf("want 200 for already-absent artifact, got %d", resp.StatusCode)
	}
	var n int64
	db.Model(&models.CaseFile{}).Count(&n)
	if n != 0 {
		t.Fatalf("row should be gone, %d left", n)
	}
}
