package cases

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/qzlaw/office-backend/internal/storage"
	"github.com/qzlaw/office-backend/pkg/models"
)

/* ============================================================================
   Helpers
   ============================================================================ */

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

func newTestApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Get("/api/cases", h.Get)
	app.Post("/api/cases", h.Create)
	app.Put("/api/cases", h.Update)
	app.Delete("/api/cases", h.Delete)
	return app
}

func newHandler(t *testing.T, db *gorm.DB) *Handler {
	t.Helper()
	return NewHandler(db, storage.NewLocal(t.TempDir()), "QZ")
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (int, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func putJSON(t *testing.T, app *fiber.App, path string, body any) (int, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("PUT", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func seedClient(t *testing.T, db *gorm.DB, id string) {
	t.Helper()
	if err := db.Create(&models.Client{ID: id, Name: "Test Client"}).Error; err != nil {
		t.Fatal(err)
	}
}

/* ============================================================================
   Tests — creation side effects
   ============================================================================ */

// Creating a case must insert the row, bump the client's counter and write
// the opening timeline entry, all visible together.
func Test_Create_BumpsCounter_And_WritesOpeningEntry(t *testing.T) {
	db := openTestDB(t)
	seedClient(t, db, "cl-1")

	app := newTestApp(newHandler(t, db))
	status, out := postJSON(t, app, "/api/cases", map[string]any{
		"client_id": "cl-1",
		"type":      "قضية تجارية",
		"tribunal":  "المحكمة الابتدائية",
	})
	if status != 201 {
		t.Fatalf("want 201, got %d (%v)", status, out)
	}

	id, _ := out["id"].(string)
	if len(id) < 6 || id[:5] != "case-" {
		t.Fatalf("id should carry case- prefix, got %q", id)
	}
	number, _ := out["case_number"].(string)
	if !IsCaseNumber(number) {
		t.Fatalf("malformed case_number %q", number)
	}

	var cl models.Client
	if err := db.Take(&cl, "id = ?", "cl-1").Error; err != nil {
		t.Fatal(err)
	}
	if cl.CasesCount != 1 {
		t.Fatalf("want cases_count=1, got %d", cl.CasesCount)
	}

	var entries []models.TimelineEntry
	if err := db.Where("case_id = ?", id).Find(&entries).Error; err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("want 1 opening entry, got %d", len(entries))
	}
	if entries[0].Title != "فتح الملف" {
		t.Fatalf("unexpected opening title %q", entries[0].Title)
	}
	if entries[0].Date != time.Now().Format("2006-01-02") {
		t.Fatalf("opening entry should be dated today, got %q", entries[0].Date)
	}
}

// A case without a client is fine; no counter is touched.
func Test_Create_WithoutClient_OK(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(newHandler(t, db))

	status, out := postJSON(t, app, "/api/cases", map[string]any{"type": "قضية أسرة"})
	if status != 201 {
		t.Fatalf("want 201, got %d (%v)", status, out)
	}
}

func Test_Create_MissingType_Rejected(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(newHandler(t, db))

	status, out := postJSON(t, app, "/api/cases", map[string]any{"title": "no type"})
	if status != 400 {
		t.Fatalf("want 400, got %d", status)
	}
	if out["error"] != "type is required" {
		t.Fatalf("unexpected error body: %v", out)
	}
}

func Test_Create_BadStatus_Rejected(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(newHandler(t, db))

	status, _ := postJSON(t, app, "/api/cases", map[string]any{
		"type":   "قضية شغل",
		"status": "في المحكمة", // presentation label, not a machine tag
	})
	if status != 400 {
		t.Fatalf("want 400 for non-enum status, got %d", status)
	}
}

/* ============================================================================
   Tests — detail and list views
   ============================================================================ */

func Test_GetDetail_IncludesTimelineFilesAndClientName(t *testing.T) {
	db := openTestDB(t)
	seedClient(t, db, "cl-1")

	app := newTestApp(newHandler(t, db))
	_, out := postJSON(t, app, "/api/cases", map[string]any{
		"client_id": "cl-1",
		"type":      "قضية عقارية",
	})
	id := out["id"].(string)

	if err := db.Create(&models.CaseFile{
		ID: "cf-1", CaseID: id, Filename: "file-x.pdf", OriginalName: "doc.pdf",
	}).Error; err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/api/cases?id="+id, nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}

	var detail struct {
		ID         string                 `json:"id"`
		ClientName string                 `json:"client_name"`
		Timeline   []models.TimelineEntry `json:"timeline"`
		Files      []models.CaseFile      `json:"files"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&detail)

	if detail.ClientName != "Test Client" {
		t.Fatalf("client_name not joined, got %q", detail.ClientName)
	}
	if len(detail.Timeline) != 1 {
		t.Fatalf("want opening entry in detail, got %d entries", len(detail.Timeline))
	}
	if len(detail.Files) != 1 {
		t.Fatalf("want 1 file in detail, got %d", len(detail.Files))
	}
}

func Test_Get_UnknownID_404(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(newHandler(t, db))

	req := httptest.NewRequest("GET", "/api/cases?id=case-nope", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != 404 {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	if out["error"] != "Case not found" {
		t.Fatalf("unexpected body: %v", out)
	}
}

func Test_List_NewestFirst(t *testing.T) {
	db := openTestDB(t)

	old := models.Case{ID: "case-old", CaseNumber: "QZ-2024-0001", Type: "a", Status: models.CaseStatusNew, CreatedAt: time.Now().Add(-time.Hour)}
	fresh := models.Case{ID: "case-new", CaseNumber: "QZ-2024-0002", Type: "b", Status: models.CaseStatusNew, CreatedAt: time.Now()}
	if err := db.Create(&old).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&fresh).Error; err != nil {
		t.Fatal(err)
	}

	app := newTestApp(newHandler(t, db))
	req := httptest.NewRequest("GET", "/api/cases", nil)
	resp, _ := app.Test(req)

	var rows []struct {
		ID string `json:"id"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&rows)
	if len(rows) != 2 || rows[0].ID != "case-new" {
		t.Fatalf("want newest first, got %#v", rows)
	}
}

/* ============================================================================
   Tests — update is a full overwrite
   ============================================================================ */

func Test_Update_OverwritesEveryField(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(newHandler(t, db))

	_, out := postJSON(t, app, "/api/cases", map[string]any{
		"type":         "قضية تجارية",
		"title":        "initial",
		"tribunal":     "somewhere",
		"next_session": "2026-09-10",
	})
	id := out["id"].(string)

	// Body carries only status; everything else must be blanked.
	status, _ := putJSON(t, app, "/api/cases?id="+id, map[string]any{"status": "closed"})
	if status != 200 {
		t.Fatalf("want 200, got %d", status)
	}

	var cs models.Case
	if err := db.Take(&cs, "id = ?", id).Error; err != nil {
		t.Fatal(err)
	}
	if cs.Status != models.CaseStatusClosed {
		t.Fatalf("status not updated: %q", cs.Status)
	}
	if cs.Title != "" || cs.Tribunal != "" {
		t.Fatalf("omitted fields should be overwritten empty, got title=%q tribunal=%q", cs.Title, cs.Tribunal)
	}
	if cs.NextSession != nil {
		t.Fatalf("next_session should be nulled, got %q", *cs.NextSession)
	}
	if !IsCaseNumber(cs.CaseNumber) {
		t.Fatalf("case_number must survive updates, got %q", cs.CaseNumber)
	}
}

func Test_Update_MissingID_400(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(newHandler(t, db))

	status, out := putJSON(t, app, "/api/cases", map[string]any{"status": "closed"})
	if status != 400 || out["error"] != "ID required" {
		t.Fatalf("want 400 ID required, got %d %v", status, out)
	}
}

/* ============================================================================
   Tests — delete cascades
   ============================================================================ */

func Test_Delete_Cascades_And_DecrementsCounter(t *testing.T) {
	db := openTestDB(t)
	seedClient(t, db, "cl-1")

	dir := t.TempDir()
	h := NewHandler(db, storage.NewLocal(dir), "QZ")
	app := newTestApp(h)

	_, out := postJSON(t, app, "/api/cases", map[string]any{
		"client_id": "cl-1",
		"type":      "قضية تجارية",
	})
	id := out["id"].(string)

	// Attach an artifact plus its metadata row.
	key := "file-abc.pdf"
	if err := os.WriteFile(filepath.Join(dir, key), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&models.CaseFile{ID: "cf-1", CaseID: id, Filename: key}).Error; err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("DELETE", "/api/cases?id="+id, nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}

	var n int64
	db.Model(&models.TimelineEntry{}).Where("case_id = ?", id).Count(&n)
	if n != 0 {
		t.Fatalf("timeline rows should be gone, %d left", n)
	}
	db.Model(&models.CaseFile{}).Where("case_id = ?", id).Count(&n)
	if n != 0 {
		t.Fatalf("file rows should be gone, %d left", n)
	}
	if _, err := os.Stat(filepath.Join(dir, key)); !os.IsNotExist(err) {
		t.Fatalf("artifact should be removed, stat err=%v", err)
	}

	var cl models.Client
	if err := db.Take(&cl, "id = ?", "cl-1").Error; err != nil {
		t.Fatal(err)
	}
	if cl.CasesCount != 0 {
		t.Fatalf("want cases_count back to 0, got %d", cl.CasesCount)
	}

	// Gone means gone.
	resp2, _ := app.Test(httptest.NewRequest("DELETE", "/api/cases?id="+id, nil))
	if resp2.StatusCode != 404 {
		t.Fatalf("second delete want 404, got %d", resp2.StatusCode)
	}
}

// The counter never goes negative, even when it was already zero.
func Test_Delete_CounterNeverNegative(t *testing.T) {
	db := openTestDB(t)
	seedClient(t, db, "cl-1")

	if err := db.Create(&models.Case{
		ID: "case-x", CaseNumber: "QZ-2024-0100", ClientID: "cl-1",
		Type: "t", Status: models.CaseStatusNew,
	}).Error; err != nil {
		t.Fatal(err)
	}

	app := newTestApp(newHandler(t, db))
	resp, _ := app.Test(httptest.NewRequest("DELETE", "/api/cases?id=case-x", nil))
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}

	var cl models.Client
	if err := db.Take(&cl, "id = ?", "cl-1").Error; err != nil {
		t.Fatal(err)
	}
	if cl.CasesCount != 0 {
		t.Fatalf("counter must stay at 0, got %d", cl.CasesCount)
	}
}
