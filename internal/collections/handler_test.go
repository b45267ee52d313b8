package collections_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"hr-blob-backend/internal/bootstrap"
	"hr-blob-backend/internal/shared/config"
)

func buildTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		DataBucket:      "data-container",
		DocumentsBucket: "documents-container",
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewBuffer(data)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeRecord(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var rec map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rec
}

func TestPersonLifecycle(t *testing.T) {
	app := buildTestApp(t)
	router := app.Router

	// Create.
	resp := doJSON(t, router, http.MethodPost, "/api/people", map[string]any{
		"name":       "Jane Smith",
		"email":      "jane@example.com",
		"position":   "PM",
		"department": "Product",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	created := decodeRecord(t, resp)
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("expected generated id")
	}
	if created["created_at"] != created["updated_at"] {
		t.Fatalf("expected equal timestamps on create")
	}

	// Get.
	resp = doJSON(t, router, http.MethodGet, "/api/people/"+id, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", resp.Code)
	}
	got := decodeRecord(t, resp)
	if got["name"] != "Jane Smith" || got["email"] != "jane@example.com" {
		t.Fatalf("get mismatch: %#v", got)
	}

	// Update one field.
	time.Sleep(2 * time.Millisecond)
	resp = doJSON(t, router, http.MethodPut, "/api/people/"+id, map[string]any{
		"position": "Senior PM",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	updated := decodeRecord(t, resp)
	if updated["position"] != "Senior PM" {
		t.Fatalf("expected updated position, got %v", updated["position"])
	}
	if updated["name"] != "Jane Smith" {
		t.Fatalf("unpatched field changed: %v", updated["name"])
	}
	if updated["updated_at"].(string) <= created["updated_at"].(string) {
		t.Fatalf("updated_at must increase: %v -> %v", created["updated_at"], updated["updated_at"])
	}

	// Delete.
	resp = doJSON(t, router, http.MethodDelete, "/api/people/"+id, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", resp.Code)
	}
	deleted := decodeRecord(t, resp)
	if deleted["message"] != "Person deleted" {
		t.Fatalf("unexpected delete message: %v", deleted["message"])
	}
	item, _ := deleted["item"].(map[string]any)
	if item == nil || item["id"] != id {
		t.Fatalf("delete must return the removed record, got %#v", deleted["item"])
	}

	// Gone.
	resp = doJSON(t, router, http.MethodGet, "/api/people/"+id, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.Code)
	}
}

func TestCreateRejectsMissingFields(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app.Router, http.MethodPost, "/api/alerts", map[string]any{
		"title": "Visa renewal",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %q", body.Error.Code)
	}
	if body.Error.Message != "employee_id, alert_date are required" {
		t.Fatalf("unexpected message: %q", body.Error.Message)
	}
}

func TestUpdateUnknownIDIs404(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app.Router, http.MethodPut, "/api/work-items/missing", map[string]any{
		"status": "done",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestListEmptyCollections(t *testing.T) {
	app := buildTestApp(t)

	for _, path := range []string{"/api/people", "/api/work-items", "/api/alerts", "/api/documents"} {
		resp := doJSON(t, app.Router, http.MethodGet, path, nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.Code)
		}
		var records []map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
			t.Fatalf("%s: decode: %v", path, err)
		}
		if len(records) != 0 {
			t.Fatalf("%s: expected empty array, got %d", path, len(records))
		}
	}
}

func TestBootstrapEndpointIsIdempotent(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app.Router, http.MethodPost, "/api/bootstrap", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("bootstrap: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var first struct {
		Container     string   `json:"container"`
		CreatedFiles  []string `json:"created_files"`
		ExistingFiles []string `json:"existing_files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if first.Container != "data-container" {
		t.Fatalf("unexpected container: %q", first.Container)
	}
	if len(first.CreatedFiles) != 4 || len(first.ExistingFiles) != 0 {
		t.Fatalf("first run should create all files: %+v", first)
	}

	resp = doJSON(t, app.Router, http.MethodGet, "/api/bootstrap", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("bootstrap again: expected 200, got %d", resp.Code)
	}
	var second struct {
		CreatedFiles  []string `json:"created_files"`
		ExistingFiles []string `json:"existing_files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&second); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(second.CreatedFiles) != 0 || len(second.ExistingFiles) != 4 {
		t.Fatalf("second run should find all files: %+v", second)
	}
}
