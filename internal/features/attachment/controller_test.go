package attachment

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-coursecreator/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// SkipAuth injects user "1", so rows owned by "1" belong to the caller.
func setupAttachmentApp(repo *MockAttachmentRepo, store *MockStorage) *fiber.App {
	cfg := &config.Config{SkipAuth: true, DefaultOrg: "AI", FSURL: "/media", FSPath: "."}
	svc := newTestService(repo, store)
	app := fiber.New()
	NewAttachmentApi(NewAttachmentController(svc, zap.NewNop()), cfg).Setup(app)
	return app
}

func multipartUpload(t *testing.T, filename, content, description string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	if description != "" {
		require.NoError(t, w.WriteField("description", description))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/attachments/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func doJSON(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestUploadEndpoint(t *testing.T) {
	repo, store := newMockRepo(), newMockStorage()
	app := setupAttachmentApp(repo, store)

	status, body := doJSON(t, app, multipartUpload(t, "outline.docx", "hello", "draft"))

	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "success", body["status"])
	att := body["attachment"].(map[string]any)
	assert.Equal(t, "outline.docx", att["filename"])
	assert.Equal(t, "docx", att["file_extension"])
	assert.Equal(t, true, att["is_supported_format"])
	assert.Equal(t, "AI", att["org"])
	assert.Equal(t, "dev", att["username"])
	assert.EqualValues(t, 5, att["file_size"])
}

func TestUploadEndpointRejections(t *testing.T) {
	repo, store := newMockRepo(), newMockStorage()
	app := setupAttachmentApp(repo, store)

	status, body := doJSON(t, app, multipartUpload(t, "payload.exe", "MZ", ""))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "failed", body["status"])
	assert.Contains(t, body["message"], "pdf, docx")

	status, body = doJSON(t, app, multipartUpload(t, "", "", "only description"))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid data", body["message"])

	assert.Equal(t, 0, store.Saves)
	assert.Equal(t, 0, repo.Creates)
}

func TestListEndpointFiltersByFileType(t *testing.T) {
	repo := newMockRepo(
		Attachment{ID: 1, UserID: "1", Org: "AI", FileType: "application/pdf", FilePath: "a.pdf", FileExtension: "pdf"},
		Attachment{ID: 2, UserID: "1", Org: "AI", FileType: "text/csv", FilePath: "b.csv", FileExtension: "csv"},
		Attachment{ID: 3, UserID: "1", Org: "other", FileType: "application/pdf", FilePath: "c.pdf"},
		Attachment{ID: 4, UserID: "2", Org: "AI", FileType: "application/pdf", FilePath: "d.pdf"},
	)
	app := setupAttachmentApp(repo, newMockStorage())

	status, body := doJSON(t, app, httptest.NewRequest("GET", "/attachments/?file_type=PDF", nil))
	assert.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, body["count"])
	items := body["attachments"].([]any)
	first := items[0].(map[string]any)
	assert.EqualValues(t, 1, first["id"])
	assert.Equal(t, "/media/a.pdf", first["file_url"])

	_, body = doJSON(t, app, httptest.NewRequest("GET", "/attachments/", nil))
	assert.EqualValues(t, 2, body["count"])
}

func TestDetailEndpointsHideForeignRows(t *testing.T) {
	repo := newMockRepo(
		Attachment{ID: 1, UserID: "1", Org: "AI", FilePath: "mine.pdf"},
		Attachment{ID: 2, UserID: "2", Org: "AI", FilePath: "theirs.pdf"},
	)
	app := setupAttachmentApp(repo, newMockStorage("mine.pdf", "theirs.pdf"))

	status, body := doJSON(t, app, httptest.NewRequest("GET", "/attachments/1/", nil))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "/media/mine.pdf", body["attachment"].(map[string]any)["file_url"])

	for _, method := range []string{"GET", "PATCH", "DELETE"} {
		foreignStatus, foreignBody := doJSON(t, app, httptest.NewRequest(method, "/attachments/2/", nil))
		missingStatus, missingBody := doJSON(t, app, httptest.NewRequest(method, "/attachments/999/", nil))

		assert.Equal(t, fiber.StatusNotFound, foreignStatus, method)
		assert.Equal(t, missingStatus, foreignStatus, method)
		assert.Equal(t, missingBody, foreignBody, method)
	}
	assert.Equal(t, 2, repo.count())
}

func TestPatchAndDeleteEndpoints(t *testing.T) {
	repo := newMockRepo(Attachment{ID: 1, UserID: "1", Org: "AI", FilePath: "mine.pdf", Description: "old"})
	store := newMockStorage("mine.pdf")
	app := setupAttachmentApp(repo, store)

	req := httptest.NewRequest("PATCH", "/attachments/1/", strings.NewReader(`{"description":"new text"}`))
	req.Header.Set("Content-Type", "application/json")
	status, body := doJSON(t, app, req)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "new text", body["attachment"].(map[string]any)["description"])

	status, body = doJSON(t, app, httptest.NewRequest("DELETE", "/attachments/1/", nil))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Attachment deleted successfully", body["message"])
	assert.Equal(t, 0, repo.count())
	assert.Equal(t, 1, store.Deletes)
}

func TestBulkDeleteEndpoint(t *testing.T) {
	repo := newMockRepo(
		Attachment{ID: 1, UserID: "1", FilePath: "p1"},
		Attachment{ID: 2, UserID: "1", FilePath: "p2"},
	)
	app := setupAttachmentApp(repo, newMockStorage("p1", "p2"))

	post := func(payload string) *http.Request {
		req := httptest.NewRequest("POST", "/attachments/bulk-delete/", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	status, _ := doJSON(t, app, post(`{"attachment_ids": []}`))
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doJSON(t, app, post(`{"attachment_ids": [42]}`))
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body := doJSON(t, app, post(`{"attachment_ids": [1, 2, 42]}`))
	assert.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 2, body["deleted_count"])
	assert.Equal(t, "Deleted 2 attachments", body["message"])
	assert.NotContains(t, body, "failed_deletions")
}
