package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/programme-lv/contactform/contact"
	contacthttp "github.com/programme-lv/contactform/contact/http"
	"github.com/programme-lv/contactform/logger"
	"github.com/programme-lv/contactform/s3bucket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupContactHandler(t *testing.T) (http.Handler, *s3bucket.InMemBucket) {
	t.Helper()
	bucket := s3bucket.NewInMemBucket()
	handler := contacthttp.NewContactHttpHandler(contact.NewContactSrvc(bucket))
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router, bucket
}

func post(t *testing.T, h http.Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp
}

func TestPostSubmissionSuccess(t *testing.T) {
	h, bucket := setupContactHandler(t)

	w := post(t, h, `{"firstName":"Jo","lastName":"Doe","email":"jo@example.com"}`, map[string]string{
		"Referer":    "https://example.com/contact",
		"User-Agent": "test-agent",
	})

	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	resp := decodeResponse(t, w)
	assert.Equal(t, true, resp["ok"])
	id, _ := resp["id"].(string)
	require.NotEmpty(t, id)

	// id starts with the submittedAt date, which must match the key's date segments
	date := id[:10] // YYYY-MM-DD
	key := "contact-submissions/" + strings.ReplaceAll(date, "-", "/") + "/" + id + ".json"
	obj, ok := bucket.Object(key)
	require.True(t, ok, "expected object at %s", key)

	var record contact.Record
	require.NoError(t, json.Unmarshal(obj.Content, &record))
	assert.Equal(t, id, record.SubmissionID)
	assert.True(t, strings.HasPrefix(record.SubmittedAt, date))
	assert.Equal(t, "https://example.com/contact", record.Source)
	assert.Equal(t, "test-agent", record.UserAgent)
}

func TestPostSubmissionOriginPreferredOverReferer(t *testing.T) {
	h, bucket := setupContactHandler(t)

	w := post(t, h, `{"firstName":"Jo","lastName":"Doe","email":"jo@example.com"}`, map[string]string{
		"Origin":  "https://origin.example",
		"Referer": "https://referer.example/page",
	})
	require.Equal(t, http.StatusOK, w.Code)

	keys, err := bucket.ListFiles(context.Background(), contact.KeyPrefix)
	require.NoError(t, err)
	require.Len(t, keys, 1)
	obj, _ := bucket.Object(keys[0])
	assert.Contains(t, string(obj.Content), `"source": "https://origin.example"`)
}

func TestPostSubmissionHoneypot(t *testing.T) {
	h, bucket := setupContactHandler(t)

	w := post(t, h, `{"firstName":"Jo","lastName":"Doe","email":"jo@example.com","website":"spam.example"}`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]any{"ok": false, "error": "Unable to process submission."}, decodeResponse(t, w))
	assert.Equal(t, 0, bucket.Len())
}

func TestPostSubmissionInvalidEmail(t *testing.T) {
	h, bucket := setupContactHandler(t)

	w := post(t, h, `{"firstName":"Jo","lastName":"Doe","email":"not-an-email"}`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please provide a valid email address.", decodeResponse(t, w)["error"])
	assert.Equal(t, 0, bucket.Len())
}

func TestPostSubmissionUnparsableBodyIsEmptyObject(t *testing.T) {
	h, bucket := setupContactHandler(t)

	for _, body := range []string{"", "not json", `[1,2,3]`, `"string"`} {
		w := post(t, h, body, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
		assert.Equal(t, "First name, last name, and email are required.", decodeResponse(t, w)["error"])
	}
	assert.Equal(t, 0, bucket.Len())
}

func TestPostSubmissionStorageFailure(t *testing.T) {
	h, bucket := setupContactHandler(t)
	bucket.UploadErr = func(string) error { return errors.New("RequestTimeout: eu-central-1") }

	w := post(t, h, `{"firstName":"Jo","lastName":"Doe","email":"jo@example.com"}`, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]any{"ok": false, "error": "Unable to save your message right now."}, decodeResponse(t, w))
	assert.NotContains(t, w.Body.String(), "eu-central-1")
}

func TestPostSubmissionStorageFailureLoggedOnceWithKey(t *testing.T) {
	h, bucket := setupContactHandler(t)
	bucket.UploadErr = func(string) error { return errors.New("RequestTimeout: eu-central-1") }

	var logs bytes.Buffer
	ctx := logger.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, nil)))

	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"firstName":"Jo","lastName":"Doe","email":"jo@example.com"}`)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var errorLines []string
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		if strings.Contains(line, "level=ERROR") {
			errorLines = append(errorLines, line)
		}
	}
	require.Len(t, errorLines, 1, "logs: %s", logs.String())
	assert.Contains(t, errorLines[0], "object_key=contact-submissions/")
	assert.Contains(t, errorLines[0], "RequestTimeout: eu-central-1")
}

func TestPostSubmissionStorageNotConfigured(t *testing.T) {
	router := chi.NewRouter()
	contacthttp.NewContactHttpHandler(nil).RegisterRoutes(router)

	w := post(t, router, `{"firstName":"Jo","lastName":"Doe","email":"jo@example.com"}`, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]any{"ok": false, "error": "Storage is not configured."}, decodeResponse(t, w))
}

func TestNonPostMethodsNotAllowed(t *testing.T) {
	h, _ := setupContactHandler(t)

	for _, method := range []string{
		http.MethodGet, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodOptions,
	} {
		req := httptest.NewRequest(method, "/", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
		assert.Equal(t, map[string]any{"ok": false, "error": "Method not allowed."}, decodeResponse(t, w), method)
	}
}
