package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pablasso/taskdeck/internal/repository/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHTTP(t *testing.T) http.Handler {
	t.Helper()

	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	h := NewHandler(repo)
	h.Now = func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC) }
	return h.Routes()
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestCreateTask(t *testing.T) {
	h := setupHTTP(t)

	rec := doRequest(t, h, http.MethodPost, "/api/tasks", `{"title":"  Buy milk ","description":" 2L ","priority":"Medium","due_date":"2026-10-20"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got taskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "2L", got.Description)
	assert.Equal(t, "Medium", got.Priority)
	assert.Equal(t, "2026-10-20", got.DueDate)
	assert.Equal(t, "2026-10-17", got.CreatedDate)
	assert.False(t, got.Status)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCreateTask_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "empty body", body: "", wantMsg: "No data provided"},
		{name: "empty object", body: "{}", wantMsg: "No data provided"},
		{name: "malformed", body: "{", wantMsg: "Invalid JSON body"},
		{name: "missing title", body: `{"priority":"Low"}`, wantMsg: "Title is required"},
		{name: "blank title", body: `{"title":"  ","priority":"Low"}`, wantMsg: "Title is required"},
		{name: "missing priority", body: `{"title":"x"}`, wantMsg: "Valid priority is required (Low, Medium, High)"},
		{name: "bad priority", body: `{"title":"x","priority":"Urgent"}`, wantMsg: "Valid priority is required (Low, Medium, High)"},
		{name: "wrong type", body: `{"title":5,"priority":"Low"}`, wantMsg: "Invalid field type: title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setupHTTP(t)
			rec := doRequest(t, h, http.MethodPost, "/api/tasks", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeError(t, rec))
		})
	}
}

func TestListTasks(t *testing.T) {
	h := setupHTTP(t)

	rec := doRequest(t, h, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	doRequest(t, h, http.MethodPost, "/api/tasks", `{"title":"first","priority":"Low"}`)
	doRequest(t, h, http.MethodPost, "/api/tasks", `{"title":"second","priority":"High"}`)

	rec = doRequest(t, h, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []taskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Title)
	assert.Equal(t, "first", got[1].Title)
}

func TestGetTask(t *testing.T) {
	h := setupHTTP(t)
	doRequest(t, h, http.MethodPost, "/api/tasks", `{"title":"one","priority":"Low"}`)

	rec := doRequest(t, h, http.MethodGet, "/api/tasks/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/tasks/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Task not found", decodeError(t, rec))

	rec = doRequest(t, h, http.MethodGet, "/api/tasks/abc", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Endpoint not found", decodeError(t, rec))
}

func TestUpdateTask_PartialStatus(t *testing.T) {
	h := setupHTTP(t)
	doRequest(t, h, http.MethodPost, "/api/tasks", `{"title":"one","description":"keep","priority":"High","due_date":"2026-12-01"}`)

	rec := doRequest(t, h, http.MethodPut, "/api/tasks/1", `{"status":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got taskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Status)
	assert.Equal(t, "one", got.Title)
	assert.Equal(t, "keep", got.Description)
	assert.Equal(t, "High", got.Priority)
	assert.Equal(t, "2026-12-01", got.DueDate)
	assert.Equal(t, "2026-10-17", got.CreatedDate)
}

func TestUpdateTask_FullFields(t *testing.T) {
	h := setupHTTP(t)
	doRequest(t, h, http.MethodPost, "/api/tasks", `{"title":"one","priority":"High"}`)

	rec := doRequest(t, h, http.MethodPut, "/api/tasks/1", `{"title":"renamed","description":"d","priority":"Low","due_date":""}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/tasks/1", "")
	var got taskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, "Low", got.Priority)
	assert.Equal(t, "d", got.Description)
}

func TestUpdateTask_Errors(t *testing.T) {
	h := setupHTTP(t)
	doRequest(t, h, http.MethodPost, "/api/tasks", `{"title":"one","priority":"High"}`)

	rec := doRequest(t, h, http.MethodPut, "/api/tasks/1", `{"title":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Title cannot be empty", decodeError(t, rec))

	rec = doRequest(t, h, http.MethodPut, "/api/tasks/1", `{"priority":"Someday"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, h, http.MethodPut, "/api/tasks/9", `{"status":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Task not found", decodeError(t, rec))

	rec = doRequest(t, h, http.MethodPut, "/api/tasks/1", ``)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No data provided", decodeError(t, rec))
}

func TestDeleteTask(t *testing.T) {
	h := setupHTTP(t)
	doRequest(t, h, http.MethodPost, "/api/tasks", `{"title":"one","priority":"High"}`)

	rec := doRequest(t, h, http.MethodDelete, "/api/tasks/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Task deleted successfully"}`, rec.Body.String())

	rec = doRequest(t, h, http.MethodDelete, "/api/tasks/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutes_MethodNotAllowedAndUnknown(t *testing.T) {
	h := setupHTTP(t)

	rec := doRequest(t, h, http.MethodPatch, "/api/tasks", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method not allowed", decodeError(t, rec))

	rec = doRequest(t, h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Endpoint not found", decodeError(t, rec))
}

func TestRoot(t *testing.T) {
	h := setupHTTP(t)

	rec := doRequest(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "running", body["status"])
	assert.Contains(t, body, "endpoints")
}

func TestCORSPreflight(t *testing.T) {
	h := setupHTTP(t)

	rec := doRequest(t, h, http.MethodOptions, "/api/tasks/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}
