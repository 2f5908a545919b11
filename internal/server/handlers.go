// Package server is a reference implementation of the task backend. It
// serves the same JSON contract the client consumes, backed by SQLite.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pablasso/taskdeck/internal/logging"
	"github.com/pablasso/taskdeck/internal/repository/sqlite"
	"github.com/pablasso/taskdeck/internal/task"
	"github.com/pablasso/taskdeck/internal/version"
)

const maxBodyBytes = 1 << 20

// Handler serves the task API.
type Handler struct {
	Repo sqlite.Repository
	// Now is used to stamp created_date; defaults to time.Now.
	Now func() time.Time
}

// NewHandler returns a Handler backed by repo.
func NewHandler(repo sqlite.Repository) *Handler {
	return &Handler{Repo: repo, Now: time.Now}
}

// Routes returns the complete HTTP handler including CORS and request logging.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.handleRoot)
	mux.HandleFunc("/api/tasks", h.HandleTasks)
	mux.HandleFunc("/api/tasks/", h.HandleTaskByID)
	return logRequests(cors(mux))
}

type taskResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      bool   `json:"status"`
	Priority    string `json:"priority"`
	CreatedDate string `json:"created_date"`
	DueDate     string `json:"due_date"`
}

func toResponse(t *sqlite.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		CreatedDate: t.CreatedDate,
		DueDate:     t.DueDate,
	}
}

// taskInput carries the optional fields of a create or update body.
type taskInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
	Status      *bool   `json:"status"`
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		sendError(w, "Endpoint not found", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{
		"message": "taskdeck Task Manager API",
		"status":  "running",
		"version": version.Version,
		"endpoints": map[string]string{
			"GET /api/tasks":         "Get all tasks",
			"GET /api/tasks/<id>":    "Get a specific task",
			"POST /api/tasks":        "Create a new task",
			"PUT /api/tasks/<id>":    "Update a task",
			"DELETE /api/tasks/<id>": "Delete a task",
		},
	})
}

/*
handles routes:
- GET /api/tasks - list all tasks
- POST /api/tasks - create a new task
*/
func (h *Handler) HandleTasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listTasks(w, r)
	case http.MethodPost:
		h.createTask(w, r)
	default:
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

/*
handles routes:
- GET /api/tasks/{id}
- PUT /api/tasks/{id}
- DELETE /api/tasks/{id}
*/
func (h *Handler) HandleTaskByID(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || strings.Contains(idStr, "/") {
		sendError(w, "Endpoint not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getTask(w, r, id)
	case http.MethodPut:
		h.updateTask(w, r, id)
	case http.MethodDelete:
		h.deleteTask(w, r, id)
	default:
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Repo.ListTasks(r.Context())
	if err != nil {
		sendInternalError(w, err)
		return
	}
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toResponse(t))
	}
	sendJSON(w, http.StatusOK, out)
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request, id int64) {
	t, err := h.Repo.GetTask(r.Context(), id)
	if errors.Is(err, sqlite.ErrNotFound) {
		sendError(w, "Task not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendInternalError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, toResponse(t))
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		sendError(w, "Title is required", http.StatusBadRequest)
		return
	}
	if in.Priority == nil || !task.Priority(*in.Priority).Valid() {
		sendError(w, "Valid priority is required (Low, Medium, High)", http.StatusBadRequest)
		return
	}

	t := &sqlite.Task{
		Title:       strings.TrimSpace(*in.Title),
		Description: strings.TrimSpace(deref(in.Description)),
		Priority:    *in.Priority,
		CreatedDate: h.now().Format(task.DateLayout),
		DueDate:     deref(in.DueDate),
	}
	if err := h.Repo.CreateTask(r.Context(), t); err != nil {
		sendInternalError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, toResponse(t))
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request, id int64) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	t, err := h.Repo.GetTask(r.Context(), id)
	if errors.Is(err, sqlite.ErrNotFound) {
		sendError(w, "Task not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendInternalError(w, err)
		return
	}

	if in.Title != nil {
		t.Title = *in.Title
	}
	t.Title = strings.TrimSpace(t.Title)
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.DueDate != nil {
		t.DueDate = *in.DueDate
	}
	if in.Status != nil {
		t.Status = *in.Status
	}

	if t.Title == "" {
		sendError(w, "Title cannot be empty", http.StatusBadRequest)
		return
	}
	if !task.Priority(t.Priority).Valid() {
		sendError(w, "Valid priority is required (Low, Medium, High)", http.StatusBadRequest)
		return
	}

	if err := h.Repo.UpdateTask(r.Context(), t); err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			sendError(w, "Task not found", http.StatusNotFound)
			return
		}
		sendInternalError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, toResponse(t))
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request, id int64) {
	err := h.Repo.DeleteTask(r.Context(), id)
	if errors.Is(err, sqlite.ErrNotFound) {
		sendError(w, "Task not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendInternalError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

// decodeInput reads a JSON object body. It writes the error response and
// returns false when the body is missing, empty or malformed.
func decodeInput(w http.ResponseWriter, r *http.Request) (taskInput, bool) {
	var in taskInput

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		sendError(w, "Request body too large", http.StatusRequestEntityTooLarge)
		return in, false
	}

	var fields map[string]json.RawMessage
	if len(strings.TrimSpace(string(data))) == 0 || string(data) == "null" {
		sendError(w, "No data provided", http.StatusBadRequest)
		return in, false
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return in, false
	}
	if len(fields) == 0 {
		sendError(w, "No data provided", http.StatusBadRequest)
		return in, false
	}
	if err := json.Unmarshal(data, &in); err != nil {
		sendError(w, "Invalid field type: "+fieldName(err), http.StatusBadRequest)
		return in, false
	}
	return in, true
}

func fieldName(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field
	}
	return "body"
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Errorf("failed to encode response: %v", err)
	}
}

func sendError(w http.ResponseWriter, msg string, status int) {
	sendJSON(w, status, map[string]string{"error": msg})
}

func sendInternalError(w http.ResponseWriter, err error) {
	logging.Errorf("internal error: %v", err)
	sendError(w, "Internal server error", http.StatusInternalServerError)
}
