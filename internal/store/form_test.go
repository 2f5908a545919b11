package store

import (
	"context"
	"net/http"
	"testing"

	"github.com/pablasso/taskdeck/internal/repository/sqlite"
	"github.com/pablasso/taskdeck/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm_CreateFlow(t *testing.T) {
	s, b := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.BeginCreate())
	ed, ok := s.Form().(Editing)
	require.True(t, ok)
	assert.True(t, ed.IsNew())
	assert.Equal(t, task.NewDraft(), ed.Draft)

	require.NoError(t, s.EditDraft(func(d *task.Draft) {
		d.Title = "Buy milk"
		d.Priority = task.PriorityMedium
	}))

	require.NoError(t, s.Submit(ctx))

	assert.IsType(t, Idle{}, s.Form(), "draft cleared on success")
	assert.Equal(t, 1, b.Count(http.MethodGet, "/api/tasks"), "exactly one refresh")
	assert.Equal(t, []string{"Buy milk"}, titles(s.Tasks()))
}

func TestForm_ValidationKeepsDraft(t *testing.T) {
	s, b := setupStore(t)

	require.NoError(t, s.BeginCreate())
	require.NoError(t, s.EditDraft(func(d *task.Draft) { d.Description = "no title yet" }))

	err := s.Submit(context.Background())

	assert.Equal(t, KindValidation, KindOf(err))
	ed, ok := s.Form().(Editing)
	require.True(t, ok, "form returns to Editing")
	assert.Equal(t, "no title yet", ed.Draft.Description)
	assert.Empty(t, b.Requests())
}

func TestForm_RejectionKeepsDraft(t *testing.T) {
	s, b := setupStore(t)
	b.Fail(http.MethodPost, "/api/tasks", http.StatusBadRequest, `{"error":"title too long"}`)

	require.NoError(t, s.BeginCreate())
	require.NoError(t, s.EditDraft(func(d *task.Draft) { d.Title = "very long" }))

	err := s.Submit(context.Background())

	assert.Equal(t, KindBackendRejection, KindOf(err))
	ed, ok := s.Form().(Editing)
	require.True(t, ok)
	assert.Equal(t, "very long", ed.Draft.Title)
	assert.Equal(t, "title too long", s.Notice().Text)
}

func TestForm_EditFlow(t *testing.T) {
	s, b := setupStore(t, sqlite.Task{Title: "old", Priority: "Low", Description: "keep"})
	ctx := context.Background()
	require.NoError(t, s.Refresh(ctx))
	b.ResetRequests()

	require.NoError(t, s.BeginEdit("1"))
	ed := s.Form().(Editing)
	assert.False(t, ed.IsNew())
	assert.Equal(t, task.Draft{Title: "old", Description: "keep", Priority: task.PriorityLow}, ed.Draft)

	require.NoError(t, s.EditDraft(func(d *task.Draft) { d.Title = "new" }))
	require.NoError(t, s.Submit(ctx))

	assert.Equal(t, []string{"PUT /api/tasks/1", "GET /api/tasks"}, b.Methods())
	assert.IsType(t, Idle{}, s.Form())
	got, _ := s.Lookup("1")
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, "keep", got.Description)
}

func TestForm_BeginEditUnknownTask(t *testing.T) {
	s, _ := setupStore(t)
	assert.ErrorIs(t, s.BeginEdit("5"), ErrUnknownTask)
	assert.IsType(t, Idle{}, s.Form())
}

func TestForm_CancelDiscardsDraft(t *testing.T) {
	s, b := setupStore(t)

	require.NoError(t, s.BeginCreate())
	require.NoError(t, s.EditDraft(func(d *task.Draft) { d.Title = "abandoned" }))
	s.Cancel()

	assert.IsType(t, Idle{}, s.Form())
	assert.Empty(t, b.Requests())

	require.NoError(t, s.BeginCreate())
	assert.Equal(t, task.NewDraft(), s.Form().(Editing).Draft)
}

func TestForm_OperationsOutsideEditing(t *testing.T) {
	s, _ := setupStore(t)

	assert.ErrorIs(t, s.Submit(context.Background()), ErrNoForm)
	assert.ErrorIs(t, s.EditDraft(func(*task.Draft) {}), ErrNoForm)
	s.Cancel()
	assert.IsType(t, Idle{}, s.Form())
}

func TestForm_RefreshFailureAfterSaveClosesForm(t *testing.T) {
	s, b := setupStore(t)
	b.Fail(http.MethodGet, "/api/tasks", http.StatusInternalServerError, ``)

	require.NoError(t, s.BeginCreate())
	require.NoError(t, s.EditDraft(func(d *task.Draft) { d.Title = "saved anyway" }))

	err := s.Submit(context.Background())
	assert.Equal(t, KindLoad, KindOf(err))
	assert.IsType(t, Idle{}, s.Form())
	assert.Equal(t, 1, b.Count(http.MethodPost, "/api/tasks"))
}

func TestCreate_LeavesOpenFormAlone(t *testing.T) {
	s, _ := setupStore(t)

	require.NoError(t, s.BeginCreate())
	require.NoError(t, s.EditDraft(func(d *task.Draft) { d.Title = "draft" }))
	require.NoError(t, s.Create(context.Background(), task.Draft{Title: "other", Priority: task.PriorityHigh}))

	ed, ok := s.Form().(Editing)
	require.True(t, ok, "expected Editing, got %#v", s.Form())
	assert.Equal(t, "draft", ed.Draft.Title)
	assert.Equal(t, []string{"other"}, titles(s.Tasks()))
}
