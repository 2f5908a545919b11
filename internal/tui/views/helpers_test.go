package views

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pablasso/taskdeck/internal/api"
	"github.com/pablasso/taskdeck/internal/repository/sqlite"
	"github.com/pablasso/taskdeck/internal/store"
	"github.com/pablasso/taskdeck/internal/testutil"
)

func setupStore(t *testing.T, seed ...sqlite.Task) (*store.Store, *testutil.Backend) {
	t.Helper()
	b := testutil.NewBackend(t)
	b.Seed(t, seed...)
	st := store.New(api.NewClient(b.URL))
	if err := st.Refresh(context.Background()); err != nil {
		t.Fatalf("initial refresh failed: %v", err)
	}
	return st, b
}

// collect runs cmd and any batched commands it returns, synchronously.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}
